package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/daykeeper/internal/accounts"
	"github.com/dmitrijs2005/daykeeper/internal/config"
	"github.com/dmitrijs2005/daykeeper/internal/events"
	"github.com/dmitrijs2005/daykeeper/internal/kvstore"
	"github.com/dmitrijs2005/daykeeper/internal/logging"
	"github.com/dmitrijs2005/daykeeper/internal/session"
	"github.com/dmitrijs2005/daykeeper/internal/state"
)

// App wires the storage backend, the account and event stores and the
// session controller into an interactive terminal application.
type App struct {
	config     *config.Config
	auth       *state.Auth
	cal        *state.Events
	ctrl       *session.Controller
	reader     *bufio.Reader
	log        logging.Logger
	closeStore func() error
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	kv, closeStore, err := openStore(ctx, c)
	if err != nil {
		log.Error(ctx, "error initializing storage", "backend", c.StorageBackend, "error", err)
		return nil, err
	}

	reader := bufio.NewReader(os.Stdin)
	acc := accounts.New(kv)
	ctrl := session.NewController(acc, NewTerminalCapability(reader, os.Stdout), log)

	return &App{
		config:     c,
		auth:       state.NewAuth(ctrl),
		cal:        state.NewEvents(events.New(kv)),
		ctrl:       ctrl,
		reader:     reader,
		log:        log,
		closeStore: closeStore,
	}, nil
}

// openStore opens the key-value backend named in the config.
func openStore(ctx context.Context, c *config.Config) (kvstore.Store, func() error, error) {
	switch c.StorageBackend {
	case config.BackendMemory:
		return kvstore.NewMemoryStore(), func() error { return nil }, nil
	case config.BackendSQLite:
		store, db, err := kvstore.InitSQLite(ctx, c.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, db.Close, nil
	case config.BackendPostgres:
		store, db, err := kvstore.InitPostgres(ctx, c.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return store, db.Close, nil
	case config.BackendRedis:
		store, err := kvstore.InitRedis(ctx, kvstore.RedisOptions{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Timeout:  c.RedisTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend: %q", c.StorageBackend)
	}
}

// Run restores any saved session and hands control to the REPL. It returns
// when the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.closeStore(); err != nil {
			a.log.Error(ctx, "error closing storage", "error", err)
		}
	}()

	printlnFn("Daykeeper CLI (type 'help' for commands)")
	a.restore(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isSignedIn() bool {
	return a.auth.Snapshot().Data.Authenticated
}

func (a *App) getStatus() string {
	snap := a.auth.Snapshot()
	if snap.Data.User == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", snap.Data.User.Email)
}

// restore brings back the session that survived the last run, if any, and
// offers biometric sign-in when one is saved but not active.
func (a *App) restore(ctx context.Context) {
	user, err := a.auth.Restore(ctx)
	if err != nil {
		a.log.Error(ctx, "error restoring session", "error", err)
		return
	}
	if user != nil {
		printlnFn(fmt.Sprintf("Welcome back, %s!", user.FullName))
		if _, err := a.cal.Load(ctx, user.ID); err != nil {
			a.log.Error(ctx, "error loading events", "error", err)
		}
		return
	}
	if a.auth.Snapshot().Data.BiometricsEnabled {
		printlnFn(fmt.Sprintf("%s sign-in is available: type 'unlock'", session.KindName(a.ctrl.BiometryAvailability(ctx).Kind)))
	}
}
