// Package accounts manages User and Credential records, the current-session
// pointer, the last-authenticated pointer, and the biometrics flag, all on
// top of a kvstore.Store.
//
// Multi-key operations are not atomic: a crash between writes can leave a
// Credential without its User or vice versa. That window is inherited from
// the storage model and surfaces as ErrAccountDataMissing on authentication.
package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/daykeeper/internal/common"
	"github.com/dmitrijs2005/daykeeper/internal/cryptox"
	"github.com/dmitrijs2005/daykeeper/internal/kvstore"
	"github.com/dmitrijs2005/daykeeper/internal/models"
	"github.com/dmitrijs2005/daykeeper/internal/syncx"
)

// Store is the account repository.
type Store struct {
	kv     kvstore.Store
	hasher cryptox.PasswordHasher
	locks  *syncx.KeyMutex
	now    func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithPasswordHasher selects the credential storage strategy. The default
// PlainHasher stores passwords verbatim, matching the original data format;
// BcryptHasher is a drop-in hardening with the same external contract.
func WithPasswordHasher(h cryptox.PasswordHasher) Option {
	return func(s *Store) { s.hasher = h }
}

// WithClock overrides the time source. Test seam.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New constructs a Store over the given key-value backend.
func New(kv kvstore.Store, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		hasher: cryptox.PlainHasher{},
		locks:  syncx.NewKeyMutex(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProfileUpdate carries the optional fields of an UpdateProfile call.
// Empty strings mean "keep the previous value". A password change is
// requested by setting NewPassword; CurrentPassword must then match the
// stored credential.
type ProfileUpdate struct {
	FullName        string
	Email           string
	CurrentPassword string
	NewPassword     string
}

// CreateAccount registers a new user. Duplicate detection enumerates every
// stored account and compares emails; there is no index. On success the new
// user becomes both the current session and the last-authenticated user, and
// biometrics are enabled.
func (s *Store) CreateAccount(ctx context.Context, fullName, email, password string) (*models.User, error) {
	existing, err := s.allUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range existing {
		if u.Email == email {
			return nil, common.ErrDuplicateAccount
		}
	}

	user := &models.User{
		ID:        models.NewID(),
		Email:     email,
		FullName:  fullName,
		CreatedAt: s.now().UTC(),
	}

	if err := s.putJSON(ctx, userKey(email), user); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	cred := models.Credential{Email: email, Password: hashed}
	if err := s.putJSON(ctx, credentialsKey(email), cred); err != nil {
		return nil, err
	}

	if err := s.putJSON(ctx, keySessionUser, user); err != nil {
		return nil, err
	}
	if err := s.putJSON(ctx, keyLastUser, user); err != nil {
		return nil, err
	}
	if err := s.SetBiometricsEnabled(ctx, true); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies email/password and, on success, points both the
// session and last-authenticated slots at the user and enables biometrics.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	credData, err := s.kv.Get(ctx, credentialsKey(email))
	if err != nil {
		return nil, err
	}
	if credData == nil {
		return nil, common.ErrAccountNotFound
	}

	var cred models.Credential
	if err := json.Unmarshal(credData, &cred); err != nil {
		return nil, fmt.Errorf("decode credential: %w", err)
	}
	if !s.hasher.Compare(cred.Password, password) {
		return nil, common.ErrInvalidPassword
	}

	userData, err := s.kv.Get(ctx, userKey(email))
	if err != nil {
		return nil, err
	}
	if userData == nil {
		// Credential exists but the paired user record is gone.
		return nil, common.ErrAccountDataMissing
	}

	var user models.User
	if err := json.Unmarshal(userData, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}

	if err := s.putJSON(ctx, keySessionUser, &user); err != nil {
		return nil, err
	}
	if err := s.putJSON(ctx, keyLastUser, &user); err != nil {
		return nil, err
	}
	if err := s.SetBiometricsEnabled(ctx, true); err != nil {
		return nil, err
	}

	return &user, nil
}

// ReauthenticateLastUser restores the session from the last-authenticated
// pointer. Returns (nil, nil) when the pointer is empty. The password is not
// re-verified; trust is delegated to the biometric capability that gated
// this call.
func (s *Store) ReauthenticateLastUser(ctx context.Context) (*models.User, error) {
	data, err := s.kv.Get(ctx, keyLastUser)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}

	if err := s.putJSON(ctx, keySessionUser, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// EndSession clears the session pointer. The last-authenticated pointer is
// left in place so biometric re-entry keeps working after sign-out.
func (s *Store) EndSession(ctx context.Context) error {
	return s.kv.Remove(ctx, keySessionUser)
}

// CurrentUser reads the session pointer. Returns (nil, nil) when empty.
func (s *Store) CurrentUser(ctx context.Context) (*models.User, error) {
	data, err := s.kv.Get(ctx, keySessionUser)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

// SetBiometricsEnabled persists the global biometrics flag.
func (s *Store) SetBiometricsEnabled(ctx context.Context, enabled bool) error {
	return s.putJSON(ctx, keyBiometricsEnabled, enabled)
}

// BiometricsEnabled reads the flag; unset means false.
func (s *Store) BiometricsEnabled(ctx context.Context) (bool, error) {
	data, err := s.kv.Get(ctx, keyBiometricsEnabled)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}

	var enabled bool
	if err := json.Unmarshal(data, &enabled); err != nil {
		return false, fmt.Errorf("decode biometrics flag: %w", err)
	}
	return enabled, nil
}

// UpdateProfile changes fullName/email and optionally the password of the
// account stored under currentEmail. Omitted fields keep their previous
// values. Credentials are rewritten only when a password change is requested.
// On an email change the user record migrates to its new key and the old key
// is removed. Both session pointers are refreshed.
//
// Email uniqueness is NOT re-validated against other accounts here; changing
// to an email already in use shadows the other account's key. Preserved
// behavior of the source data model.
func (s *Store) UpdateProfile(ctx context.Context, currentEmail string, upd ProfileUpdate) (*models.User, error) {
	s.locks.Lock(userKey(currentEmail))
	defer s.locks.Unlock(userKey(currentEmail))

	userData, err := s.kv.Get(ctx, userKey(currentEmail))
	if err != nil {
		return nil, err
	}
	if userData == nil {
		return nil, common.ErrAccountNotFound
	}

	var user models.User
	if err := json.Unmarshal(userData, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}

	newEmail := upd.Email
	if newEmail == "" {
		newEmail = user.Email
	}
	emailChanged := newEmail != currentEmail

	if upd.NewPassword != "" {
		credData, err := s.kv.Get(ctx, credentialsKey(currentEmail))
		if err != nil {
			return nil, err
		}
		if credData == nil {
			return nil, common.ErrCredentialsMissing
		}

		var cred models.Credential
		if err := json.Unmarshal(credData, &cred); err != nil {
			return nil, fmt.Errorf("decode credential: %w", err)
		}
		if !s.hasher.Compare(cred.Password, upd.CurrentPassword) {
			return nil, common.ErrInvalidPassword
		}

		hashed, err := s.hasher.Hash(upd.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		newCred := models.Credential{Email: newEmail, Password: hashed}
		if err := s.putJSON(ctx, credentialsKey(newEmail), newCred); err != nil {
			return nil, err
		}
		if emailChanged {
			if err := s.kv.Remove(ctx, credentialsKey(currentEmail)); err != nil {
				return nil, err
			}
		}
	}

	if upd.FullName != "" {
		user.FullName = upd.FullName
	}
	user.Email = newEmail

	if err := s.putJSON(ctx, userKey(newEmail), &user); err != nil {
		return nil, err
	}
	if emailChanged {
		if err := s.kv.Remove(ctx, userKey(currentEmail)); err != nil {
			return nil, err
		}
	}

	if err := s.putJSON(ctx, keySessionUser, &user); err != nil {
		return nil, err
	}
	if err := s.putJSON(ctx, keyLastUser, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// allUsers loads every stored user record via a full key scan.
func (s *Store) allUsers(ctx context.Context) ([]models.User, error) {
	keys, err := s.kv.GetAllKeys(ctx)
	if err != nil {
		return nil, err
	}

	userKeys := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.HasPrefix(k, keyPrefixUser) {
			userKeys = append(userKeys, k)
		}
	}

	values, err := s.kv.GetMany(ctx, userKeys)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(values))
	for k, v := range values {
		var u models.User
		if err := json.Unmarshal(v, &u); err != nil {
			return nil, fmt.Errorf("decode user %q: %w", k, err)
		}
		users = append(users, u)
	}
	return users, nil
}

func (s *Store) putJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return s.kv.Set(ctx, key, data)
}
