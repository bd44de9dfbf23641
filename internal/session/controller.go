// Package session orchestrates sign-up, sign-in, sign-out, biometric
// re-entry, and profile updates over the account store and the biometric
// capability. Every operation resolves to either a value or a typed error,
// never a partial success.
package session

import (
	"context"

	"github.com/dmitrijs2005/daykeeper/internal/accounts"
	"github.com/dmitrijs2005/daykeeper/internal/common"
	"github.com/dmitrijs2005/daykeeper/internal/logging"
	"github.com/dmitrijs2005/daykeeper/internal/models"
)

// Controller wires the account store to the biometric capability.
type Controller struct {
	accounts   *accounts.Store
	biometrics BiometricCapability
	log        logging.Logger
}

// NewController constructs a Controller.
func NewController(accounts *accounts.Store, biometrics BiometricCapability, log logging.Logger) *Controller {
	return &Controller{accounts: accounts, biometrics: biometrics, log: log}
}

// SignUp creates a new account and opens a session for it.
func (c *Controller) SignUp(ctx context.Context, fullName, email, password string) (*models.User, error) {
	user, err := c.accounts.CreateAccount(ctx, fullName, email, password)
	if err != nil {
		c.log.Warn(ctx, "sign up failed", "email", email, "error", err.Error())
		return nil, err
	}
	c.log.Info(ctx, "account created", "email", email, "id", user.ID)
	return user, nil
}

// SignIn authenticates with email and password.
func (c *Controller) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	user, err := c.accounts.Authenticate(ctx, email, password)
	if err != nil {
		c.log.Warn(ctx, "sign in failed", "email", email, "error", err.Error())
		return nil, err
	}
	c.log.Info(ctx, "signed in", "email", email)
	return user, nil
}

// SignInWithBiometrics prompts the sensor and, on success, restores the
// session of the last authenticated user. Fails with ErrBiometricAuthFailed
// when the prompt is declined and ErrNoSavedUser when no prior user exists.
func (c *Controller) SignInWithBiometrics(ctx context.Context) (*models.User, error) {
	ok, err := c.biometrics.Authenticate(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrBiometricAuthFailed
	}

	user, err := c.accounts.ReauthenticateLastUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.ErrNoSavedUser
	}
	c.log.Info(ctx, "signed in with biometrics", "email", user.Email)
	return user, nil
}

// SignOut clears the session pointer only.
func (c *Controller) SignOut(ctx context.Context) error {
	if err := c.accounts.EndSession(ctx); err != nil {
		return err
	}
	c.log.Info(ctx, "signed out")
	return nil
}

// CurrentUser reads the session pointer; nil when nobody is signed in.
func (c *Controller) CurrentUser(ctx context.Context) (*models.User, error) {
	return c.accounts.CurrentUser(ctx)
}

// Restore reads the persisted session and the biometrics flag in one call,
// for resuming state at application start.
func (c *Controller) Restore(ctx context.Context) (*models.User, bool, error) {
	user, err := c.accounts.CurrentUser(ctx)
	if err != nil {
		return nil, false, err
	}
	enabled, err := c.accounts.BiometricsEnabled(ctx)
	if err != nil {
		return nil, false, err
	}
	return user, enabled, nil
}

// ToggleBiometrics flips the global biometrics flag.
func (c *Controller) ToggleBiometrics(ctx context.Context, enabled bool) error {
	return c.accounts.SetBiometricsEnabled(ctx, enabled)
}

// UpdateProfile delegates to the account store.
func (c *Controller) UpdateProfile(ctx context.Context, currentEmail string, upd accounts.ProfileUpdate) (*models.User, error) {
	user, err := c.accounts.UpdateProfile(ctx, currentEmail, upd)
	if err != nil {
		c.log.Warn(ctx, "profile update failed", "email", currentEmail, "error", err.Error())
		return nil, err
	}
	c.log.Info(ctx, "profile updated", "email", user.Email)
	return user, nil
}

// BiometryAvailability probes the sensor.
func (c *Controller) BiometryAvailability(ctx context.Context) Availability {
	return c.biometrics.IsAvailable(ctx)
}
