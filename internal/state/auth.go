package state

import (
	"context"

	"github.com/dmitrijs2005/daykeeper/internal/accounts"
	"github.com/dmitrijs2005/daykeeper/internal/models"
	"github.com/dmitrijs2005/daykeeper/internal/session"
)

// AuthState is the projected authentication view.
type AuthState struct {
	User              *models.User
	Authenticated     bool
	BiometricsEnabled bool
}

// Auth projects session operations into an AuthState.
type Auth struct {
	ctrl *session.Controller
	proj *Projection[AuthState]
}

func NewAuth(ctrl *session.Controller) *Auth {
	return &Auth{ctrl: ctrl, proj: NewProjection(AuthState{})}
}

// Snapshot returns the current authentication view.
func (a *Auth) Snapshot() Snapshot[AuthState] {
	return a.proj.Snapshot()
}

// SignUp registers a new account and projects the signed-in state.
// Registration enables biometric sign-in for the new session.
func (a *Auth) SignUp(ctx context.Context, fullName, email, password string) (*models.User, error) {
	var user *models.User
	_, err := a.proj.Run(ctx, func(ctx context.Context) (AuthState, error) {
		u, err := a.ctrl.SignUp(ctx, fullName, email, password)
		if err != nil {
			return AuthState{}, err
		}
		user = u
		return AuthState{User: u, Authenticated: true, BiometricsEnabled: true}, nil
	})
	return user, err
}

// SignIn authenticates with credentials and projects the signed-in state.
func (a *Auth) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	var user *models.User
	_, err := a.proj.Run(ctx, func(ctx context.Context) (AuthState, error) {
		u, err := a.ctrl.SignIn(ctx, email, password)
		if err != nil {
			return AuthState{}, err
		}
		user = u
		return AuthState{User: u, Authenticated: true, BiometricsEnabled: true}, nil
	})
	return user, err
}

// SignInWithBiometrics restores the last session after a successful
// biometric prompt.
func (a *Auth) SignInWithBiometrics(ctx context.Context) (*models.User, error) {
	var user *models.User
	_, err := a.proj.Run(ctx, func(ctx context.Context) (AuthState, error) {
		u, err := a.ctrl.SignInWithBiometrics(ctx)
		if err != nil {
			return AuthState{}, err
		}
		user = u
		st := a.proj.Snapshot().Data
		st.User = u
		st.Authenticated = true
		return st, nil
	})
	return user, err
}

// SignOut ends the session. The biometrics preference survives so the user
// can come back through SignInWithBiometrics.
func (a *Auth) SignOut(ctx context.Context) error {
	_, err := a.proj.Run(ctx, func(ctx context.Context) (AuthState, error) {
		if err := a.ctrl.SignOut(ctx); err != nil {
			return AuthState{}, err
		}
		st := a.proj.Snapshot().Data
		st.User = nil
		st.Authenticated = false
		return st, nil
	})
	return err
}

// Restore projects whatever session survived a restart. A missing session
// is not an error: the projection fulfills with an unauthenticated state.
func (a *Auth) Restore(ctx context.Context) (*models.User, error) {
	var user *models.User
	_, err := a.proj.Run(ctx, func(ctx context.Context) (AuthState, error) {
		u, enabled, err := a.ctrl.Restore(ctx)
		if err != nil {
			return AuthState{}, err
		}
		user = u
		return AuthState{User: u, Authenticated: u != nil, BiometricsEnabled: enabled}, nil
	})
	return user, err
}

// ToggleBiometrics flips the biometric sign-in preference.
func (a *Auth) ToggleBiometrics(ctx context.Context, enabled bool) error {
	_, err := a.proj.Run(ctx, func(ctx context.Context) (AuthState, error) {
		if err := a.ctrl.ToggleBiometrics(ctx, enabled); err != nil {
			return AuthState{}, err
		}
		st := a.proj.Snapshot().Data
		st.BiometricsEnabled = enabled
		return st, nil
	})
	return err
}

// UpdateProfile edits the signed-in account and projects the updated user.
func (a *Auth) UpdateProfile(ctx context.Context, currentEmail string, upd accounts.ProfileUpdate) (*models.User, error) {
	var user *models.User
	_, err := a.proj.Run(ctx, func(ctx context.Context) (AuthState, error) {
		u, err := a.ctrl.UpdateProfile(ctx, currentEmail, upd)
		if err != nil {
			return AuthState{}, err
		}
		user = u
		st := a.proj.Snapshot().Data
		st.User = u
		return st, nil
	})
	return user, err
}
