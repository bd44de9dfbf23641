package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/daykeeper/internal/accounts"
	"github.com/dmitrijs2005/daykeeper/internal/common"
	"github.com/dmitrijs2005/daykeeper/internal/kvstore"
	"github.com/dmitrijs2005/daykeeper/internal/logging"
	"github.com/dmitrijs2005/daykeeper/internal/session"
)

func newTestAuth(t *testing.T, cap session.BiometricCapability) (*Auth, kvstore.Store) {
	t.Helper()
	kv := kvstore.NewMemoryStore()
	acc := accounts.New(kv)
	ctrl := session.NewController(acc, cap, logging.NewDiscard())
	return NewAuth(ctrl), kv
}

func TestAuthSignUpProjectsSession(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t, session.StaticCapability{Result: true})

	user, err := auth.SignUp(ctx, "Jane Doe", "jane@example.com", "secret")
	require.NoError(t, err)
	require.NotNil(t, user)

	snap := auth.Snapshot()
	assert.Equal(t, StatusFulfilled, snap.Status)
	assert.True(t, snap.Data.Authenticated)
	assert.True(t, snap.Data.BiometricsEnabled)
	require.NotNil(t, snap.Data.User)
	assert.Equal(t, "jane@example.com", snap.Data.User.Email)
}

func TestAuthSignInRejectedOnBadPassword(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t, session.StaticCapability{Result: true})

	_, err := auth.SignUp(ctx, "Jane Doe", "jane@example.com", "secret")
	require.NoError(t, err)
	require.NoError(t, auth.SignOut(ctx))

	_, err = auth.SignIn(ctx, "jane@example.com", "wrong")
	require.ErrorIs(t, err, common.ErrInvalidPassword)

	snap := auth.Snapshot()
	assert.Equal(t, StatusRejected, snap.Status)
	assert.ErrorIs(t, snap.Err, common.ErrInvalidPassword)
	assert.False(t, snap.Data.Authenticated, "failed sign-in must not authenticate")
}

func TestAuthSignOutKeepsBiometricsPreference(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t, session.StaticCapability{Result: true})

	_, err := auth.SignUp(ctx, "Jane Doe", "jane@example.com", "secret")
	require.NoError(t, err)
	require.NoError(t, auth.SignOut(ctx))

	snap := auth.Snapshot()
	assert.False(t, snap.Data.Authenticated)
	assert.Nil(t, snap.Data.User)
	assert.True(t, snap.Data.BiometricsEnabled)
}

func TestAuthSignInWithBiometrics(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t, session.StaticCapability{Result: true})

	_, err := auth.SignUp(ctx, "Jane Doe", "jane@example.com", "secret")
	require.NoError(t, err)
	require.NoError(t, auth.SignOut(ctx))

	user, err := auth.SignInWithBiometrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.True(t, auth.Snapshot().Data.Authenticated)
}

func TestAuthSignInWithBiometricsDeclined(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t, session.StaticCapability{Result: false})

	_, err := auth.SignUp(ctx, "Jane Doe", "jane@example.com", "secret")
	require.NoError(t, err)
	require.NoError(t, auth.SignOut(ctx))

	_, err = auth.SignInWithBiometrics(ctx)
	require.ErrorIs(t, err, common.ErrBiometricAuthFailed)
	assert.False(t, auth.Snapshot().Data.Authenticated)
}

func TestAuthRestore(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	acc := accounts.New(kv)
	ctrl := session.NewController(acc, session.StaticCapability{Result: true}, logging.NewDiscard())

	_, err := ctrl.SignUp(ctx, "Jane Doe", "jane@example.com", "secret")
	require.NoError(t, err)

	// A fresh projection over the same storage, as after process restart.
	auth := NewAuth(session.NewController(acc, session.StaticCapability{Result: true}, logging.NewDiscard()))
	user, err := auth.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)

	snap := auth.Snapshot()
	assert.True(t, snap.Data.Authenticated)
	assert.True(t, snap.Data.BiometricsEnabled)
}

func TestAuthRestoreWithoutSession(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t, session.StaticCapability{Result: true})

	user, err := auth.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	snap := auth.Snapshot()
	assert.Equal(t, StatusFulfilled, snap.Status, "missing session is not a failure")
	assert.False(t, snap.Data.Authenticated)
}

func TestAuthToggleBiometrics(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t, session.StaticCapability{Result: true})

	_, err := auth.SignUp(ctx, "Jane Doe", "jane@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, auth.ToggleBiometrics(ctx, false))
	assert.False(t, auth.Snapshot().Data.BiometricsEnabled)

	require.NoError(t, auth.ToggleBiometrics(ctx, true))
	assert.True(t, auth.Snapshot().Data.BiometricsEnabled)
}

func TestAuthUpdateProfileProjectsUser(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t, session.StaticCapability{Result: true})

	_, err := auth.SignUp(ctx, "Jane Doe", "jane@example.com", "secret")
	require.NoError(t, err)

	user, err := auth.UpdateProfile(ctx, "jane@example.com", accounts.ProfileUpdate{FullName: "Jane Q. Doe"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Q. Doe", user.FullName)
	assert.Equal(t, "Jane Q. Doe", auth.Snapshot().Data.User.FullName)
	assert.True(t, auth.Snapshot().Data.Authenticated)
}
