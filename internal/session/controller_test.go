package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/daykeeper/internal/accounts"
	"github.com/dmitrijs2005/daykeeper/internal/common"
	"github.com/dmitrijs2005/daykeeper/internal/kvstore"
	"github.com/dmitrijs2005/daykeeper/internal/logging"
)

func newController(t *testing.T, cap BiometricCapability) *Controller {
	t.Helper()
	store := accounts.New(kvstore.NewMemoryStore())
	return NewController(store, cap, logging.NewDiscard())
}

func TestSignUpThenSignIn(t *testing.T) {
	c := newController(t, StaticCapability{Result: true})
	ctx := context.Background()

	created, err := c.SignUp(ctx, "Jane Doe", "jane@x.com", "secret1")
	require.NoError(t, err)

	got, err := c.SignIn(ctx, "jane@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestSignInWithBiometrics(t *testing.T) {
	ctx := context.Background()

	t.Run("restores last user after sign out", func(t *testing.T) {
		c := newController(t, StaticCapability{Result: true})

		created, err := c.SignUp(ctx, "Jane Doe", "jane@x.com", "secret1")
		require.NoError(t, err)
		require.NoError(t, c.SignOut(ctx))

		got, err := c.SignInWithBiometrics(ctx)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)

		current, err := c.CurrentUser(ctx)
		require.NoError(t, err)
		require.NotNil(t, current)
		assert.Equal(t, created.ID, current.ID)
	})

	t.Run("prompt declined", func(t *testing.T) {
		c := newController(t, StaticCapability{Result: false})

		_, err := c.SignUp(ctx, "Jane Doe", "jane@x.com", "secret1")
		require.NoError(t, err)

		_, err = c.SignInWithBiometrics(ctx)
		assert.ErrorIs(t, err, common.ErrBiometricAuthFailed)
	})

	t.Run("no saved user", func(t *testing.T) {
		c := newController(t, StaticCapability{Result: true})

		_, err := c.SignInWithBiometrics(ctx)
		assert.ErrorIs(t, err, common.ErrNoSavedUser)
	})

	t.Run("sensor error passes through", func(t *testing.T) {
		sensorErr := errors.New("sensor offline")
		c := newController(t, StaticCapability{Err: sensorErr})

		_, err := c.SignInWithBiometrics(ctx)
		assert.ErrorIs(t, err, sensorErr)
	})
}

func TestSignOut_ThenCurrentUserIsNil(t *testing.T) {
	c := newController(t, StaticCapability{Result: true})
	ctx := context.Background()

	_, err := c.SignUp(ctx, "Jane Doe", "jane@x.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, c.SignOut(ctx))

	current, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestRestore(t *testing.T) {
	c := newController(t, StaticCapability{Result: true})
	ctx := context.Background()

	user, enabled, err := c.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.False(t, enabled)

	created, err := c.SignUp(ctx, "Jane Doe", "jane@x.com", "secret1")
	require.NoError(t, err)

	user, enabled, err = c.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)
	assert.True(t, enabled)
}

func TestToggleBiometrics(t *testing.T) {
	c := newController(t, StaticCapability{Result: true})
	ctx := context.Background()

	_, err := c.SignUp(ctx, "Jane Doe", "jane@x.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, c.ToggleBiometrics(ctx, false))
	_, enabled, err := c.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestUpdateProfile_PassesThroughErrors(t *testing.T) {
	c := newController(t, StaticCapability{Result: true})

	_, err := c.UpdateProfile(context.Background(), "ghost@x.com", accounts.ProfileUpdate{FullName: "X"})
	assert.ErrorIs(t, err, common.ErrAccountNotFound)
}

func TestKindName(t *testing.T) {
	tests := []struct {
		kind BiometryKind
		want string
	}{
		{BiometryFaceID, "Face ID"},
		{BiometryTouchID, "Touch ID"},
		{BiometryGeneric, "Biometrics"},
		{BiometryNone, "Biometric Authentication"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindName(tt.kind))
	}
}

func TestBiometryAvailability(t *testing.T) {
	c := newController(t, StaticCapability{
		Availability: Availability{Available: true, Kind: BiometryTouchID},
	})

	got := c.BiometryAvailability(context.Background())
	assert.True(t, got.Available)
	assert.Equal(t, BiometryTouchID, got.Kind)
}
