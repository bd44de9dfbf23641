package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashers_Contract(t *testing.T) {
	hashers := map[string]PasswordHasher{
		"plain":  PlainHasher{},
		"bcrypt": BcryptHasher{Cost: bcrypt.MinCost},
	}

	for name, h := range hashers {
		h := h
		t.Run(name, func(t *testing.T) {
			stored, err := h.Hash("secret1")
			require.NoError(t, err)

			assert.True(t, h.Compare(stored, "secret1"))
			assert.False(t, h.Compare(stored, "secret2"))
			assert.False(t, h.Compare(stored, ""))
		})
	}
}

func TestPlainHasher_StoresVerbatim(t *testing.T) {
	stored, err := PlainHasher{}.Hash("secret1")
	require.NoError(t, err)
	assert.Equal(t, "secret1", stored)
}

func TestBcryptHasher_StoresDigest(t *testing.T) {
	stored, err := BcryptHasher{Cost: bcrypt.MinCost}.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("secret1")))
}
