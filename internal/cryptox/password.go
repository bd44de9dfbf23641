// Package cryptox holds the credential verification strategy used by the
// account store.
package cryptox

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns a password into its stored representation and checks
// a candidate against it. Both implementations satisfy the same contract:
// Compare(Hash(p), p) is true and Compare(Hash(p), q) is false for p != q.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(stored, candidate string) bool
}

// PlainHasher stores the password verbatim and compares in constant time.
// This mirrors the original application's storage format; prefer BcryptHasher
// for any data that leaves a test environment.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	return password, nil
}

func (PlainHasher) Compare(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// BcryptHasher stores a salted bcrypt digest.
type BcryptHasher struct {
	// Cost overrides bcrypt.DefaultCost when positive.
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h BcryptHasher) Compare(stored, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}
