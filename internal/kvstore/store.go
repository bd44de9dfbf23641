// Package kvstore defines the string-keyed value store the domain layer is
// built on, plus several interchangeable backends (in-memory, SQLite,
// PostgreSQL, Redis).
//
// The interface mirrors the capabilities of a mobile device key-value store:
// durable, asynchronous, no transactions across keys. Higher layers derive
// their keys deterministically from emails and user ids and perform their own
// read-modify-write cycles on whole values.
package kvstore

import "context"

// Store is a crash-durable string-keyed byte store.
//
// Contract:
//   - Get returns (nil, nil) when the key does not exist.
//   - GetMany omits absent keys from the result map.
//   - Remove of an absent key is a no-op.
//
// Backend failures are reported as *common.StorageError and match
// common.ErrStorage via errors.Is.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	GetAllKeys(ctx context.Context) ([]string, error)
	GetMany(ctx context.Context, keys []string) (map[string][]byte, error)
}
