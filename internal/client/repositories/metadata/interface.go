// Package metadata stores small client-side values (such as the persisted
// session user) as opaque byte blobs under string keys.
package metadata

import (
	"context"
)

// Repository is a key/value store over byte blobs.
//
// Get returns (nil, nil) when the key is absent. Delete of a missing key is
// not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

var (
	_ Repository = (*SQLiteRepository)(nil)
	_ Repository = (*RedisRepository)(nil)
	_ Repository = (*MemoryRepository)(nil)
)
