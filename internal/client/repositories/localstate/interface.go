// Package localstate persists small key-value items in the client-local
// database. It is a storage primitive: no validation or interpretation of
// values happens here.
package localstate

import (
	"context"
)

type Repository interface {
	// Get returns the value for key, or nil if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every stored item.
	Clear(ctx context.Context) error
}
