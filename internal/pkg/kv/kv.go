// Package kv defines the key-value contract report storage is written against.
package kv

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// UpdateFunc receives the current value (nil when the key is absent) and
// returns the value to store. Returning a nil slice deletes the key.
type UpdateFunc func(current []byte, exists bool) ([]byte, error)

type Store interface {
	// Get returns ErrNotFound for missing keys
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for missing keys
	Delete(ctx context.Context, key string) error
	// Keys returns every key starting with prefix, sorted
	Keys(ctx context.Context, prefix string) ([]string, error)
	// Update runs fn as one atomic read-modify-write on key. An error from fn
	// leaves the stored value untouched.
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Close() error
}
