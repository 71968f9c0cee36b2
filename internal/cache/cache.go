// Package cache provides typed access to byte-oriented cache stores.
//
// Stores are shared mutable state: writes are last-write-wins and reads return
// whatever is currently stored.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Store is a byte-oriented key/value cache.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Typed stores values of T as JSON under a key prefix.
type Typed[T any] struct {
	store  Store
	prefix string
	ttl    time.Duration
}

func NewTyped[T any](store Store, prefix string, ttl time.Duration) *Typed[T] {
	return &Typed[T]{store: store, prefix: prefix, ttl: ttl}
}

func (c *Typed[T]) key(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

func (c *Typed[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T

	raw, ok, err := c.GetRaw(ctx, key)
	if err != nil || !ok {
		return zero, false, err
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, false, fmt.Errorf("cache: decode %q: %w", c.key(key), err)
	}

	return v, true, nil
}

// GetRaw returns the serialized form of the value.
func (c *Typed[T]) GetRaw(ctx context.Context, key string) ([]byte, bool, error) {
	return c.store.Get(ctx, c.key(key))
}

func (c *Typed[T]) Set(ctx context.Context, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: encode %q: %w", c.key(key), err)
	}

	return c.store.Set(ctx, c.key(key), raw, c.ttl)
}

func (c *Typed[T]) Invalidate(ctx context.Context, key string) error {
	return c.store.Delete(ctx, c.key(key))
}
