package localcache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Store is an in-process cache.Store backed by go-cache.
type Store struct {
	c *gocache.Cache
}

func New(defaultTTL, cleanupInterval time.Duration) *Store {
	return &Store{c: gocache.New(defaultTTL, cleanupInterval)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false, nil
	}

	b, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}

	out := make([]byte, len(b))
	copy(out, b)

	return out, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}

	cp := make([]byte, len(value))
	copy(cp, value)

	s.c.Set(key, cp, ttl)

	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.c.Delete(key)
	return nil
}
