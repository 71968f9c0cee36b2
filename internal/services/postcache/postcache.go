// Package postcache keeps an eventually consistent copy of the full blog post list.
//
// Reads are served from memory or the shared cache first and revalidated in the
// background. Deletes and status toggles are applied locally before the remote call;
// when the remote call fails the local change is undone and the list is re-fetched.
package postcache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"site_cms/internal/cache"
	"site_cms/internal/domain/models"
	"site_cms/internal/lib/logger/sl"
	"site_cms/internal/lib/retry"
	"site_cms/internal/metrics"
	"site_cms/internal/storage"

	"github.com/google/uuid"
)

const (
	DefaultKey      = "blog_posts_cache"
	DefaultAttempts = 3
	DefaultDelay    = 500 * time.Millisecond

	revalidateTimeout = 30 * time.Second
)

type Source interface {
	FetchPosts(ctx context.Context) ([]models.BlogPost, error)
	DeletePost(ctx context.Context, postID uuid.UUID) error
	SetPostStatus(ctx context.Context, postID uuid.UUID, status string) error
}

// Revalidation reports the outcome of a background refresh.
type Revalidation struct {
	Posts   []models.BlogPost
	Changed bool
	Err     error
}

type Options struct {
	Key      string
	Attempts int
	Delay    time.Duration
}

type Cache struct {
	log      *slog.Logger
	source   Source
	store    *cache.Typed[[]models.BlogPost]
	key      string
	attempts int
	delay    time.Duration

	mu     sync.RWMutex
	posts  []models.BlogPost
	loaded bool
	// gen counts local mutations; a fetch started under an older gen is stale.
	gen uint64

	wg sync.WaitGroup
}

func New(log *slog.Logger, source Source, store *cache.Typed[[]models.BlogPost], opts Options) *Cache {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.Attempts < 1 {
		opts.Attempts = DefaultAttempts
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	return &Cache{
		log:      log,
		source:   source,
		store:    store,
		key:      opts.Key,
		attempts: opts.Attempts,
		delay:    opts.Delay,
	}
}

// Load returns the cached list right away when there is one and refreshes it in the
// background; the channel yields exactly one Revalidation and is then closed.
// Without a cached list it fetches synchronously and the channel is closed empty.
func (c *Cache) Load(ctx context.Context) ([]models.BlogPost, <-chan Revalidation, error) {
	const op = "postcache.Cache.Load"

	if cached, ok := c.cached(ctx); ok {
		ch := make(chan Revalidation, 1)
		gen := c.generation()

		bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), revalidateTimeout)
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			defer cancel()
			defer close(ch)
			ch <- c.revalidate(bg, gen)
		}()

		return cached, ch, nil
	}

	ch := make(chan Revalidation)
	close(ch)

	gen := c.generation()
	posts, err := c.fetch(ctx)
	if err != nil {
		return nil, ch, fmt.Errorf("%s: %w", op, err)
	}
	c.replaceIfChanged(ctx, posts, gen)

	return c.Snapshot(), ch, nil
}

// Refresh fetches the authoritative list and replaces the cached one if it differs.
func (c *Cache) Refresh(ctx context.Context) (bool, error) {
	gen := c.generation()
	posts, err := c.fetch(ctx)
	if err != nil {
		return false, err
	}
	return c.replaceIfChanged(ctx, posts, gen), nil
}

// Wait blocks until background revalidations finish.
func (c *Cache) Wait() {
	c.wg.Wait()
}

func (c *Cache) Snapshot() []models.BlogPost {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clonePosts(c.posts)
}

// Invalidate drops the list from memory and the shared cache; the next Load fetches it.
func (c *Cache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	c.posts = nil
	c.loaded = false
	c.gen++
	c.mu.Unlock()

	return c.store.Invalidate(ctx, c.key)
}

// Delete removes the post locally, then remotely. A list persisted in the shared
// cache but not yet in memory is hydrated first so the removal reaches both.
func (c *Cache) Delete(ctx context.Context, postID uuid.UUID) error {
	const op = "postcache.Cache.Delete"

	c.cached(ctx)

	c.mu.Lock()
	index := indexOf(c.posts, postID)
	var removed models.BlogPost
	if index >= 0 {
		removed = c.posts[index]
		c.posts = append(c.posts[:index:index], c.posts[index+1:]...)
		c.gen++
	}
	snapshot := clonePosts(c.posts)
	c.mu.Unlock()

	if index >= 0 {
		c.persist(ctx, snapshot)
	}

	if err := c.source.DeletePost(ctx, postID); err != nil {
		if index >= 0 {
			c.rollback(ctx, "delete", func(posts []models.BlogPost) []models.BlogPost {
				if indexOf(posts, postID) >= 0 {
					return posts
				}
				at := index
				if at > len(posts) {
					at = len(posts)
				}
				posts = append(posts, models.BlogPost{})
				copy(posts[at+1:], posts[at:])
				posts[at] = removed
				return posts
			})
		}
		c.reconcile(ctx)
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ToggleStatus flips the post between draft and published, locally first.
func (c *Cache) ToggleStatus(ctx context.Context, postID uuid.UUID) (models.BlogPost, error) {
	const op = "postcache.Cache.ToggleStatus"

	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if !loaded {
		if _, _, err := c.Load(ctx); err != nil {
			return models.BlogPost{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	c.mu.Lock()
	index := indexOf(c.posts, postID)
	if index < 0 {
		c.mu.Unlock()
		return models.BlogPost{}, fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
	}
	previous := c.posts[index].Status
	next := c.posts[index].ToggledStatus()
	c.posts[index].Status = next
	c.gen++
	toggled := c.posts[index]
	snapshot := clonePosts(c.posts)
	c.mu.Unlock()

	c.persist(ctx, snapshot)

	if err := c.source.SetPostStatus(ctx, postID, next); err != nil {
		c.rollback(ctx, "toggle_status", func(posts []models.BlogPost) []models.BlogPost {
			if i := indexOf(posts, postID); i >= 0 {
				posts[i].Status = previous
			}
			return posts
		})
		c.reconcile(ctx)
		return models.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}

	return toggled, nil
}

func (c *Cache) cached(ctx context.Context) ([]models.BlogPost, bool) {
	c.mu.RLock()
	if c.loaded {
		posts := clonePosts(c.posts)
		c.mu.RUnlock()
		return posts, true
	}
	c.mu.RUnlock()

	posts, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		c.log.Warn("failed to read cached posts", slog.String("key", c.key), sl.Err(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	c.mu.Lock()
	if !c.loaded {
		c.posts = posts
		c.loaded = true
	}
	out := clonePosts(c.posts)
	c.mu.Unlock()

	return out, true
}

func (c *Cache) revalidate(ctx context.Context, gen uint64) Revalidation {
	posts, err := c.fetch(ctx)
	if err != nil {
		c.log.Warn("post revalidation failed, keeping cached list", sl.Err(err))
		return Revalidation{Err: err}
	}

	changed := c.replaceIfChanged(ctx, posts, gen)
	return Revalidation{Posts: c.Snapshot(), Changed: changed}
}

func (c *Cache) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

func (c *Cache) fetch(ctx context.Context) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := retry.Do(ctx, c.attempts, c.delay, func() error {
		var err error
		posts, err = c.source.FetchPosts(ctx)
		return err
	})
	if posts == nil && err == nil {
		posts = []models.BlogPost{}
	}
	return posts, err
}

// replaceIfChanged swaps in posts only when their serialized form differs from the
// current list and no local mutation happened since gen was read.
func (c *Cache) replaceIfChanged(ctx context.Context, posts []models.BlogPost, gen uint64) bool {
	next, err := json.Marshal(posts)
	if err != nil {
		c.log.Error("failed to encode posts", sl.Err(err))
		return false
	}

	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		c.log.Debug("discarding post list fetched before a local change")
		return false
	}
	if c.loaded {
		current, err := json.Marshal(c.posts)
		if err == nil && bytes.Equal(current, next) {
			c.mu.Unlock()
			return false
		}
	}
	c.posts = clonePosts(posts)
	c.loaded = true
	snapshot := clonePosts(c.posts)
	c.mu.Unlock()

	c.persist(ctx, snapshot)
	return true
}

func (c *Cache) rollback(ctx context.Context, op string, undo func([]models.BlogPost) []models.BlogPost) {
	metrics.PostCacheRollbacks.WithLabelValues(op).Inc()

	c.mu.Lock()
	c.posts = undo(c.posts)
	c.gen++
	snapshot := clonePosts(c.posts)
	c.mu.Unlock()

	c.persist(ctx, snapshot)
	c.log.Warn("optimistic post change rolled back", slog.String("change", op))
}

// reconcile re-fetches once; the fetched list wins over the rolled back one.
func (c *Cache) reconcile(ctx context.Context) {
	gen := c.generation()
	posts, err := c.source.FetchPosts(ctx)
	if err != nil {
		c.log.Warn("failed to re-fetch posts after rollback", sl.Err(err))
		return
	}
	c.replaceIfChanged(ctx, posts, gen)
}

func (c *Cache) persist(ctx context.Context, posts []models.BlogPost) {
	if err := c.store.Set(ctx, c.key, posts); err != nil {
		c.log.Warn("failed to persist posts cache", slog.String("key", c.key), sl.Err(err))
	}
}

func indexOf(posts []models.BlogPost, id uuid.UUID) int {
	for i := range posts {
		if posts[i].ID == id {
			return i
		}
	}
	return -1
}

func clonePosts(posts []models.BlogPost) []models.BlogPost {
	if posts == nil {
		return nil
	}
	out := make([]models.BlogPost, len(posts))
	copy(out, posts)
	return out
}
