package postcache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"site_cms/internal/cache"
	"site_cms/internal/domain/models"
	"site_cms/internal/lib/logger/handlers/slogdiscard"
	"site_cms/internal/storage/localcache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu        sync.Mutex
	posts     []models.BlogPost
	fetchErr  error
	deleteErr error
	statusErr error
	fetches   int
	gate      chan struct{}
	// lagging makes writes invisible to later fetches, like a replica behind the primary.
	lagging bool
}

func (f *fakeSource) FetchPosts(ctx context.Context) ([]models.BlogPost, error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return clonePosts(f.posts), nil
}

func (f *fakeSource) DeletePost(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if f.lagging {
		return nil
	}
	if i := indexOf(f.posts, id); i >= 0 {
		f.posts = append(f.posts[:i], f.posts[i+1:]...)
	}
	return nil
}

func (f *fakeSource) SetPostStatus(_ context.Context, id uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return f.statusErr
	}
	if f.lagging {
		return nil
	}
	if i := indexOf(f.posts, id); i >= 0 {
		f.posts[i].Status = status
	}
	return nil
}

func (f *fakeSource) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func samplePosts() []models.BlogPost {
	return []models.BlogPost{
		{ID: uuid.New(), Title: "First", Slug: "first", Status: models.PostStatusPublished},
		{ID: uuid.New(), Title: "Second", Slug: "second", Status: models.PostStatusDraft},
		{ID: uuid.New(), Title: "Third", Slug: "third", Status: models.PostStatusPublished},
	}
}

func newCache(t *testing.T, src *fakeSource) (*Cache, *cache.Typed[[]models.BlogPost]) {
	t.Helper()
	store := cache.NewTyped[[]models.BlogPost](localcache.New(time.Hour, time.Hour), "", 0)
	c := New(slogdiscard.NewDiscardLogger(), src, store, Options{Attempts: 3, Delay: time.Millisecond})
	return c, store
}

func TestCache_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("cached list returned before slow fetch completes", func(t *testing.T) {
		posts := samplePosts()
		src := &fakeSource{posts: posts, gate: make(chan struct{})}
		c, store := newCache(t, src)
		require.NoError(t, store.Set(ctx, DefaultKey, posts[:2]))

		got, ch, err := c.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, 0, src.fetchCount())

		close(src.gate)
		rev, ok := <-ch
		require.True(t, ok)
		require.NoError(t, rev.Err)
		assert.True(t, rev.Changed)
		assert.Len(t, rev.Posts, 3)
		assert.Len(t, c.Snapshot(), 3)

		_, open := <-ch
		assert.False(t, open)

		persisted, ok, err := store.Get(ctx, DefaultKey)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Len(t, persisted, 3)
	})

	t.Run("identical fetch leaves list unchanged", func(t *testing.T) {
		posts := samplePosts()
		src := &fakeSource{posts: posts}
		c, store := newCache(t, src)
		require.NoError(t, store.Set(ctx, DefaultKey, posts))

		_, ch, err := c.Load(ctx)
		require.NoError(t, err)

		rev := <-ch
		require.NoError(t, rev.Err)
		assert.False(t, rev.Changed)
	})

	t.Run("failed revalidation keeps cached list", func(t *testing.T) {
		posts := samplePosts()
		src := &fakeSource{fetchErr: errors.New("offline")}
		c, store := newCache(t, src)
		require.NoError(t, store.Set(ctx, DefaultKey, posts))

		got, ch, err := c.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 3)

		rev := <-ch
		require.Error(t, rev.Err)
		assert.Len(t, c.Snapshot(), 3)
		assert.Equal(t, 3, src.fetchCount())
	})

	t.Run("no cache fetches synchronously", func(t *testing.T) {
		src := &fakeSource{posts: samplePosts()}
		c, _ := newCache(t, src)

		got, ch, err := c.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 3)

		_, open := <-ch
		assert.False(t, open)
	})

	t.Run("no cache and fetch failing returns error after retries", func(t *testing.T) {
		src := &fakeSource{fetchErr: errors.New("offline")}
		c, _ := newCache(t, src)

		got, _, err := c.Load(ctx)
		require.Error(t, err)
		assert.Nil(t, got)
		assert.Equal(t, 3, src.fetchCount())
	})

	t.Run("revalidation survives request cancellation", func(t *testing.T) {
		posts := samplePosts()
		src := &fakeSource{posts: posts, gate: make(chan struct{})}
		c, store := newCache(t, src)
		require.NoError(t, store.Set(ctx, DefaultKey, posts[:1]))

		reqCtx, cancel := context.WithCancel(ctx)
		_, ch, err := c.Load(reqCtx)
		require.NoError(t, err)
		cancel()

		close(src.gate)
		rev := <-ch
		require.NoError(t, rev.Err)
		c.Wait()
		assert.Len(t, c.Snapshot(), 3)
	})
}

func TestCache_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removed immediately", func(t *testing.T) {
		posts := samplePosts()
		src := &fakeSource{posts: clonePosts(posts)}
		c, _ := newCache(t, src)
		_, _, err := c.Load(ctx)
		require.NoError(t, err)

		require.NoError(t, c.Delete(ctx, posts[1].ID))

		snap := c.Snapshot()
		require.Len(t, snap, 2)
		assert.Equal(t, -1, indexOf(snap, posts[1].ID))
	})

	t.Run("remote failure restores post at its position", func(t *testing.T) {
		posts := samplePosts()
		src := &fakeSource{posts: clonePosts(posts), deleteErr: errors.New("denied")}
		c, _ := newCache(t, src)
		_, _, err := c.Load(ctx)
		require.NoError(t, err)

		err = c.Delete(ctx, posts[1].ID)
		require.Error(t, err)

		snap := c.Snapshot()
		require.Len(t, snap, 3)
		assert.Equal(t, posts[1].ID, snap[1].ID)
	})

	t.Run("list only in shared cache", func(t *testing.T) {
		posts := samplePosts()
		src := &fakeSource{posts: clonePosts(posts)}
		c, store := newCache(t, src)
		require.NoError(t, store.Set(ctx, DefaultKey, posts))

		require.NoError(t, c.Delete(ctx, posts[0].ID))

		persisted, ok, err := store.Get(ctx, DefaultKey)
		require.NoError(t, err)
		require.True(t, ok)
		require.Len(t, persisted, 2)
		assert.Equal(t, -1, indexOf(persisted, posts[0].ID))

		got, _, err := c.Load(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, -1, indexOf(got, posts[0].ID))
		c.Wait()
	})

	t.Run("revalidation begun before delete is discarded", func(t *testing.T) {
		posts := samplePosts()
		src := &fakeSource{posts: clonePosts(posts), gate: make(chan struct{}), lagging: true}
		c, store := newCache(t, src)
		require.NoError(t, store.Set(ctx, DefaultKey, posts))

		_, ch, err := c.Load(ctx)
		require.NoError(t, err)

		require.NoError(t, c.Delete(ctx, posts[2].ID))
		close(src.gate)

		rev := <-ch
		require.NoError(t, rev.Err)
		assert.False(t, rev.Changed)
		assert.Len(t, rev.Posts, 2)

		assert.Equal(t, -1, indexOf(c.Snapshot(), posts[2].ID))
		persisted, _, err := store.Get(ctx, DefaultKey)
		require.NoError(t, err)
		assert.Len(t, persisted, 2)
	})
}

func TestCache_ToggleStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("flips status", func(t *testing.T) {
		posts := samplePosts()
		src := &fakeSource{posts: clonePosts(posts)}
		c, _ := newCache(t, src)
		_, _, err := c.Load(ctx)
		require.NoError(t, err)

		got, err := c.ToggleStatus(ctx, posts[0].ID)
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusDraft, got.Status)
		assert.Equal(t, models.PostStatusDraft, c.Snapshot()[0].Status)
	})

	t.Run("remote failure reverts status", func(t *testing.T) {
		posts := samplePosts()
		src := &fakeSource{posts: clonePosts(posts), statusErr: errors.New("denied")}
		c, _ := newCache(t, src)
		_, _, err := c.Load(ctx)
		require.NoError(t, err)

		_, err = c.ToggleStatus(ctx, posts[1].ID)
		require.Error(t, err)
		assert.Equal(t, models.PostStatusDraft, c.Snapshot()[1].Status)
	})

	t.Run("unknown post", func(t *testing.T) {
		src := &fakeSource{posts: samplePosts()}
		c, _ := newCache(t, src)
		_, _, err := c.Load(ctx)
		require.NoError(t, err)

		_, err = c.ToggleStatus(ctx, uuid.New())
		require.Error(t, err)
	})
}

func TestCache_ToggleStatusDuringRevalidation(t *testing.T) {
	ctx := context.Background()
	posts := samplePosts()
	src := &fakeSource{posts: clonePosts(posts), gate: make(chan struct{}), lagging: true}
	c, store := newCache(t, src)
	require.NoError(t, store.Set(ctx, DefaultKey, posts))

	_, ch, err := c.Load(ctx)
	require.NoError(t, err)

	got, err := c.ToggleStatus(ctx, posts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusDraft, got.Status)

	close(src.gate)
	<-ch

	assert.Equal(t, models.PostStatusDraft, c.Snapshot()[0].Status)
	persisted, _, err := store.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusDraft, persisted[0].Status)
}

func TestCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{posts: samplePosts()}
	c, store := newCache(t, src)
	_, _, err := c.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Invalidate(ctx))
	assert.Nil(t, c.Snapshot())

	_, ok, err := store.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_ToggleStatusLoadsFirst(t *testing.T) {
	ctx := context.Background()
	posts := samplePosts()
	src := &fakeSource{posts: clonePosts(posts)}
	c, _ := newCache(t, src)

	got, err := c.ToggleStatus(ctx, posts[1].ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusPublished, got.Status)
}
