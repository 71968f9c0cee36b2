package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"site_cms/internal/cache"
	"site_cms/internal/domain/models"
	"site_cms/internal/events"
	"site_cms/internal/lib/logger/handlers/slogdiscard"
	"site_cms/internal/storage"
	"site_cms/internal/storage/localcache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) GetContent(ctx context.Context, key models.ContentKey) (models.ContentBlock, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(models.ContentBlock), args.Error(1)
}

func (m *MockContentRepository) UpsertContent(ctx context.Context, block models.ContentBlock) error {
	args := m.Called(ctx, block)
	return args.Error(0)
}

func (m *MockContentRepository) ListPageContent(ctx context.Context, page, language string) ([]models.ContentBlock, error) {
	args := m.Called(ctx, page, language)
	return args.Get(0).([]models.ContentBlock), args.Error(1)
}

// memoryContentRepository behaves like the page_content table.
type memoryContentRepository struct {
	mu      sync.Mutex
	rows    map[models.ContentKey]models.ContentBlock
	upserts int
	fail    error
}

func newMemoryContentRepository() *memoryContentRepository {
	return &memoryContentRepository{rows: map[models.ContentKey]models.ContentBlock{}}
}

func (r *memoryContentRepository) GetContent(_ context.Context, key models.ContentKey) (models.ContentBlock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return models.ContentBlock{}, r.fail
	}
	b, ok := r.rows[key]
	if !ok {
		return models.ContentBlock{}, storage.ErrContentNotFound
	}
	return b, nil
}

func (r *memoryContentRepository) UpsertContent(_ context.Context, block models.ContentBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.upserts++
	r.rows[block.Key()] = block
	return nil
}

func (r *memoryContentRepository) ListPageContent(_ context.Context, page, language string) ([]models.ContentBlock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}
	var out []models.ContentBlock
	for k, b := range r.rows {
		if k.Page == page && k.Language == language {
			out = append(out, b)
		}
	}
	return out, nil
}

var testDefaults = Defaults{
	"en": {"home": {"hero": "Default headline"}},
	"fr": {"home": {"hero": "Titre par défaut"}},
}

func newTestContentService(repo *memoryContentRepository) (*ContentService, *cache.Typed[string]) {
	local := cache.NewTyped[string](localcache.New(time.Hour, time.Hour), "content", time.Hour)
	return NewContentService(slogdiscard.NewDiscardLogger(), repo, local, testDefaults, "en"), local
}

func TestContentService_GetSeedsDefaultOnce(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryContentRepository()
	svc, _ := newTestContentService(repo)

	assert.Equal(t, "Default headline", svc.Get(ctx, "home", "hero", "en"))
	assert.Equal(t, 1, repo.upserts)

	assert.Equal(t, "Default headline", svc.Get(ctx, "home", "hero", "en"))
	assert.Equal(t, 1, repo.upserts)

	stored := repo.rows[models.ContentKey{Page: "home", Section: "hero", Language: "en"}]
	assert.Equal(t, "Default headline", stored.Content)
}

func TestContentService_GetDefaultsPerLanguage(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestContentService(newMemoryContentRepository())

	assert.Equal(t, "Titre par défaut", svc.Get(ctx, "home", "hero", "fr"))
	assert.Equal(t, "Default headline", svc.Get(ctx, "home", "hero", "es"))
	assert.Equal(t, "", svc.Get(ctx, "home", "unknown", "en"))
	assert.Equal(t, "Default headline", svc.Get(ctx, "home", "hero", ""))
}

func TestContentService_SetThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestContentService(newMemoryContentRepository())

	contents := []string{
		"New headline",
		"<p>Some <strong>markup</strong> &amp; entities</p>",
		"",
		"Émoji 🚀 and ünïcode",
	}

	for _, c := range contents {
		require.NoError(t, svc.Set(ctx, "home", "hero", c, "en"))
		assert.Equal(t, c, svc.Get(ctx, "home", "hero", "en"))
	}
}

func TestContentService_GetFallsBackToLocalCache(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryContentRepository()
	svc, _ := newTestContentService(repo)

	require.NoError(t, svc.Set(ctx, "home", "hero", "Cached headline", "en"))

	repo.fail = errors.New("connection refused")

	assert.Equal(t, "Cached headline", svc.Get(ctx, "home", "hero", "en"))
	assert.Equal(t, "Titre par défaut", svc.Get(ctx, "home", "hero", "fr"))
}

func TestContentService_RemoteErrorDoesNotSeed(t *testing.T) {
	ctx := context.Background()
	repo := new(MockContentRepository)
	local := cache.NewTyped[string](localcache.New(time.Hour, time.Hour), "content", time.Hour)
	svc := NewContentService(slogdiscard.NewDiscardLogger(), repo, local, testDefaults, "en")

	key := models.ContentKey{Page: "home", Section: "hero", Language: "en"}
	repo.On("GetContent", ctx, key).Return(models.ContentBlock{}, errors.New("timeout"))

	assert.Equal(t, "Default headline", svc.Get(ctx, "home", "hero", "en"))
	repo.AssertNotCalled(t, "UpsertContent", mock.Anything, mock.Anything)
}

func TestContentService_SetRemoteFailureKeepsLocal(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryContentRepository()
	svc, local := newTestContentService(repo)

	repo.fail = errors.New("connection refused")

	err := svc.Set(ctx, "home", "hero", "Offline edit", "en")
	assert.ErrorIs(t, err, ErrStoredLocally)

	cached, ok, err := local.Get(ctx, "home:hero:en")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Offline edit", cached)
}

func TestContentService_LocalEditSurvivesRemoteRecovery(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryContentRepository()
	svc, local := newTestContentService(repo)

	repo.fail = errors.New("connection refused")
	require.ErrorIs(t, svc.Set(ctx, "home", "hero", "New headline", "en"), ErrStoredLocally)
	assert.Equal(t, "New headline", svc.Get(ctx, "home", "hero", "en"))

	repo.fail = nil
	assert.Equal(t, "New headline", svc.Get(ctx, "home", "hero", "en"))

	cached, ok, err := local.Get(ctx, "home:hero:en")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "New headline", cached)

	stored := repo.rows[models.ContentKey{Page: "home", Section: "hero", Language: "en"}]
	assert.Equal(t, "New headline", stored.Content)
	assert.Equal(t, 1, repo.upserts)
}

func TestContentService_GetPage(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryContentRepository()
	svc, _ := newTestContentService(repo)

	assert.Equal(t, map[string]string{"hero": "Titre par défaut"}, svc.GetPage(ctx, "home", "fr"))

	require.NoError(t, svc.Set(ctx, "home", "hero", "Stored headline", "en"))
	require.NoError(t, svc.Set(ctx, "home", "banner", "Spring sale", "en"))

	assert.Equal(t, map[string]string{
		"hero":   "Stored headline",
		"banner": "Spring sale",
	}, svc.GetPage(ctx, "home", ""))

	repo.fail = errors.New("connection refused")
	assert.Equal(t, map[string]string{"hero": "Stored headline"}, svc.GetPage(ctx, "home", "en"))
	assert.Empty(t, svc.GetPage(ctx, "pricing", "en"))
}

type fakeTranslator struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (f *fakeTranslator) TranslateText(_ context.Context, text, lang string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, lang)
	if f.fail[lang] {
		return "", errors.New("backend unavailable")
	}
	return "[" + lang + "] " + text, nil
}

func TestAutoTranslator_TranslatesSourceLanguageEdits(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryContentRepository()
	svc, _ := newTestContentService(repo)
	translator := &fakeTranslator{fail: map[string]bool{"es": true}}

	bus := events.NewBus()
	auto := NewAutoTranslator(slogdiscard.NewDiscardLogger(), translator, svc, "en", []string{"fr", "es"}, time.Second)
	unsubscribe := auto.Attach(bus)
	defer unsubscribe()

	bus.Publish(events.ContentChanged{Page: "home", Section: "hero", Language: "en", Content: "Hello"})
	bus.Publish(events.ContentChanged{Page: "home", Section: "hero", Language: "fr", Content: "Bonjour"})
	auto.Wait()

	assert.Equal(t, []string{"fr", "es"}, translator.calls)
	assert.Equal(t, "[fr] Hello", svc.Get(ctx, "home", "hero", "fr"))

	_, ok := repo.rows[models.ContentKey{Page: "home", Section: "hero", Language: "es"}]
	assert.False(t, ok)
}
