package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"site_cms/internal/domain/models"
	"site_cms/internal/repository"
	"site_cms/internal/storage"
	"site_cms/internal/storage/migrations"

	"github.com/brianvoe/gofakeit"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testCtx = context.Background()

func setupTestDB(t *testing.T) *pgxpool.Pool {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf(
		"postgres://test:test@%s:%s/testdb?sslmode=disable",
		host, port.Port(),
	)

	require.NoError(t, migrations.Up(connStr, ""))

	pool, err := pgxpool.Connect(ctx, connStr)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	})

	return pool
}

func newPost() models.BlogPost {
	return models.BlogPost{
		Title:    gofakeit.Sentence(4),
		Slug:     uuid.NewString(),
		Excerpt:  gofakeit.Sentence(10),
		Content:  gofakeit.Paragraph(2, 3, 20, " "),
		Category: "news",
		Tags:     []string{"go", "cms"},
		ReadTime: "1 min read",
		Author:   gofakeit.Name(),
		Status:   models.PostStatusDraft,
	}
}

func TestRepositories(t *testing.T) {
	pool := setupTestDB(t)
	repo := repository.NewFromPool(pool)

	t.Run("content round trip and upsert", func(t *testing.T) {
		key := models.ContentKey{Page: "home", Section: "hero_title", Language: "en"}

		_, err := repo.Content.GetContent(testCtx, key)
		assert.ErrorIs(t, err, storage.ErrContentNotFound)

		require.NoError(t, repo.Content.UpsertContent(testCtx, models.ContentBlock{
			Page: key.Page, Section: key.Section, Language: key.Language, Content: "Welcome",
		}))
		require.NoError(t, repo.Content.UpsertContent(testCtx, models.ContentBlock{
			Page: key.Page, Section: key.Section, Language: key.Language, Content: "<b>Hello</b> & welcome",
		}))

		block, err := repo.Content.GetContent(testCtx, key)
		require.NoError(t, err)
		assert.Equal(t, "<b>Hello</b> & welcome", block.Content)

		blocks, err := repo.Content.ListPageContent(testCtx, "home", "en")
		require.NoError(t, err)
		assert.Len(t, blocks, 1)
	})

	t.Run("blog post lifecycle", func(t *testing.T) {
		post := newPost()

		id, err := repo.Blog.SaveBlogPost(testCtx, post)
		require.NoError(t, err)

		_, err = repo.Blog.SaveBlogPost(testCtx, post)
		assert.ErrorIs(t, err, storage.ErrPostExists)

		got, err := repo.Blog.GetBlogPostBySlug(testCtx, post.Slug)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, []string{"go", "cms"}, got.Tags)

		require.NoError(t, repo.Blog.UpdateBlogPostFields(testCtx, id, map[string]interface{}{
			"status": models.PostStatusPublished,
		}))

		published, total, err := repo.Blog.GetBlogPosts(testCtx, models.PostStatusPublished, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, id, published[0].ID)

		err = repo.Blog.UpdateBlogPostFields(testCtx, id, map[string]interface{}{"password": "x"})
		assert.Error(t, err)

		err = repo.Blog.DeleteBlogPost(testCtx, uuid.New())
		assert.ErrorIs(t, err, storage.ErrPostNotFound)
	})

	t.Run("translation upsert keeps one row per language", func(t *testing.T) {
		id, err := repo.Blog.SaveBlogPost(testCtx, newPost())
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				assert.NoError(t, repo.Translation.UpsertTranslation(testCtx, models.BlogTranslation{
					BlogPostID: id,
					Language:   "fr",
					Title:      fmt.Sprintf("Titre %d", i),
				}))
			}(i)
		}
		wg.Wait()

		require.NoError(t, repo.Translation.UpsertTranslation(testCtx, models.BlogTranslation{
			BlogPostID: id, Language: "es", Title: "Título",
		}))

		translations, err := repo.Translation.ListTranslations(testCtx, id)
		require.NoError(t, err)
		assert.Len(t, translations, 2)

		require.NoError(t, repo.Translation.UpsertTranslation(testCtx, models.BlogTranslation{
			BlogPostID: id, Language: "fr", Title: "Final",
		}))
		fr, err := repo.Translation.GetTranslation(testCtx, id, "fr")
		require.NoError(t, err)
		assert.Equal(t, "Final", fr.Title)
	})

	t.Run("deleting a post removes its translations", func(t *testing.T) {
		id, err := repo.Blog.SaveBlogPost(testCtx, newPost())
		require.NoError(t, err)

		require.NoError(t, repo.Translation.UpsertTranslation(testCtx, models.BlogTranslation{
			BlogPostID: id, Language: "fr", Title: "Bonjour",
		}))

		require.NoError(t, repo.Blog.DeleteBlogPost(testCtx, id))

		_, err = repo.Translation.GetTranslation(testCtx, id, "fr")
		assert.ErrorIs(t, err, storage.ErrTranslationNotFound)
	})

	t.Run("admin role lookup", func(t *testing.T) {
		roles := repository.NewRoleRepository(pool)
		userID := uuid.New()

		isAdmin, err := roles.IsAdmin(testCtx, userID)
		require.NoError(t, err)
		assert.False(t, isAdmin)

		require.NoError(t, roles.GrantRole(testCtx, userID, repository.RoleAdmin))
		require.NoError(t, roles.GrantRole(testCtx, userID, repository.RoleAdmin))

		isAdmin, err = roles.IsAdmin(testCtx, userID)
		require.NoError(t, err)
		assert.True(t, isAdmin)
	})

	t.Run("analytics logs filtered by automation and window", func(t *testing.T) {
		automationID := uuid.New()
		now := time.Now().UTC()

		_, err := repo.Analytics.SaveWebhookLog(testCtx, models.WebhookLog{
			ClientAutomationID: automationID, Status: models.WebhookStatusSuccess, StatusCode: 200, ResponseTimeMs: 120,
			CreatedAt: now.Add(-48 * time.Hour),
		})
		require.NoError(t, err)
		_, err = repo.Analytics.SaveWebhookLog(testCtx, models.WebhookLog{
			ClientAutomationID: automationID, Status: models.WebhookStatusError, StatusCode: 500, ErrorMessage: "boom",
			CreatedAt: now.Add(-40 * 24 * time.Hour),
		})
		require.NoError(t, err)
		_, err = repo.Analytics.SaveWebhookLog(testCtx, models.WebhookLog{
			ClientAutomationID: uuid.New(), Status: models.WebhookStatusSuccess,
		})
		require.NoError(t, err)

		logs, err := repo.Analytics.ListWebhookLogs(testCtx, automationID, now.Add(-30*24*time.Hour))
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, 200, logs[0].StatusCode)

		_, err = repo.Analytics.SaveFormSubmission(testCtx, models.FormSubmission{
			ClientAutomationID: automationID,
			FormData:           map[string]any{"email": "a@b.c"},
			SourceURL:          "https://example.com/contact",
		})
		require.NoError(t, err)

		subs, err := repo.Analytics.ListFormSubmissions(testCtx, automationID, now.Add(-time.Hour))
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assert.Equal(t, "a@b.c", subs[0].FormData["email"])
	})

	t.Run("messages and media", func(t *testing.T) {
		id, err := repo.Message.SaveMessage(testCtx, models.ContactMessage{
			Name: gofakeit.Name(), Email: gofakeit.Email(), Subject: "Hi", Message: "Hello there",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)

		media := &models.Media{
			ID: uuid.New(), UploaderID: uuid.New(), Page: "about", Section: "team_photo",
			OriginalFilename: "team.png", StoragePath: "about/team.png", URL: "http://localhost/uploads/about/team.png",
			FileSize: 1024, MimeType: "image/png",
		}
		require.NoError(t, repo.Media.CreateMedia(testCtx, media))

		list, err := repo.Media.ListPageMedia(testCtx, "about")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, media.URL, list[0].URL)
	})
}
