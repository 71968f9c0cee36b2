package app

import (
	"context"
	"log/slog"
	"time"

	httpapp "site_cms/internal/app/http"
	"site_cms/internal/cache"
	"site_cms/internal/config"
	"site_cms/internal/domain/models"
	"site_cms/internal/events"
	"site_cms/internal/lib/logger/sl"
	"site_cms/internal/mailer"
	"site_cms/internal/repository"
	analyticssvc "site_cms/internal/services/analytics_service"
	blogsvc "site_cms/internal/services/blog_service"
	blogtranslationsvc "site_cms/internal/services/blog_translation_service"
	contactsvc "site_cms/internal/services/contact_service"
	contentsvc "site_cms/internal/services/content_service"
	"site_cms/internal/services/editor"
	mediasvc "site_cms/internal/services/media_service"
	notifysvc "site_cms/internal/services/notify_service"
	"site_cms/internal/services/postcache"
	translationsvc "site_cms/internal/services/translation_service"
	"site_cms/internal/storage/filestorage"
	"site_cms/internal/storage/localcache"
	redisstore "site_cms/internal/storage/redis"
	"site_cms/internal/translate"
	httprouters "site_cms/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server

	log            *slog.Logger
	repo           *repository.Repository
	redis          *redisstore.Client
	autoTranslator *contentsvc.AutoTranslator
	posts          *postcache.Cache
	unsubscribe    func()
}

func New(log *slog.Logger, cfg *config.Config) *App {
	ctx := context.Background()

	repo, err := repository.NewRepository(ctx, cfg.DSN)
	if err != nil {
		panic(err)
	}

	local := localcache.New(cfg.Cache.ContentTTL, 10*time.Minute)

	var shared cache.Store = local
	redisClient := redisstore.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
	if err := redisClient.HealthCheck(ctx); err != nil {
		log.Warn("redis unavailable, shared cache kept in process", sl.Err(err))
		_ = redisClient.Close()
		redisClient = nil
	} else {
		shared = redisstore.NewStore(redisClient)
	}

	provider, err := translate.NewProvider(translate.Config{
		Provider:    cfg.Translation.Provider,
		FunctionURL: cfg.Translation.FunctionURL,
		APIKey:      cfg.Translation.APIKey,
		BaseURL:     cfg.Translation.BaseURL,
		Model:       cfg.Translation.Model,
		RateLimit:   cfg.Translation.RateLimit,
		Timeout:     cfg.Translation.Timeout,
	})
	if err != nil {
		panic(err)
	}
	log.Info("translation backend ready", slog.String("provider", provider.Name()))

	source := cfg.Translation.SourceLanguage
	targets := cfg.Translation.TargetLanguages

	bus := events.NewBus()

	notifier := notifysvc.NewNotifyService(
		log,
		cache.NewTyped[[]models.Notification](shared, "notifications", cfg.Cache.NotificationRetention),
		cfg.Cache.NotificationRetention,
	)
	if err := notifier.Restore(ctx); err != nil {
		log.Warn("failed to restore notifications", sl.Err(err))
	}

	contentService := contentsvc.NewContentService(
		log,
		repo.Content,
		cache.NewTyped[string](local, "content", cfg.Cache.ContentTTL),
		contentsvc.SiteDefaults,
		source,
	)

	var (
		autoTranslator *contentsvc.AutoTranslator
		unsubscribe    = func() {}
	)
	if cfg.Translation.AutoContent {
		autoTranslator = contentsvc.NewAutoTranslator(log, provider, contentService, source, targets, cfg.Translation.Timeout)
		unsubscribe = autoTranslator.Attach(bus)
	}

	editors := editor.NewFactory(log, contentService, bus, notifier, source, editor.RevertOnFailure)

	translationService := translationsvc.NewTranslationService(log, provider)
	blogTranslations := blogtranslationsvc.NewBlogTranslationService(log, repo.Blog, repo.Translation, translationService, source, targets)
	blogService := blogsvc.NewBlogService(log, repo.Blog, repo.Translation, source)

	posts := postcache.New(
		log,
		blogService,
		cache.NewTyped[[]models.BlogPost](shared, "", cfg.Cache.PostsTTL),
		postcache.Options{
			Key:      cfg.Cache.PostsKey,
			Attempts: cfg.Cache.FetchAttempts,
			Delay:    cfg.Cache.FetchDelay,
		},
	)

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL, cfg.FileStorage.MaxSize)
	if err != nil {
		panic(err)
	}

	routers := httprouters.NewRouter(log, httprouters.Services{
		Content:          contentService,
		Editor:           editors,
		Blog:             blogService,
		Posts:            posts,
		BlogTranslations: blogTranslations,
		Translation:      translationService,
		Translator:       provider,
		Notifications:    notifier,
		Contact:          contactsvc.NewContactService(log, repo.Message, mailer.New(cfg.Mail)),
		Analytics:        analyticssvc.NewAnalyticsService(log, repo.Analytics, cfg.Analytics.DefaultDays),
		Media:            mediasvc.NewMediaService(log, repo.Media, fileStorage, contentService, cfg.FileStorage.MaxSize),
	})

	server := httpapp.New(log, httpapp.Options{
		Host:          cfg.HTTP.Host,
		Port:          cfg.HTTP.Port,
		Timeout:       cfg.HTTP.Timeout,
		CORSOrigins:   cfg.HTTP.CORSOrigins,
		JWTSecret:     cfg.Auth.JWTSecret,
		VerifyTimeout: cfg.Auth.VerifyTimeout,
		UploadsDir:    cfg.FileStorage.BaseDir,
	}, repo.Role, routers)
	server.BuildRouters()

	return &App{
		HTTPServer:     server,
		log:            log,
		repo:           repo,
		redis:          redisClient,
		autoTranslator: autoTranslator,
		posts:          posts,
		unsubscribe:    unsubscribe,
	}
}

// Stop shuts the server down, lets background work finish and closes connections.
func (a *App) Stop(ctx context.Context) {
	if err := a.HTTPServer.Stop(ctx); err != nil {
		a.log.Error("failed to stop http server", sl.Err(err))
	}

	a.unsubscribe()
	if a.autoTranslator != nil {
		a.autoTranslator.Wait()
	}
	a.posts.Wait()

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("failed to close redis", sl.Err(err))
		}
	}
	a.repo.Close()
}
