package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"site_cms/internal/middleware"
	httprouters "site_cms/internal/transport/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var slugPattern = regexp.MustCompile(`^[\p{Ll}\p{Lo}\p{N}]+(?:-[\p{Ll}\p{Lo}\p{N}]+)*$`)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Options struct {
	Host          string
	Port          string
	Timeout       time.Duration
	CORSOrigins   []string
	JWTSecret     string
	VerifyTimeout time.Duration
	UploadsDir    string
}

type Server struct {
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	roles   middleware.RoleChecker
	opts    Options
}

func New(log *slog.Logger, opts Options, roles middleware.RoleChecker, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	if opts.Timeout > 0 {
		e.Server.ReadTimeout = opts.Timeout
		e.Server.WriteTimeout = opts.Timeout
	}

	e.Use(echomw.Recover())

	if len(opts.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: opts.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
		}))
	} else {
		e.Use(echomw.CORS())
	}

	e.Use(middleware.PrometheusMetrics)

	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			)

			return nil
		},
	}))

	return &Server{
		log:     log,
		e:       e,
		routers: routers,
		roles:   roles,
		opts:    opts,
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "httpapp.Server.MustRun"

	s.log.Info("starting http server", slog.String("op", op), slog.String("addr", s.addr()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "httpapp.Server.Start"

	if err := s.e.Start(s.addr()); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s: server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	const op = "httpapp.Server.Stop"

	s.log.Info("stopping http server", slog.String("op", op))

	if err := s.e.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s: could not shutdown server gracefully: %w", op, err)
	}

	return nil
}

func (s *Server) addr() string {
	return fmt.Sprintf("%s:%s", s.opts.Host, s.opts.Port)
}

func (s *Server) BuildRouters() {
	r := s.routers

	s.e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	if s.opts.UploadsDir != "" {
		s.e.Static("/uploads", s.opts.UploadsDir)
	}

	api := s.e.Group("/api/v1")
	{
		api.GET("/content/:page", r.GetPageContent)
		api.GET("/content/:page/:section", r.GetContent)
		api.GET("/blog", r.ListPublishedPosts)
		api.GET("/blog/:slug", r.GetPublishedPost)

		functions := api.Group("/functions")
		{
			functions.POST("/translate", r.TranslateText)
			functions.POST("/contact", r.SubmitContact)
			functions.POST("/webhook-analytics/:automation_id", r.RecordWebhook)
			functions.GET("/webhook-analytics/:automation_id", r.WebhookStats)
			functions.POST("/form-analytics/:automation_id", r.RecordForm)
			functions.GET("/form-analytics/:automation_id", r.FormStats)
			functions.GET("/analytics-overview/:automation_id", r.AnalyticsOverview)
		}
	}

	admin := api.Group("/admin", middleware.AdminOnly(s.log, s.opts.JWTSecret, s.roles, s.opts.VerifyTimeout))
	{
		admin.PUT("/content/:page/:section", r.UpdateContent)
		admin.POST("/content/:page/:section/image", r.UploadContentImage)
		admin.GET("/media/:page", r.ListPageMedia)

		admin.GET("/posts", r.ListAdminPosts)
		admin.POST("/posts", r.CreatePost)
		admin.GET("/posts/:id", r.GetPost)
		admin.PUT("/posts/:id", r.UpdatePost)
		admin.DELETE("/posts/cache", r.InvalidatePostCache)
		admin.DELETE("/posts/:id", r.DeletePost)
		admin.POST("/posts/:id/toggle-status", r.TogglePostStatus)

		admin.GET("/posts/:id/translations", r.GetPostTranslations)
		admin.PUT("/posts/:id/translations/:lang", r.UpsertPostTranslation)
		admin.POST("/posts/:id/auto-translate", r.AutoTranslatePost)
		admin.POST("/translate", r.TranslateFields)

		admin.GET("/notifications", r.ListNotifications)
		admin.DELETE("/notifications", r.ClearNotifications)
	}
}
