package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"media-access/config"
	"media-access/constant"
	apiHandler "media-access/handler"
	"media-access/middleware"
	"media-access/pkg/rabbitmq"
	"media-access/pkg/signer"
	"media-access/repository"
	"media-access/service"
)

func RunHttp(cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(setupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Bool("isProduction", cfg.App.Environment == constant.EnvironmentProduction.String()).Send()
	if cfg.App.Environment == constant.EnvironmentProduction.String() {
		gin.SetMode(gin.ReleaseMode)
	}

	var publisher rabbitmq.Publisher
	conn, err := config.NewRabbitMQConn(ctx, cfg.Queue)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("NewRabbitMQConn")
	} else {
		publisher, err = rabbitmq.NewPublisher(conn, cfg.Queue)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("NewPublisher")
		}
	}

	repo := repository.NewRepo(cfg.DB)
	tokenSigner := signer.New(cfg.Signing.Key, cfg.Signing.TTL)
	auditor := service.NewAuditor(repo)
	pacingService := service.NewPacing(repo, cfg.Pacing.Location)
	accessService := service.NewAccess(repo, pacingService, tokenSigner, auditor)
	progressService := service.NewProgress(repo, pacingService, auditor)
	quizService := service.NewQuiz(repo)
	catalogService := service.NewCatalog(repo, cfg, publisher, accessService, auditor)

	h := apiHandler.New(cfg, catalogService, accessService, progressService, quizService, tokenSigner, auditor)

	r := gin.Default()
	r.Use(requestMeta())
	addHealth(r)
	addRoutes(r, h, repo)

	handler := http.Server{
		Handler:           r,
		Addr:              fmt.Sprintf(":%s", cfg.Server.HttpPort),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("start http server")
		if err := handler.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
		}
	}()

	<-ctx.Done()
	zerolog.Ctx(ctx).Info().Msg("shutting down server")
	if err := handler.Shutdown(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
	}

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("server shutdown")
}

func addRoutes(r *gin.Engine, h *apiHandler.Handler, repo repository.Store) {
	// The stream endpoint authenticates with the token itself, not a session.
	r.GET("/api/videos/:id/stream", h.StreamVideo)

	api := r.Group("/api", middleware.Principal(repo))
	{
		api.GET("/courses", h.ListCourses)
		api.GET("/courses/:id", h.GetCourse)
		api.GET("/videos", h.ListVideos)
		api.GET("/videos/:id", h.GetVideo)
		api.POST("/videos/:id/progress", h.UpdateProgress)
		api.POST("/videos/:id/quiz", h.SubmitQuiz)
	}

	admin := api.Group("/admin", middleware.AdminOnly())
	{
		admin.POST("/videos", h.CreateVideo)
	}
}

func addHealth(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
}

// requestMeta copies transport details into the request context for audit
// records.
func requestMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := service.WithRequestMeta(c.Request.Context(), service.RequestMeta{
			ClientIP:  c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func setupLogger(cfg *config.Config) context.Context {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.App.Environment == constant.EnvironmentDevelop.String() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Log to standard output
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	return ctx
}
