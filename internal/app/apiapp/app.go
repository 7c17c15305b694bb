package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Sankalptw/incu-meta/internal/config"
	s3infra "github.com/Sankalptw/incu-meta/internal/infra/s3"
	pgrepo "github.com/Sankalptw/incu-meta/internal/repo/postgres"
	redrepo "github.com/Sankalptw/incu-meta/internal/repo/redis"
	authsvc "github.com/Sankalptw/incu-meta/internal/services/auth"
	chatbotsvc "github.com/Sankalptw/incu-meta/internal/services/chatbot"
	dashboardsvc "github.com/Sankalptw/incu-meta/internal/services/dashboard"
	eventsvc "github.com/Sankalptw/incu-meta/internal/services/events"
	matchingsvc "github.com/Sankalptw/incu-meta/internal/services/matching"
	mediasvc "github.com/Sankalptw/incu-meta/internal/services/media"
	meetingsvc "github.com/Sankalptw/incu-meta/internal/services/meetings"
	ratesvc "github.com/Sankalptw/incu-meta/internal/services/rate"
	startupsvc "github.com/Sankalptw/incu-meta/internal/services/startups"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	rateRepo := redrepo.NewRateRepo(redisClient)
	chatRepo := redrepo.NewChatRepo(redisClient, cfg.Chatbot.HistoryLimit, cfg.Chatbot.HistoryTTL)

	accountRepo := pgrepo.NewAccountRepo(pool)
	startupRepo := pgrepo.NewStartupRepo(pool)
	matchingRepo := pgrepo.NewMatchingRepo(pool)
	eventRepo := pgrepo.NewEventRepo(pool)
	announcementRepo := pgrepo.NewAnnouncementRepo(pool)
	meetingRepo := pgrepo.NewMeetingRepo(pool)
	statsRepo := pgrepo.NewStatsRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(jwtManager, startupRepo, accountRepo, cfg.Auth.BcryptCost)
	startupService := startupsvc.NewService(startupRepo)
	matchingService := matchingsvc.NewService(matchingsvc.Dependencies{
		Tx:       pgrepo.NewTxRunner(pool),
		Requests: matchingRepo,
		Startups: startupRepo,
		Accounts: accountRepo,
	})
	chatLimiter := ratesvc.NewLimiter(rateRepo, "rate:legal-chat", cfg.Chatbot.MessagesPerMinute, time.Minute)
	chatbotService := chatbotsvc.NewService(chatRepo, chatLimiter)
	dashboardService := dashboardsvc.NewService(dashboardsvc.Dependencies{
		Stats:         statsRepo,
		Accounts:      accountRepo,
		Events:        eventRepo,
		Announcements: announcementRepo,
		Meetings:      meetingRepo,
		Requests:      matchingRepo,
	})
	eventsService := eventsvc.NewService(eventRepo, announcementRepo)
	meetingsService := meetingsvc.NewService(meetingRepo, startupRepo)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}

	mediaStorage := mediasvc.NewS3Storage(s3Client, cfg.S3.Bucket)
	mediaService := mediasvc.NewService(startupRepo, mediaStorage, cfg.Uploads.MaxFileBytes, cfg.Uploads.PresignTTL)

	RegisterRoutes(r, Dependencies{
		AuthService:      authService,
		JWTManager:       jwtManager,
		StartupService:   startupService,
		MatchingService:  matchingService,
		ChatbotService:   chatbotService,
		MediaService:     mediaService,
		DashboardService: dashboardService,
		EventsService:    eventsService,
		MeetingsService:  meetingsService,
		Logger:           log,
		Config:           cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
