package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/shenikar/geoface_attendance/internal/auth"
	"github.com/shenikar/geoface_attendance/internal/checkin"
	"github.com/shenikar/geoface_attendance/internal/config"
	v1 "github.com/shenikar/geoface_attendance/internal/handler/http/v1"
	"github.com/shenikar/geoface_attendance/internal/httpmiddleware"
	"github.com/shenikar/geoface_attendance/internal/metrics"
	"github.com/shenikar/geoface_attendance/internal/notification"
	"github.com/shenikar/geoface_attendance/internal/repository"
	"github.com/shenikar/geoface_attendance/internal/service"
	"github.com/shenikar/geoface_attendance/internal/verifier"
	"github.com/shenikar/geoface_attendance/pkg/logger"
	"github.com/shenikar/geoface_attendance/pkg/postgres"
	redisclient "github.com/shenikar/geoface_attendance/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/geoface_attendance/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const sweepInterval = time.Minute

// @title GeoFace Attendance API
// @version 1.0
// @description School attendance check-in with ID card recognition, selfie verification and geofencing.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	location, err := cfg.Location()
	if err != nil {
		log.Fatalf("Failed to load school timezone: %v", err)
	}

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	healthChecks := map[string]v1.HealthCheck{}

	// Инициализация Redis клиента. Без Redis нет кеша настроек и очереди уведомлений,
	// поэтому без него работает только режим memory.
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		if cfg.StorageBackend != config.StorageMemory {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.WithError(err).Warn("Redis unavailable, notifications disabled")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")
		healthChecks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	// Инициализация репозиториев
	var (
		recordRepo   service.AttendanceRepository
		studentRepo  service.StudentRepository
		settingsRepo service.SettingsRepository
	)
	switch cfg.StorageBackend {
	case config.StorageMemory:
		log.Warn("Using in-memory storage, records are lost on restart")
		recordRepo = repository.NewMemoryAttendanceRepository()
		studentRepo = repository.NewMemoryStudentRepository()
		settingsRepo = repository.NewMemorySettingsRepository()
	default:
		// Запуск миграций
		log.Info("Running database migrations...")
		if err := postgres.RunMigrations(cfg.DatabaseURL, "file://migrations"); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
		log.Info("Database migrations applied successfully")

		// Подключение к PostgreSQL
		dbpool, err := postgres.NewPostgresDB(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer dbpool.Close()
		log.Info("Successfully connected to PostgreSQL")
		healthChecks["postgres"] = dbpool.Ping

		recordRepo = repository.NewAttendanceRepository(dbpool)
		studentRepo = repository.NewStudentRepository(dbpool)
		settingsRepo = repository.NewSettingsRepository(dbpool, redisClient)
	}

	// Инициализация сервисов
	attendanceService := service.NewAttendanceService(recordRepo, studentRepo, settingsRepo, cfg.DefaultSettings, location, log)

	verifierClient := verifier.NewClient(cfg.VerifierURL, cfg.VerifierAPIKey)
	healthChecks["verifier"] = verifierClient.Health

	// Метрики. Реестр сессий создается ниже, gauge читает его только при сборе.
	var sessions *checkin.Registry
	appMetrics := metrics.New(prometheus.DefaultRegisterer, func() int { return sessions.Len() })

	// Уведомления родителям через очередь Redis
	var notifier checkin.Notifier
	if redisClient != nil {
		notifier = startNotifications(ctx, cfg, redisClient, attendanceService, appMetrics, location, log)
	}

	sessions = checkin.NewRegistry(checkin.Deps{
		Verifier:       verifier.WithTimeout(verifierClient, cfg.VerifierTimeout),
		Records:        attendanceService,
		Settings:       attendanceService,
		Notifier:       notifier,
		Observer:       appMetrics,
		Logger:         log,
		Location:       location,
		FallbackStatus: cfg.FallbackStatus(),
	}, cfg.SessionTTL, cfg.MaxSessions)
	go sweepSessions(ctx, sessions, log)

	authenticator := auth.NewAuthenticator(cfg.AdminPassword, cfg.JWTSigningKey, cfg.JWTIssuer, cfg.AdminTokenTTL)

	// Инициализация хэндлеров
	handler := v1.NewHandler(sessions, attendanceService, authenticator, location, log)
	handler.LimitCheckinCreation(httpmiddleware.NewTokenBucket(cfg.CheckinRateBurst, cfg.CheckinRatePerMinute, log).GinMiddleware())
	for name, check := range healthChecks {
		handler.AddHealthCheck(name, check)
	}

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	cancel()

	log.Info("Server gracefully stopped")
}

func startNotifications(
	ctx context.Context,
	cfg *config.Config,
	redisClient *redis.Client,
	attendanceService service.AttendanceService,
	recorder notification.Recorder,
	location *time.Location,
	log *logrus.Logger,
) checkin.Notifier {
	publisher := notification.NewRedisPublisher(redisClient)

	// Инициализация и запуск воркера уведомлений
	sender := notification.NewTelegramSender(cfg.TelegramAPIURL, cfg.NotifyTimeout)
	worker := notification.NewWorker(redisClient, sender, recorder, log, cfg.NotifyTimeout)
	worker.Start(ctx)

	return notification.NewDispatcher(attendanceService, attendanceService, publisher, location, log)
}

func sweepSessions(ctx context.Context, sessions *checkin.Registry, log *logrus.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := sessions.Sweep(); removed > 0 {
				log.WithField("removed", removed).Info("Expired check-in sessions removed")
			}
		}
	}
}
