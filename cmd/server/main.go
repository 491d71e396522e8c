package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"startup-platform.backend/internal/config"
	"startup-platform.backend/internal/infrastructure/jobs"
	"startup-platform.backend/internal/infrastructure/models"
	"startup-platform.backend/internal/infrastructure/repositories"
	"startup-platform.backend/internal/interfaces/http/handlers"
	"startup-platform.backend/internal/interfaces/http/middleware"
	"startup-platform.backend/internal/usecases"
	"startup-platform.backend/pkg/jwt"
	"startup-platform.backend/pkg/logger"
	"startup-platform.backend/pkg/redis"
)

const version = "1.0.0"

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	// Seam for tests: the models carry postgres column defaults that sqlite
	// cannot migrate.
	autoMigrate = func(db *gorm.DB) error {
		return db.AutoMigrate(
			&models.User{},
			&models.Startup{},
			&models.ScoreRecord{},
			&models.Like{},
			&models.Comment{},
			&models.AnalyticsEvent{},
			&models.MentorshipRequest{},
			&models.TelegramEvent{},
		)
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
		if err := autoMigrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	startupRepo := repositories.NewStartupRepository(db)
	scoreRepo := repositories.NewScoreRepository(db)
	likeRepo := repositories.NewLikeRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	analyticsRepo := repositories.NewAnalyticsRepository(db)
	mentorshipRepo := repositories.NewMentorshipRepository(db)
	telegramEventRepo := repositories.NewTelegramEventRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize usecases
	telegramUsecase := usecases.NewTelegramUsecase(userRepo, telegramEventRepo, usecases.LogNotificationSender{})
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	userUsecase := usecases.NewUserUsecase(userRepo, telegramUsecase, cfg.Telegram.BotUsername)
	matchingService := usecases.NewMatchingService(startupRepo, userRepo, scoreRepo, telegramUsecase)

	// Background match refresh worker
	matchWorker := jobs.NewMatchWorker(matchingService, cfg.Matching.QueueSize)

	startupUsecase := usecases.NewStartupUsecase(startupRepo, scoreRepo, userRepo, analyticsRepo, uow, matchWorker, telegramUsecase)
	engagementUsecase := usecases.NewEngagementUsecase(startupRepo, scoreRepo, likeRepo, commentRepo, analyticsRepo, userRepo, uow, telegramUsecase)
	mentorshipUsecase := usecases.NewMentorshipUsecase(userRepo, mentorshipRepo, telegramUsecase)
	analyticsUsecase := usecases.NewAnalyticsUsecase(startupRepo, analyticsRepo, scoreRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	userHandler := handlers.NewUserHandler(userUsecase)
	startupHandler := handlers.NewStartupHandler(startupUsecase, engagementUsecase)
	mentorHandler := handlers.NewMentorHandler(mentorshipUsecase)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsUsecase)
	webhookHandler := handlers.NewWebhookHandler(telegramUsecase)
	healthHandler := handlers.NewHealthHandler(version)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go matchWorker.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerMetricsRoute(r)
	registerAPIRoutes(r, routeDeps{
		authHandler:      authHandler,
		userHandler:      userHandler,
		startupHandler:   startupHandler,
		mentorHandler:    mentorHandler,
		analyticsHandler: analyticsHandler,
		webhookHandler:   webhookHandler,
		healthHandler:    healthHandler,
		jwtService:       jwtService,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		matchWorker.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Startup Platform Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/api/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
