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
	"go.uber.org/zap"
	"gorm.io/gorm"

	"firmdesk.backend/internal/config"
	"firmdesk.backend/internal/infrastructure/datasources/postgres"
	"firmdesk.backend/internal/infrastructure/notifications"
	"firmdesk.backend/internal/infrastructure/repositories"
	"firmdesk.backend/internal/infrastructure/storage"
	"firmdesk.backend/internal/interfaces/http/handlers"
	"firmdesk.backend/internal/interfaces/http/middleware"
	"firmdesk.backend/internal/usecases"
	"firmdesk.backend/pkg/jwt"
	"firmdesk.backend/pkg/logger"
	"firmdesk.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = postgres.NewConnection
	migrateDB  = postgres.Migrate
	runServer  = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB   = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if cfg.Database.MigrationsDir != "" {
		if err := migrateDB(cfg.Database); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info(context.Background(), "Database migrated")
	}

	diskStore, err := storage.NewDiskStore(cfg.Storage.BaseDir)
	if err != nil {
		return fmt.Errorf("failed to initialize file storage: %w", err)
	}
	fileStore := storage.NewClientStore(diskStore)

	var notifier notifications.Notifier
	if cfg.RabbitMQ.URL != "" {
		amqpNotifier, err := notifications.NewAMQPNotifier(cfg.RabbitMQ.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}
		defer amqpNotifier.Close()
		notifier = amqpNotifier
	} else {
		logger.Info(context.Background(), "RabbitMQ not configured, notifications go to the log")
		notifier = notifications.NewLogNotifier()
	}

	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewRefreshTokenRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	kycRepo := repositories.NewKYCDocumentRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, tokenRepo, jwtService, cfg.JWT.RefreshExpiry)
	onboardingUsecase := usecases.NewOnboardingUsecase(uow, userRepo, clientRepo, kycRepo, paymentRepo, fileStore, notifier)
	documentUsecase := usecases.NewDocumentUsecase(clientRepo, documentRepo, fileStore)
	messageUsecase := usecases.NewMessageUsecase(messageRepo, userRepo)
	adminUsecase := usecases.NewAdminUsecase(userRepo, clientRepo, kycRepo, paymentRepo, tokenRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingUsecase)
	documentHandler := handlers.NewDocumentHandler(documentUsecase)
	messageHandler := handlers.NewMessageHandler(messageUsecase)
	adminHandler := handlers.NewAdminHandler(adminUsecase)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:       authHandler,
		onboardingHandler: onboardingHandler,
		documentHandler:   documentHandler,
		messageHandler:    messageHandler,
		adminHandler:      adminHandler,
		authMiddleware:    middleware.AuthMiddleware(jwtService),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
	}()

	log.Printf("FirmDesk backend starting on port %s", cfg.Server.Port)
	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
