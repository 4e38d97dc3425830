package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"cashback.backend/internal/config"
	"cashback.backend/internal/domain/entities"
	domainerrors "cashback.backend/internal/domain/errors"
	"cashback.backend/internal/infrastructure/boticario"
	"cashback.backend/internal/infrastructure/models"
	"cashback.backend/internal/infrastructure/repositories"
	"cashback.backend/internal/interfaces/http/handlers"
	"cashback.backend/internal/interfaces/http/middleware"
	"cashback.backend/internal/usecases"
	"cashback.backend/pkg/crypto"
	"cashback.backend/pkg/jwt"
	"cashback.backend/pkg/logger"
	"cashback.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			TranslateError: true,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
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

	// Initialize Redis. Order submission stays available without it, the
	// idempotency layer just switches off.
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Warn(context.Background(), "Redis unavailable, idempotency disabled", zap.Error(err))
		redis.SetClient(nil)
	}

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
		return fmt.Errorf("database not available: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Order{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize JWT service
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	// Initialize the partner API client
	partnerClient := boticario.NewClient(boticario.Config{
		BaseURL:  cfg.Boticario.BaseURL,
		APIToken: cfg.Boticario.APIToken,
		Timeout:  cfg.Boticario.Timeout,
	})

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	userUsecase := usecases.NewUserUsecase(userRepo)
	orderUsecase := usecases.NewOrderUsecase(orderRepo, userRepo, cfg.Cashback.Rules, cfg.Cashback.AutoApproveCPFs)
	cashbackUsecase := usecases.NewCashbackUsecase(userRepo, partnerClient)

	if err := ensureFirstSuperuser(context.Background(), userRepo, cfg); err != nil {
		return fmt.Errorf("failed to seed first superuser: %w", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	userHandler := handlers.NewUserHandler(userUsecase)
	orderHandler := handlers.NewOrderHandler(orderUsecase)
	cashbackHandler := handlers.NewCashbackHandler(cashbackUsecase)
	healthHandler := handlers.NewHealthHandler(db)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	registerRoutes(r, routeDeps{
		authHandler:     authHandler,
		userHandler:     userHandler,
		orderHandler:    orderHandler,
		cashbackHandler: cashbackHandler,
		healthHandler:   healthHandler,
		authRequired:    middleware.AuthMiddleware(jwtService, authUsecase),
	})

	logger.Info(context.Background(), "Server starting", zap.String("port", cfg.Server.Port))

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// ensureFirstSuperuser creates the configured back-office account when it
// does not exist yet. The account carries no CPF, it only manages others.
func ensureFirstSuperuser(ctx context.Context, userRepo *repositories.UserRepository, cfg *config.Config) error {
	if cfg.FirstSuperuser.Email == "" || cfg.FirstSuperuser.Password == "" {
		return nil
	}

	if _, err := userRepo.GetByEmail(ctx, cfg.FirstSuperuser.Email); err == nil {
		return nil
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}

	passwordHash, err := crypto.HashPassword(cfg.FirstSuperuser.Password)
	if err != nil {
		return err
	}

	user := &entities.User{
		Email:        cfg.FirstSuperuser.Email,
		PasswordHash: passwordHash,
		FullName:     "First Superuser",
		CPF:          null.String{},
		IsActive:     true,
		IsSuperuser:  true,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		return err
	}

	logger.Info(ctx, "Seeded first superuser", zap.String("email", user.Email))
	return nil
}
