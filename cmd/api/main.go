package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/meeting-scribe/pkg/validator"

	"github.com/johnquangdev/meeting-scribe/internal/adapter/handler"
	"github.com/johnquangdev/meeting-scribe/internal/adapter/repository"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/database"
	httpmw "github.com/johnquangdev/meeting-scribe/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/auth"
	meetinguc "github.com/johnquangdev/meeting-scribe/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/processing"
	pkgai "github.com/johnquangdev/meeting-scribe/pkg/ai"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
	"github.com/johnquangdev/meeting-scribe/pkg/jwt"
)

// @title           Meeting Scribe API
// @version         1.0
// @description     API for recording meetings, transcribing audio, and generating structured reports

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// Cap request bodies at the upload limit (plus headroom for multipart framing)
	e.Use(middleware.BodyLimit(strconv.FormatInt(cfg.Upload.MaxBytes+1<<20, 10)))

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Apply migrations only when explicitly enabled in config.
	// Production deployments manage schema via sql-migrate in CI/CD.
	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			log.Fatalf("DB_AUTO_MIGRATE is enabled in production. Manage schema with sql-migrate in CI/CD instead.")
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping startup migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	sessionStore := cache.NewRedisStore(redisClient)

	// Initialize MinIO audio storage
	log.Println("🪣 Connecting to object storage...")
	audioStore, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize auth service
	log.Println("🔐 Initializing auth service...")
	authService := auth.NewService(userRepo, sessionStore, jwtManager, logger)

	// Initialize AI components
	log.Println("🤖 Initializing AI components...")
	transcriber, err := processing.NewTranscriber(&cfg.AI)
	if err != nil {
		log.Fatalf("Failed to initialize transcriber: %v", err)
	}
	groqClient := pkgai.NewGroqClient(&cfg.AI.Groq)
	reporter := processing.NewGroqReporter(groqClient)

	// Initialize services
	log.Println("✨ Initializing services...")
	meetingService := meetinguc.NewService(meetingRepo, audioStore, logger)
	processingService := processing.NewService(meetingRepo, audioStore, transcriber, reporter, cfg, logger)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	authHandler := handler.NewAuth(authService, logger)
	meetingHandler := handler.NewMeeting(meetingService, logger)
	transcribeHandler := handler.NewTranscribe(processingService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	authEchoMW := httpmw.EchoAuth(authService)
	router := handler.NewRouter(cfg, authHandler, meetingHandler, transcribeHandler, authEchoMW)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second

	httpCtx, httpCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	if err := e.Shutdown(httpCtx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}
	httpCancel()

	// In-flight pipeline runs get a full drain budget of their own; a slow
	// HTTP drain must not eat into it or skip it
	drainCtx, drainCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer drainCancel()
	if err := processingService.Drain(drainCtx); err != nil {
		log.Printf("⚠️  Shutdown timeout reached with pipeline runs still in flight: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
