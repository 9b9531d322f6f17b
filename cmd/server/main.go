package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"c2panel/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"c2panel/internal/auth"
	"c2panel/internal/cache"
	"c2panel/internal/config"
	"c2panel/internal/db"
	"c2panel/internal/handler"
	"c2panel/internal/logging"
	"c2panel/internal/repository"
	"c2panel/internal/router"
	"c2panel/internal/service"
	"c2panel/internal/session"
)

const shutdownTimeout = 10 * time.Second

// @title C2 Panel API
// @version 1.0
// @description Session-gated administration panel for managed computers.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()
	logger := logging.NewJSON(os.Stdout, cfg.Debug)
	ctx := context.Background()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "database init", "error", err)
		os.Exit(1)
	}

	// Run migrations for all models
	if err := db.Migrate(gormDB); err != nil {
		logger.Error(ctx, "auto-migrate", "error", err)
		os.Exit(1)
	}
	if err := db.CheckHealth(ctx, gormDB); err != nil {
		logger.Warn(ctx, "database health check failed", "error", err)
	}

	var store session.Store
	switch cfg.SessionStore {
	case "redis":
		cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, logger)
		defer cacheClient.Close()
		if err := cacheClient.Ping(ctx); err != nil {
			logger.Warn(ctx, "redis unreachable, sessions will not persist until it recovers", "addr", cfg.RedisAddr, "error", err)
		}
		store = session.NewRedisStore(cacheClient)
	default:
		store = session.NewMemoryStore()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)
	computerRepo := repository.NewComputerRepository(gormDB)
	commandLogRepo := repository.NewCommandLogRepository(gormDB)

	// Initialize session components
	codec := auth.NewCookieCodec(cfg.SessionSecret, cfg.SessionTTL)
	sessions := session.NewManager(sessionRepo, store, logger, session.WithSessionTTL(cfg.SessionTTL))

	// Initialize services
	authService := service.NewAuthService(userRepo, logger)
	computerService := service.NewComputerService(computerRepo, logger)
	commandService := service.NewCommandService(commandLogRepo, logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, sessions, logger)
	dashboardHandler := handler.NewDashboardHandler(computerService, sessions)
	computerHandler := handler.NewComputerHandler(computerService, commandService, sessions)
	healthHandler := handler.NewHealthHandler(gormDB, logger)

	// Register routes
	router.Register(
		e,
		cfg,
		logger,
		sessions,
		codec,
		authHandler,
		dashboardHandler,
		computerHandler,
		healthHandler,
	)

	if cfg.SwaggerHost != "" {
		// swag expects host[:port] without a scheme.
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
		docs.SwaggerInfo.Host = host
	}
	logger.Info(ctx, "swagger documentation available", "url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html")

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info(ctx, "server starting", "addr", addr, "session_store", cfg.SessionStore, "db_driver", cfg.DBDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "server start", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "server shutdown", "error", err)
	}
	logger.Info(ctx, "server stopped")
}
