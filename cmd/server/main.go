package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/kv"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

func main() {
	// Structured logging (JSON to stdout)
	stdout := logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}

	var (
		store       kv.Store
		ping        func() error
		db          *gorm.DB
		sqliteStore *kv.SQLiteStore
		dbLog       *logging.DBHandler
		cleanupDone = make(chan struct{})
	)

	switch cfg.StoreDriver {
	case "memory":
		store = kv.NewMemoryStore()
		slog.Warn("using in-memory store; data is lost on restart")
	case "sqlite":
		s, err := kv.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			slog.Error("sqlite open failed", "path", cfg.SQLitePath, "error", err)
			os.Exit(1)
		}
		sqliteStore = s
		store = s
		ping = s.Ping
		slog.Info("sqlite store opened", "path", cfg.SQLitePath)
	case "postgres":
		if cfg.DBPassword == "" {
			slog.Error("DB_PASSWORD environment variable is required")
			os.Exit(1)
		}
		var err error
		db, err = database.Connect(cfg)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		if err := database.Migrate(db); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
		store = kv.NewGormStore(db)
		ping = func() error { return database.Ping(db) }

		// PostgreSQL log sink (ERROR+ async batch) with retention cleanup
		dbLog = logging.NewDBHandler(db)
		slog.SetDefault(slog.New(logging.NewMultiHandler(stdout, dbLog)))
		logging.StartCleanup(db, cfg.LogRetentionDays, cleanupDone)
	default:
		slog.Error("unknown STORE_DRIVER", "driver", cfg.StoreDriver)
		os.Exit(1)
	}

	loc := cfg.Location()
	if loc.String() != cfg.Timezone {
		slog.Warn("unknown TIMEZONE, using UTC", "timezone", cfg.Timezone)
	}

	// Services
	sess := session.New(store)
	accountService := services.NewAccountService(store, sess, cfg)
	catalogService := services.NewCatalogService(store)
	trackerService := services.NewTrackerService(store, loc)
	orderService := services.NewOrderService(store, catalogService, trackerService)
	tokenService := services.NewTokenService(cfg)

	// Handlers
	h := routes.Handlers{
		Auth:    handlers.NewAuthHandler(accountService, tokenService),
		Health:  handlers.NewHealthHandler(cfg.StoreDriver, ping),
		Meal:    handlers.NewMealHandler(catalogService),
		Order:   handlers.NewOrderHandler(orderService, accountService),
		Tracker: handlers.NewTrackerHandler(trackerService, accountService),
	}

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, accountService, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	if dbLog != nil {
		dbLog.Stop()
	}
	sentry.Flush(2 * time.Second)

	if sqliteStore != nil {
		if err := sqliteStore.Close(); err != nil {
			slog.Error("sqlite close error", "error", err)
		}
	}
	if db != nil {
		if err := database.Close(db); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}
