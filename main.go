package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"cdr.dev/slog/v3"
	"github.com/coder/quartz"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"golang.org/x/xerrors"

	"attendance-tracker/config"
	"attendance-tracker/handlers"
	"attendance-tracker/pkg/metrics"
	"attendance-tracker/repository"
	"attendance-tracker/router"
	"attendance-tracker/seeder"
)

// @title Attendance Tracker API
// @version 1.0
// @description Enter and exit tracking with daily attendance views for the admin dashboard.
//
// @host localhost:3000
// @BasePath /api
// @schemes http https
//
// @tag.name Attendance
// @tag.description Status rows, one per user per day
//
// @tag.name Attendance Logs
// @tag.description Append-only enter and exit events with derived sessions
//
// @tag.name Users
// @tag.description Identities joined into attendance responses
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		config.NewLogger(os.Stderr, "info").Fatal(context.Background(), "load config", slog.Error(err))
	}
	log := config.NewLogger(os.Stderr, cfg.LogLevel)
	ctx := context.Background()

	repos, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal(ctx, "open store", slog.F("driver", cfg.DBDriver), slog.Error(err))
	}
	defer closeStore()

	if cfg.SeedUsers {
		if err := seeder.SeedUsers(ctx, repos.User, log.Named("seeder")); err != nil {
			log.Error(ctx, "seed users", slog.Error(err))
		}
	}

	m := metrics.New()
	app := fiber.New(fiber.Config{
		AppName:               "attendance-tracker",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	config.SetupCORS(app, cfg.AllowedOrigins)
	app.Use(m.Middleware())

	router.SetupRoutes(app, router.Dependencies{
		Repos: repos,
		Model: cfg.AttendanceModel,
		Options: handlers.Options{
			Clock:    quartz.NewReal(),
			Location: cfg.Location,
			Logger:   log.Named("http"),
		},
		Metrics: m,
	})

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Info(ctx, "server listening",
			slog.F("port", cfg.Port),
			slog.F("driver", cfg.DBDriver),
			slog.F("attendance_model", cfg.AttendanceModel),
			slog.F("timezone", cfg.Location.String()),
			slog.F("cors_origins", cfg.AllowedOrigins),
			slog.F("docs", "http://localhost:"+cfg.Port+"/docs/index.html"),
		)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal(ctx, "server error", slog.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error(ctx, "shutdown", slog.Error(err))
	}
	log.Info(ctx, "server stopped")
}

// openStore connects the configured driver, prepares its schema and returns
// the repositories with a matching close function.
func openStore(ctx context.Context, cfg *config.AppConfig, log slog.Logger) (repository.Repositories, func(), error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		client, err := config.MongoConnect(ctx, cfg, log)
		if err != nil {
			return repository.Repositories{}, nil, err
		}
		db := client.Database(cfg.MongoDBName)
		if err := repository.EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return repository.Repositories{}, nil, xerrors.Errorf("ensure mongo indexes: %w", err)
		}
		closeFn := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				log.Error(disconnectCtx, "disconnect mongodb", slog.Error(err))
			}
		}
		return repository.NewMongoRepositories(db), closeFn, nil
	default:
		db, err := config.PostgresConnect(cfg, log)
		if err != nil {
			return repository.Repositories{}, nil, err
		}
		if err := repository.MigratePostgres(db); err != nil {
			_ = config.ClosePostgres(db)
			return repository.Repositories{}, nil, xerrors.Errorf("migrate postgres: %w", err)
		}
		closeFn := func() {
			if err := config.ClosePostgres(db); err != nil {
				log.Error(context.Background(), "close postgres", slog.Error(err))
			}
		}
		return repository.NewPostgresRepositories(db), closeFn, nil
	}
}
