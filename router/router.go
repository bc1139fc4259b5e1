package router

import (
	"context"

	"cdr.dev/slog/v3"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"attendance-tracker/config"
	_ "attendance-tracker/docs"
	"attendance-tracker/handlers"
	"attendance-tracker/models"
	"attendance-tracker/pkg/metrics"
	"attendance-tracker/repository"
)

type Dependencies struct {
	Repos   repository.Repositories
	Model   string
	Options handlers.Options
	Metrics *metrics.Metrics
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	logger := deps.Options.Logger.Named("router")
	deps.Options.Metrics = deps.Metrics

	health := func(c *fiber.Ctx) error {
		return c.JSON(models.HealthResponse{
			Message: "Attendance Tracker API",
			Status:  "running",
			Model:   deps.Model,
			Docs:    "/docs/index.html",
		})
	}
	app.Get("/", health)
	app.Get("/health", health)
	app.Get("/docs/*", swagger.HandlerDefault)
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	api := app.Group("/api")

	userHandler := handlers.NewUserHandler(deps.Repos.User, deps.Options.Logger)
	users := api.Group("/users")
	users.Get("/", userHandler.GetAllUsers)
	users.Get("/:userId", userHandler.GetUserByID)

	attendance := api.Group("/attendance")
	switch deps.Model {
	case config.ModelLog:
		h := handlers.NewAttendanceLogHandler(deps.Repos.AttendanceLog, deps.Repos.User, deps.Options)
		attendance.Get("/", h.GetLogs)
		attendance.Post("/", h.PostLog)
		attendance.Get("/sessions", h.GetDailySessions)
		attendance.Get("/:userId/sessions", h.GetUserSessions)
		attendance.Get("/:userId", h.GetUserLogs)
		attendance.Put("/:id", h.UpdateLog)
		attendance.Delete("/:id", h.DeleteLog)
	default:
		h := handlers.NewAttendanceHandler(deps.Repos.Attendance, deps.Options)
		attendance.Get("/", h.GetAttendance)
		attendance.Post("/", h.PostAttendance)
		attendance.Put("/:id", h.UpdateAttendance)
		attendance.Delete("/:id", h.DeleteAttendance)
	}

	logger.Info(context.Background(), "routes registered",
		slog.F("attendance_model", deps.Model),
		slog.F("route_count", len(app.GetRoutes(true))),
	)
}
