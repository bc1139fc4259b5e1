package router_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cdr.dev/slog/v3/sloggers/slogtest"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"attendance-tracker/config"
	"attendance-tracker/handlers"
	"attendance-tracker/pkg/metrics"
	"attendance-tracker/router"
)

func routes(app *fiber.App) map[string]bool {
	out := make(map[string]bool)
	for _, r := range app.GetRoutes(true) {
		path := r.Path
		if len(path) > 1 {
			path = strings.TrimSuffix(path, "/")
		}
		out[r.Method+" "+path] = true
	}
	return out
}

func newApp(t *testing.T, model string) *fiber.App {
	app := fiber.New()
	router.SetupRoutes(app, router.Dependencies{
		Model: model,
		Options: handlers.Options{
			Location: time.UTC,
			Logger:   slogtest.Make(t, nil),
		},
		Metrics: metrics.New(),
	})
	return app
}

func TestSetupRoutes(t *testing.T) {
	t.Parallel()

	t.Run("StatusModel", func(t *testing.T) {
		t.Parallel()
		r := routes(newApp(t, config.ModelStatus))
		require.True(t, r["GET /api/attendance"])
		require.True(t, r["POST /api/attendance"])
		require.True(t, r["PUT /api/attendance/:id"])
		require.True(t, r["DELETE /api/attendance/:id"])
		require.True(t, r["GET /api/users/:userId"])
		require.False(t, r["GET /api/attendance/:userId"])
		require.False(t, r["GET /api/attendance/sessions"])
	})

	t.Run("LogModel", func(t *testing.T) {
		t.Parallel()
		r := routes(newApp(t, config.ModelLog))
		require.True(t, r["GET /api/attendance"])
		require.True(t, r["GET /api/attendance/:userId"])
		require.True(t, r["GET /api/attendance/:userId/sessions"])
		require.True(t, r["GET /api/attendance/sessions"])
		require.True(t, r["PUT /api/attendance/:id"])
	})

	t.Run("HealthAndMetrics", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, config.ModelLog)

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"message":"Attendance Tracker API","status":"running","model":"log","docs":"/docs/index.html"}`, string(body))

		resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
