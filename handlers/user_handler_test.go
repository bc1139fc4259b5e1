package handlers_test

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"attendance-tracker/handlers"
	"attendance-tracker/models"
)

func TestUserHandler(t *testing.T) {
	t.Parallel()

	users := newFakeUsers(
		models.User{UserID: "EMP-002", Name: "Budi Santoso"},
		models.User{UserID: "EMP-001", Name: "Andi Pratama"},
	)
	h := handlers.NewUserHandler(users, testLogger(t))
	app := fiber.New()
	app.Get("/users", h.GetAllUsers)
	app.Get("/users/:userId", h.GetUserByID)

	status, body := request(t, app, fiber.MethodGet, "/users", "")
	require.Equal(t, fiber.StatusOK, status)
	list := decode[[]models.User](t, body)
	require.Len(t, list, 2)
	require.Equal(t, "Andi Pratama", list[0].Name)

	status, body = request(t, app, fiber.MethodGet, "/users/EMP-002", "")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "Budi Santoso", decode[models.User](t, body).Name)

	status, body = request(t, app, fiber.MethodGet, "/users/EMP-404", "")
	require.Equal(t, fiber.StatusNotFound, status)
	requireError(t, body, "User not found")

	failing := newFakeUsers()
	failing.err = errors.New("users collection unavailable")
	h = handlers.NewUserHandler(failing, testLogger(t))
	app = fiber.New()
	app.Get("/users", h.GetAllUsers)
	status, body = request(t, app, fiber.MethodGet, "/users", "")
	require.Equal(t, fiber.StatusInternalServerError, status)
	requireError(t, body, "users collection unavailable")
}
