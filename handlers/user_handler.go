package handlers

import (
	"cdr.dev/slog/v3"
	"github.com/gofiber/fiber/v2"

	"attendance-tracker/models"
	"attendance-tracker/repository"
)

type UserHandler struct {
	userRepo repository.UserRepository
	logger   slog.Logger
}

func NewUserHandler(userRepo repository.UserRepository, logger slog.Logger) *UserHandler {
	return &UserHandler{userRepo: userRepo, logger: logger}
}

// GetAllUsers godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} models.ErrorResponse
// @Router /users [get]
func (h *UserHandler) GetAllUsers(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	users, err := h.userRepo.FindAll(ctx)
	if err != nil {
		return storeFailure(c, h.logger, "find users", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

// GetUserByID godoc
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /users/{userId} [get]
func (h *UserHandler) GetUserByID(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.userRepo.FindByUserID(ctx, c.Params("userId"))
	if err != nil {
		return storeFailure(c, h.logger, "find user", err)
	}
	if user == nil {
		return errorJSON(c, fiber.StatusNotFound, "User not found")
	}
	return c.Status(fiber.StatusOK).JSON(user)
}
