package handlers

import (
	"context"
	"errors"
	"time"

	"cdr.dev/slog/v3"
	"github.com/coder/quartz"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"attendance-tracker/models"
	"attendance-tracker/pkg/metrics"
	util "attendance-tracker/pkg/utils"
)

const requestTimeout = 5 * time.Second

// Options carries what every attendance handler needs besides its repository.
type Options struct {
	Clock    quartz.Clock
	Location *time.Location
	Logger   slog.Logger
	Metrics  *metrics.Metrics
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = quartz.NewReal()
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	return o
}

func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context(), requestTimeout)
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{Error: message})
}

// storeFailure answers 500 with the store's own message.
func storeFailure(c *fiber.Ctx, logger slog.Logger, op string, err error) error {
	logger.Error(c.Context(), "store operation failed",
		slog.F("op", op),
		slog.F("path", c.Path()),
		slog.Error(err),
	)
	return errorJSON(c, fiber.StatusInternalServerError, err.Error())
}

func (o Options) day(c *fiber.Ctx) (string, error) {
	return util.ParseDay(c.Query("date"), o.Clock.Now(), o.Location)
}

func invalidDate(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
}

func recordID(c *fiber.Ctx) (string, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// parseAction decodes and validates the ingestion body shared by both
// attendance models. The body is read as JSON whatever its Content-Type. A
// nil payload means the 400 response has been written.
func parseAction(c *fiber.Ctx, m *metrics.Metrics) (*models.AttendanceActionPayload, error) {
	var payload models.AttendanceActionPayload
	if err := c.App().Config().JSONDecoder(c.Body(), &payload); err != nil {
		m.RecordAction("", metrics.OutcomeInvalid)
		return nil, errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if errs := util.ValidateStruct(&payload); errs != nil {
		m.RecordAction(payload.Action, metrics.OutcomeInvalid)
		if util.HasTagFailure(errs, "user_id", "required") || util.HasTagFailure(errs, "action", "required") {
			return nil, errorJSON(c, fiber.StatusBadRequest, "user_id and action are required")
		}
		return nil, c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Validation failed",
			Details: errs,
		})
	}

	if !models.IsValidAction(payload.Action) {
		m.RecordAction(payload.Action, metrics.OutcomeInvalid)
		return nil, errorJSON(c, fiber.StatusBadRequest, "Invalid action")
	}
	return &payload, nil
}

// patchFailure maps a patch parse error to its 400 response.
func patchFailure(c *fiber.Ctx, err error) error {
	var fe *models.FieldError
	if errors.As(err, &fe) {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Invalid field value",
			Details: fiber.Map{"field": fe.Field, "message": fe.Message},
		})
	}
	return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
}
