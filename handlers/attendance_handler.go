package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"attendance-tracker/models"
	"attendance-tracker/pkg/metrics"
	util "attendance-tracker/pkg/utils"
	"attendance-tracker/repository"
)

// AttendanceHandler serves the status-row model: one row per user per day.
type AttendanceHandler struct {
	repo repository.AttendanceRepository
	opts Options
}

func NewAttendanceHandler(repo repository.AttendanceRepository, opts Options) *AttendanceHandler {
	return &AttendanceHandler{repo: repo, opts: opts.withDefaults()}
}

// GetAttendance godoc
// @Summary List attendance for a day
// @Description Returns every status row of the given day joined with its user, latest entry first.
// @Tags Attendance
// @Produce json
// @Param date query string false "Day in YYYY-MM-DD, defaults to today"
// @Success 200 {array} models.AttendanceWithUser
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /attendance [get]
func (h *AttendanceHandler) GetAttendance(c *fiber.Ctx) error {
	day, err := h.opts.day(c)
	if err != nil {
		return invalidDate(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rows, err := h.repo.FindByDateWithUsers(ctx, day)
	if err != nil {
		return storeFailure(c, h.opts.Logger, "find attendance by date", err)
	}
	if rows == nil {
		rows = []models.AttendanceWithUser{}
	}
	return c.Status(fiber.StatusOK).JSON(rows)
}

// PostAttendance godoc
// @Summary Record an enter or exit
// @Description Enter creates today's row; exit closes it. Repeats answer 200 with a message.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body models.AttendanceActionPayload true "Action"
// @Success 200 {object} models.Attendance
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /attendance [post]
func (h *AttendanceHandler) PostAttendance(c *fiber.Ctx) error {
	payload, err := parseAction(c, h.opts.Metrics)
	if payload == nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	now := h.opts.Clock.Now()
	today := util.Today(now, h.opts.Location)

	var row *models.Attendance
	switch payload.Action {
	case models.ActionEnter:
		row, err = h.repo.MarkEnter(ctx, payload.UserID, today, now, payload.ConfidenceScore)
	case models.ActionExit:
		row, err = h.repo.MarkExit(ctx, payload.UserID, today, now)
	}

	switch {
	case errors.Is(err, repository.ErrAlreadyEntered):
		h.opts.Metrics.RecordAction(payload.Action, metrics.OutcomeDuplicate)
		return c.Status(fiber.StatusOK).JSON(models.MessageResponse{Message: "Already marked entered today"})
	case errors.Is(err, repository.ErrAlreadyExited):
		h.opts.Metrics.RecordAction(payload.Action, metrics.OutcomeDuplicate)
		return c.Status(fiber.StatusOK).JSON(models.MessageResponse{Message: "Already marked exited today"})
	case errors.Is(err, repository.ErrRecordNotFound):
		h.opts.Metrics.RecordAction(payload.Action, metrics.OutcomeNotFound)
		return errorJSON(c, fiber.StatusBadRequest, "No entry record found to mark exit")
	case err != nil:
		h.opts.Metrics.RecordAction(payload.Action, metrics.OutcomeError)
		return storeFailure(c, h.opts.Logger, "mark "+payload.Action, err)
	}

	h.opts.Metrics.RecordAction(payload.Action, metrics.OutcomeRecorded)
	return c.Status(fiber.StatusOK).JSON(row)
}

// UpdateAttendance godoc
// @Summary Patch an attendance row
// @Description Applies only the present, well-typed fields among status, time_in, time_out and confidence_score. time_out null clears it.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path string true "Attendance ID"
// @Param payload body object true "Sparse patch"
// @Success 200 {object} models.Attendance
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /attendance/{id} [put]
func (h *AttendanceHandler) UpdateAttendance(c *fiber.Ctx) error {
	id, ok := recordID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid attendance id")
	}

	patch, err := models.ParseAttendancePatch(c.Body())
	if err != nil {
		return patchFailure(c, err)
	}
	if patch.IsEmpty() {
		return errorJSON(c, fiber.StatusBadRequest, "No valid fields to update")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	row, err := h.repo.Update(ctx, id, patch, h.opts.Clock.Now())
	if errors.Is(err, repository.ErrRecordNotFound) {
		return errorJSON(c, fiber.StatusBadRequest, "Attendance record not found")
	}
	if err != nil {
		return storeFailure(c, h.opts.Logger, "update attendance", err)
	}
	return c.Status(fiber.StatusOK).JSON(row)
}

// DeleteAttendance godoc
// @Summary Delete an attendance row
// @Description Hard delete. A missing id still answers success.
// @Tags Attendance
// @Produce json
// @Param id path string true "Attendance ID"
// @Success 200 {object} models.DeleteSuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /attendance/{id} [delete]
func (h *AttendanceHandler) DeleteAttendance(c *fiber.Ctx) error {
	id, ok := recordID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid attendance id")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.repo.Delete(ctx, id); err != nil {
		return storeFailure(c, h.opts.Logger, "delete attendance", err)
	}
	return c.Status(fiber.StatusOK).JSON(models.DeleteSuccessResponse{Success: true})
}
