package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"attendance-tracker/models"
	"attendance-tracker/pkg/metrics"
	"attendance-tracker/pkg/session"
	util "attendance-tracker/pkg/utils"
	"attendance-tracker/repository"
)

// AttendanceLogHandler serves the event-log model: one row per enter or exit.
type AttendanceLogHandler struct {
	repo     repository.AttendanceLogRepository
	userRepo repository.UserRepository
	opts     Options
}

func NewAttendanceLogHandler(repo repository.AttendanceLogRepository, userRepo repository.UserRepository, opts Options) *AttendanceLogHandler {
	return &AttendanceLogHandler{repo: repo, userRepo: userRepo, opts: opts.withDefaults()}
}

// GetLogs godoc
// @Summary List attendance logs for a day
// @Description Returns every enter and exit of the day joined with its user, oldest first.
// @Tags Attendance Logs
// @Produce json
// @Param date query string false "Day in YYYY-MM-DD, defaults to today"
// @Success 200 {array} models.AttendanceLogWithUser
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /attendance [get]
func (h *AttendanceLogHandler) GetLogs(c *fiber.Ctx) error {
	day, err := h.opts.day(c)
	if err != nil {
		return invalidDate(c)
	}
	start, end, err := util.DayRange(day, h.opts.Location)
	if err != nil {
		return invalidDate(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	logs, err := h.repo.FindByRangeWithUsers(ctx, start, end)
	if err != nil {
		return storeFailure(c, h.opts.Logger, "find attendance logs", err)
	}
	if logs == nil {
		logs = []models.AttendanceLogWithUser{}
	}
	return c.Status(fiber.StatusOK).JSON(logs)
}

// GetUserLogs godoc
// @Summary List one user's logs for a day
// @Tags Attendance Logs
// @Produce json
// @Param userId path string true "User ID"
// @Param date query string false "Day in YYYY-MM-DD, defaults to today"
// @Success 200 {array} models.AttendanceLog
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /attendance/{userId} [get]
func (h *AttendanceLogHandler) GetUserLogs(c *fiber.Ctx) error {
	logs, ok, err := h.userLogs(c)
	if !ok {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(logs)
}

// GetUserSessions godoc
// @Summary Derive one user's sessions for a day
// @Description Pairs each enter with the following exit. A trailing enter is an open session.
// @Tags Attendance Logs
// @Produce json
// @Param userId path string true "User ID"
// @Param date query string false "Day in YYYY-MM-DD, defaults to today"
// @Success 200 {object} models.UserSessions
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /attendance/{userId}/sessions [get]
func (h *AttendanceLogHandler) GetUserSessions(c *fiber.Ctx) error {
	logs, ok, err := h.userLogs(c)
	if !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	userID := c.Params("userId")
	out := models.UserSessions{
		UserID:   userID,
		Sessions: session.Views(logs),
	}
	user, err := h.userRepo.FindByUserID(ctx, userID)
	if err != nil {
		return storeFailure(c, h.opts.Logger, "find user", err)
	}
	if user != nil {
		out.Users = user.Summary()
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// GetDailySessions godoc
// @Summary Derive every user's sessions for a day
// @Description Users appear in the order of their first event of the day.
// @Tags Attendance Logs
// @Produce json
// @Param date query string false "Day in YYYY-MM-DD, defaults to today"
// @Success 200 {array} models.UserSessions
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /attendance/sessions [get]
func (h *AttendanceLogHandler) GetDailySessions(c *fiber.Ctx) error {
	day, err := h.opts.day(c)
	if err != nil {
		return invalidDate(c)
	}
	start, end, err := util.DayRange(day, h.opts.Location)
	if err != nil {
		return invalidDate(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	joined, err := h.repo.FindByRangeWithUsers(ctx, start, end)
	if err != nil {
		return storeFailure(c, h.opts.Logger, "find attendance logs", err)
	}

	users := make(map[string]*models.UserSummary)
	logs := make([]models.AttendanceLog, 0, len(joined))
	for _, l := range joined {
		logs = append(logs, l.AttendanceLog)
		if l.Users != nil {
			users[l.UserID] = l.Users
		}
	}

	out := []models.UserSessions{}
	for _, group := range session.GroupByUser(logs) {
		out = append(out, models.UserSessions{
			UserID:   group.UserID,
			Users:    users[group.UserID],
			Sessions: session.Views(group.Logs),
		})
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// PostLog godoc
// @Summary Append an enter or exit
// @Tags Attendance Logs
// @Accept json
// @Produce json
// @Param payload body models.AttendanceActionPayload true "Action"
// @Success 200 {object} models.AttendanceLog
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /attendance [post]
func (h *AttendanceLogHandler) PostLog(c *fiber.Ctx) error {
	payload, err := parseAction(c, h.opts.Metrics)
	if payload == nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	log, err := h.repo.Append(ctx, &models.AttendanceLog{
		UserID:          payload.UserID,
		Action:          payload.Action,
		Timestamp:       h.opts.Clock.Now(),
		ConfidenceScore: payload.ConfidenceScore,
	})
	if err != nil {
		h.opts.Metrics.RecordAction(payload.Action, metrics.OutcomeError)
		return storeFailure(c, h.opts.Logger, "append attendance log", err)
	}

	h.opts.Metrics.RecordAction(payload.Action, metrics.OutcomeRecorded)
	return c.Status(fiber.StatusOK).JSON(log)
}

// UpdateLog godoc
// @Summary Patch an attendance log
// @Description Applies only the present, well-typed fields among action, confidence_score and timestamp.
// @Tags Attendance Logs
// @Accept json
// @Produce json
// @Param id path string true "Attendance log ID"
// @Param payload body object true "Sparse patch"
// @Success 200 {object} models.AttendanceLog
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /attendance/{id} [put]
func (h *AttendanceLogHandler) UpdateLog(c *fiber.Ctx) error {
	id, ok := recordID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid attendance id")
	}

	patch, err := models.ParseAttendanceLogPatch(c.Body())
	if err != nil {
		return patchFailure(c, err)
	}
	if patch.IsEmpty() {
		return errorJSON(c, fiber.StatusBadRequest, "No valid fields to update")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	log, err := h.repo.Update(ctx, id, patch)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return errorJSON(c, fiber.StatusBadRequest, "Attendance record not found")
	}
	if err != nil {
		return storeFailure(c, h.opts.Logger, "update attendance log", err)
	}
	return c.Status(fiber.StatusOK).JSON(log)
}

// DeleteLog godoc
// @Summary Delete an attendance log
// @Tags Attendance Logs
// @Produce json
// @Param id path string true "Attendance log ID"
// @Success 200 {object} models.DeleteSuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /attendance/{id} [delete]
func (h *AttendanceLogHandler) DeleteLog(c *fiber.Ctx) error {
	id, ok := recordID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid attendance id")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.repo.Delete(ctx, id); err != nil {
		return storeFailure(c, h.opts.Logger, "delete attendance log", err)
	}
	return c.Status(fiber.StatusOK).JSON(models.DeleteSuccessResponse{Success: true})
}

// userLogs loads the path user's logs for the requested day. When ok is
// false the error response has been written.
func (h *AttendanceLogHandler) userLogs(c *fiber.Ctx) (logs []models.AttendanceLog, ok bool, err error) {
	day, err := h.opts.day(c)
	if err != nil {
		return nil, false, invalidDate(c)
	}
	start, end, err := util.DayRange(day, h.opts.Location)
	if err != nil {
		return nil, false, invalidDate(c)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	logs, err = h.repo.FindByUserAndRange(ctx, c.Params("userId"), start, end)
	if err != nil {
		return nil, false, storeFailure(c, h.opts.Logger, "find user attendance logs", err)
	}
	if logs == nil {
		logs = []models.AttendanceLog{}
	}
	return logs, true, nil
}
