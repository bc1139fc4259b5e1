package repository

import (
	"context"
	"errors"
	"time"

	"attendance-tracker/models"
)

var (
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrAlreadyEntered = errors.New("already marked entered today")
	ErrAlreadyExited  = errors.New("already marked exited today")
)

// StoreError wraps a failure reported by the underlying database. Its message
// is the store's message, unchanged.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// AttendanceRepository stores status rows: one per user per day.
type AttendanceRepository interface {
	// MarkEnter inserts today's row unless one already exists, in which case
	// it returns ErrAlreadyEntered. The existence check and the insert are a
	// single store operation.
	MarkEnter(ctx context.Context, userID, date string, timeIn time.Time, confidence *float64) (*models.Attendance, error)
	// MarkExit closes today's open row. It returns ErrRecordNotFound when no
	// row exists and ErrAlreadyExited when time_out is already set.
	MarkExit(ctx context.Context, userID, date string, timeOut time.Time) (*models.Attendance, error)
	FindByDateWithUsers(ctx context.Context, date string) ([]models.AttendanceWithUser, error)
	// Update applies patch and stamps updated_at with updatedAt.
	Update(ctx context.Context, id string, patch models.AttendancePatch, updatedAt time.Time) (*models.Attendance, error)
	// Delete removes the row. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}

// AttendanceLogRepository stores the append-only enter/exit log.
type AttendanceLogRepository interface {
	Append(ctx context.Context, log *models.AttendanceLog) (*models.AttendanceLog, error)
	FindByRangeWithUsers(ctx context.Context, start, end time.Time) ([]models.AttendanceLogWithUser, error)
	FindByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]models.AttendanceLog, error)
	Update(ctx context.Context, id string, patch models.AttendanceLogPatch) (*models.AttendanceLog, error)
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	FindAll(ctx context.Context) ([]models.User, error)
	// FindByUserID returns nil, nil when the user does not exist.
	FindByUserID(ctx context.Context, userID string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
}

// Repositories bundles the repositories of one store driver.
type Repositories struct {
	Attendance    AttendanceRepository
	AttendanceLog AttendanceLogRepository
	User          UserRepository
}
