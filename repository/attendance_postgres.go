package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"attendance-tracker/models"
)

type postgresAttendanceRepository struct {
	db *gorm.DB
}

func NewPostgresAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &postgresAttendanceRepository{db: db}
}

func (r *postgresAttendanceRepository) MarkEnter(ctx context.Context, userID, date string, timeIn time.Time, confidence *float64) (*models.Attendance, error) {
	d, err := dateValue(date)
	if err != nil {
		return nil, storeErr("mark enter", err)
	}
	row := attendanceRow{
		UserID:          userID,
		Date:            d,
		Status:          models.StatusEntered,
		TimeIn:          timeIn,
		ConfidenceScore: confidence,
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(&row)
	if res.Error != nil {
		return nil, storeErr("mark enter", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadyEntered
	}
	m := row.toModel()
	return &m, nil
}

func (r *postgresAttendanceRepository) MarkExit(ctx context.Context, userID, date string, timeOut time.Time) (*models.Attendance, error) {
	var rows []attendanceRow
	res := r.db.WithContext(ctx).
		Model(&rows).
		Clauses(clause.Returning{}).
		Where("user_id = ? AND date = ? AND time_out IS NULL", userID, date).
		Updates(map[string]any{
			"status":     models.StatusExited,
			"time_out":   timeOut,
			"updated_at": timeOut,
		})
	if res.Error != nil {
		return nil, storeErr("mark exit", res.Error)
	}
	if res.RowsAffected > 0 && len(rows) > 0 {
		m := rows[0].toModel()
		return &m, nil
	}

	// Nothing open to close: tell a missing row apart from a closed one.
	var existing attendanceRow
	err := r.db.WithContext(ctx).
		Select("id").
		Where("user_id = ? AND date = ?", userID, date).
		Take(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, storeErr("mark exit", err)
	}
	return nil, ErrAlreadyExited
}

func (r *postgresAttendanceRepository) FindByDateWithUsers(ctx context.Context, date string) ([]models.AttendanceWithUser, error) {
	var rows []attendanceRow
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("date = ?", date).
		Order("time_in DESC").
		Find(&rows).Error
	if err != nil {
		return nil, storeErr("find attendance by date", err)
	}

	out := make([]models.AttendanceWithUser, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.AttendanceWithUser{
			Attendance: row.toModel(),
			Users:      row.User.summary(),
		})
	}
	return out, nil
}

func (r *postgresAttendanceRepository) Update(ctx context.Context, id string, patch models.AttendancePatch, updatedAt time.Time) (*models.Attendance, error) {
	set := attendanceAssignments(patch)
	set["updated_at"] = updatedAt

	var rows []attendanceRow
	res := r.db.WithContext(ctx).
		Model(&rows).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(set)
	if res.Error != nil {
		return nil, storeErr("update attendance", res.Error)
	}
	if res.RowsAffected == 0 || len(rows) == 0 {
		return nil, ErrRecordNotFound
	}
	m := rows[0].toModel()
	return &m, nil
}

func (r *postgresAttendanceRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&attendanceRow{}).Error
	return storeErr("delete attendance", err)
}
