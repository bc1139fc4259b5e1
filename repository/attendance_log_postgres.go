package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"attendance-tracker/models"
)

type postgresAttendanceLogRepository struct {
	db *gorm.DB
}

func NewPostgresAttendanceLogRepository(db *gorm.DB) AttendanceLogRepository {
	return &postgresAttendanceLogRepository{db: db}
}

func (r *postgresAttendanceLogRepository) Append(ctx context.Context, log *models.AttendanceLog) (*models.AttendanceLog, error) {
	row := attendanceLogRow{
		UserID:          log.UserID,
		Action:          log.Action,
		Timestamp:       log.Timestamp,
		ConfidenceScore: log.ConfidenceScore,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, storeErr("append attendance log", err)
	}
	m := row.toModel()
	return &m, nil
}

func (r *postgresAttendanceLogRepository) FindByRangeWithUsers(ctx context.Context, start, end time.Time) ([]models.AttendanceLogWithUser, error) {
	var rows []attendanceLogRow
	err := r.db.WithContext(ctx).
		Preload("User").
		Where(`"timestamp" >= ? AND "timestamp" <= ?`, start, end).
		Order(`"timestamp" ASC`).
		Find(&rows).Error
	if err != nil {
		return nil, storeErr("find attendance logs by range", err)
	}

	out := make([]models.AttendanceLogWithUser, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.AttendanceLogWithUser{
			AttendanceLog: row.toModel(),
			Users:         row.User.summary(),
		})
	}
	return out, nil
}

func (r *postgresAttendanceLogRepository) FindByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]models.AttendanceLog, error) {
	var rows []attendanceLogRow
	err := r.db.WithContext(ctx).
		Where(`user_id = ? AND "timestamp" >= ? AND "timestamp" <= ?`, userID, start, end).
		Order(`"timestamp" ASC`).
		Find(&rows).Error
	if err != nil {
		return nil, storeErr("find attendance logs by user", err)
	}

	out := make([]models.AttendanceLog, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

func (r *postgresAttendanceLogRepository) Update(ctx context.Context, id string, patch models.AttendanceLogPatch) (*models.AttendanceLog, error) {
	var rows []attendanceLogRow
	res := r.db.WithContext(ctx).
		Model(&rows).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(attendanceLogAssignments(patch))
	if res.Error != nil {
		return nil, storeErr("update attendance log", res.Error)
	}
	if res.RowsAffected == 0 || len(rows) == 0 {
		return nil, ErrRecordNotFound
	}
	m := rows[0].toModel()
	return &m, nil
}

func (r *postgresAttendanceLogRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&attendanceLogRow{}).Error
	return storeErr("delete attendance log", err)
}
