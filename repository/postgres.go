package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"attendance-tracker/models"
)

type userRow struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	ImageURL  string    `gorm:"column:image_url"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (userRow) TableName() string { return "users" }

type attendanceRow struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id"`
	UserID          string         `gorm:"column:user_id;not null;uniqueIndex:idx_attendance_user_date,priority:1"`
	Date            datatypes.Date `gorm:"column:date;not null;uniqueIndex:idx_attendance_user_date,priority:2"`
	Status          string         `gorm:"column:status;not null"`
	TimeIn          time.Time      `gorm:"column:time_in;not null;index"`
	TimeOut         *time.Time     `gorm:"column:time_out"`
	ConfidenceScore *float64       `gorm:"column:confidence_score"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`

	User *userRow `gorm:"foreignKey:UserID;references:UserID"`
}

func (attendanceRow) TableName() string { return "attendance" }

type attendanceLogRow struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id"`
	UserID          string    `gorm:"column:user_id;not null;index:idx_attendance_logs_user_ts,priority:1"`
	Action          string    `gorm:"column:action;not null"`
	Timestamp       time.Time `gorm:"column:timestamp;not null;index:idx_attendance_logs_user_ts,priority:2;index:idx_attendance_logs_ts"`
	ConfidenceScore *float64  `gorm:"column:confidence_score"`

	User *userRow `gorm:"foreignKey:UserID;references:UserID"`
}

func (attendanceLogRow) TableName() string { return "attendance_logs" }

// MigratePostgres creates the tables and the (user_id, date) unique index
// that makes enter idempotent.
func MigratePostgres(db *gorm.DB) error {
	return db.AutoMigrate(&userRow{}, &attendanceRow{}, &attendanceLogRow{})
}

// NewPostgresRepositories returns repositories backed by db.
func NewPostgresRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Attendance:    NewPostgresAttendanceRepository(db),
		AttendanceLog: NewPostgresAttendanceLogRepository(db),
		User:          NewPostgresUserRepository(db),
	}
}

func dateValue(day string) (datatypes.Date, error) {
	t, err := time.Parse(models.DateLayout, day)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

func (r userRow) toModel() models.User {
	return models.User{
		UserID:    r.UserID,
		Name:      r.Name,
		ImageURL:  r.ImageURL,
		CreatedAt: r.CreatedAt,
	}
}

func (r *userRow) summary() *models.UserSummary {
	if r == nil {
		return nil
	}
	return r.toModel().Summary()
}

func (r attendanceRow) toModel() models.Attendance {
	return models.Attendance{
		ID:              r.ID.String(),
		UserID:          r.UserID,
		Date:            time.Time(r.Date).Format(models.DateLayout),
		Status:          r.Status,
		TimeIn:          r.TimeIn,
		TimeOut:         r.TimeOut,
		ConfidenceScore: r.ConfidenceScore,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (r attendanceLogRow) toModel() models.AttendanceLog {
	return models.AttendanceLog{
		ID:              r.ID.String(),
		UserID:          r.UserID,
		Action:          r.Action,
		Timestamp:       r.Timestamp,
		ConfidenceScore: r.ConfidenceScore,
	}
}
