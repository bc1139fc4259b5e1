package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"attendance-tracker/models"
)

const (
	UserCollection          = "users"
	AttendanceCollection    = "attendance"
	AttendanceLogCollection = "attendance_logs"
)

type userDocument struct {
	UserID    string    `bson:"_id"`
	Name      string    `bson:"name"`
	ImageURL  string    `bson:"image_url"`
	CreatedAt time.Time `bson:"created_at"`
}

type attendanceDocument struct {
	ID              string     `bson:"_id"`
	UserID          string     `bson:"user_id"`
	Date            string     `bson:"date"`
	Status          string     `bson:"status"`
	TimeIn          time.Time  `bson:"time_in"`
	TimeOut         *time.Time `bson:"time_out"`
	ConfidenceScore *float64   `bson:"confidence_score"`
	CreatedAt       time.Time  `bson:"created_at"`
	UpdatedAt       time.Time  `bson:"updated_at"`
}

// attendanceWithUserDocument is the shape of a $lookup result. The inlined
// document must sit in an exported field or the codec skips it.
type attendanceWithUserDocument struct {
	Attendance attendanceDocument `bson:",inline"`
	Users      *userDocument      `bson:"users,omitempty"`
}

type attendanceLogDocument struct {
	ID              string    `bson:"_id"`
	UserID          string    `bson:"user_id"`
	Action          string    `bson:"action"`
	Timestamp       time.Time `bson:"timestamp"`
	ConfidenceScore *float64  `bson:"confidence_score"`
}

type attendanceLogWithUserDocument struct {
	Log   attendanceLogDocument `bson:",inline"`
	Users *userDocument         `bson:"users,omitempty"`
}

// EnsureMongoIndexes creates the unique {user_id, date} index that makes
// enter idempotent, plus the log lookup indexes.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(AttendanceCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idx_attendance_user_date"),
	})
	if err != nil {
		return storeErr("create attendance index", err)
	}

	_, err = db.Collection(AttendanceLogCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: 1}},
			Options: options.Index().SetName("idx_attendance_logs_user_ts"),
		},
		{
			Keys:    bson.D{{Key: "timestamp", Value: 1}},
			Options: options.Index().SetName("idx_attendance_logs_ts"),
		},
	})
	return storeErr("create attendance log indexes", err)
}

// NewMongoRepositories returns repositories backed by db.
func NewMongoRepositories(db *mongo.Database) Repositories {
	return Repositories{
		Attendance:    NewMongoAttendanceRepository(db),
		AttendanceLog: NewMongoAttendanceLogRepository(db),
		User:          NewMongoUserRepository(db),
	}
}

// userLookup joins users onto each document as "users", keeping documents
// whose user is missing.
func userLookup() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: UserCollection},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "users"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$users"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

func (d userDocument) toModel() models.User {
	return models.User{
		UserID:    d.UserID,
		Name:      d.Name,
		ImageURL:  d.ImageURL,
		CreatedAt: d.CreatedAt,
	}
}

func (d *userDocument) summary() *models.UserSummary {
	if d == nil {
		return nil
	}
	return d.toModel().Summary()
}

func (d attendanceDocument) toModel() models.Attendance {
	return models.Attendance{
		ID:              d.ID,
		UserID:          d.UserID,
		Date:            d.Date,
		Status:          d.Status,
		TimeIn:          d.TimeIn,
		TimeOut:         d.TimeOut,
		ConfidenceScore: d.ConfidenceScore,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func (d attendanceLogDocument) toModel() models.AttendanceLog {
	return models.AttendanceLog{
		ID:              d.ID,
		UserID:          d.UserID,
		Action:          d.Action,
		Timestamp:       d.Timestamp,
		ConfidenceScore: d.ConfidenceScore,
	}
}

func toBSON(set map[string]any) bson.M {
	return bson.M(set)
}
