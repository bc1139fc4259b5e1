package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"attendance-tracker/models"
)

type mongoAttendanceRepository struct {
	collection *mongo.Collection
}

func NewMongoAttendanceRepository(db *mongo.Database) AttendanceRepository {
	return &mongoAttendanceRepository{collection: db.Collection(AttendanceCollection)}
}

func (r *mongoAttendanceRepository) MarkEnter(ctx context.Context, userID, date string, timeIn time.Time, confidence *float64) (*models.Attendance, error) {
	doc := attendanceDocument{
		ID:              uuid.NewString(),
		UserID:          userID,
		Date:            date,
		Status:          models.StatusEntered,
		TimeIn:          timeIn,
		ConfidenceScore: confidence,
		CreatedAt:       timeIn,
		UpdatedAt:       timeIn,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyEntered
		}
		return nil, storeErr("mark enter", err)
	}
	m := doc.toModel()
	return &m, nil
}

func (r *mongoAttendanceRepository) MarkExit(ctx context.Context, userID, date string, timeOut time.Time) (*models.Attendance, error) {
	filter := bson.M{"user_id": userID, "date": date, "time_out": nil}
	update := bson.M{"$set": bson.M{
		"status":     models.StatusExited,
		"time_out":   timeOut,
		"updated_at": timeOut,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc attendanceDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		m := doc.toModel()
		return &m, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storeErr("mark exit", err)
	}

	// Nothing open to close: tell a missing row apart from a closed one.
	err = r.collection.FindOne(ctx, bson.M{"user_id": userID, "date": date}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, storeErr("mark exit", err)
	}
	return nil, ErrAlreadyExited
}

func (r *mongoAttendanceRepository) FindByDateWithUsers(ctx context.Context, date string) ([]models.AttendanceWithUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "date", Value: date}}}},
		{{Key: "$sort", Value: bson.D{{Key: "time_in", Value: -1}}}},
	}
	pipeline = append(pipeline, userLookup()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeErr("find attendance by date", err)
	}
	defer cursor.Close(ctx)

	var docs []attendanceWithUserDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeErr("find attendance by date", err)
	}

	out := make([]models.AttendanceWithUser, 0, len(docs))
	for _, d := range docs {
		out = append(out, models.AttendanceWithUser{
			Attendance: d.Attendance.toModel(),
			Users:      d.Users.summary(),
		})
	}
	return out, nil
}

func (r *mongoAttendanceRepository) Update(ctx context.Context, id string, patch models.AttendancePatch, updatedAt time.Time) (*models.Attendance, error) {
	set := toBSON(attendanceAssignments(patch))
	set["updated_at"] = updatedAt
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc attendanceDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, storeErr("update attendance", err)
	}
	m := doc.toModel()
	return &m, nil
}

func (r *mongoAttendanceRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return storeErr("delete attendance", err)
}
