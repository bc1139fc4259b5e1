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

type mongoAttendanceLogRepository struct {
	collection *mongo.Collection
}

func NewMongoAttendanceLogRepository(db *mongo.Database) AttendanceLogRepository {
	return &mongoAttendanceLogRepository{collection: db.Collection(AttendanceLogCollection)}
}

func (r *mongoAttendanceLogRepository) Append(ctx context.Context, log *models.AttendanceLog) (*models.AttendanceLog, error) {
	doc := attendanceLogDocument{
		ID:              uuid.NewString(),
		UserID:          log.UserID,
		Action:          log.Action,
		Timestamp:       log.Timestamp,
		ConfidenceScore: log.ConfidenceScore,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, storeErr("append attendance log", err)
	}
	m := doc.toModel()
	return &m, nil
}

func (r *mongoAttendanceLogRepository) FindByRangeWithUsers(ctx context.Context, start, end time.Time) ([]models.AttendanceLogWithUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "timestamp", Value: bson.D{
			{Key: "$gte", Value: start},
			{Key: "$lte", Value: end},
		}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "timestamp", Value: 1}}}},
	}
	pipeline = append(pipeline, userLookup()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeErr("find attendance logs by range", err)
	}
	defer cursor.Close(ctx)

	var docs []attendanceLogWithUserDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeErr("find attendance logs by range", err)
	}

	out := make([]models.AttendanceLogWithUser, 0, len(docs))
	for _, d := range docs {
		out = append(out, models.AttendanceLogWithUser{
			AttendanceLog: d.Log.toModel(),
			Users:         d.Users.summary(),
		})
	}
	return out, nil
}

func (r *mongoAttendanceLogRepository) FindByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]models.AttendanceLog, error) {
	filter := bson.M{
		"user_id":   userID,
		"timestamp": bson.M{"$gte": start, "$lte": end},
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("find attendance logs by user", err)
	}
	defer cursor.Close(ctx)

	var docs []attendanceLogDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeErr("find attendance logs by user", err)
	}

	out := make([]models.AttendanceLog, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (r *mongoAttendanceLogRepository) Update(ctx context.Context, id string, patch models.AttendanceLogPatch) (*models.AttendanceLog, error) {
	set := toBSON(attendanceLogAssignments(patch))
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc attendanceLogDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, storeErr("update attendance log", err)
	}
	m := doc.toModel()
	return &m, nil
}

func (r *mongoAttendanceLogRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return storeErr("delete attendance log", err)
}
