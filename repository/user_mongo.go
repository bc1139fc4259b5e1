package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"attendance-tracker/models"
)

type mongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{collection: db.Collection(UserCollection)}
}

func (r *mongoUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, storeErr("find users", err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeErr("find users", err)
	}
	users := make([]models.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toModel())
	}
	return users, nil
}

func (r *mongoUserRepository) FindByUserID(ctx context.Context, userID string) (*models.User, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("find user", err)
	}
	u := doc.toModel()
	return &u, nil
}

func (r *mongoUserRepository) Upsert(ctx context.Context, user *models.User) error {
	update := bson.M{
		"$set":         bson.M{"name": user.Name, "image_url": user.ImageURL},
		"$setOnInsert": bson.M{"created_at": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.UserID}, update, options.Update().SetUpsert(true))
	return storeErr("upsert user", err)
}
