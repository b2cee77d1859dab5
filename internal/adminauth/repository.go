package adminauth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jambidev/barokah/internal/models"
)

type Repository interface {
	Insert(ctx context.Context, user models.User) error
	FindByUsername(ctx context.Context, username string) (models.User, error)
	UpdatePassword(ctx context.Context, id, hash string, at time.Time) (bool, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Insert(ctx context.Context, user models.User) error {
	_, err := r.col.InsertOne(ctx, user)
	return err
}

func (r *MongoRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	query := bson.M{"username": username, "role": models.UserRoleAdmin}
	if err := r.col.FindOne(ctx, query).Decode(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *MongoRepository) UpdatePassword(ctx context.Context, id, hash string, at time.Time) (bool, error) {
	update := bson.M{
		"$set": bson.M{
			"passwordHash": hash,
			"updatedAt":    at,
		},
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id, "role": models.UserRoleAdmin}, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
