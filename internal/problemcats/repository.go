package problemcats

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jambidev/barokah/internal/models"
)

type Repository interface {
	Create(ctx context.Context, item models.ProblemCategory) error
	Update(ctx context.Context, id string, set bson.M) (models.ProblemCategory, error)
	Delete(ctx context.Context, id string) (bool, error)
	PushProblem(ctx context.Context, id string, problem models.Problem, at time.Time) (models.ProblemCategory, error)
	ListActive(ctx context.Context) ([]models.ProblemCategory, error)
	ListAdmin(ctx context.Context) ([]models.ProblemCategory, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item models.ProblemCategory) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (models.ProblemCategory, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": set}

	var updated models.ProblemCategory
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		return models.ProblemCategory{}, err
	}
	return updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoRepository) PushProblem(ctx context.Context, id string, problem models.Problem, at time.Time) (models.ProblemCategory, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$push": bson.M{"problems": problem},
		"$set":  bson.M{"updatedAt": at},
	}

	var updated models.ProblemCategory
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		return models.ProblemCategory{}, err
	}
	return updated, nil
}

func (r *MongoRepository) ListActive(ctx context.Context) ([]models.ProblemCategory, error) {
	return r.list(ctx, bson.M{"is_active": true})
}

func (r *MongoRepository) ListAdmin(ctx context.Context) ([]models.ProblemCategory, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoRepository) list(ctx context.Context, query bson.M) ([]models.ProblemCategory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.ProblemCategory, 0)
	for cursor.Next(ctx) {
		var category models.ProblemCategory
		if err := cursor.Decode(&category); err != nil {
			return nil, err
		}
		items = append(items, category)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
