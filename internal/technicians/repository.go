package technicians

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jambidev/barokah/internal/models"
)

type Repository interface {
	Create(ctx context.Context, item models.Technician) error
	Update(ctx context.Context, id string, set bson.M) (models.Technician, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListActive(ctx context.Context) ([]models.Technician, error)
	ListAdmin(ctx context.Context) ([]models.Technician, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item models.Technician) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (models.Technician, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": set}

	var updated models.Technician
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		return models.Technician{}, err
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

func (r *MongoRepository) ListActive(ctx context.Context) ([]models.Technician, error) {
	return r.list(ctx, bson.M{"is_active": true})
}

func (r *MongoRepository) ListAdmin(ctx context.Context) ([]models.Technician, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoRepository) list(ctx context.Context, query bson.M) ([]models.Technician, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.Technician, 0)
	for cursor.Next(ctx) {
		var tech models.Technician
		if err := cursor.Decode(&tech); err != nil {
			return nil, err
		}
		items = append(items, tech)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
