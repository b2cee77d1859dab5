package printerbrands

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jambidev/barokah/internal/models"
)

type Repository interface {
	Create(ctx context.Context, item models.PrinterBrand) error
	Update(ctx context.Context, id string, set bson.M) (models.PrinterBrand, error)
	PushModel(ctx context.Context, id string, model models.PrinterModel, at time.Time) (models.PrinterBrand, error)
	ListActive(ctx context.Context) ([]models.PrinterBrand, error)
	ListAdmin(ctx context.Context) ([]models.PrinterBrand, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item models.PrinterBrand) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (models.PrinterBrand, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": set}

	var updated models.PrinterBrand
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		return models.PrinterBrand{}, err
	}
	return updated, nil
}

func (r *MongoRepository) PushModel(ctx context.Context, id string, model models.PrinterModel, at time.Time) (models.PrinterBrand, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$push": bson.M{"models": model},
		"$set":  bson.M{"updatedAt": at},
	}

	var updated models.PrinterBrand
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		return models.PrinterBrand{}, err
	}
	return updated, nil
}

func (r *MongoRepository) ListActive(ctx context.Context) ([]models.PrinterBrand, error) {
	return r.list(ctx, bson.M{"is_active": true})
}

func (r *MongoRepository) ListAdmin(ctx context.Context) ([]models.PrinterBrand, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoRepository) list(ctx context.Context, query bson.M) ([]models.PrinterBrand, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.PrinterBrand, 0)
	for cursor.Next(ctx) {
		var brand models.PrinterBrand
		if err := cursor.Decode(&brand); err != nil {
			return nil, err
		}
		items = append(items, brand)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
