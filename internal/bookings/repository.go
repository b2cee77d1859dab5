package bookings

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jambidev/barokah/internal/models"
)

type Repository interface {
	Insert(ctx context.Context, booking models.Booking, timeline []models.TimelineEntry) error
	ListAll(ctx context.Context) ([]models.Booking, error)
	Get(ctx context.Context, id string) (models.Booking, error)
	FindByCodePhone(ctx context.Context, code, phone string) (models.Booking, error)
	UpdateStatus(ctx context.Context, id, status string, at time.Time) (bool, error)
	CompleteTimelineStep(ctx context.Context, bookingID, status string, at time.Time) error
	AssignTechnician(ctx context.Context, id, technicianID string, at time.Time) (bool, error)
	UpdateActualCost(ctx context.Context, id, actualCost string, at time.Time) (bool, error)
	Timeline(ctx context.Context, bookingID string) ([]models.TimelineEntry, error)
}

type MongoRepository struct {
	bookings *mongo.Collection
	timeline *mongo.Collection
}

func NewRepository(bookings, timeline *mongo.Collection) *MongoRepository {
	return &MongoRepository{bookings: bookings, timeline: timeline}
}

func (r *MongoRepository) Insert(ctx context.Context, booking models.Booking, timeline []models.TimelineEntry) error {
	if _, err := r.bookings.InsertOne(ctx, booking); err != nil {
		return err
	}
	if len(timeline) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(timeline))
	for _, entry := range timeline {
		docs = append(docs, entry)
	}
	_, err := r.timeline.InsertMany(ctx, docs)
	return err
}

func (r *MongoRepository) ListAll(ctx context.Context) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.bookings.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.Booking, 0)
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MongoRepository) Get(ctx context.Context, id string) (models.Booking, error) {
	var b models.Booking
	if err := r.bookings.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

func (r *MongoRepository) FindByCodePhone(ctx context.Context, code, phone string) (models.Booking, error) {
	var b models.Booking
	query := bson.M{"_id": code, "customer.phone": phone}
	if err := r.bookings.FindOne(ctx, query).Decode(&b); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

func (r *MongoRepository) UpdateStatus(ctx context.Context, id, status string, at time.Time) (bool, error) {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": at}}
	res, err := r.bookings.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoRepository) CompleteTimelineStep(ctx context.Context, bookingID, status string, at time.Time) error {
	update := bson.M{"$set": bson.M{"completed": true, "completedAt": at}}
	_, err := r.timeline.UpdateOne(ctx, bson.M{"bookingId": bookingID, "status": status}, update)
	return err
}

func (r *MongoRepository) AssignTechnician(ctx context.Context, id, technicianID string, at time.Time) (bool, error) {
	update := bson.M{"$set": bson.M{"technicianId": technicianID, "updatedAt": at}}
	res, err := r.bookings.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoRepository) UpdateActualCost(ctx context.Context, id, actualCost string, at time.Time) (bool, error) {
	update := bson.M{"$set": bson.M{"actualCost": actualCost, "updatedAt": at}}
	res, err := r.bookings.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoRepository) Timeline(ctx context.Context, bookingID string) ([]models.TimelineEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.timeline.Find(ctx, bson.M{"bookingId": bookingID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := make([]models.TimelineEntry, 0)
	for cursor.Next(ctx) {
		var entry models.TimelineEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
