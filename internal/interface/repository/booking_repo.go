package repository

import (
	"context"
	"errors"

	"roomalloc-service/internal/domain/entity"
	"roomalloc-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepository implements BookingRepository
type MongoBookingRepository struct {
	collection *mongo.Collection
}

// NewMongoBookingRepository creates a new booking repository
func NewMongoBookingRepository(db *mongo.Database) repository.BookingRepository {
	collection := db.Collection("bookings")

	// Index for per-trip scans and the reverse family-leader lookup
	ctx := context.Background()
	tripIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "tripId", Value: 1}},
	}
	collection.Indexes().CreateOne(ctx, tripIndex)

	memberIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "relatedPersons.id", Value: 1}},
	}
	collection.Indexes().CreateOne(ctx, memberIndex)

	return &MongoBookingRepository{
		collection: collection,
	}
}

// FindByID finds a booking by id within the tenant
func (r *MongoBookingRepository) FindByID(ctx context.Context, tenantID, id string) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "tenantId": tenantID}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDs finds all bookings matching ids within the tenant; missing ids
// are simply absent from the result
func (r *MongoBookingRepository) FindByIDs(ctx context.Context, tenantID string, ids []string) ([]*entity.Booking, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{
		"tenantId": tenantID,
		"_id":      bson.M{"$in": ids},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []*entity.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindLeaderOf finds the booking in the trip whose relatedPersons list
// contains memberID. This is the containment query backing family
// resolution; it scans the trip's bookings via the relatedPersons.id index.
func (r *MongoBookingRepository) FindLeaderOf(ctx context.Context, tenantID, tripID, memberID string) (*entity.Booking, error) {
	filter := bson.M{
		"tenantId":       tenantID,
		"tripId":         tripID,
		"relatedPersons": bson.M{"$elemMatch": bson.M{"id": memberID}},
	}
	var leader entity.Booking
	err := r.collection.FindOne(ctx, filter).Decode(&leader)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &leader, nil
}
