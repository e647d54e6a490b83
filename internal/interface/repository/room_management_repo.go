package repository

import (
	"context"
	"errors"
	"time"

	"roomalloc-service/internal/domain/entity"
	"roomalloc-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRoomManagementRepository implements RoomManagementRepository
type MongoRoomManagementRepository struct {
	collection *mongo.Collection
}

// NewMongoRoomManagementRepository creates a new room management repository
func NewMongoRoomManagementRepository(db *mongo.Database) repository.RoomManagementRepository {
	collection := db.Collection("room_management")

	// One record per (tenant, trip, hotel)
	ctx := context.Background()
	keyIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "tenantId", Value: 1},
			{Key: "tripId", Value: 1},
			{Key: "hotelName", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, keyIndex)

	return &MongoRoomManagementRepository{
		collection: collection,
	}
}

// Find returns the record for one hotel within one trip
func (r *MongoRoomManagementRepository) Find(ctx context.Context, tenantID, tripID, hotelName string) (*entity.RoomManagement, error) {
	filter := bson.M{"tenantId": tenantID, "tripId": tripID, "hotelName": hotelName}
	var record entity.RoomManagement
	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByTrip returns every record of the trip across all hotels
func (r *MongoRoomManagementRepository) FindByTrip(ctx context.Context, tenantID, tripID string) ([]*entity.RoomManagement, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"tenantId": tenantID, "tripId": tripID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*entity.RoomManagement
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Save upserts the record guarded by its version. The filter matches on the
// version the record was loaded with; a stale version means the upsert tries
// to insert a duplicate key, which the unique index rejects and we surface
// as ErrVersionConflict for the caller to retry.
func (r *MongoRoomManagementRepository) Save(ctx context.Context, record *entity.RoomManagement) error {
	now := time.Now()
	record.UpdatedAt = now

	loadedVersion := record.Version
	record.Version = loadedVersion + 1

	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
		record.CreatedAt = now
	}

	filter := bson.M{
		"tenantId":  record.TenantID,
		"tripId":    record.TripID,
		"hotelName": record.HotelName,
		"version":   loadedVersion,
	}
	update := bson.M{"$set": bson.M{
		"tenantId":  record.TenantID,
		"tripId":    record.TripID,
		"hotelName": record.HotelName,
		"rooms":     record.Rooms,
		"version":   record.Version,
		"createdAt": record.CreatedAt,
		"updatedAt": record.UpdatedAt,
	}}

	opts := options.Update().SetUpsert(true)
	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		record.Version = loadedVersion
		if mongo.IsDuplicateKeyError(err) {
			return entity.ErrVersionConflict
		}
		return err
	}

	if result.UpsertedCount > 0 && result.UpsertedID != nil {
		if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
			record.ID = oid.Hex()
		}
	}
	return nil
}

// Delete removes the record for one hotel. Absent records are ignored.
func (r *MongoRoomManagementRepository) Delete(ctx context.Context, tenantID, tripID, hotelName string) error {
	filter := bson.M{"tenantId": tenantID, "tripId": tripID, "hotelName": hotelName}
	_, err := r.collection.DeleteOne(ctx, filter)
	return err
}
