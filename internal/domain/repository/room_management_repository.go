package repository

import (
	"context"

	"roomalloc-service/internal/domain/entity"
)

// RoomManagementRepository persists the per-(tenant, trip, hotel) room lists.
// Records are created lazily on first assignment and deleted once their last
// occupant is removed; an empty room list is never stored.
type RoomManagementRepository interface {
	// Find returns the record for the hotel, or entity.ErrNotFound.
	Find(ctx context.Context, tenantID, tripID, hotelName string) (*entity.RoomManagement, error)

	// FindByTrip returns every record of the trip, across all hotels.
	FindByTrip(ctx context.Context, tenantID, tripID string) ([]*entity.RoomManagement, error)

	// Save upserts the record, guarded by its Version: when the stored
	// version differs from the one the record was loaded with, Save returns
	// entity.ErrVersionConflict and writes nothing. On success the record's
	// Version is incremented.
	Save(ctx context.Context, record *entity.RoomManagement) error

	// Delete removes the record for the hotel. Deleting an absent record is
	// not an error.
	Delete(ctx context.Context, tenantID, tripID, hotelName string) error
}
