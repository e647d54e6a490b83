package repository

import (
	"context"

	"roomalloc-service/internal/domain/entity"
)

// BookingRepository defines read access to traveler bookings. The allocator
// only reads bookings; their lifecycle is owned by the back-office layer.
type BookingRepository interface {
	// FindByID returns the booking with the given id for the tenant, or
	// entity.ErrNotFound.
	FindByID(ctx context.Context, tenantID, id string) (*entity.Booking, error)

	// FindByIDs returns the bookings matching ids for the tenant. Missing
	// ids are skipped, not reported.
	FindByIDs(ctx context.Context, tenantID string, ids []string) ([]*entity.Booking, error)

	// FindLeaderOf returns the booking in the same trip whose RelatedPersons
	// list contains memberID, or entity.ErrNotFound when no such leader
	// exists. This is a containment query over the member list and scans
	// the trip's bookings.
	FindLeaderOf(ctx context.Context, tenantID, tripID, memberID string) (*entity.Booking, error)
}
