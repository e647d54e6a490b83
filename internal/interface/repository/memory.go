package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"roomalloc-service/internal/domain/entity"
)

// In-memory repository implementations, used by tests and local development.
// They mirror the Mongo semantics, including the version guard on room
// management saves, and hand out deep copies so callers can mutate records
// freely before saving them back.

// MemoryBookingRepository is a map-backed BookingRepository.
type MemoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*entity.Booking // key: tenantId|bookingId
}

// NewMemoryBookingRepository creates an empty in-memory booking repository.
func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{
		bookings: make(map[string]*entity.Booking),
	}
}

// Put stores or replaces a booking.
func (r *MemoryBookingRepository) Put(b *entity.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.TenantID+"|"+b.ID] = b
}

// Remove deletes a booking, mimicking a back-office delete.
func (r *MemoryBookingRepository) Remove(tenantID, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bookings, tenantID+"|"+id)
}

// FindByID returns the booking or entity.ErrNotFound.
func (r *MemoryBookingRepository) FindByID(_ context.Context, tenantID, id string) (*entity.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[tenantID+"|"+id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return b, nil
}

// FindByIDs returns the bookings matching ids; missing ids are skipped.
func (r *MemoryBookingRepository) FindByIDs(_ context.Context, tenantID string, ids []string) ([]*entity.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Booking
	for _, id := range ids {
		if b, ok := r.bookings[tenantID+"|"+id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

// FindLeaderOf scans the trip's bookings for one whose RelatedPersons list
// contains memberID.
func (r *MemoryBookingRepository) FindLeaderOf(_ context.Context, tenantID, tripID, memberID string) (*entity.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.bookings {
		if b.TenantID != tenantID || b.TripID != tripID {
			continue
		}
		for _, rp := range b.RelatedPersons {
			if rp.ID == memberID {
				return b, nil
			}
		}
	}
	return nil, entity.ErrNotFound
}

// MemoryRoomManagementRepository is a map-backed RoomManagementRepository
// with the same optimistic version semantics as the Mongo implementation.
type MemoryRoomManagementRepository struct {
	mu      sync.RWMutex
	records map[string]*entity.RoomManagement // key: tenantId|tripId|hotelName
	nextID  int
}

// NewMemoryRoomManagementRepository creates an empty in-memory room
// management repository.
func NewMemoryRoomManagementRepository() *MemoryRoomManagementRepository {
	return &MemoryRoomManagementRepository{
		records: make(map[string]*entity.RoomManagement),
	}
}

func roomKey(tenantID, tripID, hotelName string) string {
	return tenantID + "|" + tripID + "|" + hotelName
}

// Find returns a copy of the record or entity.ErrNotFound.
func (r *MemoryRoomManagementRepository) Find(_ context.Context, tenantID, tripID, hotelName string) (*entity.RoomManagement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[roomKey(tenantID, tripID, hotelName)]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return cloneRecord(rec), nil
}

// FindByTrip returns copies of every record of the trip.
func (r *MemoryRoomManagementRepository) FindByTrip(_ context.Context, tenantID, tripID string) ([]*entity.RoomManagement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.RoomManagement
	for _, rec := range r.records {
		if rec.TenantID == tenantID && rec.TripID == tripID {
			out = append(out, cloneRecord(rec))
		}
	}
	return out, nil
}

// Save upserts a copy of the record, rejecting stale versions with
// entity.ErrVersionConflict.
func (r *MemoryRoomManagementRepository) Save(_ context.Context, record *entity.RoomManagement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := roomKey(record.TenantID, record.TripID, record.HotelName)
	if stored, ok := r.records[key]; ok && stored.Version != record.Version {
		return entity.ErrVersionConflict
	}

	now := time.Now()
	record.UpdatedAt = now
	record.Version++
	if record.ID == "" {
		r.nextID++
		record.ID = fmt.Sprintf("mem-%d", r.nextID)
		record.CreatedAt = now
	}
	r.records[key] = cloneRecord(record)
	return nil
}

// Delete removes the record; absent records are ignored.
func (r *MemoryRoomManagementRepository) Delete(_ context.Context, tenantID, tripID, hotelName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, roomKey(tenantID, tripID, hotelName))
	return nil
}

func cloneRecord(rec *entity.RoomManagement) *entity.RoomManagement {
	out := *rec
	out.Rooms = make([]entity.Room, len(rec.Rooms))
	for i, room := range rec.Rooms {
		cloned := room
		cloned.Occupants = make([]*entity.Occupant, len(room.Occupants))
		for j, o := range room.Occupants {
			if o != nil {
				oc := *o
				cloned.Occupants[j] = &oc
			}
		}
		out.Rooms[i] = cloned
	}
	return &out
}

// MemoryProgramRepository is a map-backed ProgramRepository.
type MemoryProgramRepository struct {
	mu       sync.RWMutex
	programs map[string]*entity.Program // key: tenantId|programId
}

// NewMemoryProgramRepository creates an empty in-memory program repository.
func NewMemoryProgramRepository() *MemoryProgramRepository {
	return &MemoryProgramRepository{
		programs: make(map[string]*entity.Program),
	}
}

// Put stores or replaces a program.
func (r *MemoryProgramRepository) Put(p *entity.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.programs[p.TenantID+"|"+p.ID] = p
}

// FindByID returns the program or entity.ErrNotFound.
func (r *MemoryProgramRepository) FindByID(_ context.Context, tenantID, id string) (*entity.Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.programs[tenantID+"|"+id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return p, nil
}
