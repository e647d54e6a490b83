package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"roomalloc-service/internal/domain/entity"
)

func TestMemoryRoomManagementSaveBumpsVersion(t *testing.T) {
	repo := NewMemoryRoomManagementRepository()
	ctx := context.Background()

	record := &entity.RoomManagement{
		TenantID:  "acme",
		TripID:    "trip-1",
		HotelName: "Hilton",
		Rooms:     []entity.Room{entity.NewRoom("Double 1", "Double", 2)},
	}
	record.Rooms[0].Seat(&entity.Occupant{ID: "b1"})

	require.NoError(t, repo.Save(ctx, record))
	require.Equal(t, int64(1), record.Version)
	require.NotEmpty(t, record.ID)

	loaded, err := repo.Find(ctx, "acme", "trip-1", "Hilton")
	require.NoError(t, err)
	require.Equal(t, int64(1), loaded.Version)

	require.NoError(t, repo.Save(ctx, loaded))
	require.Equal(t, int64(2), loaded.Version)
}

func TestMemoryRoomManagementStaleSaveConflicts(t *testing.T) {
	repo := NewMemoryRoomManagementRepository()
	ctx := context.Background()

	record := &entity.RoomManagement{TenantID: "acme", TripID: "trip-1", HotelName: "Hilton",
		Rooms: []entity.Room{entity.NewRoom("Double 1", "Double", 2)}}
	require.NoError(t, repo.Save(ctx, record))

	// Two writers load the same version; the slower one must be rejected.
	first, err := repo.Find(ctx, "acme", "trip-1", "Hilton")
	require.NoError(t, err)
	second, err := repo.Find(ctx, "acme", "trip-1", "Hilton")
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, first))
	require.ErrorIs(t, repo.Save(ctx, second), entity.ErrVersionConflict)
}

func TestMemoryRoomManagementFindReturnsCopy(t *testing.T) {
	repo := NewMemoryRoomManagementRepository()
	ctx := context.Background()

	record := &entity.RoomManagement{TenantID: "acme", TripID: "trip-1", HotelName: "Hilton",
		Rooms: []entity.Room{entity.NewRoom("Double 1", "Double", 2)}}
	record.Rooms[0].Seat(&entity.Occupant{ID: "b1"})
	require.NoError(t, repo.Save(ctx, record))

	loaded, err := repo.Find(ctx, "acme", "trip-1", "Hilton")
	require.NoError(t, err)
	loaded.Rooms[0].Occupants[0] = nil

	again, err := repo.Find(ctx, "acme", "trip-1", "Hilton")
	require.NoError(t, err)
	require.NotNil(t, again.Rooms[0].Occupants[0], "mutating a loaded copy must not touch the store")
}

func TestMemoryRoomManagementDelete(t *testing.T) {
	repo := NewMemoryRoomManagementRepository()
	ctx := context.Background()

	record := &entity.RoomManagement{TenantID: "acme", TripID: "trip-1", HotelName: "Hilton",
		Rooms: []entity.Room{entity.NewRoom("Double 1", "Double", 2)}}
	require.NoError(t, repo.Save(ctx, record))

	require.NoError(t, repo.Delete(ctx, "acme", "trip-1", "Hilton"))
	_, err := repo.Find(ctx, "acme", "trip-1", "Hilton")
	require.ErrorIs(t, err, entity.ErrNotFound)

	// Deleting twice is fine.
	require.NoError(t, repo.Delete(ctx, "acme", "trip-1", "Hilton"))
}

func TestMemoryBookingFindLeaderOf(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	leader := &entity.Booking{ID: "b1", TenantID: "acme", TripID: "trip-1",
		RelatedPersons: []entity.RelatedPerson{{ID: "b2"}}}
	member := &entity.Booking{ID: "b2", TenantID: "acme", TripID: "trip-1"}
	repo.Put(leader)
	repo.Put(member)

	found, err := repo.FindLeaderOf(ctx, "acme", "trip-1", "b2")
	require.NoError(t, err)
	require.Equal(t, "b1", found.ID)

	_, err = repo.FindLeaderOf(ctx, "acme", "trip-1", "b1")
	require.ErrorIs(t, err, entity.ErrNotFound)

	// Wrong trip or tenant never matches.
	_, err = repo.FindLeaderOf(ctx, "acme", "trip-2", "b2")
	require.ErrorIs(t, err, entity.ErrNotFound)
	_, err = repo.FindLeaderOf(ctx, "other", "trip-1", "b2")
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestMemoryBookingFindByIDs(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	repo.Put(&entity.Booking{ID: "b1", TenantID: "acme"})
	repo.Put(&entity.Booking{ID: "b2", TenantID: "acme"})

	found, err := repo.FindByIDs(ctx, "acme", []string{"b2", "missing", "b1"})
	require.NoError(t, err)
	require.Len(t, found, 2)
}
