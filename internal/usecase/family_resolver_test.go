package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"roomalloc-service/internal/domain/entity"
	storage "roomalloc-service/internal/interface/repository"
	"roomalloc-service/internal/usecase"
	"roomalloc-service/pkg/logger"
)

func newResolver() (*storage.MemoryBookingRepository, *usecase.FamilyResolver) {
	bookings := storage.NewMemoryBookingRepository()
	return bookings, usecase.NewFamilyResolver(bookings, logger.NewNop())
}

func familyIDs(family []*entity.Booking) []string {
	ids := make([]string, len(family))
	for i, b := range family {
		ids[i] = b.ID
	}
	return ids
}

func TestResolve_FromLeader(t *testing.T) {
	bookings, resolver := newResolver()
	leader := mkBooking("b1", entity.GenderMale, "Hilton", "Double")
	leader.RelatedPersons = []entity.RelatedPerson{
		{ID: "b2", ClientName: "Client b2"},
		{ID: "b3", ClientName: "Client b3"},
	}
	bookings.Put(leader)
	bookings.Put(mkBooking("b2", entity.GenderFemale, "Hilton", "Double"))
	bookings.Put(mkBooking("b3", entity.GenderMale, "Hilton", "Double"))

	family, err := resolver.Resolve(context.Background(), testTenant, "b1")
	require.NoError(t, err)
	require.Equal(t, []string{"b1", "b2", "b3"}, familyIDs(family))
}

func TestResolve_FromMemberFindsSameGroup(t *testing.T) {
	bookings, resolver := newResolver()
	leader := mkBooking("b1", entity.GenderMale, "Hilton", "Double")
	leader.RelatedPersons = []entity.RelatedPerson{{ID: "b2", ClientName: "Client b2"}}
	bookings.Put(leader)
	bookings.Put(mkBooking("b2", entity.GenderFemale, "Hilton", "Double"))

	// The member carries no back-pointer; the leader is found by reverse
	// lookup and the group is identical from either entry point.
	viaMember, err := resolver.Resolve(context.Background(), testTenant, "b2")
	require.NoError(t, err)
	viaLeader, err := resolver.Resolve(context.Background(), testTenant, "b1")
	require.NoError(t, err)
	require.Equal(t, familyIDs(viaLeader), familyIDs(viaMember))
	require.Equal(t, []string{"b1", "b2"}, familyIDs(viaMember))
}

func TestResolve_StandaloneBooking(t *testing.T) {
	bookings, resolver := newResolver()
	solo := mkBooking("b1", entity.GenderMale, "Hilton", "Double")
	bookings.Put(solo)

	family, err := resolver.Resolve(context.Background(), testTenant, "b1")
	require.NoError(t, err)
	require.Equal(t, []string{"b1"}, familyIDs(family))
}

func TestResolve_UnknownBookingYieldsEmpty(t *testing.T) {
	_, resolver := newResolver()

	family, err := resolver.Resolve(context.Background(), testTenant, "missing")
	require.NoError(t, err)
	require.Empty(t, family)
}

func TestResolve_MissingMemberSkipped(t *testing.T) {
	bookings, resolver := newResolver()
	leader := mkBooking("b1", entity.GenderMale, "Hilton", "Double")
	leader.RelatedPersons = []entity.RelatedPerson{
		{ID: "b2", ClientName: "Client b2"},
		{ID: "gone", ClientName: "Deleted"},
	}
	bookings.Put(leader)
	bookings.Put(mkBooking("b2", entity.GenderFemale, "Hilton", "Double"))

	family, err := resolver.Resolve(context.Background(), testTenant, "b1")
	require.NoError(t, err)
	require.Equal(t, []string{"b1", "b2"}, familyIDs(family))
}

func TestResolve_IgnoresSelfReference(t *testing.T) {
	bookings, resolver := newResolver()
	leader := mkBooking("b1", entity.GenderMale, "Hilton", "Double")
	leader.RelatedPersons = []entity.RelatedPerson{
		{ID: "b1", ClientName: "Client b1"},
		{ID: "b2", ClientName: "Client b2"},
	}
	bookings.Put(leader)
	bookings.Put(mkBooking("b2", entity.GenderFemale, "Hilton", "Double"))

	family, err := resolver.Resolve(context.Background(), testTenant, "b1")
	require.NoError(t, err)
	require.Equal(t, []string{"b1", "b2"}, familyIDs(family))
}

func TestCapacityFor(t *testing.T) {
	program := testProgram()

	tests := []struct {
		roomType string
		want     int
	}{
		{"Double", 2},
		{"Triple", 3},
		{"Quad", 4},
		{"Penthouse", usecase.DefaultRoomCapacity},
		{"", usecase.DefaultRoomCapacity},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, usecase.CapacityFor(program, tt.roomType), "room type %q", tt.roomType)
	}
}

func TestCapacityFor_ZeroGuestsFallsBack(t *testing.T) {
	program := testProgram()
	program.Packages[0].Prices[0].RoomTypes = append(program.Packages[0].Prices[0].RoomTypes,
		entity.RoomTypeOption{Type: "Broken", Guests: 0})

	require.Equal(t, usecase.DefaultRoomCapacity, usecase.CapacityFor(program, "Broken"))
}
