package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoomSeatFillsFirstEmptySlot(t *testing.T) {
	room := NewRoom("Double 1", "Double", 2)
	require.Equal(t, 2, room.FreeSlots())

	require.True(t, room.Seat(&Occupant{ID: "a"}))
	require.True(t, room.Seat(&Occupant{ID: "b"}))
	require.False(t, room.Seat(&Occupant{ID: "c"}), "full room must reject")
	require.Equal(t, 0, room.FreeSlots())

	// Freeing the first slot and seating again reuses the hole.
	room.Occupants[0] = nil
	require.True(t, room.Seat(&Occupant{ID: "c"}))
	require.Equal(t, "c", room.Occupants[0].ID)
}

func TestRoomFirstOccupantSkipsHoles(t *testing.T) {
	room := NewRoom("Triple 1", "Triple", 3)
	room.Occupants[1] = &Occupant{ID: "mid", Gender: GenderFemale}

	first := room.FirstOccupant()
	require.NotNil(t, first)
	require.Equal(t, "mid", first.ID)
}

func TestRoomRemoveOccupants(t *testing.T) {
	room := NewRoom("Quad 1", "Quad", 4)
	room.Seat(&Occupant{ID: "a"})
	room.Seat(&Occupant{ID: "b"})
	room.Seat(&Occupant{ID: "c"})

	removed := room.RemoveOccupants(map[string]bool{"a": true, "c": true, "x": true})
	require.Equal(t, 2, removed)
	require.Equal(t, 1, room.OccupantCount())
	require.True(t, room.HasOccupant("b"))
}

func TestPruneEmptyRooms(t *testing.T) {
	rm := RoomManagement{Rooms: []Room{
		NewRoom("Double 1", "Double", 2),
		NewRoom("Double 2", "Double", 2),
	}}
	rm.Rooms[1].Seat(&Occupant{ID: "a"})

	rm.PruneEmptyRooms()
	require.Len(t, rm.Rooms, 1)
	require.Equal(t, "Double 2", rm.Rooms[0].Name)
}

func TestAssignedIDs(t *testing.T) {
	rm := RoomManagement{Rooms: []Room{
		NewRoom("Double 1", "Double", 2),
		NewRoom("Triple 1", "Triple", 3),
	}}
	rm.Rooms[0].Seat(&Occupant{ID: "a"})
	rm.Rooms[1].Seat(&Occupant{ID: "b"})

	ids := rm.AssignedIDs()
	require.True(t, ids["a"])
	require.True(t, ids["b"])
	require.Len(t, ids, 2)
}

func TestBookingHotelChoice(t *testing.T) {
	b := Booking{SelectedHotel: SelectedHotel{
		Cities:     []string{"Mecca", "Medina"},
		HotelNames: []string{"Hilton", "Movenpick"},
		RoomTypes:  []string{"Double", "Triple"},
	}}

	hotel, roomType, ok := b.HotelChoice("Medina")
	require.True(t, ok)
	require.Equal(t, "Movenpick", hotel)
	require.Equal(t, "Triple", roomType)

	_, _, ok = b.HotelChoice("Jeddah")
	require.False(t, ok)
}

func TestBookingHotelChoiceIncompleteSelection(t *testing.T) {
	// Room type missing for the second city; the choice is unusable.
	b := Booking{SelectedHotel: SelectedHotel{
		Cities:     []string{"Mecca", "Medina"},
		HotelNames: []string{"Hilton", "Movenpick"},
		RoomTypes:  []string{"Double"},
	}}

	_, _, ok := b.HotelChoice("Medina")
	require.False(t, ok)
}

func TestBookingRequiredHotels(t *testing.T) {
	b := Booking{SelectedHotel: SelectedHotel{
		Cities:     []string{"Mecca", "Medina", "Jeddah"},
		HotelNames: []string{"Hilton", "", "Hilton"},
		RoomTypes:  []string{"Double", "Double", "Double"},
	}}

	require.Equal(t, []string{"Hilton"}, b.RequiredHotels())
}

func TestProgramHotelsForCity(t *testing.T) {
	p := Program{Packages: []Package{
		{Hotels: map[string][]string{"Mecca": {"Hilton", "Swissotel"}}},
		{Hotels: map[string][]string{"Mecca": {"Hilton", "Raffles"}}},
	}}

	require.Equal(t, []string{"Hilton", "Swissotel", "Raffles"}, p.HotelsForCity("Mecca"))
	require.Empty(t, p.HotelsForCity("Medina"))
}
