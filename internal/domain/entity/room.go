package entity

import (
	"time"
)

// Occupant is one seated traveler inside a room slot.
type Occupant struct {
	ID         string `bson:"id" json:"id"`
	ClientName string `bson:"clientName" json:"clientName"`
	Gender     string `bson:"gender" json:"gender"`
}

// Room is one physical room of a given type within a hotel. Occupants has a
// fixed length equal to Capacity; a nil entry is an empty slot. Capacity is a
// snapshot of the configured guest count at creation time and is never
// resized when the program configuration changes later.
type Room struct {
	Name      string      `bson:"name" json:"name"`
	Type      string      `bson:"type" json:"type"`
	Capacity  int         `bson:"capacity" json:"capacity"`
	Occupants []*Occupant `bson:"occupants" json:"occupants"`
}

// NewRoom returns an empty room with capacity slots.
func NewRoom(name, roomType string, capacity int) Room {
	return Room{
		Name:      name,
		Type:      roomType,
		Capacity:  capacity,
		Occupants: make([]*Occupant, capacity),
	}
}

// OccupantCount returns the number of seated occupants.
func (r *Room) OccupantCount() int {
	n := 0
	for _, o := range r.Occupants {
		if o != nil {
			n++
		}
	}
	return n
}

// FreeSlots returns the number of empty slots.
func (r *Room) FreeSlots() int {
	return len(r.Occupants) - r.OccupantCount()
}

// IsEmpty reports whether no slot is occupied.
func (r *Room) IsEmpty() bool {
	return r.OccupantCount() == 0
}

// FirstOccupant returns the first seated occupant, or nil for an empty room.
// The first occupant's gender decides who else may share the room.
func (r *Room) FirstOccupant() *Occupant {
	for _, o := range r.Occupants {
		if o != nil {
			return o
		}
	}
	return nil
}

// Seat places the occupant into the first empty slot. It returns false when
// the room is full.
func (r *Room) Seat(o *Occupant) bool {
	for i, slot := range r.Occupants {
		if slot == nil {
			r.Occupants[i] = o
			return true
		}
	}
	return false
}

// HasOccupant reports whether a traveler with the given id is seated here.
func (r *Room) HasOccupant(id string) bool {
	for _, o := range r.Occupants {
		if o != nil && o.ID == id {
			return true
		}
	}
	return false
}

// RemoveOccupants nulls out every slot whose occupant id is in ids and
// returns how many slots were cleared.
func (r *Room) RemoveOccupants(ids map[string]bool) int {
	removed := 0
	for i, o := range r.Occupants {
		if o != nil && ids[o.ID] {
			r.Occupants[i] = nil
			removed++
		}
	}
	return removed
}

// RoomManagement is the persisted room list for one hotel within one
// program, keyed by (tenant, trip, hotel). A record with no seated occupants
// anywhere is deleted rather than kept as an empty shell. Version is an
// optimistic concurrency counter checked on save.
type RoomManagement struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	TenantID  string    `bson:"tenantId" json:"tenantId"`
	TripID    string    `bson:"tripId" json:"tripId"`
	HotelName string    `bson:"hotelName" json:"hotelName"`
	Rooms     []Room    `bson:"rooms" json:"rooms"`
	Version   int64     `bson:"version" json:"version"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CountRoomsOfType returns how many rooms of the given type exist, empty or
// not. Used for the "<type> <n+1>" naming sequence.
func (rm *RoomManagement) CountRoomsOfType(roomType string) int {
	n := 0
	for i := range rm.Rooms {
		if rm.Rooms[i].Type == roomType {
			n++
		}
	}
	return n
}

// PruneEmptyRooms drops rooms with zero seated occupants, preserving order.
func (rm *RoomManagement) PruneEmptyRooms() {
	kept := rm.Rooms[:0]
	for i := range rm.Rooms {
		if !rm.Rooms[i].IsEmpty() {
			kept = append(kept, rm.Rooms[i])
		}
	}
	rm.Rooms = kept
}

// AssignedIDs collects the ids of every seated occupant across all rooms.
func (rm *RoomManagement) AssignedIDs() map[string]bool {
	ids := make(map[string]bool)
	for i := range rm.Rooms {
		for _, o := range rm.Rooms[i].Occupants {
			if o != nil {
				ids[o.ID] = true
			}
		}
	}
	return ids
}
