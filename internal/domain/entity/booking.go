package entity

import (
	"time"
)

// Booking statuses relevant to room allocation. Only confirmed bookings are
// eligible for seating; the lifecycle layer enforces that before calling in.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

// Gender values stored on bookings and room occupants.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// RelatedPerson is one entry in a family leader's member list, pointing at
// another booking by id.
type RelatedPerson struct {
	ID         string `bson:"id" json:"id"`
	ClientName string `bson:"clientName" json:"clientName"`
}

// SelectedHotel holds one hotel/room-type choice per city the itinerary
// visits. Cities, HotelNames and RoomTypes are parallel slices indexed by
// city position.
type SelectedHotel struct {
	Cities     []string `bson:"cities" json:"cities"`
	HotelNames []string `bson:"hotelNames" json:"hotelNames"`
	RoomTypes  []string `bson:"roomTypes" json:"roomTypes"`
}

// Booking is one traveler record within a program. RelatedPersons is present
// only on the family leader; a booking without it may still belong to another
// booking's family, which is discovered by reverse lookup. A booking appears
// in at most one leader's RelatedPersons list.
type Booking struct {
	ID             string          `bson:"_id" json:"id"`
	TenantID       string          `bson:"tenantId" json:"tenantId"`
	TripID         string          `bson:"tripId" json:"tripId"`
	ClientName     string          `bson:"clientName" json:"clientName"`
	Gender         string          `bson:"gender" json:"gender"`
	Status         string          `bson:"status" json:"status"`
	SelectedHotel  SelectedHotel   `bson:"selectedHotel" json:"selectedHotel"`
	RelatedPersons []RelatedPerson `bson:"relatedPersons,omitempty" json:"relatedPersons,omitempty"`
	CreatedAt      time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// IsLeader reports whether the booking owns a family member list.
func (b *Booking) IsLeader() bool {
	return len(b.RelatedPersons) > 0
}

// HotelChoice returns the hotel and room type the booking selected for the
// given city. ok is false when the city is not on the itinerary or either
// choice is blank.
func (b *Booking) HotelChoice(city string) (hotelName, roomType string, ok bool) {
	for i, c := range b.SelectedHotel.Cities {
		if c != city {
			continue
		}
		if i < len(b.SelectedHotel.HotelNames) {
			hotelName = b.SelectedHotel.HotelNames[i]
		}
		if i < len(b.SelectedHotel.RoomTypes) {
			roomType = b.SelectedHotel.RoomTypes[i]
		}
		return hotelName, roomType, hotelName != "" && roomType != ""
	}
	return "", "", false
}

// RequiredHotels returns the distinct non-empty hotel names the booking's own
// itinerary requires, in selection order.
func (b *Booking) RequiredHotels() []string {
	seen := make(map[string]bool)
	hotels := make([]string, 0, len(b.SelectedHotel.HotelNames))
	for _, name := range b.SelectedHotel.HotelNames {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		hotels = append(hotels, name)
	}
	return hotels
}
