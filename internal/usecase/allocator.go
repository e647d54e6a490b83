package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roomalloc-service/internal/domain/entity"
	"roomalloc-service/internal/domain/repository"
	"roomalloc-service/pkg/logger"
	"roomalloc-service/pkg/metrics"
	"roomalloc-service/pkg/utils"
)

// DefaultRoomCapacity is used when a room type has no guest count in the
// program configuration.
const DefaultRoomCapacity = 2

// RoomAllocator implements the greedy, deterministic room assignment engine.
// Every call runs synchronously in the caller's context; failures propagate
// unretried so the surrounding booking transaction rolls back as one unit.
type RoomAllocator struct {
	programRepo repository.ProgramRepository
	roomRepo    repository.RoomManagementRepository
	resolver    *FamilyResolver
	logger      logger.Logger
	metrics     *metrics.Metrics
}

// NewRoomAllocator creates a new room allocator. metrics may be nil.
func NewRoomAllocator(
	programRepo repository.ProgramRepository,
	roomRepo repository.RoomManagementRepository,
	resolver *FamilyResolver,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *RoomAllocator {
	return &RoomAllocator{
		programRepo: programRepo,
		roomRepo:    roomRepo,
		resolver:    resolver,
		logger:      logger,
		metrics:     metrics,
	}
}

// CapacityFor returns the configured guest count for the room type, scanning
// the program's packages and price structures and taking the first name
// match. Unknown types fall back to DefaultRoomCapacity.
func CapacityFor(program *entity.Program, roomType string) int {
	for _, pkg := range program.Packages {
		for _, price := range pkg.Prices {
			for _, rt := range price.RoomTypes {
				if rt.Type != roomType {
					continue
				}
				if rt.Guests > 0 {
					return rt.Guests
				}
				return DefaultRoomCapacity
			}
		}
	}
	return DefaultRoomCapacity
}

// choiceGroup collects the family members who picked the same hotel and room
// type for one city. Groups and members keep first-appearance order so the
// whole pass is deterministic.
type choiceGroup struct {
	hotelName string
	roomType  string
	members   []*entity.Booking
}

// Assign seats the triggering booking's whole family. For every city on the
// family's combined itinerary it first removes the family's existing seats in
// that city, then re-places each (hotel, room type) group: an exact family
// fit takes a whole room, everyone else is placed individually under the
// gender and capacity rules. Re-running Assign for an unchanged family is a
// no-op on the resulting room state.
func (a *RoomAllocator) Assign(ctx context.Context, tenantID string, booking *entity.Booking) error {
	start := time.Now()

	family, err := a.resolver.Resolve(ctx, tenantID, booking.ID)
	if err != nil {
		return fmt.Errorf("resolve family: %w", err)
	}
	if len(family) == 0 {
		a.logger.Warn("Nothing to allocate", "tenantId", tenantID, "bookingId", booking.ID)
		return nil
	}

	program, err := a.programRepo.FindByID(ctx, tenantID, family[0].TripID)
	if errors.Is(err, entity.ErrNotFound) {
		a.logger.Warn("Program not found, skipping allocation", "tenantId", tenantID, "tripId", family[0].TripID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load program: %w", err)
	}

	familyIDs := make([]string, len(family))
	for i, m := range family {
		familyIDs[i] = m.ID
	}

	for _, city := range familyCities(family) {
		// Clearing the family's seats first makes the pass idempotent:
		// a changed choice never leaves stale occupants behind.
		if err := a.RemoveFromCity(ctx, tenantID, program, city, familyIDs); err != nil {
			return err
		}
		for _, group := range groupByChoice(family, city) {
			if err := a.placeGroup(ctx, tenantID, program, group); err != nil {
				return err
			}
		}
	}

	a.metrics.AllocationDone(time.Since(start))
	a.logger.Info("Family allocated",
		"tenantId", tenantID,
		"bookingId", booking.ID,
		"tripId", program.ID,
		"familySize", len(family))
	return nil
}

// familyCities returns the distinct cities appearing in any member's
// itinerary, in first-appearance order.
func familyCities(family []*entity.Booking) []string {
	seen := make(map[string]bool)
	var cities []string
	for _, m := range family {
		for _, city := range m.SelectedHotel.Cities {
			if city == "" || seen[city] {
				continue
			}
			seen[city] = true
			cities = append(cities, city)
		}
	}
	return cities
}

// groupByChoice splits the family by the (hotel, room type) pair each member
// selected for the city. Members without a complete choice for the city are
// left out.
func groupByChoice(family []*entity.Booking, city string) []*choiceGroup {
	var groups []*choiceGroup
	index := make(map[[2]string]*choiceGroup)
	for _, m := range family {
		hotelName, roomType, ok := m.HotelChoice(city)
		if !ok {
			continue
		}
		key := [2]string{hotelName, roomType}
		g, exists := index[key]
		if !exists {
			g = &choiceGroup{hotelName: hotelName, roomType: roomType}
			index[key] = g
			groups = append(groups, g)
		}
		g.members = append(g.members, m)
	}
	return groups
}

// placeGroup seats one (hotel, room type) group and persists the hotel's
// record.
func (a *RoomAllocator) placeGroup(ctx context.Context, tenantID string, program *entity.Program, group *choiceGroup) error {
	record, err := a.roomRepo.Find(ctx, tenantID, program.ID, group.hotelName)
	if errors.Is(err, entity.ErrNotFound) {
		record = &entity.RoomManagement{
			TenantID:  tenantID,
			TripID:    program.ID,
			HotelName: group.hotelName,
		}
	} else if err != nil {
		return fmt.Errorf("load rooms for %q: %w", group.hotelName, err)
	}

	capacity := CapacityFor(program, group.roomType)

	// Rule 1: a family whose size equals the room capacity takes a whole
	// room together. Anything else falls through to individual placement.
	if len(group.members) > 1 && len(group.members) == capacity {
		a.seatTogether(record, group, capacity)
	} else {
		for _, member := range group.members {
			a.seatIndividually(record, group.roomType, capacity, member)
		}
	}

	return a.persist(ctx, record)
}

// seatTogether fills one fully empty room of the group's type with the whole
// family, creating the room when no empty one exists.
func (a *RoomAllocator) seatTogether(record *entity.RoomManagement, group *choiceGroup, capacity int) {
	var room *entity.Room
	for i := range record.Rooms {
		candidate := &record.Rooms[i]
		if candidate.Type == group.roomType && candidate.IsEmpty() && len(candidate.Occupants) >= len(group.members) {
			room = candidate
			break
		}
	}
	if room == nil {
		room = a.addRoom(record, group.roomType, capacity)
	}
	for i, member := range group.members {
		room.Occupants[i] = occupantOf(member)
	}
}

// seatIndividually places one member following the three placement stages:
// a same-gender room with free space, then any empty room of the type, then
// a brand-new room.
func (a *RoomAllocator) seatIndividually(record *entity.RoomManagement, roomType string, capacity int, member *entity.Booking) {
	occupant := occupantOf(member)

	// Stage A: partially filled room whose first occupant shares the
	// member's gender.
	for i := range record.Rooms {
		room := &record.Rooms[i]
		if room.Type != roomType || room.IsEmpty() || room.FreeSlots() == 0 {
			continue
		}
		if first := room.FirstOccupant(); first.Gender == occupant.Gender {
			room.Seat(occupant)
			return
		}
	}

	// Stage B: empty room of the type.
	for i := range record.Rooms {
		room := &record.Rooms[i]
		if room.Type == roomType && room.IsEmpty() && room.FreeSlots() > 0 {
			room.Seat(occupant)
			return
		}
	}

	// Stage C: new room with the member as its sole occupant.
	room := a.addRoom(record, roomType, capacity)
	room.Seat(occupant)
}

// addRoom appends a new empty room named "<type> <n+1>".
func (a *RoomAllocator) addRoom(record *entity.RoomManagement, roomType string, capacity int) *entity.Room {
	name := utils.RoomName(roomType, record.CountRoomsOfType(roomType))
	record.Rooms = append(record.Rooms, entity.NewRoom(name, roomType, capacity))
	a.metrics.RoomCreated()
	a.logger.Debug("Room created", "hotel", record.HotelName, "room", name, "capacity", capacity)
	return &record.Rooms[len(record.Rooms)-1]
}

func occupantOf(b *entity.Booking) *entity.Occupant {
	return &entity.Occupant{
		ID:         b.ID,
		ClientName: b.ClientName,
		Gender:     utils.NormalizeGender(b.Gender),
	}
}

// persist writes the record back, dropping rooms that lost their last
// occupant and deleting the record entirely when no occupied room remains.
func (a *RoomAllocator) persist(ctx context.Context, record *entity.RoomManagement) error {
	record.PruneEmptyRooms()
	if len(record.Rooms) == 0 {
		if record.ID == "" && record.Version == 0 {
			// Never persisted, nothing to delete.
			return nil
		}
		if err := a.roomRepo.Delete(ctx, record.TenantID, record.TripID, record.HotelName); err != nil {
			return fmt.Errorf("delete empty room record for %q: %w", record.HotelName, err)
		}
		return nil
	}
	if err := a.roomRepo.Save(ctx, record); err != nil {
		if errors.Is(err, entity.ErrVersionConflict) {
			a.metrics.VersionConflict()
		}
		return fmt.Errorf("save rooms for %q: %w", record.HotelName, err)
	}
	return nil
}

// RemoveFromCity unassigns the given occupants from every hotel the program
// configures for the city, dropping rooms and records that end up empty.
func (a *RoomAllocator) RemoveFromCity(ctx context.Context, tenantID string, program *entity.Program, city string, occupantIDs []string) error {
	idSet := make(map[string]bool, len(occupantIDs))
	for _, id := range occupantIDs {
		idSet[id] = true
	}

	for _, hotelName := range program.HotelsForCity(city) {
		record, err := a.roomRepo.Find(ctx, tenantID, program.ID, hotelName)
		if errors.Is(err, entity.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("load rooms for %q: %w", hotelName, err)
		}
		if err := a.removeFromRecord(ctx, record, idSet); err != nil {
			return err
		}
	}
	return nil
}

// RemoveFromProgram unassigns a booking's whole family from every hotel of
// the program, regardless of city. Used when a booking is deleted or changes
// key fields, since its old seats may span several hotels. The family is
// resolved first so no member's seat survives; when the booking itself is
// already gone, its id alone is swept.
func (a *RoomAllocator) RemoveFromProgram(ctx context.Context, tenantID string, program *entity.Program, occupantID string) error {
	family, err := a.resolver.Resolve(ctx, tenantID, occupantID)
	if err != nil {
		return fmt.Errorf("resolve family: %w", err)
	}

	idSet := map[string]bool{occupantID: true}
	for _, m := range family {
		idSet[m.ID] = true
	}

	records, err := a.roomRepo.FindByTrip(ctx, tenantID, program.ID)
	if err != nil {
		return fmt.Errorf("load rooms for trip %q: %w", program.ID, err)
	}
	for _, record := range records {
		if err := a.removeFromRecord(ctx, record, idSet); err != nil {
			return err
		}
	}
	return nil
}

func (a *RoomAllocator) removeFromRecord(ctx context.Context, record *entity.RoomManagement, idSet map[string]bool) error {
	removed := 0
	for i := range record.Rooms {
		removed += record.Rooms[i].RemoveOccupants(idSet)
	}
	if removed == 0 {
		return nil
	}
	a.metrics.OccupantsRemoved(removed)
	return a.persist(ctx, record)
}

// IsFullyAssigned reports whether every hotel the booking's own itinerary
// requires already seats the complete family. The update flow uses it to
// skip reallocation on edits that do not touch the seating, leaving settled
// room layouts undisturbed.
func (a *RoomAllocator) IsFullyAssigned(ctx context.Context, tenantID string, program *entity.Program, booking *entity.Booking) (bool, error) {
	required := booking.RequiredHotels()
	if len(required) == 0 {
		return true, nil
	}

	family, err := a.resolver.Resolve(ctx, tenantID, booking.ID)
	if err != nil {
		return false, fmt.Errorf("resolve family: %w", err)
	}
	if len(family) == 0 {
		family = []*entity.Booking{booking}
	}

	for _, hotelName := range required {
		record, err := a.roomRepo.Find(ctx, tenantID, program.ID, hotelName)
		if errors.Is(err, entity.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("load rooms for %q: %w", hotelName, err)
		}
		assigned := record.AssignedIDs()
		for _, member := range family {
			if !assigned[member.ID] {
				return false, nil
			}
		}
	}
	return true, nil
}
