package usecase

import (
	"context"
	"errors"

	"roomalloc-service/internal/domain/entity"
	"roomalloc-service/internal/domain/repository"
	"roomalloc-service/pkg/logger"
)

// FamilyResolver determines the full family group for any booking,
// regardless of which member is used as the entry point.
type FamilyResolver struct {
	bookingRepo repository.BookingRepository
	logger      logger.Logger
}

// NewFamilyResolver creates a new family resolver.
func NewFamilyResolver(bookingRepo repository.BookingRepository, logger logger.Logger) *FamilyResolver {
	return &FamilyResolver{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Resolve returns the family leader followed by its members in member-list
// order. A booking holding RelatedPersons is its own leader; otherwise the
// leader is found by reverse lookup within the same trip; failing that, the
// booking is a standalone family of one. An unknown bookingID yields an
// empty slice and no error — callers treat it as nothing to allocate.
func (fr *FamilyResolver) Resolve(ctx context.Context, tenantID, bookingID string) ([]*entity.Booking, error) {
	booking, err := fr.bookingRepo.FindByID(ctx, tenantID, bookingID)
	if errors.Is(err, entity.ErrNotFound) {
		fr.logger.Debug("Booking not found while resolving family", "tenantId", tenantID, "bookingId", bookingID)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	leader := booking
	if !booking.IsLeader() {
		found, err := fr.bookingRepo.FindLeaderOf(ctx, tenantID, booking.TripID, booking.ID)
		if err != nil && !errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		if found != nil {
			leader = found
		}
	}

	if !leader.IsLeader() {
		return []*entity.Booking{leader}, nil
	}

	memberIDs := make([]string, 0, len(leader.RelatedPersons))
	for _, rp := range leader.RelatedPersons {
		if rp.ID == "" || rp.ID == leader.ID {
			continue
		}
		memberIDs = append(memberIDs, rp.ID)
	}

	members, err := fr.bookingRepo.FindByIDs(ctx, tenantID, memberIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Booking, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	family := make([]*entity.Booking, 0, len(memberIDs)+1)
	family = append(family, leader)
	for _, id := range memberIDs {
		if m, ok := byID[id]; ok {
			family = append(family, m)
		} else {
			fr.logger.Warn("Family member booking missing, skipping", "tenantId", tenantID, "leaderId", leader.ID, "memberId", id)
		}
	}
	return family, nil
}
