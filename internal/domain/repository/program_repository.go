package repository

import (
	"context"

	"roomalloc-service/internal/domain/entity"
)

// ProgramRepository defines read access to trip program configuration, the
// master data holding per-city hotel sets and room-type guest counts.
type ProgramRepository interface {
	// FindByID returns the program with the given id for the tenant, or
	// entity.ErrNotFound.
	FindByID(ctx context.Context, tenantID, id string) (*entity.Program, error)
}
