package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"roomalloc-service/internal/domain/entity"
	"roomalloc-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormProgramRepository implements the ProgramRepository interface
type GormProgramRepository struct {
	db *gorm.DB
}

// NewGormProgramRepository creates a new GORM program repository
func NewGormProgramRepository(db *gorm.DB) repository.ProgramRepository {
	return &GormProgramRepository{
		db: db,
	}
}

// Programs GORM model for database mapping. The packages document (hotels
// per city, price structures with room-type guest counts) is kept as JSONB;
// the back office edits it as one unit.
type Programs struct {
	ID        string         `gorm:"primaryKey;column:id"`
	TenantID  string         `gorm:"column:tenant_id;index"`
	Name      string         `gorm:"column:name"`
	Packages  []byte         `gorm:"column:packages;type:jsonb"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Programs) TableName() string {
	return "m_programs"
}

// FindByID finds a program by id within the tenant
func (r *GormProgramRepository) FindByID(ctx context.Context, tenantID, id string) (*entity.Program, error) {
	var program Programs
	result := r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&program)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}

	var packages []entity.Package
	if len(program.Packages) > 0 {
		if err := json.Unmarshal(program.Packages, &packages); err != nil {
			return nil, fmt.Errorf("decode packages for program %q: %w", id, err)
		}
	}

	// Convert GORM model to domain entity
	return &entity.Program{
		ID:       program.ID,
		TenantID: program.TenantID,
		Name:     program.Name,
		Packages: packages,
	}, nil
}
