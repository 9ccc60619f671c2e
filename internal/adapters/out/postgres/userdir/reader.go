package userdir

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserDirectory implements the UserDirectory port over the shared users
// table. Strictly read-only; account management lives elsewhere.
type GormUserDirectory struct {
	db *gorm.DB
}

// NewGormUserDirectory creates a new GORM user directory reader.
func NewGormUserDirectory(db *gorm.DB) *GormUserDirectory {
	return &GormUserDirectory{db: db}
}

// Get retrieves one directory entry by id.
func (r *GormUserDirectory) Get(ctx context.Context, id kernel.UUID) (directory.Entry, error) {
	if err := id.Validate(); err != nil {
		return directory.Entry{}, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return directory.Entry{}, errs.NewObjectNotFoundError("user", id.String())
		}
		return directory.Entry{}, err
	}

	return toDomain(dto)
}

// GetAllByRole retrieves every entry carrying the given role.
func (r *GormUserDirectory) GetAllByRole(ctx context.Context, role directory.Role) ([]directory.Entry, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}

	var dtos []UserDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "role = ?", role.String()).Error; err != nil {
		return nil, err
	}

	entries := make([]directory.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
