// Package userdir provides read-only access to the user directory table.
// The dispatch service does not own user records; it only reads the fields
// it needs for authorization, enrichment, and push fan-out.
package userdir

import (
	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// UserDTO maps the shared users table. Latitude and longitude are nullable
// as couriers only gain coordinates once their app reports a position.
type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role      string    `gorm:"type:varchar(16);index"`
	Name      string
	Address   string
	Latitude  *float64
	Longitude *float64
	PushToken string
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

// toDomain converts a user row to a directory entry.
// A row with only one of latitude/longitude set is treated as having no
// usable position.
func toDomain(dto UserDTO) (directory.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return directory.Entry{}, err
	}

	role, err := directory.RoleFromString(dto.Role)
	if err != nil {
		return directory.Entry{}, err
	}

	var location *kernel.Location
	if dto.Latitude != nil && dto.Longitude != nil {
		loc, locErr := kernel.NewLocation(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return directory.Entry{}, locErr
		}
		location = &loc
	}

	return directory.NewEntry(id, role, dto.Name, dto.Address, location, dto.PushToken)
}
