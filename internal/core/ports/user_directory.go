package ports

import (
	"context"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/kernel"
)

// UserDirectory is the read-only gateway to account records. The dispatch
// core consults it to resolve order participants and to enumerate couriers
// for proximity fan-out; it never writes through this interface.
type UserDirectory interface {
	// Get retrieves a directory entry by its unique identifier.
	// Returns errs.ObjectNotFoundError when no record exists with that id.
	Get(ctx context.Context, id kernel.UUID) (directory.Entry, error)

	// GetAllByRole retrieves every directory entry carrying the given role.
	GetAllByRole(ctx context.Context, role directory.Role) ([]directory.Entry, error)
}
