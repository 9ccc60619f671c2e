package directory

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrEntryIsNotConstructed is returned when an Entry was not created via NewEntry.
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

	// ErrStoreNotFound marks the data-integrity condition of an order referencing
	// a store that is absent from the directory. It is distinct from an ordinary
	// lookup miss caused by a caller-supplied bad id.
	ErrStoreNotFound = errors.New("store not found in directory")
)

// Entry is a read-only snapshot of a user directory record as the dispatch
// core sees it: an identity, a role tag, display fields, and the optional
// geographic position and push address needed for courier fan-out. Role
// specific behavior is expressed through these optional fields rather than
// a type hierarchy; a courier without coordinates is simply an entry
// whose Location() is nil.
//
// The core never mutates directory state; entries are produced by the
// UserDirectory port and discarded after use.
type Entry struct {
	id        kernel.UUID
	role      Role
	name      string
	address   string
	location  *kernel.Location
	pushToken string

	guard guard.ConstructorGuard
}

// NewEntry creates a directory entry snapshot.
// Location may be nil (position unknown) and pushToken may be empty
// (no notification address on file); both are valid states.
func NewEntry(
	id kernel.UUID,
	role Role,
	name string,
	address string,
	location *kernel.Location,
	pushToken string,
) (Entry, error) {
	entry := Entry{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		entry.setID(id),
		entry.setRole(role),
		entry.setLocation(location),
	); err != nil {
		return Entry{}, err
	}

	entry.name = name
	entry.address = address
	entry.pushToken = pushToken
	return entry, nil
}

// Validate ensures the Entry was created through NewEntry.
func (e Entry) Validate() error {
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// ID returns the directory record identifier.
func (e Entry) ID() kernel.UUID {
	return e.id
}

// Role returns the account role tag.
func (e Entry) Role() Role {
	return e.role
}

// Name returns the display name.
func (e Entry) Name() string {
	return e.name
}

// Address returns the display address.
func (e Entry) Address() string {
	return e.address
}

// Location returns the last known geographic position, or nil when the
// directory has no coordinates on file for this entry.
func (e Entry) Location() *kernel.Location {
	return e.location
}

// PushToken returns the opaque notification address, empty when none is on file.
func (e Entry) PushToken() string {
	return e.pushToken
}

// HasLocation reports whether the entry carries usable coordinates.
func (e Entry) HasLocation() bool {
	return e.location != nil
}

// CanReceivePush reports whether the entry is addressable for notifications:
// it needs both a push token and known coordinates.
func (e Entry) CanReceivePush() bool {
	return e.pushToken != "" && e.location != nil
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	e.role = role
	return nil
}

func (e *Entry) setLocation(location *kernel.Location) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}
	e.location = location
	return nil
}
