package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrActorIsNotConstructed = errors.New(
		"Actor must be created via NewActor constructor",
	)

	// ErrForbidden is returned when the acting user is not allowed to perform
	// the requested operation on the target order.
	ErrForbidden = errors.New("actor is not allowed to perform this operation")
)

// Actor identifies the authenticated user on whose behalf a command runs.
// Handlers use it to enforce ownership rules: admins act unconditionally,
// stores act on their own orders, couriers act on orders assigned to them.
type Actor struct { //nolint:recvcheck //using for validation
	id   kernel.UUID
	role directory.Role

	guard guard.ConstructorGuard
}

// NewActor creates an actor from the authenticated user's id and role.
func NewActor(id kernel.UUID, role directory.Role) (Actor, error) {
	actor := Actor{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.setID(id),
		actor.setRole(role),
	); err != nil {
		return Actor{}, err
	}

	return actor, nil
}

// Validate ensures the actor was created through the constructor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the acting user's identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the acting user's role.
func (a Actor) Role() directory.Role {
	return a.role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.role == directory.Admin
}

func (a *Actor) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	a.id = id
	return nil
}

func (a *Actor) setRole(role directory.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	a.role = role
	return nil
}
