package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrAlreadyAssigned is returned when a claim is attempted on an order that
	// already has a courier. Exactly one claim may ever succeed per order.
	ErrAlreadyAssigned = errors.New("order is already assigned to a courier")

	// ErrNotAssigned is returned when an unassign is attempted on an order that
	// is not currently in the Assigned status.
	ErrNotAssigned = errors.New("order is not assigned to a courier")
)

// Order represents a delivery order in the system. It is the aggregate root that
// manages the order lifecycle from creation through courier assignment to a
// terminal state.
//
// Order maintains these invariants:
//   - Must have valid identifiers for the order itself and the originating store
//   - A courier is set iff the order has been claimed and not unassigned since;
//     an order in Created never carries a courier
//   - Status moves only along the transition graph (see Status)
//   - updatedAt is refreshed on every mutation
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// storeID references the originating store in the user directory
	storeID kernel.UUID

	// courierID is the claiming courier's ID (nil while unclaimed)
	courierID *kernel.UUID

	// customerName, customerPhone and customerAddress are free-text
	// recipient details supplied by the store
	customerName    string
	customerPhone   string
	customerAddress string

	// amount is the order total collected from the customer
	amount float64

	// deliveryFee is the courier's cut
	deliveryFee float64

	// status represents the current state in the order lifecycle
	status Status

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in the Created status with both timestamps set
// to now. This is the entry point for fresh orders; reconstruction from
// persistence goes through RestoreOrder.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - storeID: Identifier of the originating store (must be a valid UUID)
//   - customerName/customerPhone/customerAddress: recipient details; the name is required
//   - amount: order total (must not be negative)
//   - deliveryFee: courier fee (must not be negative)
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
func NewOrder(
	id kernel.UUID,
	storeID kernel.UUID,
	customerName string,
	customerPhone string,
	customerAddress string,
	amount float64,
	deliveryFee float64,
) (*Order, error) {
	now := time.Now().UTC()
	order := &Order{
		status:        Created,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setStoreID(storeID),
		order.setCustomerName(customerName),
		order.setAmount(amount),
		order.setDeliveryFee(deliveryFee),
	); err != nil {
		return nil, err
	}

	order.customerPhone = customerPhone
	order.customerAddress = customerAddress
	return order, nil
}

// RestoreOrder reconstructs an Order from persisted state without touching the
// timestamps. The courier/status pairing is validated so a corrupted row cannot
// resurrect an order that violates the assignment invariant.
func RestoreOrder(
	id kernel.UUID,
	storeID kernel.UUID,
	courierID *kernel.UUID,
	customerName string,
	customerPhone string,
	customerAddress string,
	amount float64,
	deliveryFee float64,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	order := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setStoreID(storeID),
		order.setCustomerName(customerName),
		order.setAmount(amount),
		order.setDeliveryFee(deliveryFee),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if err := validateCourierForStatus(status, courierID); err != nil {
		return nil, err
	}

	order.customerPhone = customerPhone
	order.customerAddress = customerAddress
	order.status = status
	order.courierID = courierID
	return order, nil
}

// validateCourierForStatus enforces the courier-iff-claimed invariant:
// Created must not carry a courier; Assigned and Delivered/Returned must.
// Cancelled never had a courier (cancellation is only reachable from Created).
func validateCourierForStatus(status Status, courierID *kernel.UUID) error {
	switch status {
	case Created, Cancelled:
		if courierID != nil {
			return errs.NewValueIsInvalidErrorWithCause("courierID",
				fmt.Errorf("an order in %s cannot have a courier", status))
		}
	case Assigned, Delivered, Returned:
		if courierID == nil {
			return errs.NewValueIsInvalidErrorWithCause("courierID",
				fmt.Errorf("an order in %s must have a courier", status))
		}
	case Unknown:
	}

	if courierID != nil {
		return courierID.Validate()
	}
	return nil
}

// Validate ensures the Order instance was properly constructed through a factory.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// StoreID returns the identifier of the originating store.
func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

// Courier returns the claiming courier's ID, or nil while unclaimed.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// CustomerName returns the recipient's display name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// CustomerPhone returns the recipient's phone number.
func (o *Order) CustomerPhone() string {
	return o.customerPhone
}

// CustomerAddress returns the recipient's delivery address.
func (o *Order) CustomerAddress() string {
	return o.customerAddress
}

// Amount returns the order total.
func (o *Order) Amount() float64 {
	return o.amount
}

// DeliveryFee returns the courier fee.
func (o *Order) DeliveryFee() float64 {
	return o.deliveryFee
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the server-assigned creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Assign claims the order for a courier, moving it to the target status.
//
// Business rules enforced:
//   - The courier ID must be valid
//   - The order must not already carry a courier (ErrAlreadyAssigned)
//   - The move from the current status to the target must be legal
//   - The target status must be one that carries a courier
//
// Parameters:
//   - courierID: The ID of the claiming courier
//   - to: The resulting status, normally Assigned
//
// The in-memory check is the first line of defense; the storage layer repeats
// the courier-is-null condition atomically so concurrent claims cannot both win.
func (o *Order) Assign(courierID kernel.UUID, to Status) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.courierID != nil {
		return ErrAlreadyAssigned
	}

	if err := o.status.CanTransitionTo(to); err != nil {
		return err
	}

	if err := validateCourierForStatus(to, &courierID); err != nil {
		return err
	}

	o.status = to
	o.courierID = &courierID
	o.touch()
	return nil
}

// Unassign releases the order back to the claimable pool.
//
// Only an order currently in Assigned can be unassigned (ErrNotAssigned
// otherwise). The courier is cleared and the status returns to Created, so the
// order is immediately claimable again and the courier-iff-claimed invariant
// holds.
func (o *Order) Unassign() error {
	if o.status != Assigned {
		return ErrNotAssigned
	}

	o.courierID = nil
	o.status = Created
	o.touch()
	return nil
}

// ChangeStatus moves the order along the transition graph.
//
// The transition table is enforced strictly; an invalid move leaves the order
// untouched and returns an InvalidTransitionError.
func (o *Order) ChangeStatus(to Status) error {
	if err := o.status.CanTransitionTo(to); err != nil {
		return err
	}

	if err := validateCourierForStatus(to, o.courierID); err != nil {
		return err
	}

	o.status = to
	o.touch()
	return nil
}

// Patch carries replacement values for the mutable order fields used by the
// full-update operation.
type Patch struct {
	StoreID         kernel.UUID
	CourierID       *kernel.UUID
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Status          Status
	Amount          float64
	DeliveryFee     float64
}

// ApplyPatch performs a full-field update of the mutable order fields.
//
// A status differing from the current one must be a legal transition; the
// update is rejected as a whole otherwise. The courier/status pairing of the
// resulting order is validated too, so a patch cannot smuggle in a claimed
// Created order.
func (o *Order) ApplyPatch(patch Patch) error {
	if patch.Status != o.status {
		if err := o.status.CanTransitionTo(patch.Status); err != nil {
			return err
		}
	}

	if err := validateCourierForStatus(patch.Status, patch.CourierID); err != nil {
		return err
	}

	if err := errors.Join(
		patch.StoreID.Validate(),
		validateCustomerName(patch.CustomerName),
		validateAmount("amount", patch.Amount),
		validateAmount("deliveryFee", patch.DeliveryFee),
	); err != nil {
		return err
	}

	o.storeID = patch.StoreID
	o.courierID = patch.CourierID
	o.customerName = patch.CustomerName
	o.customerPhone = patch.CustomerPhone
	o.customerAddress = patch.CustomerAddress
	o.status = patch.Status
	o.amount = patch.Amount
	o.deliveryFee = patch.DeliveryFee
	o.touch()
	return nil
}

// touch refreshes the mutation timestamp.
func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	o.storeID = storeID
	return nil
}

func (o *Order) setCustomerName(customerName string) error {
	if err := validateCustomerName(customerName); err != nil {
		return err
	}
	o.customerName = customerName
	return nil
}

func (o *Order) setAmount(amount float64) error {
	if err := validateAmount("amount", amount); err != nil {
		return err
	}
	o.amount = amount
	return nil
}

func (o *Order) setDeliveryFee(deliveryFee float64) error {
	if err := validateAmount("deliveryFee", deliveryFee); err != nil {
		return err
	}
	o.deliveryFee = deliveryFee
	return nil
}

func validateCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	return nil
}

func validateAmount(paramName string, value float64) error {
	if value < 0 {
		return errs.NewValueIsInvalidErrorWithCause(paramName,
			fmt.Errorf("%f must not be negative", value))
	}
	return nil
}
