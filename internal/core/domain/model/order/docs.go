// Package order provides domain entities and business logic for order
// management in the dispatch system. It implements the Order aggregate root
// with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, recipient
//     details, amounts, courier assignment and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must reference a valid originating store and carry a customer name
//   - Status follows the directed graph Created -> Assigned -> Delivered/Returned,
//     with Created -> Cancelled as the only other move; terminal states are final
//   - An order carries a courier exactly while it is claimed; unassigning
//     returns it to Created and clears the courier
//   - Only one claim may ever succeed for a given order
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
