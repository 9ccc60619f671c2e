// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the dispatch system. It
// implements logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - CourierLocator: proximity-based eligibility filtering of directory
//     entries for order fan-out
//
// Domain services stay pure: they operate on values handed to them and
// perform no I/O, which keeps them trivially testable.
package services
