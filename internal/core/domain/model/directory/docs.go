// Package directory provides the read-only view of the external user
// directory that the dispatch core depends on. Account storage, credentials
// and profile editing belong to a separate system; this package only models
// the slice of a user record that dispatch decisions need.
//
// The package includes:
//   - Entry: a snapshot of one directory record (role tag, display fields,
//     optional geographic position, optional push notification address)
//   - Role: the closed ADMIN/STORE/COURIER role set
//
// Entries use composition instead of a user/store/courier class hierarchy:
// a single record type carries a role tag plus role-specific optional fields.
package directory
