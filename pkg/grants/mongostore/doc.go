// Package mongostore implements the grant stores on MongoDB.
//
// The additive upsert contract uses the $bit operator so flag combination
// happens atomically server-side, matching the PostgreSQL implementation:
//
//	{$bit: {flags: {or: <new flags>}}}
//
// Identifiers are stored as canonical UUID strings. Tenant and content-type
// grants live in fixed collections; each resource kind gets its own
// collection named at construction. Uniqueness is enforced by a unique
// compound index on the key fields; call EnsureIndexes on every store at
// startup, since without the index concurrent first-grants for the same
// key can insert duplicate documents.
package mongostore
