// Package pgstore implements the grant stores on PostgreSQL using pgx.
//
// Uniqueness is enforced by primary keys on the grant key columns, and the
// additive upsert contract is pushed into the database itself:
//
//	INSERT ... ON CONFLICT (...) DO UPDATE SET flags = t.flags | EXCLUDED.flags
//
// so concurrent grant calls OR-combine without application-level locking.
// Each resource kind keeps its grants in its own table; NewResourceStore
// takes the table name, mirroring the per-kind registration in the authz
// registry. Schema migrations live in the repository's migrations directory.
package pgstore
