// Package grants defines the persisted permission grant model for the
// discretionary access control layer: three independent grant kinds at
// increasing specificity.
//
//   - TenantGrant: one per (user, tenant), applies to everything in the tenant.
//   - ContentTypeGrant: one per (user, tenant, kind name), applies to every
//     instance of one entity kind.
//   - ResourceGrant: one per (user, tenant, resource), applies to a single
//     instance and optionally expires.
//
// The kinds never reference each other; only the authz resolution service
// relates them, purely by lookup order. All writes are idempotent upserts
// that OR-combine flags into the existing row, so grants are strictly
// additive and repeated grants of the same flag are no-ops.
//
// Expired resource grants are invalidated lazily: they remain stored but
// behave exactly like missing grants. Store implementations are provided
// in-memory (this package), for PostgreSQL (pgstore) and for MongoDB
// (mongostore).
package grants
