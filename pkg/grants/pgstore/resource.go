package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gameguild-gg/guildkit/pkg/grants"
	"github.com/gameguild-gg/guildkit/pkg/permissions"
)

// ResourceStore implements grants.ResourceStore over PostgreSQL for a
// single resource kind. Each kind has its own table; the table name is
// fixed at construction and registered with the authz registry alongside
// the kind name.
type ResourceStore struct {
	pool    *pgxpool.Pool
	table   string
	builder squirrel.StatementBuilderType
}

// NewResourceStore constructs a resource grant store reading and writing
// the given table, e.g. "dac_product_grants".
func NewResourceStore(pool *pgxpool.Pool, table string) *ResourceStore {
	return &ResourceStore{
		pool:    pool,
		table:   table,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (s *ResourceStore) Get(ctx context.Context, userID, tenantID, resourceID uuid.UUID) (*grants.ResourceGrant, error) {
	stmt, args, err := s.builder.
		Select("user_id", "tenant_id", "resource_id", "flags", "expires_at", "created_at", "updated_at").
		From(s.table).
		Where(squirrel.Eq{"user_id": userID, "tenant_id": tenantID, "resource_id": resourceID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select resource grant sql: %w", err)
	}

	var (
		g     grants.ResourceGrant
		flags int64
	)
	row := s.pool.QueryRow(ctx, stmt, args...)
	if err := row.Scan(&g.UserID, &g.TenantID, &g.ResourceID, &flags, &g.ExpiresAt, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, grants.ErrGrantNotFound
		}
		return nil, fmt.Errorf("scan resource grant: %w", err)
	}
	g.Flags = permissions.Flag(flags)

	return &g, nil
}

func (s *ResourceStore) Grant(ctx context.Context, userID, tenantID, resourceID uuid.UUID, flags permissions.Flag, expiresAt *time.Time) error {
	if userID == uuid.Nil || tenantID == uuid.Nil || resourceID == uuid.Nil {
		return grants.ErrNilID
	}

	// The stored expiry is replaced, not merged: the most recent grant call
	// decides how long the grant lives.
	stmt, args, err := s.builder.
		Insert(s.table).
		Columns("user_id", "tenant_id", "resource_id", "flags", "expires_at").
		Values(userID, tenantID, resourceID, int64(flags), expiresAt).
		Suffix("ON CONFLICT (user_id, tenant_id, resource_id) DO UPDATE SET flags = " +
			s.table + ".flags | EXCLUDED.flags, expires_at = EXCLUDED.expires_at, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert resource grant sql: %w", err)
	}

	if _, err := s.pool.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("upsert resource grant: %w", err)
	}

	return nil
}

func (s *ResourceStore) Revoke(ctx context.Context, userID, tenantID, resourceID uuid.UUID, flags permissions.Flag) error {
	return revokeFlags(ctx, s.pool, s.builder, s.table, flags,
		squirrel.Eq{"user_id": userID, "tenant_id": tenantID, "resource_id": resourceID})
}

func (s *ResourceStore) Delete(ctx context.Context, userID, tenantID, resourceID uuid.UUID) error {
	return deleteGrant(ctx, s.pool, s.builder, s.table,
		squirrel.Eq{"user_id": userID, "tenant_id": tenantID, "resource_id": resourceID})
}

func (s *ResourceStore) DeleteByResource(ctx context.Context, resourceID uuid.UUID) error {
	stmt, args, err := s.builder.
		Delete(s.table).
		Where(squirrel.Eq{"resource_id": resourceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete resource grants sql: %w", err)
	}

	// Deleting grants for an already grant-less resource is not an error:
	// callers invoke this as cleanup after the resource itself is removed.
	if _, err := s.pool.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("delete resource grants: %w", err)
	}

	return nil
}

var _ grants.ResourceStore = (*ResourceStore)(nil)
