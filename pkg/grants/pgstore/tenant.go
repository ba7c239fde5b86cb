package pgstore

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gameguild-gg/guildkit/pkg/grants"
	"github.com/gameguild-gg/guildkit/pkg/permissions"
)

const tenantGrantsTable = "dac_tenant_grants"

// TenantStore implements grants.TenantStore over PostgreSQL.
type TenantStore struct {
	pool    *pgxpool.Pool
	builder squirrel.StatementBuilderType
}

// NewTenantStore constructs a tenant grant store backed by the given pool.
func NewTenantStore(pool *pgxpool.Pool) *TenantStore {
	return &TenantStore{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (s *TenantStore) Get(ctx context.Context, userID, tenantID uuid.UUID) (*grants.TenantGrant, error) {
	stmt, args, err := s.builder.
		Select("user_id", "tenant_id", "flags", "created_at", "updated_at").
		From(tenantGrantsTable).
		Where(squirrel.Eq{"user_id": userID, "tenant_id": tenantID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select tenant grant sql: %w", err)
	}

	var (
		g     grants.TenantGrant
		flags int64
	)
	row := s.pool.QueryRow(ctx, stmt, args...)
	if err := row.Scan(&g.UserID, &g.TenantID, &flags, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, grants.ErrGrantNotFound
		}
		return nil, fmt.Errorf("scan tenant grant: %w", err)
	}
	g.Flags = permissions.Flag(flags)

	return &g, nil
}

func (s *TenantStore) Grant(ctx context.Context, userID, tenantID uuid.UUID, flags permissions.Flag) error {
	if userID == uuid.Nil || tenantID == uuid.Nil {
		return grants.ErrNilID
	}

	stmt, args, err := s.builder.
		Insert(tenantGrantsTable).
		Columns("user_id", "tenant_id", "flags").
		Values(userID, tenantID, int64(flags)).
		Suffix("ON CONFLICT (user_id, tenant_id) DO UPDATE SET flags = " +
			tenantGrantsTable + ".flags | EXCLUDED.flags, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert tenant grant sql: %w", err)
	}

	if _, err := s.pool.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("upsert tenant grant: %w", err)
	}

	return nil
}

func (s *TenantStore) Revoke(ctx context.Context, userID, tenantID uuid.UUID, flags permissions.Flag) error {
	return revokeFlags(ctx, s.pool, s.builder, tenantGrantsTable, flags,
		squirrel.Eq{"user_id": userID, "tenant_id": tenantID})
}

func (s *TenantStore) Delete(ctx context.Context, userID, tenantID uuid.UUID) error {
	return deleteGrant(ctx, s.pool, s.builder, tenantGrantsTable,
		squirrel.Eq{"user_id": userID, "tenant_id": tenantID})
}

var _ grants.TenantStore = (*TenantStore)(nil)
