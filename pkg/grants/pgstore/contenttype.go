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

const contentTypeGrantsTable = "dac_content_type_grants"

// ContentTypeStore implements grants.ContentTypeStore over PostgreSQL.
type ContentTypeStore struct {
	pool    *pgxpool.Pool
	builder squirrel.StatementBuilderType
}

// NewContentTypeStore constructs a content-type grant store backed by the given pool.
func NewContentTypeStore(pool *pgxpool.Pool) *ContentTypeStore {
	return &ContentTypeStore{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (s *ContentTypeStore) Get(ctx context.Context, userID, tenantID uuid.UUID, contentType string) (*grants.ContentTypeGrant, error) {
	if contentType == "" {
		return nil, grants.ErrEmptyContentType
	}

	stmt, args, err := s.builder.
		Select("user_id", "tenant_id", "content_type", "flags", "created_at", "updated_at").
		From(contentTypeGrantsTable).
		Where(squirrel.Eq{"user_id": userID, "tenant_id": tenantID, "content_type": contentType}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select content type grant sql: %w", err)
	}

	var (
		g     grants.ContentTypeGrant
		flags int64
	)
	row := s.pool.QueryRow(ctx, stmt, args...)
	if err := row.Scan(&g.UserID, &g.TenantID, &g.ContentType, &flags, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, grants.ErrGrantNotFound
		}
		return nil, fmt.Errorf("scan content type grant: %w", err)
	}
	g.Flags = permissions.Flag(flags)

	return &g, nil
}

func (s *ContentTypeStore) Grant(ctx context.Context, userID, tenantID uuid.UUID, contentType string, flags permissions.Flag) error {
	if userID == uuid.Nil || tenantID == uuid.Nil {
		return grants.ErrNilID
	}
	if contentType == "" {
		return grants.ErrEmptyContentType
	}

	stmt, args, err := s.builder.
		Insert(contentTypeGrantsTable).
		Columns("user_id", "tenant_id", "content_type", "flags").
		Values(userID, tenantID, contentType, int64(flags)).
		Suffix("ON CONFLICT (user_id, tenant_id, content_type) DO UPDATE SET flags = " +
			contentTypeGrantsTable + ".flags | EXCLUDED.flags, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert content type grant sql: %w", err)
	}

	if _, err := s.pool.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("upsert content type grant: %w", err)
	}

	return nil
}

func (s *ContentTypeStore) Revoke(ctx context.Context, userID, tenantID uuid.UUID, contentType string, flags permissions.Flag) error {
	if contentType == "" {
		return grants.ErrEmptyContentType
	}
	return revokeFlags(ctx, s.pool, s.builder, contentTypeGrantsTable, flags,
		squirrel.Eq{"user_id": userID, "tenant_id": tenantID, "content_type": contentType})
}

func (s *ContentTypeStore) Delete(ctx context.Context, userID, tenantID uuid.UUID, contentType string) error {
	if contentType == "" {
		return grants.ErrEmptyContentType
	}
	return deleteGrant(ctx, s.pool, s.builder, contentTypeGrantsTable,
		squirrel.Eq{"user_id": userID, "tenant_id": tenantID, "content_type": contentType})
}

var _ grants.ContentTypeStore = (*ContentTypeStore)(nil)
