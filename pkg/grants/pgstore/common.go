package pgstore

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gameguild-gg/guildkit/pkg/grants"
	"github.com/gameguild-gg/guildkit/pkg/permissions"
)

// revokeFlags clears bits on the matching grant row and removes the row
// entirely once no flags remain, keeping the stores free of empty grants.
func revokeFlags(ctx context.Context, pool *pgxpool.Pool, builder squirrel.StatementBuilderType, table string, flags permissions.Flag, key squirrel.Eq) error {
	stmt, args, err := builder.
		Update(table).
		Set("flags", squirrel.Expr("flags & ~?::bigint", int64(flags))).
		Set("updated_at", squirrel.Expr("now()")).
		Where(key).
		Suffix("RETURNING flags").
		ToSql()
	if err != nil {
		return fmt.Errorf("build revoke grant sql: %w", err)
	}

	var remaining int64
	if err := pool.QueryRow(ctx, stmt, args...).Scan(&remaining); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return grants.ErrGrantNotFound
		}
		return fmt.Errorf("revoke grant: %w", err)
	}

	if remaining != 0 {
		return nil
	}
	return deleteGrant(ctx, pool, builder, table, key)
}

// deleteGrant removes a grant row matching the key.
func deleteGrant(ctx context.Context, pool *pgxpool.Pool, builder squirrel.StatementBuilderType, table string, key squirrel.Eq) error {
	stmt, args, err := builder.
		Delete(table).
		Where(key).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete grant sql: %w", err)
	}

	tag, err := pool.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete grant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return grants.ErrGrantNotFound
	}

	return nil
}
