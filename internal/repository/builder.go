package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/translation-qa-api/pkg/database"
)

// psql renders squirrel builders with Postgres positional placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// conn resolves the querier for ctx so repository calls join an open transaction.
func conn(ctx context.Context, db *sqlx.DB) database.Querier {
	return database.QuerierFromContext(ctx, db)
}
