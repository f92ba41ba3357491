package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes for a query that references schema that does not
// exist — the local analogue of a document store's missing-index failure.
const (
	codeUndefinedTable  = "42P01"
	codeUndefinedColumn = "42703"
)

// SchemaError reports whether err is a missing-table/column failure and
// returns its code. Callers log these distinctly (a developer diagnostic,
// usually unapplied migrations) while still surfacing a generic failure to
// the user.
func SchemaError(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == codeUndefinedTable || pgErr.Code == codeUndefinedColumn {
			return pgErr.Code, true
		}
	}
	return "", false
}
