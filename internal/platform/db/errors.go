package db

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ledgerline/ledgerline/internal/platform/httpx"
)

// PostgreSQL error codes the repositories care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// TranslateError maps pgx-level failures onto the shared sentinels so callers
// can branch with errors.Is. Unrecognised store failures pass through opaque.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return httpx.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return httpx.ErrDuplicate
		case codeForeignKeyViolation:
			return httpx.ErrValidation
		}
	}
	return err
}
