package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yusup-rd/gourmet-gleam/internal/models"
)

// MapPostgresError translates pgx and Postgres failures into the sentinel
// errors the service layer matches on. Anything unrecognized passes through
// unchanged.
func MapPostgresError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return models.ErrConflict
		case "23503": // foreign_key_violation
			return models.ErrBadRequest
		case "23502": // not_null_violation
			return models.ErrBadRequest
		}
	}

	return err
}

// txBeginner is the slice of the pool the transaction helper needs; it
// exists so the commit/rollback paths are testable without a live database.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithTransaction runs fn inside a single transaction. The transaction is
// rolled back if fn returns an error or panics; otherwise it is committed,
// and a commit failure is returned to the caller rather than swallowed.
func (db *DB) WithTransaction(ctx context.Context, fn func(pgx.Tx) error) error {
	return runInTx(ctx, db.Pool, fn)
}

func runInTx(ctx context.Context, pool txBeginner, fn func(pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}
