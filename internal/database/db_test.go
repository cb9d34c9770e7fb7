package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusup-rd/gourmet-gleam/internal/models"
)

// stubTx satisfies pgx.Tx through embedding; only Commit and Rollback are
// implemented since runInTx touches nothing else.
type stubTx struct {
	pgx.Tx
	commitErr  error
	committed  bool
	rolledBack bool
}

func (s *stubTx) Commit(ctx context.Context) error {
	s.committed = true
	return s.commitErr
}

func (s *stubTx) Rollback(ctx context.Context) error {
	s.rolledBack = true
	return nil
}

type stubBeginner struct {
	tx       *stubTx
	beginErr error
}

func (s *stubBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	return s.tx, nil
}

func TestRunInTx_CommitsOnSuccess(t *testing.T) {
	tx := &stubTx{}

	err := runInTx(context.Background(), &stubBeginner{tx: tx}, func(pgx.Tx) error {
		return nil
	})

	require.NoError(t, err)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestRunInTx_CommitFailureSurfaces(t *testing.T) {
	// A COMMIT that fails (connection dropped, serialization failure) must
	// reach the caller; the write did not happen and success would be a lie.
	commitErr := errors.New("unexpected EOF")
	tx := &stubTx{commitErr: commitErr}

	err := runInTx(context.Background(), &stubBeginner{tx: tx}, func(pgx.Tx) error {
		return nil
	})

	assert.ErrorIs(t, err, commitErr)
}

func TestRunInTx_RollsBackOnError(t *testing.T) {
	tx := &stubTx{}
	fnErr := errors.New("constraint violated")

	err := runInTx(context.Background(), &stubBeginner{tx: tx}, func(pgx.Tx) error {
		return fnErr
	})

	assert.ErrorIs(t, err, fnErr)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestRunInTx_RollsBackOnPanic(t *testing.T) {
	tx := &stubTx{}

	assert.Panics(t, func() {
		_ = runInTx(context.Background(), &stubBeginner{tx: tx}, func(pgx.Tx) error {
			panic("boom")
		})
	})

	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestRunInTx_BeginFailure(t *testing.T) {
	beginErr := errors.New("pool exhausted")

	err := runInTx(context.Background(), &stubBeginner{beginErr: beginErr}, func(pgx.Tx) error {
		t.Fatal("fn must not run when Begin fails")
		return nil
	})

	assert.ErrorIs(t, err, beginErr)
}

func TestMapPostgresError(t *testing.T) {
	passthrough := errors.New("something else")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, models.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("query user: %w", pgx.ErrNoRows), models.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, models.ErrConflict},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, models.ErrBadRequest},
		{"not null violation", &pgconn.PgError{Code: "23502"}, models.ErrBadRequest},
		{"wrapped pg error", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), models.ErrConflict},
		{"unknown error passes through", passthrough, passthrough},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapPostgresError(tt.in))
		})
	}
}
