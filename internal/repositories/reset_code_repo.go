package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yusup-rd/gourmet-gleam/internal/database"
	"github.com/yusup-rd/gourmet-gleam/internal/models"
)

type ResetCodeRepository struct {
	pool *pgxpool.Pool
}

func NewResetCodeRepository(db *database.DB) *ResetCodeRepository {
	return &ResetCodeRepository{pool: db.Pool}
}

// Create stores a freshly issued reset code for the user.
func (r *ResetCodeRepository) Create(ctx context.Context, userID int64, code string, expiresAt time.Time) (*models.PasswordResetCode, error) {
	rc := &models.PasswordResetCode{
		ID:        uuid.New().String(),
		UserID:    userID,
		Code:      code,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}

	query := `
		INSERT INTO password_reset_codes (id, user_id, code, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, rc.ID, rc.UserID, rc.Code, rc.CreatedAt, rc.ExpiresAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return rc, nil
}

// DeleteByUserID removes every outstanding code for the user. Issuing a new
// code supersedes all prior ones.
func (r *ResetCodeRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	query := `DELETE FROM password_reset_codes WHERE user_id = $1`

	_, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return database.MapPostgresError(err)
	}

	return nil
}

// GetValid returns the unexpired code row matching the given email and code,
// or models.ErrNotFound. The code is left in place; VerifyCode is a
// non-consuming check.
func (r *ResetCodeRepository) GetValid(ctx context.Context, email, code string) (*models.PasswordResetCode, error) {
	query := `
		SELECT prc.id, prc.user_id, prc.code, prc.created_at, prc.expires_at
		FROM password_reset_codes prc
		JOIN users u ON u.id = prc.user_id
		WHERE u.email = $1 AND prc.code = $2 AND prc.expires_at >= NOW()
	`

	var rc models.PasswordResetCode
	err := r.pool.QueryRow(ctx, query, email, code).Scan(
		&rc.ID, &rc.UserID, &rc.Code, &rc.CreatedAt, &rc.ExpiresAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &rc, nil
}

// ClaimTx atomically consumes an unexpired code matching the email and code
// within the caller's transaction, returning the owning user's id. The delete
// and the validity check are a single statement, so two concurrent confirms
// for the same code cannot both succeed.
func (r *ResetCodeRepository) ClaimTx(ctx context.Context, tx pgx.Tx, email, code string) (int64, error) {
	query := `
		DELETE FROM password_reset_codes prc
		USING users u
		WHERE u.id = prc.user_id AND u.email = $1 AND prc.code = $2 AND prc.expires_at >= NOW()
		RETURNING prc.user_id
	`

	var userID int64
	err := tx.QueryRow(ctx, query, email, code).Scan(&userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, models.ErrInvalidOrExpiredCode
		}
		return 0, database.MapPostgresError(err)
	}

	return userID, nil
}

// DeleteExpired removes every code past its expiry and reports how many rows
// were swept.
func (r *ResetCodeRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM password_reset_codes WHERE expires_at < NOW()`

	result, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired reset codes: %w", err)
	}

	return result.RowsAffected(), nil
}
