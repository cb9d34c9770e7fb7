package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yusup-rd/gourmet-gleam/internal/database"
	"github.com/yusup-rd/gourmet-gleam/internal/models"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{pool: db.Pool}
}

// rowScanner interface for scanning rows (supports both single row and multiple rows)
type rowScanner interface {
	Scan(dest ...interface{}) error
}

const userColumns = "id, name, email, password_hash, role, preferred_cuisine, excluded_cuisine, diet, intolerances, created_at, updated_at"

// scanUserRow populates a User model from a database row
func scanUserRow(scanner rowScanner) (*models.User, error) {
	var user models.User

	err := scanner.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.PreferredCuisine, &user.ExcludedCuisine, &user.Diet, &user.Intolerances,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &user, nil
}

// scanUserRows iterates through rows and scans each into User models
func scanUserRows(rows pgx.Rows) ([]*models.User, error) {
	defer rows.Close()

	users := make([]*models.User, 0)

	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return scanUserRow(r.pool.QueryRow(ctx, query, id))
}

// GetByEmail looks a user up by the exact, case-sensitive stored address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	return scanUserRow(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if user.Role == "" {
		user.Role = "client"
	}
	if user.PreferredCuisine == nil {
		user.PreferredCuisine = []string{}
	}
	if user.ExcludedCuisine == nil {
		user.ExcludedCuisine = []string{}
	}
	if user.Diet == nil {
		user.Diet = []string{}
	}
	if user.Intolerances == nil {
		user.Intolerances = []string{}
	}

	query := `
		INSERT INTO users (name, email, password_hash, role, preferred_cuisine, excluded_cuisine, diet, intolerances, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + userColumns

	return scanUserRow(r.pool.QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role,
		user.PreferredCuisine, user.ExcludedCuisine, user.Diet, user.Intolerances,
		user.CreatedAt, user.UpdatedAt,
	))
}

// Update writes name, email and the preference fields. Role and password are
// deliberately excluded; they change only via their dedicated operations.
func (r *UserRepository) Update(ctx context.Context, id int64, user *models.User) (*models.User, error) {
	user.UpdatedAt = time.Now()

	query := `
		UPDATE users
		SET name = $1, email = $2, preferred_cuisine = $3, excluded_cuisine = $4, diet = $5, intolerances = $6, updated_at = $7
		WHERE id = $8
		RETURNING ` + userColumns

	return scanUserRow(r.pool.QueryRow(ctx, query,
		user.Name, user.Email, user.PreferredCuisine, user.ExcludedCuisine,
		user.Diet, user.Intolerances, user.UpdatedAt, id,
	))
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.pool.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// UpdatePasswordTx is the transactional variant used by the reset flow so the
// password write commits atomically with the code claim.
func (r *UserRepository) UpdatePasswordTx(ctx context.Context, tx pgx.Tx, id int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`

	result, err := tx.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// ListClients returns users with the "client" role, optionally filtered by a
// case-insensitive substring match on name or email.
func (r *UserRepository) ListClients(ctx context.Context, search string) ([]*models.User, error) {
	if search != "" {
		query := `
			SELECT ` + userColumns + `
			FROM users
			WHERE role = 'client' AND (name ILIKE $1 OR email ILIKE $1)
			ORDER BY created_at DESC
		`
		rows, err := r.pool.Query(ctx, query, "%"+search+"%")
		if err != nil {
			return nil, fmt.Errorf("failed to query users: %w", err)
		}
		return scanUserRows(rows)
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE role = 'client' ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	return scanUserRows(rows)
}
