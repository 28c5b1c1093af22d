// Package repository provides PostgreSQL persistence implementations for
// the application services.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/PayLedger/internal/models"
	"github.com/lib/pq"
)

// ErrUniqueViolation is returned when an insert breaks a unique
// constraint, e.g. registering an email that already exists.
var ErrUniqueViolation = errors.New("unique constraint violation")

// uniqueViolationCode is the PostgreSQL error code for unique_violation.
const uniqueViolationCode = "23505"

// PostgresAuthRepository implements identity persistence using a
// PostgreSQL database.
type PostgresAuthRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAuthRepository creates a new PostgresAuthRepository with the
// given database connection. db must be a valid *sql.DB connected to a
// PostgreSQL instance.
func NewPostgresAuthRepository(db *sql.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{DB: db}
}

// CreateUser inserts a new user row. If the email is already registered,
// the store's unique constraint fires and ErrUniqueViolation is returned;
// the existing row is left untouched.
func (r *PostgresAuthRepository) CreateUser(ctx context.Context, user models.User) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (id, email, name, password_hash) VALUES ($1, $2, $3, $4)`,
		user.ID, user.Email, user.Name, user.PasswordHash,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return ErrUniqueViolation
		}
		return fmt.Errorf("CreateUser: %w", err)
	}
	return nil
}

// UserByID fetches the public profile of the user with the given id.
// Returns sql.ErrNoRows if no such user exists.
func (r *PostgresAuthRepository) UserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, email, name FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Email, &user.Name)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserByEmail fetches the user with the given email, including the
// password hash for verification. Returns sql.ErrNoRows if no user with
// that email exists. The email comparison is exact and case-sensitive.
func (r *PostgresAuthRepository) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash FROM users WHERE email = $1
	`, email).Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
