// Package service provides the business logic for identity resolution,
// employee management and the salary-record ledger, delegating
// persistence to repository interfaces.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/atinyakov/PayLedger/internal/models"
	"github.com/atinyakov/PayLedger/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// emailShape is a deliberately loose check: some non-whitespace, an "@",
// some non-whitespace, a ".", some non-whitespace. No RFC validation.
var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// minPasswordLen is the minimum accepted password length.
const minPasswordLen = 6

// AuthRepository defines the persistence operations required by the
// authentication service.
type AuthRepository interface {
	// CreateUser persists a new identity. Implementations return
	// repository.ErrUniqueViolation when the email is already taken.
	CreateUser(ctx context.Context, user models.User) error
	// UserByEmail fetches the identity with the given email, including
	// the stored secret. Implementations return sql.ErrNoRows when no
	// such identity exists.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID fetches the public profile for the given user id.
	// Implementations return sql.ErrNoRows when no such identity exists.
	UserByID(ctx context.Context, id string) (*models.User, error)
}

// AuthService implements registration and login by delegating to an
// AuthRepository. Passwords are hashed with bcrypt before they reach
// the store.
type AuthService struct {
	// repo performs the data-layer operations.
	repo AuthRepository
}

// NewAuthService constructs a new AuthService using the provided
// repository. repo must implement AuthRepository.
func NewAuthService(repo AuthRepository) *AuthService {
	return &AuthService{repo: repo}
}

// Register validates the input, hashes the password and persists a new
// identity. Returns ErrDuplicateEmail if the email is already registered
// (exact, case-sensitive comparison) and a ValidationError for malformed
// input. The returned profile never carries the secret.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, &ValidationError{Message: "all fields are required"}
	}
	if len(password) < minPasswordLen {
		return nil, &ValidationError{Message: "password must be at least 6 characters"}
	}
	if !emailShape.MatchString(email) {
		return nil, &ValidationError{Message: "please enter a valid email address"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return &models.User{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}

// Profile returns the public profile for the given user id. Returns
// ErrNotFound if no such identity exists.
func (s *AuthService) Profile(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and returns the public profile.
// An unknown email and a wrong password both fail with
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, &ValidationError{Message: "email and password are required"}
	}

	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &models.User{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}
