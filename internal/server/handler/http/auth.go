// Package http provides the HTTP handlers and routing for the salary
// tracking API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/PayLedger/internal/middleware"
	"github.com/atinyakov/PayLedger/internal/models"
	"github.com/atinyakov/PayLedger/internal/service"
	"github.com/atinyakov/PayLedger/internal/token"
)

// AuthService defines the interface for identity resolution required by
// the HTTP handlers.
type AuthService interface {
	// Register creates a new identity and returns its public profile.
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	// Login verifies credentials and returns the public profile.
	Login(ctx context.Context, email, password string) (*models.User, error)
	// Profile returns the public profile for a user id.
	Profile(ctx context.Context, id string) (*models.User, error)
}

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	// AuthService performs the underlying identity operations.
	AuthService AuthService
	// JWTSecret signs the session tokens issued on success.
	JWTSecret string
}

// credentialsRequest represents the JSON payload for registration and
// login. Name is ignored for login.
type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse is the body returned after a successful registration
// or login: the session token plus the public profile.
type sessionResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register handles POST /api/register.
// It expects a JSON body with name, email and password, creates the
// identity and responds 201 with a session token and the public profile.
// Malformed input yields 400, a taken email 409.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.AuthService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeServiceError(w, err)
		return
	}

	h.respondWithSession(w, http.StatusCreated, user)
}

// Login handles POST /api/login.
// Both an unknown email and a wrong password yield 401 with the same
// message.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeServiceError(w, err)
		return
	}

	h.respondWithSession(w, http.StatusOK, user)
}

// Me handles GET /api/me, returning the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	user, err := h.AuthService.Profile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// respondWithSession issues a session token for the user and writes the
// session response.
func (h *AuthHandler) respondWithSession(w http.ResponseWriter, status int, user *models.User) {
	t, err := token.Generate(h.JWTSecret, user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue session token")
		return
	}
	writeJSON(w, status, sessionResponse{Token: t, User: user})
}
