package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atinyakov/PayLedger/internal/middleware"
	"github.com/atinyakov/PayLedger/internal/models"
	"github.com/go-chi/chi/v5"
)

// EmployeeService defines the interface for employee management
// required by the HTTP handlers.
type EmployeeService interface {
	List(ctx context.Context, userID string) ([]models.Employee, error)
	Create(ctx context.Context, userID, name, position string) (*models.Employee, error)
	Update(ctx context.Context, userID, id, name, position string) (*models.Employee, error)
	Delete(ctx context.Context, userID, id string) error
}

// EmployeeHandler handles HTTP requests for owner-scoped employee CRUD.
type EmployeeHandler struct {
	EmployeeService EmployeeService
}

// employeeRequest represents the JSON payload for creating or updating
// an employee.
type employeeRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

// List handles GET /api/employees.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	employees, err := h.EmployeeService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

// Create handles POST /api/employees.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	employee, err := h.EmployeeService.Create(r.Context(), userID, req.Name, req.Position)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, employee)
}

// Update handles PUT /api/employees/{id}.
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	employee, err := h.EmployeeService.Update(r.Context(), userID, id, req.Name, req.Position)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

// Delete handles DELETE /api/employees/{id}.
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.EmployeeService.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
