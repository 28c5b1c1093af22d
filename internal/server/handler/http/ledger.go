package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atinyakov/PayLedger/internal/middleware"
	"github.com/atinyakov/PayLedger/internal/models"
)

// LedgerService defines the interface for salary-record operations
// required by the HTTP handlers.
type LedgerService interface {
	// UpsertRecord creates or replaces the record keyed by
	// (user, employee, month, year) and its expense set.
	UpsertRecord(ctx context.Context, userID, employeeID string, month, year int, salary float64, expenses []models.ExpenseInput) (*models.SalaryRecordWithExpenses, error)
	// ListRecords returns the user's records, most recent month first.
	ListRecords(ctx context.Context, userID string) ([]models.SalaryRecordWithExpenses, error)
}

// LedgerHandler handles HTTP requests for salary records.
type LedgerHandler struct {
	LedgerService LedgerService
}

// upsertRequest represents the JSON payload for submitting a month's
// salary together with its complete expense set.
type upsertRequest struct {
	EmployeeID string                `json:"employee_id"`
	Month      int                   `json:"month"`
	Year       int                   `json:"year"`
	Salary     float64               `json:"salary"`
	Expenses   []models.ExpenseInput `json:"expenses"`
}

// recordResponse is a salary record with its expenses and the computed
// grand total.
type recordResponse struct {
	models.SalaryRecordWithExpenses
	GrandTotal float64 `json:"grand_total"`
}

// Upsert handles POST /api/salary-records.
// Submitting the same (employee, month, year) twice replaces the salary
// amount and the whole expense list.
func (h *LedgerHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.LedgerService.UpsertRecord(r.Context(), userID, req.EmployeeID, req.Month, req.Year, req.Salary, req.Expenses)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recordResponse{
		SalaryRecordWithExpenses: *record,
		GrandTotal:               record.GrandTotal(),
	})
}

// List handles GET /api/salary-records.
func (h *LedgerHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	records, err := h.LedgerService.ListRecords(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, recordResponse{
			SalaryRecordWithExpenses: rec,
			GrandTotal:               rec.GrandTotal(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}
