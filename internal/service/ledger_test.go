package service

import (
	"context"
	"errors"
	"testing"

	"github.com/atinyakov/PayLedger/internal/models"
)

type mockLedgerRepo struct {
	UpsertRecordFunc  func(ctx context.Context, record models.SalaryRecord, expenses []models.ExpenseInput) (*models.SalaryRecordWithExpenses, error)
	RecordsByUserFunc func(ctx context.Context, userID string) ([]models.SalaryRecordWithExpenses, error)
}

func (m *mockLedgerRepo) UpsertRecord(ctx context.Context, record models.SalaryRecord, expenses []models.ExpenseInput) (*models.SalaryRecordWithExpenses, error) {
	return m.UpsertRecordFunc(ctx, record, expenses)
}
func (m *mockLedgerRepo) RecordsByUser(ctx context.Context, userID string) ([]models.SalaryRecordWithExpenses, error) {
	return m.RecordsByUserFunc(ctx, userID)
}

func TestUpsertRecord_Validation(t *testing.T) {
	svc := NewLedgerService(&mockLedgerRepo{
		UpsertRecordFunc: func(ctx context.Context, record models.SalaryRecord, expenses []models.ExpenseInput) (*models.SalaryRecordWithExpenses, error) {
			t.Fatal("store must not be called for invalid input")
			return nil, nil
		},
	})

	tests := []struct {
		name       string
		employeeID string
		month      int
		year       int
		salary     float64
		expenses   []models.ExpenseInput
	}{
		{"empty employee", "", 3, 2024, 50000, nil},
		{"month too low", "e1", -1, 2024, 50000, nil},
		{"month too high", "e1", 12, 2024, 50000, nil},
		{"zero year", "e1", 3, 0, 50000, nil},
		{"negative salary", "e1", 3, 2024, -1, nil},
		{"negative expense", "e1", 3, 2024, 50000, []models.ExpenseInput{{Category: "Fuel", Amount: -5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpsertRecord(context.Background(), "u1", tt.employeeID, tt.month, tt.year, tt.salary, tt.expenses)
			if !IsValidation(err) {
				t.Errorf("UpsertRecord error = %v; want ValidationError", err)
			}
		})
	}
}

func TestUpsertRecord_PassesOwnerAndKey(t *testing.T) {
	var got models.SalaryRecord
	svc := NewLedgerService(&mockLedgerRepo{
		UpsertRecordFunc: func(ctx context.Context, record models.SalaryRecord, expenses []models.ExpenseInput) (*models.SalaryRecordWithExpenses, error) {
			got = record
			return &models.SalaryRecordWithExpenses{SalaryRecord: record}, nil
		},
	})

	_, err := svc.UpsertRecord(context.Background(), "u1", "e1", 3, 2024, 50000, nil)
	if err != nil {
		t.Fatalf("UpsertRecord returned error: %v", err)
	}
	if got.UserID != "u1" || got.EmployeeID != "e1" || got.Month != 3 || got.Year != 2024 || got.Salary != 50000 {
		t.Errorf("record passed to repo = %+v", got)
	}
	if got.ID == "" {
		t.Error("record passed to repo has no candidate id")
	}
}

func TestUpsertRecord_ZeroSalaryAndBoundaryMonths(t *testing.T) {
	svc := NewLedgerService(&mockLedgerRepo{
		UpsertRecordFunc: func(ctx context.Context, record models.SalaryRecord, expenses []models.ExpenseInput) (*models.SalaryRecordWithExpenses, error) {
			return &models.SalaryRecordWithExpenses{SalaryRecord: record}, nil
		},
	})

	for _, month := range []int{0, 11} {
		if _, err := svc.UpsertRecord(context.Background(), "u1", "e1", month, 2024, 0, nil); err != nil {
			t.Errorf("month %d: unexpected error: %v", month, err)
		}
	}
}

func TestListRecords_Error(t *testing.T) {
	wantErr := errors.New("query failed")
	svc := NewLedgerService(&mockLedgerRepo{
		RecordsByUserFunc: func(ctx context.Context, userID string) ([]models.SalaryRecordWithExpenses, error) {
			return nil, wantErr
		},
	})

	_, err := svc.ListRecords(context.Background(), "u1")
	if !errors.Is(err, wantErr) {
		t.Fatalf("ListRecords error = %v; want %v", err, wantErr)
	}
}
