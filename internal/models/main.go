// Package models defines the core data structures for users, employees,
// salary records and their expenses.
package models

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Email is the login email chosen by the user. Unique, case-sensitive.
	Email string `json:"email"`
	// Name is the display name of the user.
	Name string `json:"name"`
	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized into responses.
	PasswordHash []byte `json:"-"`
}

// Employee is a person a user pays salaries to. Owner-scoped.
type Employee struct {
	// ID is the unique identifier for the employee.
	ID string `json:"id"`
	// UserID identifies the owning user.
	UserID string `json:"user_id"`
	// Name is the employee's full name.
	Name string `json:"name"`
	// Position is the employee's job title.
	Position string `json:"position"`
}

// SalaryRecord holds the salary paid to one employee for one month.
// At most one record exists per (user, employee, month, year).
type SalaryRecord struct {
	// ID is the surrogate identifier; (UserID, EmployeeID, Month, Year)
	// is the natural key.
	ID string `json:"id"`
	// UserID identifies the owning user.
	UserID string `json:"user_id"`
	// EmployeeID identifies the employee this record belongs to.
	EmployeeID string `json:"employee_id"`
	// Month is zero-based (0 = January ... 11 = December).
	Month int `json:"month"`
	// Year is the calendar year of the payment.
	Year int `json:"year"`
	// Salary is the non-negative salary amount.
	Salary float64 `json:"salary"`
}

// Expense is an ad-hoc expense line item owned by exactly one salary
// record. Expenses are replaced wholesale on record upsert, never patched.
type Expense struct {
	// ID is the unique identifier for the expense.
	ID string `json:"id"`
	// UserID identifies the owning user.
	UserID string `json:"user_id"`
	// SalaryRecordID identifies the parent salary record.
	SalaryRecordID string `json:"salary_record_id"`
	// Category is free-text ("Fuel", "Repairs", ...).
	Category string `json:"category"`
	// Amount is the non-negative expense amount.
	Amount float64 `json:"amount"`
	// ExpenseDay, ExpenseMonth and ExpenseYear form the calendar date of
	// the expense, independent of the parent record's month/year.
	ExpenseDay   int `json:"expense_day"`
	ExpenseMonth int `json:"expense_month"`
	ExpenseYear  int `json:"expense_year"`
}

// SalaryRecordWithExpenses is a salary record merged with its expenses.
type SalaryRecordWithExpenses struct {
	SalaryRecord
	// Expenses holds the record's expense line items, possibly empty.
	Expenses []Expense `json:"expenses"`
}

// GrandTotal returns the salary amount plus the sum of all attached
// expense amounts. It does not mutate the record; an empty expense list
// contributes zero.
func (r SalaryRecordWithExpenses) GrandTotal() float64 {
	total := r.Salary
	for _, e := range r.Expenses {
		total += e.Amount
	}
	return total
}

// ExpenseInput describes one expense line item as submitted by a caller,
// before it is tagged with an owner and a resolved record id.
type ExpenseInput struct {
	Category     string  `json:"category"`
	Amount       float64 `json:"amount"`
	ExpenseDay   int     `json:"expense_day"`
	ExpenseMonth int     `json:"expense_month"`
	ExpenseYear  int     `json:"expense_year"`
}
