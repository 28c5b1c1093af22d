// Package storage implements the local persistence variant of the
// salary tracker: identities, employees and salary records held in a
// single JSON file instead of a remote store. It exposes the same
// register/login and ledger contract as the server-backed services, so
// callers never branch on which backend they talk to.
package storage

import (
	"encoding/json"
	"os"
	"regexp"
	"sort"
	"sync"

	"github.com/atinyakov/PayLedger/internal/models"
	"github.com/atinyakov/PayLedger/internal/service"
	"github.com/google/uuid"
)

const storageFile = "ledger.json"

// emailShape mirrors the server-side check: non-whitespace, "@",
// non-whitespace, ".", non-whitespace.
var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// fileData is the persisted shape of the local store. AuthUser holds
// the currently logged-in profile for reload continuity;
// RegisteredUsers holds every identity including its secret.
type fileData struct {
	AuthUser        *models.User                      `json:"auth_user"`
	RegisteredUsers []StoredUser                      `json:"registered_users"`
	Employees       []models.Employee                 `json:"employees"`
	SalaryRecords   []models.SalaryRecordWithExpenses `json:"salary_records"`
}

// LocalStore is a file-backed store guarded by a mutex. Every mutating
// operation persists the whole blob before returning.
type LocalStore struct {
	mu   sync.Mutex
	data fileData
}

// Load reads the store file from the working directory. A missing file
// is not an error: the store starts empty.
func (ls *LocalStore) Load() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	f, err := os.Open(storageFile)
	if err != nil {
		if os.IsNotExist(err) {
			ls.data = fileData{}
			return nil
		}
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(&ls.data)
}

// save persists the blob. Callers must hold ls.mu.
func (ls *LocalStore) save() error {
	f, err := os.Create(storageFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(&ls.data)
}

// CurrentUser returns the logged-in profile, or nil when logged out.
func (ls *LocalStore) CurrentUser() *models.User {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.data.AuthUser == nil {
		return nil
	}
	u := *ls.data.AuthUser
	return &u
}

// Register validates the input, checks the email against every
// registered identity by client-side scan (exact, case-sensitive), and
// on success stores the identity, marks it logged in and returns the
// public profile.
func (ls *LocalStore) Register(name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, &service.ValidationError{Message: "all fields are required"}
	}
	if len(password) < 6 {
		return nil, &service.ValidationError{Message: "password must be at least 6 characters"}
	}
	if !emailShape.MatchString(email) {
		return nil, &service.ValidationError{Message: "please enter a valid email address"}
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	for _, u := range ls.data.RegisteredUsers {
		if u.Email == email {
			return nil, service.ErrDuplicateEmail
		}
	}

	stored := StoredUser{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: password,
	}
	ls.data.RegisteredUsers = append(ls.data.RegisteredUsers, stored)

	profile := models.User{ID: stored.ID, Email: stored.Email, Name: stored.Name}
	ls.data.AuthUser = &profile
	if err := ls.save(); err != nil {
		return nil, err
	}
	out := profile
	return &out, nil
}

// Login scans the registered identities for a matching email and
// password. Unknown email and wrong password fail with the same error.
func (ls *LocalStore) Login(email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, &service.ValidationError{Message: "email and password are required"}
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	for _, u := range ls.data.RegisteredUsers {
		if u.Email == email && u.Password == password {
			profile := models.User{ID: u.ID, Email: u.Email, Name: u.Name}
			ls.data.AuthUser = &profile
			if err := ls.save(); err != nil {
				return nil, err
			}
			out := profile
			return &out, nil
		}
	}
	return nil, service.ErrInvalidCredentials
}

// Logout clears the logged-in profile. Registered identities and data
// are kept.
func (ls *LocalStore) Logout() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.data.AuthUser = nil
	return ls.save()
}

// Employees returns the user's employees in insertion order.
func (ls *LocalStore) Employees(userID string) []models.Employee {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	out := make([]models.Employee, 0)
	for _, e := range ls.data.Employees {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

// CreateEmployee adds an employee for the user.
func (ls *LocalStore) CreateEmployee(userID, name, position string) (*models.Employee, error) {
	if name == "" {
		return nil, &service.ValidationError{Message: "employee name is required"}
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	employee := models.Employee{
		ID:       uuid.NewString(),
		UserID:   userID,
		Name:     name,
		Position: position,
	}
	ls.data.Employees = append(ls.data.Employees, employee)
	if err := ls.save(); err != nil {
		return nil, err
	}
	return &employee, nil
}

// UpdateEmployee changes the name and position of the user's employee.
func (ls *LocalStore) UpdateEmployee(userID, id, name, position string) (*models.Employee, error) {
	if name == "" {
		return nil, &service.ValidationError{Message: "employee name is required"}
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	for i := range ls.data.Employees {
		if ls.data.Employees[i].ID == id && ls.data.Employees[i].UserID == userID {
			ls.data.Employees[i].Name = name
			ls.data.Employees[i].Position = position
			if err := ls.save(); err != nil {
				return nil, err
			}
			e := ls.data.Employees[i]
			return &e, nil
		}
	}
	return nil, service.ErrNotFound
}

// DeleteEmployee removes the user's employee. Salary records referencing
// the employee are retained.
func (ls *LocalStore) DeleteEmployee(userID, id string) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	for i := range ls.data.Employees {
		if ls.data.Employees[i].ID == id && ls.data.Employees[i].UserID == userID {
			ls.data.Employees = append(ls.data.Employees[:i], ls.data.Employees[i+1:]...)
			return ls.save()
		}
	}
	return service.ErrNotFound
}

// UpsertRecord creates or replaces the salary record keyed by
// (user, employee, month, year). An existing record keeps its id but
// takes the new salary amount, and its expense list is replaced
// entirely by the submitted one.
func (ls *LocalStore) UpsertRecord(userID, employeeID string, month, year int, salary float64, expenses []models.ExpenseInput) (*models.SalaryRecordWithExpenses, error) {
	if employeeID == "" {
		return nil, &service.ValidationError{Message: "employee is required"}
	}
	if month < 0 || month > 11 {
		return nil, &service.ValidationError{Message: "month must be between 0 and 11"}
	}
	if year <= 0 {
		return nil, &service.ValidationError{Message: "year must be positive"}
	}
	if salary < 0 {
		return nil, &service.ValidationError{Message: "salary must not be negative"}
	}
	for _, e := range expenses {
		if e.Amount < 0 {
			return nil, &service.ValidationError{Message: "expense amount must not be negative"}
		}
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	idx := -1
	for i := range ls.data.SalaryRecords {
		r := &ls.data.SalaryRecords[i]
		if r.UserID == userID && r.EmployeeID == employeeID && r.Month == month && r.Year == year {
			idx = i
			break
		}
	}

	var recordID string
	if idx >= 0 {
		recordID = ls.data.SalaryRecords[idx].ID
		ls.data.SalaryRecords[idx].Salary = salary
	} else {
		recordID = uuid.NewString()
		ls.data.SalaryRecords = append(ls.data.SalaryRecords, models.SalaryRecordWithExpenses{
			SalaryRecord: models.SalaryRecord{
				ID:         recordID,
				UserID:     userID,
				EmployeeID: employeeID,
				Month:      month,
				Year:       year,
				Salary:     salary,
			},
		})
		idx = len(ls.data.SalaryRecords) - 1
	}

	attached := make([]models.Expense, 0, len(expenses))
	for _, in := range expenses {
		attached = append(attached, models.Expense{
			ID:             uuid.NewString(),
			UserID:         userID,
			SalaryRecordID: recordID,
			Category:       in.Category,
			Amount:         in.Amount,
			ExpenseDay:     in.ExpenseDay,
			ExpenseMonth:   in.ExpenseMonth,
			ExpenseYear:    in.ExpenseYear,
		})
	}
	ls.data.SalaryRecords[idx].Expenses = attached

	if err := ls.save(); err != nil {
		return nil, err
	}

	out := ls.data.SalaryRecords[idx]
	out.Expenses = append([]models.Expense(nil), out.Expenses...)
	return &out, nil
}

// ListRecords returns the user's salary records ordered by year
// descending then month descending, each with its expenses.
func (ls *LocalStore) ListRecords(userID string) []models.SalaryRecordWithExpenses {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	out := make([]models.SalaryRecordWithExpenses, 0)
	for _, r := range ls.data.SalaryRecords {
		if r.UserID != userID {
			continue
		}
		cp := r
		cp.Expenses = append([]models.Expense(nil), r.Expenses...)
		out = append(out, cp)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out
}
