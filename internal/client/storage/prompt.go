package storage

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atinyakov/PayLedger/internal/models"
)

// PromptCredentials reads a name (when registering), email and password
// from stdin.
func PromptCredentials(withName bool) (name, email, password string) {
	scanner := bufio.NewScanner(os.Stdin)

	if withName {
		fmt.Print("Enter name: ")
		scanner.Scan()
		name = strings.TrimSpace(scanner.Text())
	}

	fmt.Print("Enter email: ")
	scanner.Scan()
	email = strings.TrimSpace(scanner.Text())

	fmt.Print("Enter password: ")
	scanner.Scan()
	password = scanner.Text()

	return name, email, password
}

// PromptEmployee reads an employee name and position from stdin.
func PromptEmployee() (name, position string) {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("Enter employee name: ")
	scanner.Scan()
	name = strings.TrimSpace(scanner.Text())

	fmt.Print("Enter position: ")
	scanner.Scan()
	position = strings.TrimSpace(scanner.Text())

	return name, position
}

// PromptSalaryRecord reads a month, year, salary amount and a list of
// expense line items from stdin. Entering an empty category ends the
// expense list.
func PromptSalaryRecord() (month, year int, salary float64, expenses []models.ExpenseInput, err error) {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("Enter month (0-11): ")
	scanner.Scan()
	month, err = strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return 0, 0, 0, nil, fmt.Errorf("invalid month: %w", err)
	}

	fmt.Print("Enter year: ")
	scanner.Scan()
	year, err = strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return 0, 0, 0, nil, fmt.Errorf("invalid year: %w", err)
	}

	fmt.Print("Enter salary amount: ")
	scanner.Scan()
	salary, err = strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
	if err != nil {
		return 0, 0, 0, nil, fmt.Errorf("invalid salary: %w", err)
	}

	for {
		fmt.Print("Expense category (empty to finish): ")
		scanner.Scan()
		category := strings.TrimSpace(scanner.Text())
		if category == "" {
			break
		}

		fmt.Print("Expense amount: ")
		scanner.Scan()
		amount, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
		if err != nil {
			return 0, 0, 0, nil, fmt.Errorf("invalid amount: %w", err)
		}

		fmt.Print("Expense date (day month year, e.g. 5 3 2024): ")
		scanner.Scan()
		parts := strings.Fields(scanner.Text())
		if len(parts) != 3 {
			return 0, 0, 0, nil, fmt.Errorf("expected day month year")
		}
		day, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, 0, 0, nil, fmt.Errorf("invalid day: %w", err)
		}
		expMonth, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, 0, nil, fmt.Errorf("invalid month: %w", err)
		}
		expYear, err := strconv.Atoi(parts[2])
		if err != nil {
			return 0, 0, 0, nil, fmt.Errorf("invalid year: %w", err)
		}

		expenses = append(expenses, models.ExpenseInput{
			Category:     category,
			Amount:       amount,
			ExpenseDay:   day,
			ExpenseMonth: expMonth,
			ExpenseYear:  expYear,
		})
	}

	return month, year, salary, expenses, nil
}
