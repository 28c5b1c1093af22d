// Package main is the local variant of the salary tracker: an
// interactive shell over a JSON file in the working directory, with no
// server involved. Credentials are checked in the clear; the
// server-backed variant is the stronger deployment.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/atinyakov/PayLedger/internal/client/storage"
)

var (
	version   string
	buildDate string
)

// monthNames maps the zero-based month index used throughout the ledger
// to a display name.
var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// repl runs the interactive shell loop, accepting commands to manage
// employees and salary records.
func repl(ls *storage.LocalStore) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("payledger> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, register, login, logout, whoami, employees, add-employee, edit-employee <id>, delete-employee <id>, record, list, exit")
		case "register":
			name, email, password := storage.PromptCredentials(true)
			user, err := ls.Register(name, email, password)
			if err != nil {
				fmt.Println("Registration failed:", err)
				continue
			}
			fmt.Printf("Registered and logged in as %s (%s)\n", user.Name, user.Email)
		case "login":
			_, email, password := storage.PromptCredentials(false)
			user, err := ls.Login(email, password)
			if err != nil {
				fmt.Println("Login failed:", err)
				continue
			}
			fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Email)
		case "logout":
			if err := ls.Logout(); err != nil {
				fmt.Println("Logout failed:", err)
				continue
			}
			fmt.Println("Logged out")
		case "whoami":
			user := ls.CurrentUser()
			if user == nil {
				fmt.Println("Not logged in")
			} else {
				fmt.Printf("%s (%s)\n", user.Name, user.Email)
			}
		case "employees":
			user := ls.CurrentUser()
			if user == nil {
				fmt.Println("Log in first")
				continue
			}
			employees := ls.Employees(user.ID)
			if len(employees) == 0 {
				fmt.Println("No employees yet")
				continue
			}
			for _, e := range employees {
				fmt.Printf("%s  %s (%s)\n", e.ID, e.Name, e.Position)
			}
		case "add-employee":
			user := ls.CurrentUser()
			if user == nil {
				fmt.Println("Log in first")
				continue
			}
			name, position := storage.PromptEmployee()
			employee, err := ls.CreateEmployee(user.ID, name, position)
			if err != nil {
				fmt.Println("Failed to add employee:", err)
				continue
			}
			fmt.Println("Added employee", employee.ID)
		case "edit-employee":
			if len(args) < 2 {
				fmt.Println("Usage: edit-employee <id>")
				continue
			}
			user := ls.CurrentUser()
			if user == nil {
				fmt.Println("Log in first")
				continue
			}
			name, position := storage.PromptEmployee()
			if _, err := ls.UpdateEmployee(user.ID, args[1], name, position); err != nil {
				fmt.Println("Failed to update employee:", err)
				continue
			}
			fmt.Println("Employee updated")
		case "delete-employee":
			if len(args) < 2 {
				fmt.Println("Usage: delete-employee <id>")
				continue
			}
			user := ls.CurrentUser()
			if user == nil {
				fmt.Println("Log in first")
				continue
			}
			if err := ls.DeleteEmployee(user.ID, args[1]); err != nil {
				fmt.Println("Failed to delete employee:", err)
				continue
			}
			fmt.Println("Employee deleted. Salary records for the employee are kept.")
		case "record":
			user := ls.CurrentUser()
			if user == nil {
				fmt.Println("Log in first")
				continue
			}
			employees := ls.Employees(user.ID)
			if len(employees) == 0 {
				fmt.Println("Add an employee first")
				continue
			}
			for _, e := range employees {
				fmt.Printf("%s  %s (%s)\n", e.ID, e.Name, e.Position)
			}
			fmt.Print("Enter employee id: ")
			if !scanner.Scan() {
				break
			}
			employeeID := strings.TrimSpace(scanner.Text())

			month, year, salary, expenses, err := storage.PromptSalaryRecord()
			if err != nil {
				fmt.Println("Invalid input:", err)
				continue
			}
			record, err := ls.UpsertRecord(user.ID, employeeID, month, year, salary, expenses)
			if err != nil {
				fmt.Println("Failed to save record:", err)
				continue
			}
			fmt.Printf("Saved %s %d: salary %.2f, %d expense(s), grand total %.2f\n",
				monthNames[record.Month], record.Year, record.Salary, len(record.Expenses), record.GrandTotal())
		case "list":
			user := ls.CurrentUser()
			if user == nil {
				fmt.Println("Log in first")
				continue
			}
			records := ls.ListRecords(user.ID)
			if len(records) == 0 {
				fmt.Println("No salary records yet")
				continue
			}
			for _, r := range records {
				fmt.Printf("%s %d  employee %s  salary %.2f  grand total %.2f\n",
					monthNames[r.Month], r.Year, r.EmployeeID, r.Salary, r.GrandTotal())
				for _, e := range r.Expenses {
					fmt.Printf("    %s  %.2f  (%d/%d/%d)\n", e.Category, e.Amount, e.ExpenseDay, e.ExpenseMonth, e.ExpenseYear)
				}
			}
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// main loads the local store and starts the shell.
func main() {
	var showVer bool
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("PayLedger Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	ls := &storage.LocalStore{}
	if err := ls.Load(); err != nil {
		log.Fatalf("failed to load local storage: %v", err)
	}

	if user := ls.CurrentUser(); user != nil {
		fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Email)
	}

	repl(ls)
}
