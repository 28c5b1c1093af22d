// Package main initializes and starts the PayLedger HTTP server,
// setting up configuration, logging, the database connection,
// repositories, services and handlers.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"github.com/atinyakov/PayLedger/internal/config"
	"github.com/atinyakov/PayLedger/internal/db"
	"github.com/atinyakov/PayLedger/internal/logger"
	"github.com/atinyakov/PayLedger/internal/repository"
	"github.com/atinyakov/PayLedger/internal/server/handler/http"
	"github.com/atinyakov/PayLedger/internal/service"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Load a .env file if present, then parse flags and environment.
	_ = godotenv.Load()
	options := config.Parse()
	addr := options.Port

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("JWT_SECRET must be set")
	}

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories.
	authRepo := repository.NewPostgresAuthRepository(postgresDB)
	employeeRepo := repository.NewPostgresEmployeeRepository(postgresDB)
	ledgerRepo := repository.NewPostgresLedgerRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(authRepo)
	employeeService := service.NewEmployeeService(employeeRepo)
	ledgerService := service.NewLedgerService(ledgerRepo)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService, JWTSecret: options.JWTSecret}
	employeeHandler := &http.EmployeeHandler{EmployeeService: employeeService}
	ledgerHandler := &http.LedgerHandler{LedgerService: ledgerService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, employeeHandler, ledgerHandler, zapLogger, options.JWTSecret)

	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
