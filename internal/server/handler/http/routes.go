// Package http provides HTTP routing and middleware configuration
// for the salary tracking service.
package http

import (
	"net/http"

	"github.com/atinyakov/PayLedger/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// salary tracking API. It applies JSON content-type enforcement and
// request logging, and mounts the auth, employee and salary-record
// endpoints under /api.
//
// Routes:
//
//	POST /api/register            → authHandler.Register
//	POST /api/login               → authHandler.Login
//	GET  /api/me                  → authHandler.Me        (token auth)
//	GET  /api/employees           → employeeHandler.List  (token auth)
//	POST /api/employees           → employeeHandler.Create(token auth)
//	PUT  /api/employees/{id}      → employeeHandler.Update(token auth)
//	DELETE /api/employees/{id}    → employeeHandler.Delete(token auth)
//	POST /api/salary-records      → ledgerHandler.Upsert  (token auth)
//	GET  /api/salary-records      → ledgerHandler.List    (token auth)
func NewRouter(
	authHandler *AuthHandler,
	employeeHandler *EmployeeHandler,
	ledgerHandler *LedgerHandler,
	logger *zap.Logger,
	jwtSecret string,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// Protected group: requires a valid session token
		r.Group(func(r chi.Router) {
			r.Use(middleware.TokenAuth(jwtSecret))

			r.Get("/me", authHandler.Me)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)
				r.Put("/{id}", employeeHandler.Update)
				r.Delete("/{id}", employeeHandler.Delete)
			})

			r.Post("/salary-records", ledgerHandler.Upsert)
			r.Get("/salary-records", ledgerHandler.List)
		})
	})

	return r
}
