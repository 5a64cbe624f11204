package rest

import (
	"database/sql"
	"log/slog"

	"github.com/FabricioUDB/control-gastos/internal/session"
	"github.com/FabricioUDB/control-gastos/internal/transport/middleware"
	"github.com/go-chi/chi"
)

// RegisterAllRoutes wires the ledger API. Everything under /api/v1 except
// the health probes and the category suggestions requires a resolved user
// identity.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, sessionHandler *session.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Get("/categories", sessionHandler.GetCategories)

		r.Group(func(pr chi.Router) {
			pr.Use(middleware.UserContext)

			pr.Route("/ledger", func(lr chi.Router) {
				lr.Get("/", sessionHandler.GetLedger)
				lr.Get("/{year}/{month}", sessionHandler.LoadMonth)
				lr.Put("/filter", sessionHandler.SetFilter)
			})

			pr.Route("/expenses", func(er chi.Router) {
				er.Post("/", sessionHandler.AddExpense)
				er.Patch("/{id}", sessionHandler.EditExpense)
				er.Delete("/{id}", sessionHandler.DeleteExpense)
			})

			pr.Post("/session/signout", sessionHandler.SignOut)
		})
	})
}
