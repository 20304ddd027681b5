package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maplelisted/maplelisted/internal/http/auth"
	"github.com/maplelisted/maplelisted/internal/http/fees"
	"github.com/maplelisted/maplelisted/internal/http/legal"
	"github.com/maplelisted/maplelisted/internal/http/transaction"
)

func New(
	db *sql.DB,
	jwtSecret string,
	transactionsV1 *transaction.Handler,
	legalV1 *legal.Handler,
	feesV1 *fees.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
	})

	router.Handle("/metrics", promhttp.Handler())

	authenticated := auth.Middleware(jwtSecret)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(authenticated)
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/legal", func(r chi.Router) {
			// GET /provinces is public; the mutating endpoints check the
			// caller themselves.
			r.Use(middleware.AllowContentType("application/json"))
			r.Get("/provinces", legalV1.Provinces)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				legalV1.AuthenticatedRoutes(r)
			})
		})

		r.Route("/fees", feesV1.Routes)
	})

	return router
}
