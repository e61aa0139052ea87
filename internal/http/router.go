package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/paidwork/internal/http/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/http/invoice"
	"github.com/MrJamesThe3rd/paidwork/internal/http/task"
)

type Options struct {
	CORSOrigins []string
	Timeout     time.Duration
}

func New(
	opts Options,
	contractsV1 *contract.Handler,
	tasksV1 *task.Handler,
	invoicesV1 *invoice.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/projects/{provider}/{owner}/{repo}", func(r chi.Router) {
			r.Route("/contracts", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.AllowContentType("application/json"))
					contractsV1.ProjectRoutes(r)
				})
				r.Route("/{username}/{role}/invoices", func(r chi.Router) {
					r.Use(middleware.AllowContentType("application/json"))
					invoicesV1.Routes(r)
				})
			})

			r.Route("/tasks", tasksV1.ProjectRoutes)
		})

		r.Route("/contributors/{provider}/{username}", func(r chi.Router) {
			contractsV1.ContributorRoutes(r)
			tasksV1.ContributorRoutes(r)
		})
	})

	return router
}
