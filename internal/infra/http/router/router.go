package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bepulse/advantage-backend/internal/infra/http/handlers"
	"github.com/bepulse/advantage-backend/internal/infra/http/middleware"
)

type Handlers struct {
	Contract *handlers.ContractHandler
	Customer *handlers.CustomerHandler
	Webhook  *handlers.WebhookHandler
	Health   *handlers.HealthHandler
}

// New monta o router da API.
func New(h Handlers, allowedOrigins []string, logger *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.UserEmailHeader},
	}))

	if h.Health != nil {
		r.Get("/health", h.Health.Handle)
	}
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/webhook/docusign", h.Webhook.Handle)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Audit)

		r.Route("/contract", func(r chi.Router) {
			r.Post("/create-and-sign", h.Contract.CreateAndSign)
			r.Post("/envelope", h.Contract.CreateEnvelope)
			r.Post("/recipient-view", h.Contract.RecipientView)
			r.Get("/{envelopeId}/status", h.Contract.GetStatus)
			r.Put("/{envelopeId}/status", h.Contract.UpdateStatus)
			r.Get("/{envelopeId}/download", h.Contract.Download)
		})

		r.Route("/customer/{id}", func(r chi.Router) {
			r.Get("/eligibility", h.Customer.Eligibility)
			r.Get("/pendings", h.Customer.Pendings)
		})
	})

	return r
}
