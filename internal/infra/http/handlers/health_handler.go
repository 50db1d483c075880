package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rabbitmq/amqp091-go"
	"github.com/valkey-io/valkey-go"
)

const (
	depHealthy       = "healthy"
	depConfigured    = "configured"
	depNotConfigured = "not configured"
)

// probe devolve o estado textual da dependência e se ela está saudável.
type probe func(ctx context.Context) (string, bool)

type HealthHandler struct {
	Version   string
	StartTime time.Time
	probes    map[string]probe
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db *sqlx.DB, rabbitMQ *amqp091.Connection, valkeyClient valkey.Client, docuSignConfigured bool) *HealthHandler {
	h := &HealthHandler{
		Version:   "1.0.0",
		StartTime: time.Now(),
		probes:    make(map[string]probe),
	}

	if db != nil {
		h.probes["database"] = func(ctx context.Context) (string, bool) {
			return errState(db.PingContext(ctx))
		}
	}
	if rabbitMQ != nil {
		h.probes["rabbitmq"] = func(context.Context) (string, bool) {
			if rabbitMQ.IsClosed() {
				return "unhealthy: connection closed", false
			}
			return depHealthy, true
		}
	}
	if valkeyClient != nil {
		h.probes["valkey"] = func(ctx context.Context) (string, bool) {
			return errState(valkeyClient.Do(ctx, valkeyClient.B().Ping().Build()).Error())
		}
	}
	if docuSignConfigured {
		h.probes["docusign"] = func(context.Context) (string, bool) { return depConfigured, true }
	}
	return h
}

func errState(err error) (string, bool) {
	if err != nil {
		return "unhealthy: " + err.Error(), false
	}
	return depHealthy, true
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := map[string]string{
		"database": depNotConfigured,
		"rabbitmq": depNotConfigured,
		"valkey":   depNotConfigured,
		"docusign": depNotConfigured,
	}

	status, code := "healthy", http.StatusOK
	for name, check := range h.probes {
		state, ok := check(ctx)
		deps[name] = state
		if !ok {
			status, code = "degraded", http.StatusServiceUnavailable
		}
	}

	writeJSON(w, code, HealthResponse{
		Status:       status,
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	})
}
