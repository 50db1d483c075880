package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bepulse/advantage-backend/internal/usecase"
)

type EligibilityExecutor interface {
	Execute(ctx context.Context, customerID string) (*usecase.EligibilityReport, error)
}

type PendingsExecutor interface {
	Execute(ctx context.Context, customerID string) (*usecase.FindPendingsOutput, error)
}

type CustomerHandler struct {
	EligibilityUC EligibilityExecutor
	PendingsUC    PendingsExecutor
	Logger        *zap.SugaredLogger
}

func NewCustomerHandler(eligibility EligibilityExecutor, pendings PendingsExecutor, logger *zap.SugaredLogger) *CustomerHandler {
	return &CustomerHandler{EligibilityUC: eligibility, PendingsUC: pendings, Logger: logger}
}

// Eligibility (GET /customer/{id}/eligibility) recalcula e grava o flag dos dependentes.
func (h *CustomerHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	report, err := h.EligibilityUC.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Pendings (GET /customer/{id}/pendings)
func (h *CustomerHandler) Pendings(w http.ResponseWriter, r *http.Request) {
	output, err := h.PendingsUC.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}
