package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/bepulse/advantage-backend/internal/entity"
	"github.com/bepulse/advantage-backend/internal/infra/integration/docusign"
	"github.com/bepulse/advantage-backend/internal/usecase"
)

const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error        string                    `json:"error"`
	Message      string                    `json:"message"`
	Fields       []usecase.ValidationError `json:"fields,omitempty"`
	InnerMessage string                    `json:"innerMessage,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeBadJSON(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   usecase.CodeValidation,
		Message: "JSON inválido: " + err.Error(),
	})
}

// writeError converte o erro da camada de usecase no status HTTP correspondente.
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		writeJSON(w, domainStatus(domainErr.Code), ErrorResponse{
			Error:   domainErr.Code,
			Message: domainErr.Message,
			Fields:  domainErr.Fields,
		})
		return
	}

	if errors.Is(err, entity.ErrCustomerNotFound) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: usecase.CodeNotFound, Message: err.Error()})
		return
	}

	if docusign.IsProviderError(err) {
		logger.Errorw("❌ Erro no provedor de assinatura", "error", err)
		writeJSON(w, http.StatusBadGateway, ErrorResponse{
			Error:        "PROVIDER_ERROR",
			Message:      "Falha na comunicação com o provedor de assinatura",
			InnerMessage: err.Error(),
		})
		return
	}

	logger.Errorw("❌ Erro interno", "error", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:        "INTERNAL_ERROR",
		Message:      "Internal Server Error",
		InnerMessage: err.Error(),
	})
}

func domainStatus(code string) int {
	switch code {
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeConflict, usecase.CodeSigningInProgress:
		return http.StatusConflict
	case usecase.CodeValidation:
		return http.StatusBadRequest
	case usecase.CodeContractUnavailable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
