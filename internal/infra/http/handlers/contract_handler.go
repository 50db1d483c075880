package handlers

import (
	"context"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bepulse/advantage-backend/internal/entity"
	"github.com/bepulse/advantage-backend/internal/usecase"
)

type CreateEnvelopeAndSigningURLExecutor interface {
	Execute(ctx context.Context, input usecase.CreateEnvelopeAndSigningURLInput) (*usecase.CreateEnvelopeAndSigningURLOutput, error)
}

type CreateEnvelopeExecutor interface {
	Execute(ctx context.Context, input usecase.CreateEnvelopeInput) (*usecase.CreateEnvelopeOutput, error)
}

type CreateRecipientViewExecutor interface {
	Execute(ctx context.Context, input usecase.CreateRecipientViewInput) (*usecase.CreateRecipientViewOutput, error)
}

type GetEnvelopeStatusExecutor interface {
	Execute(ctx context.Context, envelopeID string) (*usecase.GetEnvelopeStatusOutput, error)
}

type UpdateContractStatusExecutor interface {
	Execute(ctx context.Context, input usecase.UpdateContractStatusInput, origin string) (*usecase.UpdateContractStatusOutput, error)
}

type DownloadDocumentExecutor interface {
	Execute(ctx context.Context, input usecase.DownloadDocumentInput) (*usecase.DownloadDocumentOutput, error)
}

type ContractHandler struct {
	CreateAndSignUC  CreateEnvelopeAndSigningURLExecutor
	CreateEnvelopeUC CreateEnvelopeExecutor
	RecipientViewUC  CreateRecipientViewExecutor
	GetStatusUC      GetEnvelopeStatusExecutor
	UpdateStatusUC   UpdateContractStatusExecutor
	DownloadUC       DownloadDocumentExecutor
	Logger           *zap.SugaredLogger
}

func NewContractHandler(
	createAndSign CreateEnvelopeAndSigningURLExecutor,
	createEnvelope CreateEnvelopeExecutor,
	recipientView CreateRecipientViewExecutor,
	getStatus GetEnvelopeStatusExecutor,
	updateStatus UpdateContractStatusExecutor,
	download DownloadDocumentExecutor,
	logger *zap.SugaredLogger,
) *ContractHandler {
	return &ContractHandler{
		CreateAndSignUC:  createAndSign,
		CreateEnvelopeUC: createEnvelope,
		RecipientViewUC:  recipientView,
		GetStatusUC:      getStatus,
		UpdateStatusUC:   updateStatus,
		DownloadUC:       download,
		Logger:           logger,
	}
}

// CreateAndSign (POST /contract/create-and-sign)
func (h *ContractHandler) CreateAndSign(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateEnvelopeAndSigningURLInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeBadJSON(w, err)
		return
	}

	output, err := h.CreateAndSignUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

// CreateEnvelope (POST /contract/envelope)
func (h *ContractHandler) CreateEnvelope(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateEnvelopeInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeBadJSON(w, err)
		return
	}

	output, err := h.CreateEnvelopeUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

// RecipientView (POST /contract/recipient-view)
func (h *ContractHandler) RecipientView(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateRecipientViewInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeBadJSON(w, err)
		return
	}

	output, err := h.RecipientViewUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

// GetStatus (GET /contract/{envelopeId}/status)
func (h *ContractHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	output, err := h.GetStatusUC.Execute(r.Context(), chi.URLParam(r, "envelopeId"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

// UpdateStatus (PUT /contract/{envelopeId}/status), correção manual feita por operador.
func (h *ContractHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeBadJSON(w, err)
		return
	}

	output, err := h.UpdateStatusUC.Execute(r.Context(), usecase.UpdateContractStatusInput{
		EnvelopeID: chi.URLParam(r, "envelopeId"),
		Status:     body.Status,
		Audit:      entity.AuditFromContext(r.Context()),
	}, usecase.OriginOperator)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	if !output.Matched {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: usecase.CodeNotFound, Message: "Contrato não encontrado"})
		return
	}
	writeJSON(w, http.StatusOK, output)
}

// Download (GET /contract/{envelopeId}/download?documentId=1)
func (h *ContractHandler) Download(w http.ResponseWriter, r *http.Request) {
	output, err := h.DownloadUC.Execute(r.Context(), usecase.DownloadDocumentInput{
		EnvelopeID: chi.URLParam(r, "envelopeId"),
		DocumentID: r.URL.Query().Get("documentId"),
	})
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	w.Header().Set("Content-Type", output.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": output.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(output.Content)))
	w.WriteHeader(http.StatusOK)
	w.Write(output.Content)
}
