package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/bepulse/advantage-backend/internal/entity"
	"github.com/bepulse/advantage-backend/internal/infra/metrics"
	"github.com/bepulse/advantage-backend/internal/usecase"
)

const SignatureHeader = "X-DocuSign-Signature-1"

// eventos do DocuSign Connect que alteram o contrato
var handledEvents = map[string]bool{
	"envelope-sent":      true,
	"envelope-completed": true,
	"envelope-declined":  true,
	"envelope-voided":    true,
}

type docuSignEvent struct {
	Event string `json:"event"`
	Data  struct {
		EnvelopeID      string `json:"envelopeId"`
		EnvelopeSummary struct {
			EnvelopeID string `json:"envelopeId"`
			Status     string `json:"status"`
		} `json:"envelopeSummary"`
	} `json:"data"`
}

type WebhookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type WebhookHandler struct {
	UpdateStatusUC UpdateContractStatusExecutor
	Secret         string
	Logger         *zap.SugaredLogger
}

func NewWebhookHandler(updateStatus UpdateContractStatusExecutor, secret string, logger *zap.SugaredLogger) *WebhookHandler {
	return &WebhookHandler{UpdateStatusUC: updateStatus, Secret: secret, Logger: logger}
}

// Handle (POST /webhook/docusign)
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: usecase.CodeValidation, Message: "corpo inválido"})
		return
	}

	if h.Secret != "" && !validSignature(h.Secret, body, r.Header.Get(SignatureHeader)) {
		h.Logger.Warnw("⚠️ Webhook DocuSign com assinatura inválida", "remote", r.RemoteAddr)
		metrics.RecordWebhookEvent("unknown", "unauthorized")
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "assinatura inválida"})
		return
	}

	var event docuSignEvent
	if err := json.Unmarshal(body, &event); err != nil {
		writeBadJSON(w, err)
		return
	}

	if !handledEvents[event.Event] {
		metrics.RecordWebhookEvent(event.Event, "ignored")
		writeJSON(w, http.StatusOK, WebhookResponse{Success: true, Message: "Webhook processed successfully"})
		return
	}

	envelopeID := event.Data.EnvelopeID
	if envelopeID == "" {
		envelopeID = event.Data.EnvelopeSummary.EnvelopeID
	}
	status := event.Data.EnvelopeSummary.Status
	if status == "" {
		status = strings.TrimPrefix(event.Event, "envelope-")
	}

	audit := entity.AuditContext{UserEmail: entity.SystemWebhookActor}
	ctx := entity.WithAudit(r.Context(), audit)

	output, err := h.UpdateStatusUC.Execute(ctx, usecase.UpdateContractStatusInput{
		EnvelopeID: envelopeID,
		Status:     status,
		Audit:      audit,
	}, usecase.OriginWebhook)
	if err != nil {
		metrics.RecordWebhookEvent(event.Event, "error")
		writeError(w, h.Logger, err)
		return
	}

	result := "applied"
	if !output.Matched {
		result = "unmatched"
	}
	metrics.RecordWebhookEvent(event.Event, result)
	h.Logger.Infow("📬 Webhook DocuSign processado", "event", event.Event, "envelopeId", envelopeID, "status", status, "result", result)

	writeJSON(w, http.StatusOK, WebhookResponse{Success: true, Message: "Webhook processed successfully"})
}

// validSignature confere o HMAC-SHA256 (base64) que o DocuSign Connect envia no header.
func validSignature(secret string, body []byte, header string) bool {
	if header == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.TrimSpace(header)))
}
