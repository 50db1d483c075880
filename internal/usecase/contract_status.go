package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bepulse/advantage-backend/internal/entity"
	"github.com/bepulse/advantage-backend/internal/infra/queue"
)

const (
	OriginWebhook     = "WEBHOOK_DOCUSIGN"
	OriginOperator    = "OPERATOR"
	OriginStatusQuery = "STATUS_QUERY"
)

// statusReconciler aplica um novo status aos contratos de um envelope e publica o evento.
type statusReconciler struct {
	ContractRepo entity.ContractRepository
	CustomerRepo entity.CustomerRepository
	Publisher    ContractEventPublisher
	Now          func() time.Time
}

func (r *statusReconciler) apply(ctx context.Context, contracts []*entity.Contract, status entity.ContractStatus, audit entity.AuditContext, origin string) (int, error) {
	updated := 0
	for _, contract := range contracts {
		if contract.Status == status {
			continue
		}

		previous := contract.Status
		contract.Status = status
		contract.UpdatedAt = r.Now()
		applied, err := r.ContractRepo.UpdateStatus(ctx, contract, audit)
		if err != nil {
			return updated, fmt.Errorf("erro ao atualizar status do contrato %s: %w", contract.ID, err)
		}
		if !applied {
			zap.S().Warnw("Evento de envelope substituído ignorado",
				"contractId", contract.ID, "envelopeId", contract.EnvelopeID, "status", status, "origin", origin)
			contract.Status = previous
			continue
		}
		updated++

		zap.S().Infow("🔁 Status do contrato atualizado",
			"contractId", contract.ID, "envelopeId", contract.EnvelopeID,
			"from", previous, "to", status, "actor", audit.Actor(), "origin", origin)

		r.publish(ctx, contract, previous, origin)
	}
	return updated, nil
}

func (r *statusReconciler) publish(ctx context.Context, contract *entity.Contract, previous entity.ContractStatus, origin string) {
	if r.Publisher == nil {
		return
	}

	payload := queue.ContractEventPayload{
		ContractID:     contract.ID,
		CustomerID:     contract.CustomerID,
		EnvelopeID:     contract.EnvelopeID,
		Status:         string(contract.Status),
		PreviousStatus: string(previous),
		Origin:         origin,
		OccurredAt:     contract.UpdatedAt,
	}
	if r.CustomerRepo != nil {
		if customer, err := r.CustomerRepo.FindByID(ctx, contract.CustomerID); err == nil && customer != nil {
			payload.CustomerName = customer.Name
			payload.CustomerEmail = customer.Email
			payload.CustomerPhone = customer.Phone
		}
	}

	if err := r.Publisher.PublishContractEvent(ctx, payload); err != nil {
		zap.S().Errorw("⚠️ CRITICAL: Status salvo no banco, mas falha na fila", "contractId", contract.ID, "error", err)
	}
}
