package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bepulse/advantage-backend/internal/entity"
)

// UpdateContractStatusUseCase aplica um status vindo do webhook do DocuSign ou de um operador.
// Envelope desconhecido não é erro: devolve Matched=false.
type UpdateContractStatusUseCase struct {
	reconciler *statusReconciler
}

func NewUpdateContractStatusUseCase(
	contractRepo entity.ContractRepository,
	customerRepo entity.CustomerRepository,
	publisher ContractEventPublisher,
) *UpdateContractStatusUseCase {
	return &UpdateContractStatusUseCase{
		reconciler: &statusReconciler{
			ContractRepo: contractRepo,
			CustomerRepo: customerRepo,
			Publisher:    publisher,
			Now:          time.Now,
		},
	}
}

func (uc *UpdateContractStatusUseCase) Execute(ctx context.Context, input UpdateContractStatusInput, origin string) (*UpdateContractStatusOutput, error) {
	if input.EnvelopeID == "" {
		return nil, NewValidationError([]ValidationError{{"envelopeId", "is required"}})
	}

	status, err := entity.ParseContractStatus(input.Status)
	if err != nil {
		if errors.Is(err, entity.ErrUnknownContractStatus) {
			return nil, NewValidationError([]ValidationError{{"status", err.Error()}})
		}
		return nil, err
	}

	contracts, err := uc.reconciler.ContractRepo.FindByEnvelopeID(ctx, input.EnvelopeID)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar contrato: %w", err)
	}
	if len(contracts) == 0 {
		zap.S().Warnw("Nenhum contrato para o envelope, ignorando", "envelopeId", input.EnvelopeID, "status", status, "origin", origin)
		return &UpdateContractStatusOutput{Matched: false}, nil
	}

	updated, err := uc.reconciler.apply(ctx, contracts, status, input.Audit, origin)
	if err != nil {
		return nil, err
	}

	return &UpdateContractStatusOutput{Matched: true, Updated: updated}, nil
}
