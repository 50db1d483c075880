package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bepulse/advantage-backend/internal/entity"
)

// GetEnvelopeStatusUseCase consulta o status no DocuSign e sincroniza o contrato local se divergir.
type GetEnvelopeStatusUseCase struct {
	Provider   SignatureProvider
	reconciler *statusReconciler
}

func NewGetEnvelopeStatusUseCase(
	provider SignatureProvider,
	contractRepo entity.ContractRepository,
	customerRepo entity.CustomerRepository,
	publisher ContractEventPublisher,
) *GetEnvelopeStatusUseCase {
	return &GetEnvelopeStatusUseCase{
		Provider: provider,
		reconciler: &statusReconciler{
			ContractRepo: contractRepo,
			CustomerRepo: customerRepo,
			Publisher:    publisher,
			Now:          time.Now,
		},
	}
}

func (uc *GetEnvelopeStatusUseCase) Execute(ctx context.Context, envelopeID string) (*GetEnvelopeStatusOutput, error) {
	if envelopeID == "" {
		return nil, NewValidationError([]ValidationError{{"envelopeId", "is required"}})
	}

	status, err := uc.Provider.GetEnvelopeStatus(ctx, envelopeID)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar status do envelope: %w", err)
	}

	contracts, err := uc.reconciler.ContractRepo.FindByEnvelopeID(ctx, envelopeID)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar contrato: %w", err)
	}
	if _, err := uc.reconciler.apply(ctx, contracts, status.Status, entity.AuditFromContext(ctx), OriginStatusQuery); err != nil {
		return nil, err
	}

	return &GetEnvelopeStatusOutput{
		EnvelopeID:     status.EnvelopeID,
		Status:         status.Status,
		StatusDateTime: status.StatusDateTime,
		EmailSubject:   status.EmailSubject,
		Signers:        status.Signers,
	}, nil
}
