package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// CreateEnvelopeAndSigningURLUseCase cria (ou regenera) o envelope do cliente e devolve a URL de assinatura embutida.
type CreateEnvelopeAndSigningURLUseCase struct {
	Lifecycle *EnvelopeLifecycle
}

func NewCreateEnvelopeAndSigningURLUseCase(lifecycle *EnvelopeLifecycle) *CreateEnvelopeAndSigningURLUseCase {
	return &CreateEnvelopeAndSigningURLUseCase{Lifecycle: lifecycle}
}

func (uc *CreateEnvelopeAndSigningURLUseCase) Execute(ctx context.Context, input CreateEnvelopeAndSigningURLInput) (*CreateEnvelopeAndSigningURLOutput, error) {
	if errs := ValidateCreateEnvelopeAndSigningURLInput(input); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	resolved, err := uc.Lifecycle.resolve(ctx, input.CustomerID, input.DocumentType, embeddedSigning)
	if err != nil {
		return nil, err
	}

	envelopeID := resolved.Contract.EnvelopeID
	signingURL, err := uc.Lifecycle.Provider.CreateRecipientView(ctx, envelopeID, resolved.Customer.Email, resolved.Customer.Name, input.ReturnURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar URL de assinatura: %w", err)
	}

	zap.S().Infow("✍️ URL de assinatura gerada", "customerId", input.CustomerID, "contractId", resolved.Contract.ID, "envelopeId", envelopeID)

	return &CreateEnvelopeAndSigningURLOutput{
		EnvelopeID: envelopeID,
		SigningURL: signingURL,
		ContractID: resolved.Contract.ID,
	}, nil
}
