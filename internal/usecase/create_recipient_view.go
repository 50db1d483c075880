package usecase

import (
	"context"
	"fmt"

	"github.com/bepulse/advantage-backend/internal/entity"
)

// CreateRecipientViewUseCase gera a URL de assinatura de um envelope já existente.
type CreateRecipientViewUseCase struct {
	ContractRepo entity.ContractRepository
	Provider     SignatureProvider
}

func NewCreateRecipientViewUseCase(contractRepo entity.ContractRepository, provider SignatureProvider) *CreateRecipientViewUseCase {
	return &CreateRecipientViewUseCase{ContractRepo: contractRepo, Provider: provider}
}

func (uc *CreateRecipientViewUseCase) Execute(ctx context.Context, input CreateRecipientViewInput) (*CreateRecipientViewOutput, error) {
	if errs := ValidateCreateRecipientViewInput(input); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	contracts, err := uc.ContractRepo.FindByEnvelopeID(ctx, input.EnvelopeID)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar contrato: %w", err)
	}
	if len(contracts) == 0 {
		return nil, NewNotFoundError("Contrato não encontrado")
	}

	contract := entity.OldestContract(contracts)
	if contract.Status.IsExecuted() {
		return nil, NewConflictError("Contrato já foi assinado")
	}
	if contract.Status.IsCancelled() {
		return nil, &DomainError{Code: CodeContractUnavailable, Message: "Contrato não está disponível para assinatura"}
	}

	signingURL, err := uc.Provider.CreateRecipientView(ctx, input.EnvelopeID, input.RecipientEmail, input.RecipientName, input.ReturnURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar URL de assinatura: %w", err)
	}

	return &CreateRecipientViewOutput{
		SigningURL:     signingURL,
		EnvelopeID:     input.EnvelopeID,
		RecipientEmail: input.RecipientEmail,
	}, nil
}
