package usecase

import (
	"context"
)

// CreateEnvelopeUseCase é o fluxo do operador: o DocuSign envia o contrato por email e SMS.
type CreateEnvelopeUseCase struct {
	Lifecycle *EnvelopeLifecycle
}

func NewCreateEnvelopeUseCase(lifecycle *EnvelopeLifecycle) *CreateEnvelopeUseCase {
	return &CreateEnvelopeUseCase{Lifecycle: lifecycle}
}

func (uc *CreateEnvelopeUseCase) Execute(ctx context.Context, input CreateEnvelopeInput) (*CreateEnvelopeOutput, error) {
	if errs := ValidateCreateEnvelopeInput(input); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	resolved, err := uc.Lifecycle.resolve(ctx, input.CustomerID, input.DocumentType+operatorDocSuffix, remoteSigning)
	if err != nil {
		return nil, err
	}

	return &CreateEnvelopeOutput{
		EnvelopeID:  resolved.Contract.EnvelopeID,
		ContractID:  resolved.Contract.ID,
		ReturnURL:   input.ReturnURL,
		Regenerated: resolved.Regenerated,
	}, nil
}
