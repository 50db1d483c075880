package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bepulse/advantage-backend/internal/entity"
)

const defaultDocumentID = "1"

type DownloadDocumentUseCase struct {
	ContractRepo entity.ContractRepository
	Provider     SignatureProvider
}

func NewDownloadDocumentUseCase(contractRepo entity.ContractRepository, provider SignatureProvider) *DownloadDocumentUseCase {
	return &DownloadDocumentUseCase{ContractRepo: contractRepo, Provider: provider}
}

func (uc *DownloadDocumentUseCase) Execute(ctx context.Context, input DownloadDocumentInput) (*DownloadDocumentOutput, error) {
	if strings.TrimSpace(input.EnvelopeID) == "" {
		return nil, NewValidationError([]ValidationError{{"envelopeId", "is required"}})
	}
	documentID := input.DocumentID
	if documentID == "" {
		documentID = defaultDocumentID
	}

	contracts, err := uc.ContractRepo.FindByEnvelopeID(ctx, input.EnvelopeID)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar contrato: %w", err)
	}
	if len(contracts) == 0 {
		return nil, NewNotFoundError("Contrato não encontrado")
	}
	contract := entity.OldestContract(contracts)

	content, err := uc.Provider.DownloadDocument(ctx, input.EnvelopeID, documentID)
	if err != nil {
		return nil, fmt.Errorf("erro ao baixar documento: %w", err)
	}

	return &DownloadDocumentOutput{
		Content:     content,
		FileName:    fmt.Sprintf("%s_%s_%s.pdf", contract.DocumentType, input.EnvelopeID, documentID),
		ContentType: "application/pdf",
	}, nil
}
