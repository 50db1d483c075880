package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bepulse/advantage-backend/internal/entity"
)

const DefaultResendDocumentType = "contract"

// ResendPendingContractsUseCase regenera o envelope de todo cliente cujo contrato ainda
// aguarda assinatura. Em dry-run apenas lista os alvos.
type ResendPendingContractsUseCase struct {
	ContractRepo   entity.ContractRepository
	CreateEnvelope *CreateEnvelopeUseCase
}

func NewResendPendingContractsUseCase(contractRepo entity.ContractRepository, createEnvelope *CreateEnvelopeUseCase) *ResendPendingContractsUseCase {
	return &ResendPendingContractsUseCase{ContractRepo: contractRepo, CreateEnvelope: createEnvelope}
}

func (uc *ResendPendingContractsUseCase) Execute(ctx context.Context, input ResendPendingContractsInput) (*ResendPendingContractsOutput, error) {
	documentType := input.DocumentType
	if documentType == "" {
		documentType = DefaultResendDocumentType
	}

	pending, err := uc.ContractRepo.FindPendingSignature(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar contratos pendentes: %w", err)
	}

	out := &ResendPendingContractsOutput{DryRun: input.DryRun, Contracts: []ResentContract{}}
	seen := make(map[string]bool)

	for _, contract := range pending {
		if seen[contract.CustomerID] {
			continue
		}
		seen[contract.CustomerID] = true

		item := ResentContract{CustomerID: contract.CustomerID, ContractID: contract.ID, OldEnvelopeID: contract.EnvelopeID}
		out.Total++

		if input.DryRun {
			out.Contracts = append(out.Contracts, item)
			continue
		}

		res, err := uc.CreateEnvelope.Execute(ctx, CreateEnvelopeInput{
			CustomerID:   contract.CustomerID,
			DocumentType: documentType,
			ReturnURL:    input.ReturnURL,
		})
		if err != nil {
			zap.S().Errorw("❌ Falha ao reenviar contrato", "customerId", contract.CustomerID, "contractId", contract.ID, "error", err)
			item.Error = err.Error()
			out.Failed++
		} else {
			item.NewEnvelopeID = res.EnvelopeID
			out.Succeeded++
		}
		out.Contracts = append(out.Contracts, item)
	}

	zap.S().Infow("Reenvio de contratos pendentes concluído",
		"dryRun", input.DryRun, "total", out.Total, "succeeded", out.Succeeded, "failed", out.Failed)
	return out, nil
}
