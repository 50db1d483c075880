package usecase

import (
	"context"
	"fmt"

	"github.com/bepulse/advantage-backend/internal/entity"
)

// FindPendingsUseCase é a leitura rápida de pendências: usa o flag eligible já gravado
// nos dependentes em vez de recalcular documentos.
type FindPendingsUseCase struct {
	CustomerRepo  entity.CustomerRepository
	ContractRepo  entity.ContractRepository
	DependentRepo entity.DependentRepository
}

func NewFindPendingsUseCase(customerRepo entity.CustomerRepository, contractRepo entity.ContractRepository, dependentRepo entity.DependentRepository) *FindPendingsUseCase {
	return &FindPendingsUseCase{CustomerRepo: customerRepo, ContractRepo: contractRepo, DependentRepo: dependentRepo}
}

func (uc *FindPendingsUseCase) Execute(ctx context.Context, customerID string) (*FindPendingsOutput, error) {
	customer, err := uc.CustomerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar cliente: %w", err)
	}
	if customer == nil {
		return nil, NewNotFoundError("Cliente não encontrado")
	}

	contracts, err := uc.ContractRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar contratos: %w", err)
	}

	dependents, err := uc.DependentRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar dependentes: %w", err)
	}

	out := &FindPendingsOutput{HasContractPending: !entity.HasExecutedContract(contracts)}
	for _, d := range dependents {
		if !d.Eligible {
			out.HasDependentPending = true
			break
		}
	}
	out.HasPendings = out.HasContractPending || out.HasDependentPending
	return out, nil
}
