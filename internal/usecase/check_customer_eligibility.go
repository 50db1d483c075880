package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bepulse/advantage-backend/internal/entity"
	"github.com/bepulse/advantage-backend/internal/infra/metrics"
)

// CheckCustomerEligibilityUseCase recalcula a elegibilidade do cliente e grava o flag
// eligible de todos os dependentes. É o único ponto que escreve Dependent.eligible.
type CheckCustomerEligibilityUseCase struct {
	CustomerRepo  entity.CustomerRepository
	ContractRepo  entity.ContractRepository
	DependentRepo entity.DependentRepository
	DocumentRepo  entity.DocumentRepository
}

func NewCheckCustomerEligibilityUseCase(
	customerRepo entity.CustomerRepository,
	contractRepo entity.ContractRepository,
	dependentRepo entity.DependentRepository,
	documentRepo entity.DocumentRepository,
) *CheckCustomerEligibilityUseCase {
	return &CheckCustomerEligibilityUseCase{
		CustomerRepo:  customerRepo,
		ContractRepo:  contractRepo,
		DependentRepo: dependentRepo,
		DocumentRepo:  documentRepo,
	}
}

func (uc *CheckCustomerEligibilityUseCase) Execute(ctx context.Context, customerID string) (*EligibilityReport, error) {
	customer, err := uc.CustomerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar cliente: %w", err)
	}
	if customer == nil {
		return nil, NewNotFoundError("Cliente não encontrado")
	}

	pendencies := []string{}
	details := EligibilityDetails{
		ApprovedDocuments:        true,
		DependentsWithPendencies: []DependentPendency{},
	}

	contracts, err := uc.ContractRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar contratos: %w", err)
	}
	details.HasValidContract, details.ContractStatus = contractEligibility(contracts)
	if !details.HasValidContract {
		pendencies = append(pendencies, contractPendency(contracts))
	}

	dependents, err := uc.DependentRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar dependentes: %w", err)
	}
	details.HasDependents = len(dependents) > 0

	var pendingIDs, clearIDs []string
	for _, dependent := range dependents {
		documents, err := uc.DocumentRepo.FindByDependentID(ctx, dependent.ID)
		if err != nil {
			return nil, fmt.Errorf("falha ao buscar documentos do dependente %s: %w", dependent.ID, err)
		}

		missing := len(documents) == 0
		unapproved := []string{}
		for _, doc := range documents {
			if !doc.IsApproved {
				unapproved = append(unapproved, doc.Label())
			}
		}

		if !missing && len(unapproved) == 0 {
			clearIDs = append(clearIDs, dependent.ID)
			continue
		}

		pendingIDs = append(pendingIDs, dependent.ID)
		details.ApprovedDocuments = false
		details.DependentsWithPendencies = append(details.DependentsWithPendencies, DependentPendency{
			DependentID:         dependent.ID,
			DependentName:       dependent.Name,
			MissingDocuments:    missing,
			UnapprovedDocuments: unapproved,
		})
		if missing {
			pendencies = append(pendencies, fmt.Sprintf("Dependente %s não possui documentos", dependent.Name))
		}
		if len(unapproved) > 0 {
			pendencies = append(pendencies, fmt.Sprintf("Dependente %s possui documentos não aprovados: %s", dependent.Name, strings.Join(unapproved, ", ")))
		}
	}

	if len(pendingIDs) > 0 {
		if err := uc.DependentRepo.UpdateEligibility(ctx, pendingIDs, false); err != nil {
			return nil, &TechnicalError{Code: "ELIGIBILITY_UPDATE_FAILED", Message: "erro ao marcar dependentes pendentes", Err: err}
		}
	}
	if len(clearIDs) > 0 {
		if err := uc.DependentRepo.UpdateEligibility(ctx, clearIDs, true); err != nil {
			return nil, &TechnicalError{Code: "ELIGIBILITY_UPDATE_FAILED", Message: "erro ao marcar dependentes elegíveis", Err: err}
		}
	}

	report := &EligibilityReport{
		IsEligible: details.HasValidContract && len(pendingIDs) == 0,
		Pendencies: pendencies,
		Details:    details,
	}

	metrics.RecordEligibility(report.IsEligible)
	zap.S().Infow("Elegibilidade recalculada",
		"customerId", customerID, "eligible", report.IsEligible,
		"pendingDependents", len(pendingIDs), "clearDependents", len(clearIDs))

	return report, nil
}

// contractEligibility devolve se há contrato assinado e o status a reportar
// (o do contrato assinado, ou o do mais recente quando nenhum foi assinado).
func contractEligibility(contracts []*entity.Contract) (bool, entity.ContractStatus) {
	for _, c := range contracts {
		if c.Status.IsExecuted() {
			return true, c.Status
		}
	}
	if newest := entity.NewestContract(contracts); newest != nil {
		return false, newest.Status
	}
	return false, ""
}

func contractPendency(contracts []*entity.Contract) string {
	newest := entity.NewestContract(contracts)
	if newest == nil {
		return "Cliente não possui contrato"
	}

	switch newest.Status {
	case entity.ContractStatusSent, entity.ContractStatusDelivered:
		return "Contrato ainda não foi assinado."
	case entity.ContractStatusVoided:
		return "Contrato foi cancelado e precisa ser reenviado."
	case entity.ContractStatusDeclined:
		return "Contrato foi recusado pelo cliente."
	default:
		return fmt.Sprintf("Contrato deve estar com status \"completed\" ou \"signed\". Status atual: %s", newest.Status)
	}
}

// RecomputeEligibility é usado pelo worker quando um contrato é assinado.
func (uc *CheckCustomerEligibilityUseCase) RecomputeEligibility(ctx context.Context, customerID string) (bool, error) {
	report, err := uc.Execute(ctx, customerID)
	if err != nil {
		return false, err
	}
	return report.IsEligible, nil
}
