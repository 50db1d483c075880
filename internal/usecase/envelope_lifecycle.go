package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bepulse/advantage-backend/internal/entity"
	"github.com/bepulse/advantage-backend/internal/infra/integration/docusign"
	"github.com/bepulse/advantage-backend/internal/infra/metrics"
)

const (
	customerRoleName     = "customer"
	dependentsTabLabel   = "Dependentes"
	regenerateVoidReason = "Envelope substituído por um novo envelope"
	operatorDocSuffix    = "-operator"
)

// EnvelopeTemplate identifica o template do contrato no DocuSign.
type EnvelopeTemplate struct {
	TemplateID   string
	EmailSubject string
}

type signingMode int

const (
	// embeddedSigning: o cliente assina dentro da aplicação via recipient view.
	embeddedSigning signingMode = iota
	// remoteSigning: o DocuSign envia email/SMS ao cliente (fluxo do operador).
	remoteSigning
)

// EnvelopeLifecycle decide entre criar, reaproveitar ou regenerar o envelope de um cliente.
type EnvelopeLifecycle struct {
	CustomerRepo  entity.CustomerRepository
	DependentRepo entity.DependentRepository
	ContractRepo  entity.ContractRepository
	Provider      SignatureProvider
	Locker        SigningLocker
	Template      EnvelopeTemplate
	Now           func() time.Time
}

func NewEnvelopeLifecycle(
	customerRepo entity.CustomerRepository,
	dependentRepo entity.DependentRepository,
	contractRepo entity.ContractRepository,
	provider SignatureProvider,
	locker SigningLocker,
	template EnvelopeTemplate,
) *EnvelopeLifecycle {
	return &EnvelopeLifecycle{
		CustomerRepo:  customerRepo,
		DependentRepo: dependentRepo,
		ContractRepo:  contractRepo,
		Provider:      provider,
		Locker:        locker,
		Template:      template,
		Now:           time.Now,
	}
}

type resolvedEnvelope struct {
	Customer    *entity.Customer
	Contract    *entity.Contract
	Regenerated bool
}

// resolve garante que o cliente tenha um envelope assinável, criando ou regenerando quando preciso.
func (l *EnvelopeLifecycle) resolve(ctx context.Context, customerID, documentType string, mode signingMode) (*resolvedEnvelope, error) {
	if l.Locker != nil {
		release, ok, err := l.Locker.TryAcquire(ctx, "signing:"+customerID)
		if err != nil {
			return nil, fmt.Errorf("erro ao obter lock de assinatura: %w", err)
		}
		if !ok {
			return nil, &DomainError{Code: CodeSigningInProgress, Message: "Já existe uma geração de contrato em andamento para este cliente"}
		}
		defer release()
	}

	customer, err := l.CustomerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar cliente: %w", err)
	}
	if customer == nil {
		return nil, NewNotFoundError(fmt.Sprintf("Cliente não encontrado. Id: %s", customerID))
	}

	dependents, err := l.DependentRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar dependentes: %w", err)
	}

	contracts, err := l.ContractRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar contratos: %w", err)
	}

	if entity.HasExecutedContract(contracts) {
		return nil, NewConflictError("Contrato já foi assinado")
	}

	if errs := ValidateSigner(customer, dependents); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	definition := buildEnvelopeDefinition(l.Template, customer, dependents, documentType, mode)
	audit := entity.AuditFromContext(ctx)

	current := entity.OldestContract(contracts)
	switch {
	case current == nil:
		contract, err := l.createContract(ctx, customer, definition, documentType, audit)
		if err != nil {
			return nil, err
		}
		return &resolvedEnvelope{Customer: customer, Contract: contract}, nil

	case current.Status.IsAwaitingSignature():
		if err := l.regenerate(ctx, current, definition, audit); err != nil {
			return nil, err
		}
		return &resolvedEnvelope{Customer: customer, Contract: current, Regenerated: true}, nil

	default:
		return nil, &DomainError{
			Code:    CodeContractUnavailable,
			Message: fmt.Sprintf("Contrato com status %q não está disponível para assinatura", current.Status),
		}
	}
}

func (l *EnvelopeLifecycle) createContract(ctx context.Context, customer *entity.Customer, definition docusign.EnvelopeDefinition, documentType string, audit entity.AuditContext) (*entity.Contract, error) {
	now := l.Now()
	contract := &entity.Contract{
		ID:           uuid.New().String(),
		CustomerID:   customer.ID,
		Status:       entity.ContractStatusSent,
		DocumentType: documentType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tx := NewTransaction()
	tx.AddStep("criar_envelope",
		func(ctx context.Context) error {
			envelopeID, err := l.Provider.CreateEnvelope(ctx, definition)
			if err != nil {
				return fmt.Errorf("erro ao criar envelope: %w", err)
			}
			contract.EnvelopeID = envelopeID
			return nil
		},
		func(ctx context.Context) error {
			return l.Provider.VoidEnvelope(ctx, contract.EnvelopeID, "Falha ao registrar contrato")
		},
	)
	tx.AddStep("salvar_contrato",
		func(ctx context.Context) error {
			return l.ContractRepo.Save(ctx, contract, audit)
		},
		nil,
	)

	if err := tx.Execute(ctx); err != nil {
		return nil, err
	}

	metrics.RecordEnvelope(metrics.EnvelopeCreated)
	zap.S().Infow("📄 Contrato criado", "contractId", contract.ID, "customerId", customer.ID, "envelopeId", contract.EnvelopeID)
	return contract, nil
}

// regenerate anula o envelope antigo, cria um novo e troca o envelopeId no mesmo contrato.
func (l *EnvelopeLifecycle) regenerate(ctx context.Context, contract *entity.Contract, definition docusign.EnvelopeDefinition, audit entity.AuditContext) error {
	oldEnvelopeID := contract.EnvelopeID
	var newEnvelopeID string

	tx := NewTransaction()
	tx.AddStep("anular_envelope_antigo",
		func(ctx context.Context) error {
			return l.voidStale(ctx, oldEnvelopeID)
		},
		nil,
	)
	tx.AddStep("criar_envelope",
		func(ctx context.Context) error {
			id, err := l.Provider.CreateEnvelope(ctx, definition)
			if err != nil {
				return fmt.Errorf("erro ao criar envelope: %w", err)
			}
			newEnvelopeID = id
			return nil
		},
		func(ctx context.Context) error {
			return l.Provider.VoidEnvelope(ctx, newEnvelopeID, "Falha ao registrar contrato")
		},
	)
	tx.AddStep("trocar_envelope",
		func(ctx context.Context) error {
			previousStatus := contract.Status
			contract.EnvelopeID = newEnvelopeID
			contract.Status = entity.ContractStatusSent
			contract.UpdatedAt = l.Now()
			if err := l.ContractRepo.ReplaceEnvelope(ctx, contract, oldEnvelopeID, audit); err != nil {
				contract.EnvelopeID = oldEnvelopeID
				contract.Status = previousStatus
				if errors.Is(err, entity.ErrStaleContract) {
					return NewConflictError("Contrato alterado durante a geração do novo envelope; tente novamente")
				}
				return err
			}
			return nil
		},
		nil,
	)

	if err := tx.Execute(ctx); err != nil {
		return err
	}

	metrics.RecordEnvelope(metrics.EnvelopeRegenerated)
	zap.S().Infow("♻️ Envelope regenerado", "contractId", contract.ID, "oldEnvelopeId", oldEnvelopeID, "envelopeId", newEnvelopeID)
	return nil
}

// voidStale anula o envelope antigo; se a anulação falhar mas o provedor já o
// reportar como voided (tentativa anterior interrompida), segue em frente.
func (l *EnvelopeLifecycle) voidStale(ctx context.Context, envelopeID string) error {
	err := l.Provider.VoidEnvelope(ctx, envelopeID, regenerateVoidReason)
	if err == nil {
		return nil
	}

	status, statusErr := l.Provider.GetEnvelopeStatus(ctx, envelopeID)
	if statusErr == nil && status.Status == entity.ContractStatusVoided {
		zap.S().Warnw("Envelope já estava anulado no provedor", "envelopeId", envelopeID)
		return nil
	}
	return fmt.Errorf("erro ao anular envelope %s: %w", envelopeID, err)
}

// DependentsAnnotation monta o texto travado no contrato listando os dependentes cobertos.
func DependentsAnnotation(dependents []*entity.Dependent) string {
	lines := []string{"Dependentes:"}
	for _, d := range dependents {
		if d.CPF == "" {
			lines = append(lines, "- "+d.Name)
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s - CPF: %s", d.Name, entity.FormatCPF(d.CPF)))
	}
	return strings.Join(lines, "\n")
}

func buildEnvelopeDefinition(tmpl EnvelopeTemplate, customer *entity.Customer, dependents []*entity.Dependent, documentType string, mode signingMode) docusign.EnvelopeDefinition {
	role := docusign.TemplateRole{
		Email:        customer.Email,
		Name:         customer.Name,
		RoleName:     customerRoleName,
		RecipientID:  "1",
		RoutingOrder: "1",
		Tabs: &docusign.Tabs{
			TextTabs: []docusign.TextTab{{
				TabLabel:   dependentsTabLabel,
				Value:      DependentsAnnotation(dependents),
				Locked:     "true",
				DocumentID: "1",
				PageNumber: "13",
				XPosition:  "70",
				YPosition:  "450",
			}},
		},
	}

	switch mode {
	case embeddedSigning:
		role.ClientUserID = customer.Email
		role.EmbeddedRecipientStartURL = "SIGN_AT_DOCUSIGN"
	case remoteSigning:
		if phone := entity.OnlyDigits(customer.Phone); phone != "" {
			role.AdditionalNotifications = []docusign.AdditionalNotification{{
				SecondaryDeliveryMethod: "SMS",
				PhoneNumber:             docusign.PhoneNumber{CountryCode: "55", Number: phone},
			}}
		}
	}

	return docusign.EnvelopeDefinition{
		TemplateID:    tmpl.TemplateID,
		EmailSubject:  tmpl.EmailSubject,
		TemplateRoles: []docusign.TemplateRole{role},
		Status:        string(entity.ContractStatusSent),
		CustomFields: &docusign.CustomFields{
			TextCustomFields: []docusign.TextCustomField{
				{Name: "customerId", Value: customer.ID, Show: "false"},
				{Name: "documentType", Value: documentType, Show: "false"},
			},
		},
	}
}
