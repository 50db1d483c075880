package app

import (
	"github.com/jmoiron/sqlx"

	"github.com/bepulse/advantage-backend/internal/config"
	"github.com/bepulse/advantage-backend/internal/infra/database"
	"github.com/bepulse/advantage-backend/internal/usecase"
)

// UseCases reúne os casos de uso compartilhados pela API e pela CLI.
type UseCases struct {
	CreateAndSign  *usecase.CreateEnvelopeAndSigningURLUseCase
	CreateEnvelope *usecase.CreateEnvelopeUseCase
	RecipientView  *usecase.CreateRecipientViewUseCase
	GetStatus      *usecase.GetEnvelopeStatusUseCase
	UpdateStatus   *usecase.UpdateContractStatusUseCase
	Download       *usecase.DownloadDocumentUseCase
	Eligibility    *usecase.CheckCustomerEligibilityUseCase
	Pendings       *usecase.FindPendingsUseCase
	ResendPending  *usecase.ResendPendingContractsUseCase
}

func NewUseCases(
	db *sqlx.DB,
	cfg *config.Config,
	provider usecase.SignatureProvider,
	locker usecase.SigningLocker,
	publisher usecase.ContractEventPublisher,
) *UseCases {
	customerRepo := database.NewCustomerRepository(db)
	dependentRepo := database.NewDependentRepository(db)
	documentRepo := database.NewDocumentRepository(db)
	contractRepo := database.NewContractRepository(db)

	lifecycle := usecase.NewEnvelopeLifecycle(customerRepo, dependentRepo, contractRepo, provider, locker, usecase.EnvelopeTemplate{
		TemplateID:   cfg.DocuSign.TemplateID,
		EmailSubject: cfg.DocuSign.EmailSubject,
	})
	createEnvelope := usecase.NewCreateEnvelopeUseCase(lifecycle)

	return &UseCases{
		CreateAndSign:  usecase.NewCreateEnvelopeAndSigningURLUseCase(lifecycle),
		CreateEnvelope: createEnvelope,
		RecipientView:  usecase.NewCreateRecipientViewUseCase(contractRepo, provider),
		GetStatus:      usecase.NewGetEnvelopeStatusUseCase(provider, contractRepo, customerRepo, publisher),
		UpdateStatus:   usecase.NewUpdateContractStatusUseCase(contractRepo, customerRepo, publisher),
		Download:       usecase.NewDownloadDocumentUseCase(contractRepo, provider),
		Eligibility:    usecase.NewCheckCustomerEligibilityUseCase(customerRepo, contractRepo, dependentRepo, documentRepo),
		Pendings:       usecase.NewFindPendingsUseCase(customerRepo, contractRepo, dependentRepo),
		ResendPending:  usecase.NewResendPendingContractsUseCase(contractRepo, createEnvelope),
	}
}
