package usecase

import (
	"github.com/bepulse/advantage-backend/internal/entity"
	"github.com/bepulse/advantage-backend/internal/infra/integration/docusign"
)

type CreateEnvelopeAndSigningURLInput struct {
	CustomerID   string `json:"customerId"`
	DocumentType string `json:"documentType"`
	ReturnURL    string `json:"returnUrl"`
}

type CreateEnvelopeAndSigningURLOutput struct {
	EnvelopeID string `json:"envelopeId"`
	SigningURL string `json:"signingUrl"`
	ContractID string `json:"contractId"`
}

type CreateEnvelopeInput struct {
	CustomerID   string `json:"customerId"`
	DocumentType string `json:"documentType"`
	ReturnURL    string `json:"returnUrl,omitempty"`
}

type CreateEnvelopeOutput struct {
	EnvelopeID  string `json:"envelopeId"`
	ContractID  string `json:"contractId"`
	ReturnURL   string `json:"returnUrl,omitempty"`
	Regenerated bool   `json:"regenerated"`
}

type CreateRecipientViewInput struct {
	EnvelopeID     string `json:"envelopeId"`
	RecipientEmail string `json:"recipientEmail"`
	RecipientName  string `json:"recipientName"`
	ReturnURL      string `json:"returnUrl"`
}

type CreateRecipientViewOutput struct {
	SigningURL     string `json:"signingUrl"`
	EnvelopeID     string `json:"envelopeId"`
	RecipientEmail string `json:"recipientEmail"`
}

type GetEnvelopeStatusOutput struct {
	EnvelopeID     string                `json:"envelopeId"`
	Status         entity.ContractStatus `json:"status"`
	StatusDateTime string                `json:"statusDateTime"`
	EmailSubject   string                `json:"emailSubject"`
	Signers        []docusign.Signer     `json:"signers,omitempty"`
}

type UpdateContractStatusInput struct {
	EnvelopeID string
	Status     string
	Audit      entity.AuditContext
}

type UpdateContractStatusOutput struct {
	Matched bool `json:"matched"`
	Updated int  `json:"updated"`
}

type DownloadDocumentInput struct {
	EnvelopeID string
	DocumentID string
}

type DownloadDocumentOutput struct {
	Content     []byte
	FileName    string
	ContentType string
}

type DependentPendency struct {
	DependentID         string   `json:"dependentId"`
	DependentName       string   `json:"dependentName"`
	MissingDocuments    bool     `json:"missingDocuments"`
	UnapprovedDocuments []string `json:"unapprovedDocuments"`
}

type EligibilityDetails struct {
	HasValidContract         bool                  `json:"hasValidContract"`
	ContractStatus           entity.ContractStatus `json:"contractStatus,omitempty"`
	HasDependents            bool                  `json:"hasDependents"`
	ApprovedDocuments        bool                  `json:"approvedDocuments"`
	DependentsWithPendencies []DependentPendency   `json:"dependentsWithPendencies"`
}

type EligibilityReport struct {
	IsEligible bool               `json:"isEligible"`
	Pendencies []string           `json:"pendencies"`
	Details    EligibilityDetails `json:"details"`
}

type FindPendingsOutput struct {
	HasContractPending  bool `json:"hasContractPending"`
	HasDependentPending bool `json:"hasDependentPending"`
	HasPendings         bool `json:"hasPendings"`
}

type ResendPendingContractsInput struct {
	DocumentType string
	ReturnURL    string
	DryRun       bool
}

type ResentContract struct {
	CustomerID    string `json:"customerId"`
	ContractID    string `json:"contractId"`
	OldEnvelopeID string `json:"oldEnvelopeId"`
	NewEnvelopeID string `json:"newEnvelopeId,omitempty"`
	Error         string `json:"error,omitempty"`
}

type ResendPendingContractsOutput struct {
	DryRun    bool             `json:"dryRun"`
	Total     int              `json:"total"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Contracts []ResentContract `json:"contracts"`
}
