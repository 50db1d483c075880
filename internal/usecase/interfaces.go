package usecase

import (
	"context"

	"github.com/bepulse/advantage-backend/internal/infra/integration/docusign"
	"github.com/bepulse/advantage-backend/internal/infra/queue"
)

// SignatureProvider é o provedor externo de assinatura (DocuSign).
type SignatureProvider interface {
	CreateEnvelope(ctx context.Context, definition docusign.EnvelopeDefinition) (string, error)
	GetEnvelopeStatus(ctx context.Context, envelopeID string) (*docusign.EnvelopeStatus, error)
	CreateRecipientView(ctx context.Context, envelopeID, recipientEmail, recipientName, returnURL string) (string, error)
	VoidEnvelope(ctx context.Context, envelopeID, reason string) error
	DownloadDocument(ctx context.Context, envelopeID, documentID string) ([]byte, error)
}

type ContractEventPublisher interface {
	PublishContractEvent(ctx context.Context, payload queue.ContractEventPayload) error
}

// SigningLocker garante uma única resolução de envelope por cliente por vez.
// ok=false significa que outro processo segura o lock.
type SigningLocker interface {
	TryAcquire(ctx context.Context, key string) (release func(), ok bool, err error)
}
