package entity

import "context"

// SystemWebhookActor é gravado em updated_by quando a mudança vem do webhook do provedor.
const SystemWebhookActor = "system@docusign.webhook"

// SystemActor é usado quando não há operador autenticado (CLI, worker).
const SystemActor = "system"

// AuditContext carrega o operador responsável pela escrita.
type AuditContext struct {
	UserEmail string
}

func (a AuditContext) Actor() string {
	if a.UserEmail == "" {
		return SystemActor
	}
	return a.UserEmail
}

type auditKey struct{}

func WithAudit(ctx context.Context, audit AuditContext) context.Context {
	return context.WithValue(ctx, auditKey{}, audit)
}

func AuditFromContext(ctx context.Context) AuditContext {
	if a, ok := ctx.Value(auditKey{}).(AuditContext); ok {
		return a
	}
	return AuditContext{}
}
