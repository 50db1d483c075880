package app

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/valkey-io/valkey-go"
	"go.uber.org/zap"

	"github.com/bepulse/advantage-backend/internal/config"
	"github.com/bepulse/advantage-backend/internal/infra/integration/docusign"
	"github.com/bepulse/advantage-backend/internal/infra/lock"
	"github.com/bepulse/advantage-backend/internal/usecase"
)

func NewDocuSignClient(cfg config.DocuSign) *docusign.Client {
	return docusign.NewClient(docusign.Config{
		BaseURL:        cfg.BaseURL,
		AccountID:      cfg.AccountID,
		IntegrationKey: cfg.IntegrationKey,
		UserID:         cfg.UserID,
		AuthBasePath:   cfg.AuthBasePath,
		PrivateKey:     cfg.PrivateKey,
		Timeout:        cfg.Timeout,
	}, docusign.NewTokenCache(clockwork.NewRealClock()))
}

// NewSigningLocker usa o Valkey quando configurado; sem ele, cai para o lock em memória.
// O client devolvido é nil no modo local.
func NewSigningLocker(addr string, ttl time.Duration) (usecase.SigningLocker, valkey.Client) {
	if addr == "" {
		zap.S().Warn("VALKEY_ADDR não definido, usando lock local (apenas uma instância)")
		return lock.NewLocalLocker(ttl), nil
	}

	client, err := lock.NewValkeyClient(addr)
	if err != nil {
		zap.S().Errorw("❌ Valkey indisponível, usando lock local", "addr", addr, "error", err)
		return lock.NewLocalLocker(ttl), nil
	}
	return lock.NewValkeyLocker(client, ttl), client
}
