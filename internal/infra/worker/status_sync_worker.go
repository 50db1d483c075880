package worker

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/bepulse/advantage-backend/internal/entity"
	"github.com/bepulse/advantage-backend/internal/usecase"
)

type PendingContractFinder interface {
	FindPendingSignature(ctx context.Context) ([]*entity.Contract, error)
}

type EnvelopeStatusSyncer interface {
	Execute(ctx context.Context, envelopeID string) (*usecase.GetEnvelopeStatusOutput, error)
}

// StatusSyncWorker consulta periodicamente o DocuSign para os contratos ainda
// aguardando assinatura, cobrindo webhooks perdidos.
type StatusSyncWorker struct {
	contracts    PendingContractFinder
	syncer       EnvelopeStatusSyncer
	tickInterval time.Duration
	clock        clockwork.Clock
}

func NewStatusSyncWorker(contracts PendingContractFinder, syncer EnvelopeStatusSyncer, interval time.Duration) *StatusSyncWorker {
	return &StatusSyncWorker{
		contracts:    contracts,
		syncer:       syncer,
		tickInterval: interval,
		clock:        clockwork.NewRealClock(),
	}
}

func (w *StatusSyncWorker) Start(ctx context.Context) {
	zap.S().Infow("🕒 Status Sync Worker iniciado", "interval", w.tickInterval)

	ticker := w.clock.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.syncPending(ctx)

	for {
		select {
		case <-ctx.Done():
			zap.S().Info("⚠️ Status Sync Worker encerrado")
			return
		case <-ticker.Chan():
			w.syncPending(ctx)
		}
	}
}

// syncPending devolve quantos envelopes foram consultados com sucesso.
func (w *StatusSyncWorker) syncPending(ctx context.Context) int {
	pending, err := w.contracts.FindPendingSignature(ctx)
	if err != nil {
		zap.S().Errorw("❌ Erro ao buscar contratos pendentes", "error", err)
		return 0
	}

	ctx = entity.WithAudit(ctx, entity.AuditContext{UserEmail: entity.SystemActor})

	synced := 0
	for _, c := range pending {
		if ctx.Err() != nil {
			break
		}
		if c.EnvelopeID == "" {
			continue
		}
		out, err := w.syncer.Execute(ctx, c.EnvelopeID)
		if err != nil {
			zap.S().Warnw("⚠️ Falha ao sincronizar envelope", "contractId", c.ID, "envelopeId", c.EnvelopeID, "error", err)
			continue
		}
		if out.Status != c.Status {
			zap.S().Infow("🔄 Status sincronizado", "contractId", c.ID, "from", c.Status, "to", out.Status)
		}
		synced++
	}

	if synced > 0 {
		zap.S().Debugw("Envelopes pendentes consultados", "count", synced)
	}
	return synced
}
