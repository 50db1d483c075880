package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// statuses que liberam elegibilidade
var executedStatuses = map[string]bool{"completed": true, "signed": true}

// EligibilityRecomputer recalcula a elegibilidade do cliente (e o flag dos dependentes).
type EligibilityRecomputer interface {
	RecomputeEligibility(ctx context.Context, customerID string) (bool, error)
}

type ContractNotifier interface {
	SendContractSigned(to, name string) error
}

type Worker struct {
	Channel     *amqp.Channel
	Eligibility EligibilityRecomputer
	Notifier    ContractNotifier
	// WhatsApp recebe o telefone do titular no lugar do email.
	WhatsApp ContractNotifier
}

func NewWorker(ch *amqp.Channel, eligibility EligibilityRecomputer, notifier ContractNotifier) *Worker {
	return &Worker{
		Channel:     ch,
		Eligibility: eligibility,
		Notifier:    notifier,
	}
}

// Start consome a fila até o contexto ser cancelado.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	zap.S().Infof(" [*] Worker rodando e aguardando na fila '%s'", queueName)

	for {
		select {
		case <-ctx.Done():
			zap.S().Info("Worker encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("canal de consumo fechado")
			}
			w.handleDelivery(ctx, d)
		}
	}
}

func (w *Worker) handleDelivery(ctx context.Context, d amqp.Delivery) {
	var payload ContractEventPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		zap.S().Errorw("❌ [WORKER] JSON Inválido", "error", err)
		d.Nack(false, false)
		return
	}

	if err := w.process(ctx, payload); err != nil {
		zap.S().Errorw("❌ [WORKER] Erro ao processar evento", "contractId", payload.ContractID, "error", err)
		d.Nack(false, false)
		return
	}
	d.Ack(false)
}

func (w *Worker) process(ctx context.Context, payload ContractEventPayload) error {
	if !executedStatuses[payload.Status] {
		zap.S().Debugw("[WORKER] Evento sem ação", "contractId", payload.ContractID, "status", payload.Status)
		return nil
	}

	eligible, err := w.Eligibility.RecomputeEligibility(ctx, payload.CustomerID)
	if err != nil {
		return fmt.Errorf("erro ao recalcular elegibilidade: %w", err)
	}
	zap.S().Infow("✅ [WORKER] Elegibilidade recalculada após assinatura", "customerId", payload.CustomerID, "eligible", eligible)

	if w.Notifier != nil && payload.CustomerEmail != "" {
		if err := w.Notifier.SendContractSigned(payload.CustomerEmail, payload.CustomerName); err != nil {
			// o recálculo já foi feito; falha de email não volta a mensagem para a fila
			zap.S().Warnw("⚠️ [WORKER] Falha ao enviar email de contrato assinado", "customerId", payload.CustomerID, "error", err)
		}
	}

	if w.WhatsApp != nil && payload.CustomerPhone != "" {
		if err := w.WhatsApp.SendContractSigned(payload.CustomerPhone, payload.CustomerName); err != nil {
			zap.S().Warnw("⚠️ [WORKER] Falha ao enviar WhatsApp de contrato assinado", "customerId", payload.CustomerID, "error", err)
		}
	}
	return nil
}
