package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ContractEventPayload é publicado a cada mudança de status de contrato.
type ContractEventPayload struct {
	ContractID     string    `json:"contract_id"`
	CustomerID     string    `json:"customer_id"`
	EnvelopeID     string    `json:"envelope_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status"`
	Origin         string    `json:"origin"` // WEBHOOK_DOCUSIGN, OPERATOR, STATUS_QUERY
	OccurredAt     time.Time `json:"occurred_at"`

	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone,omitempty"`
}

// channelPublisher é o subconjunto de *amqp.Channel usado pelo producer.
type channelPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch channelPublisher
}

func NewProducer(ch channelPublisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishContractEvent(ctx context.Context, payload ContractEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    payload.ContractID + ":" + payload.Status,
			Timestamp:    payload.OccurredAt,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	return nil
}
