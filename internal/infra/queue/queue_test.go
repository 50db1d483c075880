package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange = exchange
	f.key = key
	f.msg = msg
	return f.err
}

type MockEligibility struct {
	mock.Mock
}

func (m *MockEligibility) RecomputeEligibility(ctx context.Context, customerID string) (bool, error) {
	args := m.Called(ctx, customerID)
	return args.Bool(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendContractSigned(to, name string) error {
	args := m.Called(to, name)
	return args.Error(0)
}

type fakeAcknowledger struct {
	acked  int
	nacked int
}

func (f *fakeAcknowledger) Ack(uint64, bool) error        { f.acked++; return nil }
func (f *fakeAcknowledger) Nack(uint64, bool, bool) error { f.nacked++; return nil }
func (f *fakeAcknowledger) Reject(uint64, bool) error     { return nil }

func TestProducerPublishContractEvent(t *testing.T) {
	ch := &fakeChannel{}
	occurred := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	payload := ContractEventPayload{
		ContractID:     "ct-1",
		CustomerID:     "cust-1",
		EnvelopeID:     "env-1",
		Status:         "completed",
		PreviousStatus: "sent",
		Origin:         "WEBHOOK_DOCUSIGN",
		OccurredAt:     occurred,
		CustomerEmail:  "ana@example.com",
	}

	err := NewProducer(ch).PublishContractEvent(context.Background(), payload)

	require.NoError(t, err)
	assert.Equal(t, ExchangeName, ch.exchange)
	assert.Equal(t, RoutingKey, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "ct-1:completed", ch.msg.MessageId)

	var body map[string]any
	require.NoError(t, json.Unmarshal(ch.msg.Body, &body))
	assert.Equal(t, "env-1", body["envelope_id"])
	assert.Equal(t, "sent", body["previous_status"])

	t.Run("Erro do canal", func(t *testing.T) {
		err := NewProducer(&fakeChannel{err: amqp.ErrClosed}).PublishContractEvent(context.Background(), payload)
		assert.ErrorIs(t, err, amqp.ErrClosed)
	})
}

func TestWorkerProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("Contrato concluído recalcula e envia email", func(t *testing.T) {
		eligibility := new(MockEligibility)
		notifier := new(MockNotifier)
		eligibility.On("RecomputeEligibility", mock.Anything, "cust-1").Return(true, nil).Once()
		notifier.On("SendContractSigned", "ana@example.com", "Ana Souza").Return(nil).Once()

		w := NewWorker(nil, eligibility, notifier)
		err := w.process(ctx, ContractEventPayload{CustomerID: "cust-1", Status: "completed", CustomerEmail: "ana@example.com", CustomerName: "Ana Souza"})

		require.NoError(t, err)
		eligibility.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("Envia WhatsApp quando há telefone", func(t *testing.T) {
		eligibility := new(MockEligibility)
		whatsapp := new(MockNotifier)
		eligibility.On("RecomputeEligibility", mock.Anything, "cust-1").Return(true, nil)
		whatsapp.On("SendContractSigned", "(11) 98888-7777", "Ana Souza").Return(errors.New("template inexistente")).Once()

		w := NewWorker(nil, eligibility, nil)
		w.WhatsApp = whatsapp
		err := w.process(ctx, ContractEventPayload{CustomerID: "cust-1", Status: "completed", CustomerName: "Ana Souza", CustomerPhone: "(11) 98888-7777"})

		assert.NoError(t, err)
		whatsapp.AssertExpectations(t)
	})

	t.Run("Status sem ação é ignorado", func(t *testing.T) {
		eligibility := new(MockEligibility)
		w := NewWorker(nil, eligibility, nil)

		err := w.process(ctx, ContractEventPayload{CustomerID: "cust-1", Status: "delivered"})

		require.NoError(t, err)
		eligibility.AssertNotCalled(t, "RecomputeEligibility", mock.Anything, mock.Anything)
	})

	t.Run("Falha de email não falha o evento", func(t *testing.T) {
		eligibility := new(MockEligibility)
		notifier := new(MockNotifier)
		eligibility.On("RecomputeEligibility", mock.Anything, "cust-1").Return(false, nil)
		notifier.On("SendContractSigned", mock.Anything, mock.Anything).Return(errors.New("smtp timeout"))

		err := NewWorker(nil, eligibility, notifier).process(ctx, ContractEventPayload{CustomerID: "cust-1", Status: "signed", CustomerEmail: "ana@example.com"})

		assert.NoError(t, err)
	})
}

func TestWorkerHandleDelivery(t *testing.T) {
	ctx := context.Background()

	t.Run("Ack quando processa", func(t *testing.T) {
		eligibility := new(MockEligibility)
		eligibility.On("RecomputeEligibility", mock.Anything, "cust-1").Return(true, nil)
		ack := &fakeAcknowledger{}
		body, _ := json.Marshal(ContractEventPayload{CustomerID: "cust-1", Status: "completed"})

		NewWorker(nil, eligibility, nil).handleDelivery(ctx, amqp.Delivery{Acknowledger: ack, Body: body})

		assert.Equal(t, 1, ack.acked)
		assert.Zero(t, ack.nacked)
	})

	t.Run("Nack quando o recálculo falha", func(t *testing.T) {
		eligibility := new(MockEligibility)
		eligibility.On("RecomputeEligibility", mock.Anything, "cust-1").Return(false, errors.New("db down"))
		ack := &fakeAcknowledger{}
		body, _ := json.Marshal(ContractEventPayload{CustomerID: "cust-1", Status: "completed"})

		NewWorker(nil, eligibility, nil).handleDelivery(ctx, amqp.Delivery{Acknowledger: ack, Body: body})

		assert.Equal(t, 1, ack.nacked)
	})

	t.Run("Nack com JSON inválido", func(t *testing.T) {
		ack := &fakeAcknowledger{}

		NewWorker(nil, new(MockEligibility), nil).handleDelivery(ctx, amqp.Delivery{Acknowledger: ack, Body: []byte("{")})

		assert.Equal(t, 1, ack.nacked)
	})
}
