package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bepulse/advantage-backend/internal/entity"
	"github.com/bepulse/advantage-backend/internal/infra/integration/docusign"
	"github.com/bepulse/advantage-backend/internal/infra/queue"
)

// MockCustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id string) (*entity.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Customer), args.Error(1)
}

// MockDependentRepository
type MockDependentRepository struct {
	mock.Mock
}

func (m *MockDependentRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*entity.Dependent, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Dependent), args.Error(1)
}

func (m *MockDependentRepository) UpdateEligibility(ctx context.Context, ids []string, eligible bool) error {
	args := m.Called(ctx, ids, eligible)
	return args.Error(0)
}

// MockDocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindByDependentID(ctx context.Context, dependentID string) ([]*entity.Document, error) {
	args := m.Called(ctx, dependentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Document), args.Error(1)
}

// MockContractRepository
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindByID(ctx context.Context, id string) (*entity.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contract), args.Error(1)
}

func (m *MockContractRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*entity.Contract, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Contract), args.Error(1)
}

func (m *MockContractRepository) FindByEnvelopeID(ctx context.Context, envelopeID string) ([]*entity.Contract, error) {
	args := m.Called(ctx, envelopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Contract), args.Error(1)
}

func (m *MockContractRepository) FindPendingSignature(ctx context.Context) ([]*entity.Contract, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Contract), args.Error(1)
}

func (m *MockContractRepository) Save(ctx context.Context, contract *entity.Contract, audit entity.AuditContext) error {
	args := m.Called(ctx, contract, audit)
	return args.Error(0)
}

func (m *MockContractRepository) UpdateStatus(ctx context.Context, contract *entity.Contract, audit entity.AuditContext) (bool, error) {
	args := m.Called(ctx, contract, audit)
	return args.Bool(0), args.Error(1)
}

func (m *MockContractRepository) ReplaceEnvelope(ctx context.Context, contract *entity.Contract, previousEnvelopeID string, audit entity.AuditContext) error {
	args := m.Called(ctx, contract, previousEnvelopeID, audit)
	return args.Error(0)
}

// MockSignatureProvider
type MockSignatureProvider struct {
	mock.Mock
}

func (m *MockSignatureProvider) CreateEnvelope(ctx context.Context, definition docusign.EnvelopeDefinition) (string, error) {
	args := m.Called(ctx, definition)
	return args.String(0), args.Error(1)
}

func (m *MockSignatureProvider) GetEnvelopeStatus(ctx context.Context, envelopeID string) (*docusign.EnvelopeStatus, error) {
	args := m.Called(ctx, envelopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docusign.EnvelopeStatus), args.Error(1)
}

func (m *MockSignatureProvider) CreateRecipientView(ctx context.Context, envelopeID, recipientEmail, recipientName, returnURL string) (string, error) {
	args := m.Called(ctx, envelopeID, recipientEmail, recipientName, returnURL)
	return args.String(0), args.Error(1)
}

func (m *MockSignatureProvider) VoidEnvelope(ctx context.Context, envelopeID, reason string) error {
	args := m.Called(ctx, envelopeID, reason)
	return args.Error(0)
}

func (m *MockSignatureProvider) DownloadDocument(ctx context.Context, envelopeID, documentID string) ([]byte, error) {
	args := m.Called(ctx, envelopeID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishContractEvent(ctx context.Context, payload queue.ContractEventPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// stubLocker simula um lock já ocupado quando busy=true.
type stubLocker struct {
	busy     bool
	err      error
	acquired []string
	released int
}

func (s *stubLocker) TryAcquire(_ context.Context, key string) (func(), bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	if s.busy {
		return nil, false, nil
	}
	s.acquired = append(s.acquired, key)
	return func() { s.released++ }, true, nil
}
