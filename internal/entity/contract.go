package entity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnknownContractStatus = errors.New("status de contrato desconhecido")

type ContractStatus string

const (
	ContractStatusSent      ContractStatus = "sent"
	ContractStatusDelivered ContractStatus = "delivered"
	ContractStatusCompleted ContractStatus = "completed"
	ContractStatusSigned    ContractStatus = "signed"
	ContractStatusVoided    ContractStatus = "voided"
	ContractStatusDeclined  ContractStatus = "declined"
)

// ParseContractStatus aceita apenas o vocabulário conhecido; qualquer outro valor é erro.
func ParseContractStatus(raw string) (ContractStatus, error) {
	s := ContractStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case ContractStatusSent, ContractStatusDelivered, ContractStatusCompleted,
		ContractStatusSigned, ContractStatusVoided, ContractStatusDeclined:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownContractStatus, raw)
}

// IsExecuted indica contrato assinado, que libera a elegibilidade.
func (s ContractStatus) IsExecuted() bool {
	return s == ContractStatusCompleted || s == ContractStatusSigned
}

// IsAwaitingSignature indica envelope gerado mas ainda não concluído.
func (s ContractStatus) IsAwaitingSignature() bool {
	return s == ContractStatusSent || s == ContractStatusDelivered
}

func (s ContractStatus) IsCancelled() bool {
	return s == ContractStatusVoided || s == ContractStatusDeclined
}

func (s ContractStatus) String() string {
	return string(s)
}

type Contract struct {
	ID           string         `db:"id" json:"id"`
	CustomerID   string         `db:"customer_id" json:"customer_id"`
	EnvelopeID   string         `db:"envelope_id" json:"envelope_id"`
	Status       ContractStatus `db:"status" json:"status"`
	DocumentType string         `db:"document_type" json:"document_type"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
	CreatedBy    string         `db:"created_by" json:"created_by,omitempty"`
	UpdatedBy    string         `db:"updated_by" json:"updated_by,omitempty"`
}

// HasExecutedContract retorna true se algum contrato da lista já foi assinado.
func HasExecutedContract(contracts []*Contract) bool {
	for _, c := range contracts {
		if c.Status.IsExecuted() {
			return true
		}
	}
	return false
}

// OldestContract devolve o contrato mais antigo, que é o vigente para reaproveitamento.
func OldestContract(contracts []*Contract) *Contract {
	var oldest *Contract
	for _, c := range contracts {
		if oldest == nil || c.CreatedAt.Before(oldest.CreatedAt) {
			oldest = c
		}
	}
	return oldest
}

// NewestContract devolve o contrato criado por último.
func NewestContract(contracts []*Contract) *Contract {
	var newest *Contract
	for _, c := range contracts {
		if newest == nil || !c.CreatedAt.Before(newest.CreatedAt) {
			newest = c
		}
	}
	return newest
}

// ErrStaleContract indica que o contrato mudou de envelope entre a leitura e a escrita.
var ErrStaleContract = errors.New("contrato alterado por outra operação")

type ContractRepository interface {
	FindByID(ctx context.Context, id string) (*Contract, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]*Contract, error)
	FindByEnvelopeID(ctx context.Context, envelopeID string) ([]*Contract, error)
	FindPendingSignature(ctx context.Context) ([]*Contract, error)
	Save(ctx context.Context, contract *Contract, audit AuditContext) error
	// UpdateStatus grava só o status, e só enquanto o contrato ainda apontar para
	// contract.EnvelopeID. Devolve false quando o envelope já foi trocado.
	UpdateStatus(ctx context.Context, contract *Contract, audit AuditContext) (bool, error)
	// ReplaceEnvelope troca o envelope do contrato se ele ainda for previousEnvelopeID;
	// caso contrário devolve ErrStaleContract.
	ReplaceEnvelope(ctx context.Context, contract *Contract, previousEnvelopeID string, audit AuditContext) error
}
