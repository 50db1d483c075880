package entity

import (
	"context"
	"errors"
	"time"
)

var ErrCustomerNotFound = errors.New("cliente não encontrado")

// Entidade: Customer (titular do benefício)
type Customer struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	CPF           string    `db:"cpf" json:"cpf"`
	Email         string    `db:"email" json:"email"`
	Phone         string    `db:"phone" json:"phone"`
	BirthDate     string    `db:"birth_date" json:"birth_date"`
	IsBlocked     bool      `db:"is_blocked" json:"is_blocked"`
	BlockedReason string    `db:"blocked_reason" json:"blocked_reason,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
	CreatedBy     string    `db:"created_by" json:"created_by,omitempty"`
	UpdatedBy     string    `db:"updated_by" json:"updated_by,omitempty"`
}

func (c *Customer) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Email == "" {
		return errors.New("email is required")
	}
	if !IsValidCPF(c.CPF) {
		return ErrInvalidCPF
	}
	return nil
}

// CustomerRepository retorna (nil, nil) quando o cliente não existe.
type CustomerRepository interface {
	FindByID(ctx context.Context, id string) (*Customer, error)
}
