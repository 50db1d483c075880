package entity

import (
	"context"
	"time"
)

// Dependent representa um dependente vinculado a um cliente titular.
// Eligible é um cache do último cálculo de elegibilidade; só o motor de
// elegibilidade escreve nele.
type Dependent struct {
	ID         string    `db:"id" json:"id"`
	CustomerID string    `db:"customer_id" json:"customer_id"`
	Name       string    `db:"name" json:"name"`
	CPF        string    `db:"cpf" json:"cpf,omitempty"`
	BirthDate  string    `db:"birth_date" json:"birth_date,omitempty"`
	Kinship    string    `db:"kinship" json:"kinship"` // CONJUGE, FILHO, PAI, MAE, etc
	Eligible   bool      `db:"eligible" json:"eligible"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type DependentRepository interface {
	FindByCustomerID(ctx context.Context, customerID string) ([]*Dependent, error)
	UpdateEligibility(ctx context.Context, ids []string, eligible bool) error
}
