package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/bepulse/advantage-backend/internal/entity"
)

type DependentRepository struct {
	DB *sqlx.DB
}

func NewDependentRepository(db *sqlx.DB) *DependentRepository {
	return &DependentRepository{DB: db}
}

func (r *DependentRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*entity.Dependent, error) {
	query := `SELECT id, customer_id, name, COALESCE(cpf, '') AS cpf, birth_date, kinship, eligible, created_at, updated_at
		FROM dependents WHERE customer_id = $1 ORDER BY created_at ASC`

	dependents := []*entity.Dependent{}
	if err := r.DB.SelectContext(ctx, &dependents, query, customerID); err != nil {
		return nil, fmt.Errorf("erro ao buscar dependentes: %w", err)
	}
	return dependents, nil
}

// UpdateEligibility grava o mesmo valor de eligible para todos os ids em um único UPDATE.
func (r *DependentRepository) UpdateEligibility(ctx context.Context, ids []string, eligible bool) error {
	if len(ids) == 0 {
		return nil
	}

	query := `UPDATE dependents SET eligible = $1, updated_at = NOW() WHERE id = ANY($2)`
	if _, err := r.DB.ExecContext(ctx, query, eligible, pq.Array(ids)); err != nil {
		return fmt.Errorf("erro ao atualizar elegibilidade dos dependentes: %w", err)
	}
	return nil
}
