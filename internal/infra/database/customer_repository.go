package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bepulse/advantage-backend/internal/entity"
)

type CustomerRepository struct {
	DB *sqlx.DB
}

func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

const customerColumns = `id, name, cpf, email, phone, birth_date, is_blocked, blocked_reason, created_at, updated_at, created_by, updated_by`

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*entity.Customer, error) {
	var c entity.Customer
	err := r.DB.GetContext(ctx, &c, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}
	return &c, nil
}
