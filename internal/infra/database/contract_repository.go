package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/bepulse/advantage-backend/internal/entity"
)

const pgForeignKeyViolation = "23503"

type ContractRepository struct {
	DB *sqlx.DB
}

func NewContractRepository(db *sqlx.DB) *ContractRepository {
	return &ContractRepository{DB: db}
}

const contractColumns = `id, customer_id, envelope_id, status, document_type, created_at, updated_at, created_by, updated_by`

func (r *ContractRepository) FindByID(ctx context.Context, id string) (*entity.Contract, error) {
	var c entity.Contract
	err := r.DB.GetContext(ctx, &c, `SELECT `+contractColumns+` FROM contracts WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar contrato: %w", err)
	}
	return &c, nil
}

// FindByCustomerID devolve os contratos do mais antigo para o mais novo.
func (r *ContractRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*entity.Contract, error) {
	return r.selectContracts(ctx, `SELECT `+contractColumns+` FROM contracts WHERE customer_id = $1 ORDER BY created_at ASC`, customerID)
}

func (r *ContractRepository) FindByEnvelopeID(ctx context.Context, envelopeID string) ([]*entity.Contract, error) {
	return r.selectContracts(ctx, `SELECT `+contractColumns+` FROM contracts WHERE envelope_id = $1 ORDER BY created_at ASC`, envelopeID)
}

func (r *ContractRepository) FindPendingSignature(ctx context.Context) ([]*entity.Contract, error) {
	return r.selectContracts(ctx, `SELECT `+contractColumns+` FROM contracts WHERE status IN ('sent', 'delivered') ORDER BY created_at ASC`)
}

func (r *ContractRepository) selectContracts(ctx context.Context, query string, args ...any) ([]*entity.Contract, error) {
	contracts := []*entity.Contract{}
	if err := r.DB.SelectContext(ctx, &contracts, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao buscar contratos: %w", err)
	}
	return contracts, nil
}

func (r *ContractRepository) Save(ctx context.Context, c *entity.Contract, audit entity.AuditContext) error {
	c.CreatedBy = audit.Actor()
	c.UpdatedBy = audit.Actor()

	query := `INSERT INTO contracts (` + contractColumns + `)
		VALUES (:id, :customer_id, :envelope_id, :status, :document_type, :created_at, :updated_at, :created_by, :updated_by)`

	if _, err := r.DB.NamedExecContext(ctx, query, c); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return entity.ErrCustomerNotFound
		}
		return fmt.Errorf("erro ao salvar contrato: %w", err)
	}
	return nil
}

// UpdateStatus não toca em envelope_id: um evento atrasado do envelope antigo não afeta linhas já regeneradas.
func (r *ContractRepository) UpdateStatus(ctx context.Context, c *entity.Contract, audit entity.AuditContext) (bool, error) {
	query := `UPDATE contracts SET status = $1, updated_at = $2, updated_by = $3 WHERE id = $4 AND envelope_id = $5`

	res, err := r.DB.ExecContext(ctx, query, c.Status, c.UpdatedAt, audit.Actor(), c.ID, c.EnvelopeID)
	if err != nil {
		return false, fmt.Errorf("erro ao atualizar status do contrato: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao atualizar status do contrato: %w", err)
	}
	if n == 0 {
		return false, nil
	}
	c.UpdatedBy = audit.Actor()
	return true, nil
}

func (r *ContractRepository) ReplaceEnvelope(ctx context.Context, c *entity.Contract, previousEnvelopeID string, audit entity.AuditContext) error {
	query := `UPDATE contracts SET envelope_id = $1, status = $2, document_type = $3, updated_at = $4, updated_by = $5
		WHERE id = $6 AND envelope_id = $7`

	res, err := r.DB.ExecContext(ctx, query, c.EnvelopeID, c.Status, c.DocumentType, c.UpdatedAt, audit.Actor(), c.ID, previousEnvelopeID)
	if err != nil {
		return fmt.Errorf("erro ao trocar envelope do contrato: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("contrato %s: %w", c.ID, entity.ErrStaleContract)
	}
	c.UpdatedBy = audit.Actor()
	return nil
}
