package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bepulse/advantage-backend/internal/entity"
)

type DocumentRepository struct {
	DB *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

func (r *DocumentRepository) FindByDependentID(ctx context.Context, dependentID string) ([]*entity.Document, error) {
	query := `SELECT id, COALESCE(customer_id::text, '') AS customer_id, COALESCE(dependent_id::text, '') AS dependent_id,
		kind, file_name, file_size, is_approved, created_at
		FROM documents WHERE dependent_id = $1 ORDER BY created_at ASC`

	documents := []*entity.Document{}
	if err := r.DB.SelectContext(ctx, &documents, query, dependentID); err != nil {
		return nil, fmt.Errorf("erro ao buscar documentos: %w", err)
	}
	return documents, nil
}
