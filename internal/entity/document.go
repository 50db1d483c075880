package entity

import (
	"context"
	"time"
)

// Document é o registro de um arquivo enviado para um dependente (ou titular).
type Document struct {
	ID          string    `db:"id" json:"id"`
	CustomerID  string    `db:"customer_id" json:"customer_id,omitempty"`
	DependentID string    `db:"dependent_id" json:"dependent_id,omitempty"`
	Kind        string    `db:"kind" json:"kind"`
	FileName    string    `db:"file_name" json:"file_name"`
	FileSize    int64     `db:"file_size" json:"file_size"`
	IsApproved  bool      `db:"is_approved" json:"is_approved"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Label identifica o documento nas pendências ("RG - rg.pdf").
func (d *Document) Label() string {
	return d.Kind + " - " + d.FileName
}

type DocumentRepository interface {
	FindByDependentID(ctx context.Context, dependentID string) ([]*Document, error)
}
