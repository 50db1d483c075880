package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Transaction executa operações em sequência; se uma falhar, as compensações das
// operações anteriores rodam em ordem inversa.
type Transaction struct {
	operations    []Operation
	compensations []Compensation
}

type Operation struct {
	Name string
	Fn   func(context.Context) error
}

type Compensation struct {
	Name string
	Fn   func(context.Context) error
}

func NewTransaction() *Transaction {
	return &Transaction{
		operations:    []Operation{},
		compensations: []Compensation{},
	}
}

// AddStep registra uma operação e sua compensação (nil quando não há o que desfazer).
func (t *Transaction) AddStep(name string, fn func(context.Context) error, compensate func(context.Context) error) {
	t.operations = append(t.operations, Operation{name, fn})
	t.compensations = append(t.compensations, Compensation{name, compensate})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, op := range t.operations {
		if err := op.Fn(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("falha na etapa %s (%d etapa(s) desfeita(s)): %w", op.Name, i, err)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAtIndex int) {
	ctx = context.WithoutCancel(ctx)
	for i := failedAtIndex - 1; i >= 0; i-- {
		comp := t.compensations[i]
		if comp.Fn == nil {
			continue
		}
		if err := comp.Fn(ctx); err != nil {
			zap.S().Errorw("⚠️ Falha ao desfazer etapa (risco de inconsistência)", "etapa", comp.Name, "error", err)
		}
	}
}
