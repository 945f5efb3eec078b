package repository

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// OperationFilter filtros del listado de operaciones de un tipo.
type OperationFilter struct {
	Kind   string
	Status string // vacío = todos
	Limit  int
	Offset int
}

// OperationRepository puerto de persistencia de operaciones (cabecera + líneas).
// Un solo almacén discriminado por Kind sirve a los cuatro tipos.
type OperationRepository interface {
	// Create persiste cabecera y líneas como una unidad. (kind, number) es único.
	Create(ctx context.Context, op *entity.Operation) error
	GetByID(ctx context.Context, kind, id string) (*entity.Operation, error)
	// GetForUpdate bloquea la cabecera hasta el fin de la transacción y carga las líneas.
	GetForUpdate(ctx context.Context, kind, id string) (*entity.Operation, error)
	// List devuelve cabeceras con sus líneas, más recientes primero.
	List(ctx context.Context, filter OperationFilter) ([]*entity.Operation, error)
	// MarkDone persiste status=done, validated_by/at y old_quantity/difference de ajustes.
	MarkDone(ctx context.Context, op *entity.Operation) error
	Delete(ctx context.Context, kind, id string) error
}
