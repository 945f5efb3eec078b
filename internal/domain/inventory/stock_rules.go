// Package inventory contiene las reglas puras de cantidad por tipo de operación
// (servicio de dominio, sin persistencia).
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// Effect es un cambio de stock que se convierte en una entrada del kardex.
type Effect struct {
	OperationType string
	WarehouseID   string
	Change        decimal.Decimal
	Outgoing      bool // salida: no puede dejar el stock en negativo
}

// LineEffects calcula los efectos de una línea dado el stock actual del producto.
// Traslado produce dos efectos: transfer_out en origen y luego transfer_in en destino.
// Ajuste produce new_quantity - current.
func LineEffects(op *entity.Operation, line entity.OperationLine, current decimal.Decimal) ([]Effect, error) {
	switch op.Kind {
	case entity.OperationKindReceipt:
		return []Effect{{
			OperationType: entity.LedgerTypeReceipt,
			WarehouseID:   op.WarehouseID,
			Change:        line.Quantity,
		}}, nil
	case entity.OperationKindDelivery:
		return []Effect{{
			OperationType: entity.LedgerTypeDelivery,
			WarehouseID:   op.WarehouseID,
			Change:        line.Quantity.Neg(),
			Outgoing:      true,
		}}, nil
	case entity.OperationKindTransfer:
		return []Effect{
			{
				OperationType: entity.LedgerTypeTransferOut,
				WarehouseID:   op.WarehouseID,
				Change:        line.Quantity.Neg(),
				Outgoing:      true,
			},
			{
				OperationType: entity.LedgerTypeTransferIn,
				WarehouseID:   op.ToWarehouseID,
				Change:        line.Quantity,
			},
		}, nil
	case entity.OperationKindAdjustment:
		return []Effect{{
			OperationType: entity.LedgerTypeAdjustment,
			WarehouseID:   op.WarehouseID,
			Change:        line.NewQuantity.Sub(current),
		}}, nil
	}
	return nil, domain.InvalidInput("tipo de operación desconocido %q", op.Kind)
}

// Apply devuelve el stock resultante de aplicar change sobre before.
// Una salida que deja el stock en negativo falla con ErrInsufficientStock.
func Apply(before decimal.Decimal, e Effect) (decimal.Decimal, error) {
	after := before.Add(e.Change)
	if e.Outgoing && after.IsNegative() {
		return before, domain.ErrInsufficientStock
	}
	return after, nil
}

// ValidateLines aplica las reglas de creación de líneas por tipo de operación.
// Recepción, entrega y traslado exigen quantity > 0; ajuste exige new_quantity >= 0.
func ValidateLines(kind string, lines []entity.OperationLine) error {
	if len(lines) == 0 {
		return domain.InvalidInput("la operación requiere al menos una línea")
	}
	for i, l := range lines {
		if l.ProductID == "" {
			return domain.InvalidInput("línea %d: product_id requerido", i+1)
		}
		if kind == entity.OperationKindAdjustment {
			if l.NewQuantity.IsNegative() {
				return domain.InvalidInput("línea %d: new_quantity debe ser >= 0", i+1)
			}
			continue
		}
		if !l.Quantity.IsPositive() {
			return domain.InvalidInput("línea %d: quantity debe ser > 0", i+1)
		}
	}
	return nil
}
