package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de operación de inventario.
const (
	OperationKindReceipt    = "receipt"
	OperationKindDelivery   = "delivery"
	OperationKindTransfer   = "transfer"
	OperationKindAdjustment = "adjustment"
)

// Estados de una operación. draft -> done, una sola vez.
const (
	OperationStatusDraft = "draft"
	OperationStatusDone  = "done"
)

// Operation documento de inventario (recepción, entrega, traslado o ajuste) con sus líneas.
// Solo la validación mueve stock.
type Operation struct {
	ID            string
	Kind          string
	Number        string
	PartnerID     string // proveedor en recepciones, cliente en entregas
	WarehouseID   string // bodega origen en traslados
	ToWarehouseID string // solo traslados
	Status        string
	Date          time.Time
	Reason        string // solo ajustes
	Notes         string
	CreatedBy     string
	ValidatedBy   string
	ValidatedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Lines         []OperationLine
}

// OperationLine línea de una operación.
// En ajustes Quantity no se usa: NewQuantity es el conteo físico y OldQuantity/Difference
// se fijan al validar.
type OperationLine struct {
	ID          string
	OperationID string
	LineNo      int
	ProductID   string
	Quantity    decimal.Decimal
	NewQuantity decimal.Decimal
	OldQuantity *decimal.Decimal
	Difference  *decimal.Decimal
}

// IsDraft indica si la operación aún no fue validada.
func (o *Operation) IsDraft() bool { return o.Status == OperationStatusDraft }

// ValidOperationKind indica si k es un tipo de operación conocido.
func ValidOperationKind(k string) bool {
	switch k {
	case OperationKindReceipt, OperationKindDelivery, OperationKindTransfer, OperationKindAdjustment:
		return true
	}
	return false
}

// ProductIDs devuelve los productos distintos de las líneas, en orden de aparición.
func (o *Operation) ProductIDs() []string {
	seen := make(map[string]struct{}, len(o.Lines))
	out := make([]string, 0, len(o.Lines))
	for _, l := range o.Lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		out = append(out, l.ProductID)
	}
	return out
}
