// Package pdf genera el comprobante imprimible de una operación de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de operación  │  N° + Fecha + Estado          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BODEGAS: origen / destino     CONTRAPARTE / MOTIVO         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | SKU | Producto | Cantidad (| Anterior | Dif.)   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VALIDACIÓN: usuario + fecha          QR del número         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDone    = &props.Color{Red: 20, Green: 120, Blue: 60}
	colorDraft   = &props.Color{Red: 180, Green: 110, Blue: 0}
)

var kindTitles = map[string]string{
	entity.OperationKindReceipt:    "RECEPCIÓN DE MERCANCÍA",
	entity.OperationKindDelivery:   "ENTREGA DE MERCANCÍA",
	entity.OperationKindTransfer:   "TRASLADO ENTRE BODEGAS",
	entity.OperationKindAdjustment: "AJUSTE DE INVENTARIO",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ inventory.DocumentGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa inventory.DocumentGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateOperationPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateOperationPDF(_ context.Context, op *dto.OperationResponse) ([]byte, error) {
	if op == nil {
		return nil, fmt.Errorf("pdf: operación nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(kindTitles[op.Kind]+" "+op.Number, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(op))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(op))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	adjustment := op.Kind == entity.OperationKindAdjustment
	m.AddRows(tableHeaderRow(adjustment))
	m.AddRows(tableDetailRows(op.Lines, adjustment)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(op))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tipo de operación (izq) y número, fecha y estado (der).
func headerRow(op *dto.OperationResponse) core.Row {
	statusColor := colorDraft
	status := "BORRADOR"
	if op.Status == entity.OperationStatusDone {
		statusColor = colorDone
		status = "VALIDADA"
	}
	return row.New(20).Add(
		col.New(7).Add(
			text.New(kindTitles[op.Kind], props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("StockMaster", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(op.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+op.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New(status, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 13, Color: statusColor,
			}),
		),
	)
}

// partiesRow: bodegas y contraparte o motivo.
func partiesRow(op *dto.OperationResponse) core.Row {
	warehouses := "Bodega: " + nonEmpty(op.WarehouseName, op.WarehouseID)
	if op.Kind == entity.OperationKindTransfer {
		warehouses = fmt.Sprintf("Origen: %s   →   Destino: %s",
			nonEmpty(op.WarehouseName, op.WarehouseID),
			nonEmpty(op.ToWarehouseName, op.ToWarehouseID),
		)
	}

	var label, detail string
	switch op.Kind {
	case entity.OperationKindReceipt:
		label, detail = "PROVEEDOR", nonEmpty(op.PartnerName, "-")
	case entity.OperationKindDelivery:
		label, detail = "CLIENTE", nonEmpty(op.PartnerName, "-")
	case entity.OperationKindAdjustment:
		label, detail = "MOTIVO", nonEmpty(op.Reason, "-")
	default:
		label, detail = "NOTAS", nonEmpty(op.Notes, "-")
	}

	return row.New(14).Add(
		col.New(7).Add(
			text.New("BODEGAS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(warehouses, props.Text{Size: 9, Top: 7}),
		),
		col.New(5).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(detail, props.Text{Size: 9, Top: 7}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas. Los ajustes muestran anterior y diferencia.
func tableHeaderRow(adjustment bool) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	if adjustment {
		return row.New(8).Add(
			h("#", 1, align.Center),
			h("SKU", 2, align.Left),
			h("Producto", 4, align.Left),
			h("Anterior", 1, align.Right),
			h("Nueva", 2, align.Right),
			h("Dif.", 2, align.Right),
		)
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("SKU", 3, align.Left),
		h("Producto", 5, align.Left),
		h("Cantidad", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea.
func tableDetailRows(lines []dto.OperationLineResponse, adjustment bool) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(lines))
	for i, l := range lines {
		no := fmt.Sprintf("%d", i+1)
		name := nonEmpty(l.ProductName, l.ProductID)
		if adjustment {
			result = append(result, row.New(7).Add(
				cell(no, 1, align.Center),
				cell(l.SKU, 2, align.Left),
				cell(name, 4, align.Left),
				cell(optional(l.OldQuantity), 1, align.Right),
				cell(optional(l.NewQuantity), 2, align.Right),
				cell(optional(l.Difference), 2, align.Right),
			))
			continue
		}
		result = append(result, row.New(7).Add(
			cell(no, 1, align.Center),
			cell(l.SKU, 3, align.Left),
			cell(name, 5, align.Left),
			cell(l.Quantity.String(), 3, align.Right),
		))
	}
	return result
}

// footerRow: sello de validación + QR con el número de la operación.
func footerRow(op *dto.OperationResponse) core.Row {
	stamp := "Pendiente de validación"
	if op.ValidatedAt != nil {
		stamp = fmt.Sprintf("Validada por %s el %s",
			nonEmpty(op.ValidatedBy, "-"), op.ValidatedAt.Format("02/01/2006 15:04 MST"))
	}
	return row.New(40).Add(
		col.New(8).Add(
			text.New("VALIDACIÓN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
			text.New(stamp, props.Text{Size: 9, Top: 8}),
			text.New("Creada por "+nonEmpty(op.CreatedBy, "-"), props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
		col.New(4).Add(code.NewQr(op.Number, props.Rect{Percent: 90, Center: true})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func optional(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.String()
}
