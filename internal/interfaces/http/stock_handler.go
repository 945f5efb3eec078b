package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
)

// StockHandler consultas del kardex y de saldos (solo lectura).
type StockHandler struct {
	uc *inventory.LedgerQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.LedgerQueryUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Ledger godoc
// @Summary      Kardex de movimientos
// @Description  Más reciente primero. from/to aceptan YYYY-MM-DD o RFC3339; to con fecha sola incluye el día completo.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id      query  string  false  "Producto"
// @Param        warehouse_id    query  string  false  "Bodega"
// @Param        operation_type  query  string  false  "receipt | delivery | transfer_in | transfer_out | adjustment"
// @Param        operation_id    query  string  false  "Operación"
// @Param        from            query  string  false  "Desde"
// @Param        to              query  string  false  "Hasta"
// @Param        limit           query  int     false  "Límite"  default(100)
// @Success      200  {array}   dto.LedgerEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/ledger [get]
func (h *StockHandler) Ledger(c *fiber.Ctx) error {
	var in dto.LedgerQueryRequest
	if err := bindQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// WarehouseStock godoc
// @Summary      Saldos por bodega
// @Description  Informativo: el stock autoritativo es current_stock del producto.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la bodega"
// @Success      200  {array}   dto.WarehouseStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/warehouses/{id} [get]
func (h *StockHandler) WarehouseStock(c *fiber.Ctx) error {
	out, err := h.uc.WarehouseStock(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Conciliación kardex vs stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconcileReportDTO
// @Router       /api/stock/reconcile [get]
func (h *StockHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.uc.Reconcile(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
