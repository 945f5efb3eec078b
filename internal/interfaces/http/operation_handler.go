package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// kindByPath traduce el segmento :kind de la URL al tipo de operación.
var kindByPath = map[string]string{
	"receipts":    entity.OperationKindReceipt,
	"deliveries":  entity.OperationKindDelivery,
	"transfers":   entity.OperationKindTransfer,
	"adjustments": entity.OperationKindAdjustment,
}

// OperationHandler recepciones, entregas, traslados y ajustes bajo /api/operations/:kind.
type OperationHandler struct {
	uc *inventory.OperationUseCase
}

// NewOperationHandler construye el handler.
func NewOperationHandler(uc *inventory.OperationUseCase) *OperationHandler {
	return &OperationHandler{uc: uc}
}

// ResolveKind middleware: valida :kind y lo deja en Locals("kind").
func (h *OperationHandler) ResolveKind(c *fiber.Ctx) error {
	kind, ok := kindByPath[c.Params("kind")]
	if !ok {
		return notFound(c, fmt.Sprintf("tipo de operación desconocido %q", c.Params("kind")))
	}
	c.Locals("kind", kind)
	return c.Next()
}

func operationKind(c *fiber.Ctx) string {
	s, _ := c.Locals("kind").(string)
	return s
}

// Create godoc
// @Summary      Crear operación en borrador
// @Description  Recepción: partner_id (proveedor) y warehouse_id. Entrega: partner_id (cliente) y warehouse_id.
// @Description  Traslado: from_warehouse_id y to_warehouse_id. Ajuste: warehouse_id, reason y new_quantity por línea.
// @Description  No mueve stock hasta validar.
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kind  path  string  true  "receipts | deliveries | transfers | adjustments"
// @Param        body  body  dto.CreateOperationRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operations/{kind} [post]
func (h *OperationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOperationRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), operationKind(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar operaciones
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        kind    path   string  true   "receipts | deliveries | transfers | adjustments"
// @Param        status  query  string  false  "draft | done"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.OperationListResponse
// @Router       /api/operations/{kind} [get]
func (h *OperationHandler) List(c *fiber.Ctx) error {
	var in dto.OperationListRequest
	if err := bindQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), operationKind(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener operación
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        kind  path  string  true  "receipts | deliveries | transfers | adjustments"
// @Param        id    path  string  true  "ID de la operación"
// @Success      200   {object}  dto.OperationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/operations/{kind}/{id} [get]
func (h *OperationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), operationKind(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "operación no encontrada")
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Validar operación
// @Description  draft -> done. Aplica todas las líneas al stock y al kardex en una transacción;
// @Description  si una línea falla no se aplica ninguna.
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        kind  path  string  true  "receipts | deliveries | transfers | adjustments"
// @Param        id    path  string  true  "ID de la operación"
// @Success      200   {object}  dto.OperationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INVALID_STATE | INSUFFICIENT_STOCK"
// @Router       /api/operations/{kind}/{id}/validate [post]
func (h *OperationHandler) Validate(c *fiber.Ctx) error {
	out, err := h.uc.Validate(c.UserContext(), operationKind(c), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar operación en borrador
// @Tags         operations
// @Security     Bearer
// @Param        kind  path  string  true  "receipts | deliveries | transfers | adjustments"
// @Param        id    path  string  true  "ID de la operación"
// @Success      204
// @Failure      409   {object}  dto.ErrorResponse  "INVALID_STATE si ya está done"
// @Router       /api/operations/{kind}/{id} [delete]
func (h *OperationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), operationKind(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Document godoc
// @Summary      Comprobante PDF de la operación
// @Tags         operations
// @Security     Bearer
// @Produce      application/pdf
// @Param        kind  path  string  true  "receipts | deliveries | transfers | adjustments"
// @Param        id    path  string  true  "ID de la operación"
// @Success      200   {file}  binary
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/operations/{kind}/{id}/document [get]
func (h *OperationHandler) Document(c *fiber.Ctx) error {
	pdf, op, err := h.uc.Document(c.UserContext(), operationKind(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s.pdf"`, op.Number))
	return c.Send(pdf)
}
