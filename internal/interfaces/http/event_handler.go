package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-ledger/internal/application/dto"
	"github.com/jhoicas/bodega-ledger/internal/application/inventory"
	"github.com/jhoicas/bodega-ledger/pkg/validator"
)

// EventHandler entrada de eventos del escáner y operaciones dirigidas del libro.
type EventHandler struct {
	ledger *inventory.LedgerUseCase
	loc    *time.Location
}

// NewEventHandler construye el handler. loc es la zona de las fechas de vencimiento.
func NewEventHandler(ledger *inventory.LedgerUseCase, loc *time.Location) *EventHandler {
	if loc == nil {
		loc = time.Local
	}
	return &EventHandler{ledger: ledger, loc: loc}
}

// Process godoc
// @Summary      Registrar evento (ingreso, venta, devolución)
// @Description  quantity se normaliza a max(1, floor(q)). Las ventas consumen lotes FIFO y son todo o nada.
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EventRequest  true  "Evento"
// @Success      201   {object}  dto.AppliedEventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/events [post]
func (h *EventHandler) Process(c *fiber.Ctx) error {
	var in dto.EventRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if fields := validator.ValidateStruct(in); fields != nil {
		return validationFailed(c, fields)
	}
	payload, err := in.ToPayload(h.loc)
	if err != nil {
		return writeError(c, err)
	}
	applied, err := h.ledger.ProcessEvent(c.UserContext(), GetSession(c), payload)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromAppliedEvent(applied))
}

// CancelSale godoc
// @Summary      Anular venta
// @Description  Marca la venta cancelled y repone las unidades en un lote compensatorio.
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      201  {object}  dto.AppliedEventResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/cancel [post]
func (h *EventHandler) CancelSale(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	applied, err := h.ledger.UndoSale(c.UserContext(), GetSession(c), int64(id))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromAppliedEvent(applied))
}

// ReturnBatch godoc
// @Summary      Devolver lote al proveedor
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del lote"
// @Success      201  {object}  dto.AppliedEventResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/return [post]
func (h *EventHandler) ReturnBatch(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	applied, err := h.ledger.ReturnBatch(c.UserContext(), GetSession(c), int64(id))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromAppliedEvent(applied))
}
