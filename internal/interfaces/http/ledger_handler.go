package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-ledger/internal/application/dto"
	"github.com/jhoicas/bodega-ledger/internal/application/inventory"
	"github.com/jhoicas/bodega-ledger/internal/application/report"
)

// LedgerHandler consultas de lotes, ventas, devoluciones y movimientos.
type LedgerHandler struct {
	batches *inventory.BatchService
	reports *report.ReportUseCase
	loc     *time.Location
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(batches *inventory.BatchService, reports *report.ReportUseCase, loc *time.Location) *LedgerHandler {
	if loc == nil {
		loc = time.Local
	}
	return &LedgerHandler{batches: batches, reports: reports, loc: loc}
}

// Batches godoc
// @Summary      Listar lotes
// @Description  section=inventory: lotes vendibles con stock; section=returns: lotes nacidos de devoluciones o anulaciones.
// @Tags         ledger
// @Produce      json
// @Param        sku      query  string  false  "SKU"
// @Param        section  query  string  false  "inventory | returns"
// @Success      200  {array}   dto.BatchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/batches [get]
func (h *LedgerHandler) Batches(c *fiber.Ctx) error {
	section := inventory.Section(c.Query("section"))
	switch section {
	case inventory.SectionAll, inventory.SectionInventory, inventory.SectionReturns:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "section debe ser inventory o returns"})
	}
	list, err := h.batches.List(c.UserContext(), c.Query("sku"), section)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.reports.BatchViews(list))
}

// Sales godoc
// @Summary      Listar ventas
// @Tags         ledger
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD o RFC3339, inclusivo)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD o RFC3339, exclusivo)"
// @Success      200  {array}   dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *LedgerHandler) Sales(c *fiber.Ctx) error {
	from, to, err := h.rangeParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.reports.Sales(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Returns godoc
// @Summary      Listar devoluciones
// @Tags         ledger
// @Produce      json
// @Param        from  query  string  false  "Desde (inclusivo)"
// @Param        to    query  string  false  "Hasta (exclusivo)"
// @Success      200  {array}   dto.ReturnResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/returns [get]
func (h *LedgerHandler) Returns(c *fiber.Ctx) error {
	from, to, err := h.rangeParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.reports.Returns(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Libro de movimientos
// @Tags         ledger
// @Produce      json
// @Param        sku       query  string  false  "SKU"
// @Param        operator  query  string  false  "Operador"
// @Param        from      query  string  false  "Desde (inclusivo)"
// @Param        to        query  string  false  "Hasta (exclusivo)"
// @Param        limit     query  int     false  "Máximo 100"
// @Param        offset    query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *LedgerHandler) Movements(c *fiber.Ctx) error {
	from, to, err := h.rangeParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	f := dto.MovementFilter{SKU: c.Query("sku"), Operator: c.Query("operator")}
	if from != nil {
		f.From = *from
	}
	if to != nil {
		f.To = *to
	}
	out, err := h.reports.Movements(c.UserContext(), f, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// rangeParams lee from/to de la query.
func (h *LedgerHandler) rangeParams(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	from, err := parseTimeParam(c.Query("from"), h.loc)
	if err != nil {
		return nil, nil, errors.New("from inválido")
	}
	to, err := parseTimeParam(c.Query("to"), h.loc)
	if err != nil {
		return nil, nil, errors.New("to inválido")
	}
	return from, to, nil
}

// parseTimeParam acepta RFC3339 o YYYY-MM-DD (inicio del día en loc). Vacío devuelve nil.
func parseTimeParam(s string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(dto.DateLayout, s, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
