package http

import (
	"bytes"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-ledger/internal/application/dto"
	"github.com/jhoicas/bodega-ledger/internal/application/inventory"
	"github.com/jhoicas/bodega-ledger/internal/application/report"
	"github.com/jhoicas/bodega-ledger/internal/infrastructure/export"
)

// ReportPDF genera los documentos en PDF.
type ReportPDF interface {
	InventoryPDF(r *dto.InventoryReport) ([]byte, error)
	DailyPDF(r *dto.DailyReport, generatedAt time.Time) ([]byte, error)
}

// ReportHandler tablero, documentos exportables y sugerencias de reposición.
type ReportHandler struct {
	reports       *report.ReportUseCase
	replenishment *inventory.ReplenishmentUseCase
	pdf           ReportPDF
	loc           *time.Location
}

// NewReportHandler construye el handler. pdf puede ser nil: las rutas PDF responden 501.
func NewReportHandler(reports *report.ReportUseCase, replenishment *inventory.ReplenishmentUseCase, pdf ReportPDF, loc *time.Location) *ReportHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ReportHandler{reports: reports, replenishment: replenishment, pdf: pdf, loc: loc}
}

// Summary godoc
// @Summary      Tablero
// @Description  Totales de stock, valor, ganancia potencial, más y menos vendido, vencidos y por vencer.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.SummaryResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.reports.Summary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Inventory godoc
// @Summary      Inventario actual
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.InventoryReport
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.reports.Inventory(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Daily godoc
// @Summary      Historial del día
// @Tags         reports
// @Produce      json
// @Param        date  query  string  false  "YYYY-MM-DD (hoy por defecto)"
// @Success      200  {object}  dto.DailyReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/daily [get]
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	out, err := h.daily(c)
	if err != nil || out == nil {
		return err
	}
	return c.JSON(out)
}

// InventoryCSV godoc
// @Summary      Exportar inventario actual (CSV)
// @Tags         reports
// @Produce      text/csv
// @Success      200  {file}  file
// @Router       /api/reports/inventory.csv [get]
func (h *ReportHandler) InventoryCSV(c *fiber.Ctx) error {
	r, err := h.reports.Inventory(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	var buf bytes.Buffer
	if err := export.WriteInventoryCSV(&buf, r); err != nil {
		return writeError(c, err)
	}
	return sendFile(c, "text/csv; charset=utf-8", export.Filename("inventario", r.Bodega, r.GeneratedAt.In(h.loc).Format(dto.DateLayout))+".csv", buf.Bytes())
}

// InventoryPDF godoc
// @Summary      Exportar inventario actual (PDF)
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /api/reports/inventory.pdf [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return fiber.ErrNotImplemented
	}
	r, err := h.reports.Inventory(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	b, err := h.pdf.InventoryPDF(r)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, "application/pdf", export.Filename("inventario", r.Bodega, r.GeneratedAt.In(h.loc).Format(dto.DateLayout))+".pdf", b)
}

// DailyCSV godoc
// @Summary      Exportar historial del día (CSV)
// @Tags         reports
// @Produce      text/csv
// @Param        date  query  string  false  "YYYY-MM-DD"
// @Success      200  {file}  file
// @Router       /api/reports/daily.csv [get]
func (h *ReportHandler) DailyCSV(c *fiber.Ctx) error {
	r, err := h.daily(c)
	if err != nil || r == nil {
		return err
	}
	var buf bytes.Buffer
	if err := export.WriteDailyCSV(&buf, r); err != nil {
		return writeError(c, err)
	}
	return sendFile(c, "text/csv; charset=utf-8", export.Filename("historial", r.Bodega, r.Date)+".csv", buf.Bytes())
}

// DailyPDF godoc
// @Summary      Exportar historial del día (PDF)
// @Tags         reports
// @Produce      application/pdf
// @Param        date  query  string  false  "YYYY-MM-DD"
// @Success      200  {file}  file
// @Router       /api/reports/daily.pdf [get]
func (h *ReportHandler) DailyPDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return fiber.ErrNotImplemented
	}
	r, err := h.daily(c)
	if err != nil || r == nil {
		return err
	}
	b, err := h.pdf.DailyPDF(r, time.Now().In(h.loc))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, "application/pdf", export.Filename("historial", r.Bodega, r.Date)+".pdf", b)
}

// Replenishment godoc
// @Summary      Sugerencias de reposición
// @Description  Productos con stock menor o igual al umbral, priorizados por margen y ventas netas de 90 días.
// @Tags         reports
// @Produce      json
// @Param        threshold  query  int  false  "Umbral de stock (5 por defecto)"
// @Success      200  {array}   dto.ReplenishmentSuggestion
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/replenishment [get]
func (h *ReportHandler) Replenishment(c *fiber.Ctx) error {
	threshold := inventory.DefaultReorderPoint
	if raw := c.Query("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "threshold inválido"})
		}
		threshold = n
	}
	out, err := h.replenishment.GenerateReplenishmentList(c.UserContext(), threshold)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// daily resuelve el parámetro date. Si devuelve (nil, nil) la respuesta ya fue escrita.
func (h *ReportHandler) daily(c *fiber.Ctx) (*dto.DailyReport, error) {
	day := time.Now().In(h.loc)
	if raw := c.Query("date"); raw != "" {
		t, err := time.ParseInLocation(dto.DateLayout, raw, h.loc)
		if err != nil {
			return nil, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe tener formato YYYY-MM-DD"})
		}
		day = t
	}
	r, err := h.reports.Daily(c.UserContext(), day)
	if err != nil {
		return nil, writeError(c, err)
	}
	return r, nil
}

func sendFile(c *fiber.Ctx, contentType, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(body)
}
