package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-ledger/internal/application/dto"
	"github.com/jhoicas/bodega-ledger/internal/application/usecase"
)

// SettingsHandler configuración de la bodega (onboarding).
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Configuración vigente
// @Tags         settings
// @Produce      json
// @Success      200  {object}  entity.Settings
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	s, err := h.uc.Current(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(s)
}

// Put godoc
// @Summary      Guardar configuración
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SettingsRequest  true  "Bodega, moneda, operadores y columnas"
// @Success      200  {object}  entity.Settings
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Put(c *fiber.Ctx) error {
	var in dto.SettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	s, err := h.uc.Save(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(s)
}
