package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-ledger/internal/application/auth"
	"github.com/jhoicas/bodega-ledger/internal/application/dto"
	"github.com/jhoicas/bodega-ledger/pkg/validator"
)

// SessionHandler conexión simulada del escáner (público).
type SessionHandler struct {
	uc *auth.SessionUseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *auth.SessionUseCase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// Connect godoc
// @Summary      Conectar dispositivo
// @Description  Emite el token del escáner. Si hay operadores configurados, operator debe ser uno de ellos.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SessionRequest  true  "operator, device_id, bodega"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/session [post]
func (h *SessionHandler) Connect(c *fiber.Ctx) error {
	var in dto.SessionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if fields := validator.ValidateStruct(in); fields != nil {
		return validationFailed(c, fields)
	}
	out, err := h.uc.Connect(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Current godoc
// @Summary      Sesión actual
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/session [get]
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	s := GetSession(c)
	return c.JSON(fiber.Map{
		"connected": s.Connected,
		"operator":  s.Operator,
		"device_id": s.DeviceID,
		"bodega":    s.Bodega,
	})
}
