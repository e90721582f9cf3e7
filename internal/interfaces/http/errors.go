package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-ledger/internal/application/dto"
	"github.com/jhoicas/bodega-ledger/internal/application/usecase"
	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/pkg/validator"
)

// statusByKind código HTTP por clase de error del dominio.
var statusByKind = map[domain.Kind]int{
	domain.KindValidation:        fiber.StatusBadRequest,
	domain.KindNotConnected:      fiber.StatusUnauthorized,
	domain.KindUnauthorized:      fiber.StatusForbidden,
	domain.KindNotFound:          fiber.StatusNotFound,
	domain.KindInsufficientStock: fiber.StatusConflict,
	domain.KindOverReturn:        fiber.StatusConflict,
	domain.KindAlreadyCancelled:  fiber.StatusConflict,
	domain.KindAlreadyReturned:   fiber.StatusConflict,
	domain.KindConflict:          fiber.StatusConflict,
	domain.KindStorage:           fiber.StatusInternalServerError,
}

var codeByKind = map[domain.Kind]string{
	domain.KindValidation:        "VALIDATION",
	domain.KindNotConnected:      "NOT_CONNECTED",
	domain.KindUnauthorized:      "FORBIDDEN",
	domain.KindNotFound:          "NOT_FOUND",
	domain.KindInsufficientStock: "INSUFFICIENT_STOCK",
	domain.KindOverReturn:        "OVER_RETURN",
	domain.KindAlreadyCancelled:  "ALREADY_CANCELLED",
	domain.KindAlreadyReturned:   "ALREADY_RETURNED",
	domain.KindConflict:          "DUPLICATE",
	domain.KindStorage:           "STORAGE",
}

// writeError traduce err a la respuesta HTTP según su clase.
func writeError(c *fiber.Ctx, err error) error {
	kind := domain.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = fiber.StatusInternalServerError
	}
	resp := dto.ErrorResponse{Code: codeByKind[kind], Message: err.Error()}
	var verr *usecase.SettingsValidationError
	if errors.As(err, &verr) {
		resp.Details = verr.Fields
	}
	return c.Status(status).JSON(resp)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func validationFailed(c *fiber.Ctx, fields []validator.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "VALIDATION",
		Message: "datos inválidos",
		Details: fields,
	})
}
