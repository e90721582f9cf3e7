package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-ledger/pkg/logger"
)

// RequestLogger registra cada petición con su estado y latencia; si la petición trae una
// sesión de dispositivo válida se agregan operador y dispositivo.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		evt := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			evt = log.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			evt = log.Warn()
		}
		evt = evt.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start))
		if s := GetSession(c); s.Connected {
			evt = evt.Str("operator", s.Operator).Str("device", s.DeviceID)
		}
		evt.Msg("petición")
		return err
	}
}
