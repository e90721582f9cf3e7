package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
)

// LocalSession clave de la sesión del dispositivo en c.Locals.
const LocalSession = "session"

// SessionResolver resuelve el token del dispositivo.
type SessionResolver interface {
	Resolve(token string) entity.Session
}

// SessionMiddleware lee el Bearer Token y deja la sesión en c.Locals. No corta la petición:
// sin token (o con uno inválido) la sesión queda desconectada y el motor rechaza los eventos.
func SessionMiddleware(resolver SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string
		if authHeader := c.Get("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				token = strings.TrimSpace(parts[1])
			}
		}
		c.Locals(LocalSession, resolver.Resolve(token))
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto (después del middleware).
func GetSession(c *fiber.Ctx) entity.Session {
	s, _ := c.Locals(LocalSession).(entity.Session)
	return s
}
