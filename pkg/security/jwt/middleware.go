package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/oneresume/pkg/session"
)

// TokenParser turns a bearer token into a session.
type TokenParser interface {
	Parse(token string) (session.Session, error)
}

// NewAuthMiddleware возвращает Fiber middleware, проверяющий Bearer JWT (HS256).
// При успехе кладёт id пользователя (subject) в c.Locals("userId"), а сессию
// в user context, откуда её берут исходящие вызовы API.
func NewAuthMiddleware(parser TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "missing Authorization header"})
		}
		// Support both "Bearer <token>" and "<token>" (no prefix).
		tokenStr := strings.TrimSpace(authHeader)
		if parts := strings.SplitN(tokenStr, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenStr = strings.TrimSpace(parts[1])
		}
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "empty token"})
		}
		s, err := parser.Parse(tokenStr)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
		}
		c.Locals("userId", s.UserID)
		c.SetUserContext(session.NewContext(c.UserContext(), s))
		return c.Next()
	}
}
