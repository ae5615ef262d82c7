package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"remindcal/internal/apperror"
)

// RequireToken returns middleware that guards mutation endpoints with a
// bearer token checked against a bcrypt hash. An empty hash disables the
// check entirely, which is the development default.
//
// The token is expected in "Authorization: Bearer <token>" form.
func RequireToken(tokenHash string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if tokenHash == "" {
				return next(c)
			}

			header := c.Request().Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return apperror.NewUnauthorized("missing API token")
			}

			if err := bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(token)); err != nil {
				return apperror.NewUnauthorized("invalid API token")
			}

			return next(c)
		}
	}
}
