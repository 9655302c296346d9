package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/notetrackhq/notetrack/errors"
	"github.com/notetrackhq/notetrack/pkg/jwt"
)

// TokenVerifier validates bearer tokens into claims
type TokenVerifier interface {
	ValidateAccessToken(tokenString string) (*jwt.Claims, error)
}

// EchoAuth returns middleware that requires a valid bearer token and puts
// the claims on the echo context as "user" and the ID as "user_id".
func EchoAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return apperrors.ErrUnauthenticated()
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return apperrors.ErrUnauthenticated()
			}

			claims, err := verifier.ValidateAccessToken(parts[1])
			if err != nil {
				return apperrors.ErrInvalidToken()
			}

			c.Set("user", claims)
			c.Set("user_id", claims.UserID)
			return next(c)
		}
	}
}
