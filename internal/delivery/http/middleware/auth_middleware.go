package middleware

import (
	"strings"

	deliverycontext "github.com/carlosCACB333/bonny/internal/delivery/context"
	"github.com/carlosCACB333/bonny/internal/delivery/http/response"
	"github.com/carlosCACB333/bonny/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware validates session tokens and resolves the calling account.
type AuthMiddleware struct {
	accountUc usecase.AccountUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(accountUc usecase.AccountUsecase) *AuthMiddleware {
	return &AuthMiddleware{accountUc: accountUc}
}

// Authenticate checks the session token against both its signature and the
// token store, then sets the caller account on the request context. Handlers
// pass that identity explicitly into the usecases.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := extractToken(c)
		if !ok {
			return response.Unauthorized(c, "SESSION_INVALID", "Falta el encabezado de autorización")
		}

		session, err := m.accountUc.CheckSession(c.Request().Context(), token)
		if err != nil {
			return errors.WithStack(err)
		}

		deliverycontext.SetCaller(c, session.Account)

		return next(c)
	}
}

// extractToken reads the session token from the Authorization header.
// Both "Token <x>" and "Bearer <x>" schemes are accepted.
func extractToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	for _, scheme := range []string{"Token ", "Bearer "} {
		if strings.HasPrefix(authHeader, scheme) {
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, scheme))

			return token, token != ""
		}
	}

	return "", false
}
