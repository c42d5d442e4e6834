package context

import (
	"github.com/carlosCACB333/bonny/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// SetCaller stores the authenticated account in echo.Context.
func SetCaller(c echo.Context, account *entity.Account) {
	c.Set(string(KeyCaller), account)
}

// GetCaller extracts the authenticated account from echo.Context.
func GetCaller(c echo.Context) (*entity.Account, bool) {
	account, ok := c.Get(string(KeyCaller)).(*entity.Account)

	return account, ok && account != nil
}
