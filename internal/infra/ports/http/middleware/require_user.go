package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elliottsj/botbot-web/internal/infra/appctx"
)

// RequireUser redirects anonymous visitors to the login page. Pages behind
// it never render an error, they bounce.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := appctx.User(c.Request().Context()); !ok {
				return c.Redirect(http.StatusFound, "/login")
			}

			return next(c)
		}
	}
}
