package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/elliottsj/botbot-web/internal/application/constant"
	"github.com/elliottsj/botbot-web/internal/infra/appctx"
	"github.com/elliottsj/botbot-web/internal/usecase"
)

// SessionCookie names the cookie holding the signed session token.
const SessionCookie = "botbot_session"

// SessionMiddleware resolves the visitor's session cookie and puts the
// session, and the user when the session is authenticated, into the request
// context. Requests without a valid cookie pass through anonymously.
func SessionMiddleware(sessions usecase.SessionUsecase, accounts usecase.AccountUsecase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil {
				return next(c)
			}

			sessionID, err := sessions.ParseToken(cookie.Value)
			if err != nil {
				return next(c)
			}

			session, ok := sessions.Get(sessionID)
			if !ok {
				return next(c)
			}

			ctx := appctx.WithSession(c.Request().Context(), session)

			if session.Authenticated() {
				user, err := accounts.GetUserByID(ctx, session.UserID)
				if err != nil {
					slog.Warn("session user lookup failed",
						slog.String(constant.SessionID, session.ID.String()),
						slog.Any(constant.Error, err),
					)
				} else {
					ctx = appctx.WithUser(ctx, user)
				}
			}

			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
