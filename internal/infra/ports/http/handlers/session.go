package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/elliottsj/botbot-web/internal/application/constant"
	"github.com/elliottsj/botbot-web/internal/domain/runtime"
	"github.com/elliottsj/botbot-web/internal/infra/appctx"
	"github.com/elliottsj/botbot-web/internal/infra/ports/http/middleware"
	"github.com/elliottsj/botbot-web/internal/usecase"
)

// ensureSession returns the request's session, creating one and setting the
// cookie when the visitor has none yet.
func ensureSession(c echo.Context, sessions usecase.SessionUsecase) (*runtime.Session, error) {
	if session, ok := appctx.Session(c.Request().Context()); ok {
		return session, nil
	}

	session := sessions.Create()

	token, err := sessions.IssueToken(session)
	if err != nil {
		slog.Error("issue session token", slog.Any(constant.Error, err))
		return nil, err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(14 * 24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	c.SetRequest(
		c.Request().WithContext(
			appctx.WithSession(c.Request().Context(), session),
		),
	)

	return session, nil
}

// clearSessionCookie expires the session cookie on the client.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
}
