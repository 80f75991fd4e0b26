package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elliottsj/botbot-web/internal/application/constant"
	"github.com/elliottsj/botbot-web/internal/domain/input"
	"github.com/elliottsj/botbot-web/internal/domain/runtime"
	"github.com/elliottsj/botbot-web/internal/infra/appctx"
	"github.com/elliottsj/botbot-web/internal/usecase"
)

type TimezoneHandler struct {
	accountUsecase usecase.AccountUsecase
	sessionUsecase usecase.SessionUsecase
}

func NewTimezoneHandler(accountUsecase usecase.AccountUsecase, sessionUsecase usecase.SessionUsecase) *TimezoneHandler {
	return &TimezoneHandler{
		accountUsecase: accountUsecase,
		sessionUsecase: sessionUsecase,
	}
}

// Set stores the visitor's timezone preference in the session, and on the
// user record when the visitor is signed in. Invalid identifiers are
// rejected before any state changes.
func (h *TimezoneHandler) Set(c echo.Context) error {
	var form input.TimezoneForm
	if err := c.Bind(&form); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	if !usecase.ValidTimezone(form.Timezone) {
		return c.NoContent(http.StatusBadRequest)
	}

	session, err := ensureSession(c, h.sessionUsecase)
	if err != nil {
		return c.NoContent(http.StatusInternalServerError)
	}

	session.Values[runtime.TimezoneKey] = form.Timezone
	h.sessionUsecase.Save(session)

	if user, ok := appctx.User(c.Request().Context()); ok {
		if err := h.accountUsecase.SetTimezone(c.Request().Context(), user.ID, form.Timezone); err != nil {
			slog.Error("persist user timezone", slog.Any(constant.Error, err))
			return c.NoContent(http.StatusInternalServerError)
		}
	}

	return c.NoContent(http.StatusAccepted)
}
