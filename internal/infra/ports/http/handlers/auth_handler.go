package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elliottsj/botbot-web/internal/application/constant"
	"github.com/elliottsj/botbot-web/internal/domain/input"
	"github.com/elliottsj/botbot-web/internal/infra/appctx"
	"github.com/elliottsj/botbot-web/internal/usecase"
)

type AuthHandler struct {
	accountUsecase usecase.AccountUsecase
	sessionUsecase usecase.SessionUsecase
}

func NewAuthHandler(accountUsecase usecase.AccountUsecase, sessionUsecase usecase.SessionUsecase) *AuthHandler {
	return &AuthHandler{
		accountUsecase: accountUsecase,
		sessionUsecase: sessionUsecase,
	}
}

func (h *AuthHandler) LoginPage(c echo.Context) error {
	if _, ok := appctx.User(c.Request().Context()); ok {
		return c.Redirect(http.StatusFound, "/")
	}

	return c.Render(http.StatusOK, "login.html", echo.Map{
		"form": &input.LoginForm{},
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var form input.LoginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}

	user, err := h.accountUsecase.ValidateCredentials(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		slog.Warn("login failed", slog.String(constant.UserName, form.Username))

		return c.Render(http.StatusOK, "login.html", echo.Map{
			"form":       &form,
			"form_error": "Invalid username or password.",
		})
	}

	session, err := ensureSession(c, h.sessionUsecase)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	session.UserID = user.ID
	h.sessionUsecase.Save(session)

	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if session, ok := appctx.Session(c.Request().Context()); ok {
		h.sessionUsecase.Delete(session.ID)
	}

	clearSessionCookie(c)

	return c.Redirect(http.StatusFound, "/")
}
