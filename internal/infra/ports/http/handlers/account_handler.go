package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elliottsj/botbot-web/internal/application/constant"
	"github.com/elliottsj/botbot-web/internal/domain/input"
	"github.com/elliottsj/botbot-web/internal/infra/appctx"
	"github.com/elliottsj/botbot-web/internal/usecase"
)

type AccountHandler struct {
	accountUsecase usecase.AccountUsecase
}

func NewAccountHandler(accountUsecase usecase.AccountUsecase) *AccountHandler {
	return &AccountHandler{accountUsecase: accountUsecase}
}

// Settings renders the account form bound to the requesting user's own
// record. Routed behind RequireUser.
func (h *AccountHandler) Settings(c echo.Context) error {
	user, ok := appctx.User(c.Request().Context())
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	form := &input.AccountForm{
		Username: user.Username,
		Nick:     user.Nick,
		Timezone: user.Timezone,
	}

	return c.Render(http.StatusOK, "settings.html", echo.Map{
		"user": user,
		"form": form,
	})
}

// Update applies the settings form. A password change is only attempted when
// the toggle is set; a mismatched confirmation re-renders the form with a
// field error and leaves the record untouched.
func (h *AccountHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := appctx.User(ctx)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	var form input.AccountForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}

	// The submission is all-or-nothing: reject the profile fields before
	// any password write happens.
	if form.Timezone != "" && !usecase.ValidTimezone(form.Timezone) {
		return c.Render(http.StatusOK, "settings.html", echo.Map{
			"user":       user,
			"form":       &form,
			"form_error": "Unknown timezone.",
		})
	}

	if form.ChangePassword() {
		err := h.accountUsecase.ChangePassword(ctx, user.ID, form.NewPassword1, form.NewPassword2)
		if errors.Is(err, usecase.ErrPasswordMismatch) {
			return c.Render(http.StatusOK, "settings.html", echo.Map{
				"user":           user,
				"form":           &form,
				"password_error": err.Error(),
			})
		}
		if err != nil {
			slog.Error("change password", slog.Any(constant.Error, err))
			return echo.NewHTTPError(http.StatusInternalServerError)
		}
	}

	err := h.accountUsecase.UpdateProfile(ctx, user.ID, &form)
	if errors.Is(err, usecase.ErrInvalidTimezone) {
		return c.Render(http.StatusOK, "settings.html", echo.Map{
			"user":       user,
			"form":       &form,
			"form_error": "Unknown timezone.",
		})
	}
	if err != nil {
		slog.Error("update profile", slog.Any(constant.Error, err))
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return c.Redirect(http.StatusFound, "/settings")
}
