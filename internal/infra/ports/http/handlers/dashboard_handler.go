package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elliottsj/botbot-web/internal/application/constant"
	"github.com/elliottsj/botbot-web/internal/infra/appctx"
	"github.com/elliottsj/botbot-web/internal/usecase"
)

type DashboardHandler struct {
	channelUsecase usecase.ChannelUsecase
}

func NewDashboardHandler(channelUsecase usecase.ChannelUsecase) *DashboardHandler {
	return &DashboardHandler{channelUsecase: channelUsecase}
}

// Show renders the landing page. Anonymous visitors get the public template,
// signed-in users get their dashboard with admin and private channels.
func (h *DashboardHandler) Show(c echo.Context) error {
	ctx := c.Request().Context()

	publicChannels, err := h.channelUsecase.GetActivePublicChannels(ctx)
	if err != nil {
		slog.Error("get active public channels", slog.Any(constant.Error, err))
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	user, ok := appctx.User(ctx)
	if !ok {
		return c.Render(http.StatusOK, "anon_dashboard.html", echo.Map{
			"public_channels": publicChannels,
		})
	}

	adminChannels, err := h.channelUsecase.GetAdminChannels(ctx, user.ID)
	if err != nil {
		slog.Error("get admin channels", slog.Any(constant.Error, err))
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	privateChannels, err := h.channelUsecase.GetPrivateChannels(ctx, user.ID)
	if err != nil {
		slog.Error("get private channels", slog.Any(constant.Error, err))
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return c.Render(http.StatusOK, "user_dashboard.html", echo.Map{
		"user":             user,
		"public_channels":  publicChannels,
		"admin_channels":   adminChannels,
		"private_channels": privateChannels,
	})
}
