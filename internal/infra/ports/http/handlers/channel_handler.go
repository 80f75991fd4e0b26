package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elliottsj/botbot-web/internal/application/constant"
	"github.com/elliottsj/botbot-web/internal/infra/appctx"
	"github.com/elliottsj/botbot-web/internal/usecase"
)

type ChannelHandler struct {
	channelUsecase usecase.ChannelUsecase
}

func NewChannelHandler(channelUsecase usecase.ChannelUsecase) *ChannelHandler {
	return &ChannelHandler{channelUsecase: channelUsecase}
}

// List renders the channel listing. Private and admin sections only exist
// for signed-in users; anonymous visitors see public channels alone.
func (h *ChannelHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	publicChannels, err := h.channelUsecase.GetActivePublicChannels(ctx)
	if err != nil {
		slog.Error("get active public channels", slog.Any(constant.Error, err))
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	data := echo.Map{
		"public_channels": publicChannels,
	}

	if user, ok := appctx.User(ctx); ok {
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

		data["user"] = user
		data["admin_channels"] = adminChannels
		data["private_channels"] = privateChannels
	}

	return c.Render(http.StatusOK, "channels.html", data)
}
