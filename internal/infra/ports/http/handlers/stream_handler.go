package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/elliottsj/botbot-web/internal/application/constant"
	"github.com/elliottsj/botbot-web/internal/infra/adapters/memory"
	"github.com/elliottsj/botbot-web/internal/infra/appctx"
	"github.com/elliottsj/botbot-web/internal/usecase"
)

const replayLimit = 20

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type StreamHandler struct {
	channelUsecase usecase.ChannelUsecase
	logUsecase     usecase.LogUsecase
	streamRepo     memory.StreamRepository
}

func NewStreamHandler(
	channelUsecase usecase.ChannelUsecase,
	logUsecase usecase.LogUsecase,
	streamRepo memory.StreamRepository,
) *StreamHandler {
	return &StreamHandler{
		channelUsecase: channelUsecase,
		logUsecase:     logUsecase,
		streamRepo:     streamRepo,
	}
}

// Stream upgrades to a websocket, replays the latest log lines and then
// pushes new lines as the bot records them. Private channels require a
// membership.
func (h *StreamHandler) Stream(c echo.Context) error {
	ctx := c.Request().Context()

	channelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid channel id"})
	}

	userID := uuid.Nil
	if user, ok := appctx.User(ctx); ok {
		userID = user.ID
	}

	canView, err := h.channelUsecase.CanView(ctx, userID, channelID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "channel not found"})
	}
	if !canView {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "not a member of this channel"})
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error("websocket upgrade", slog.Any(constant.Error, err))
		return nil
	}
	defer conn.Close()

	logs, err := h.logUsecase.LatestLogs(ctx, channelID, replayLimit)
	if err != nil {
		slog.Error("replay logs", slog.Any(constant.Error, err), slog.String(constant.ChannelID, channelID.String()))
		return nil
	}

	// Latest first from the store, replayed in chronological order. The
	// replay must finish before the conn joins the broadcast set: gorilla
	// allows only one writer per connection.
	for i := len(logs) - 1; i >= 0; i-- {
		if err := conn.WriteJSON(logs[i]); err != nil {
			return nil
		}
	}

	subscriberID := h.streamRepo.Add(channelID, conn)
	defer h.streamRepo.Remove(channelID, subscriberID)

	// Hold the subscription until the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}
