package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/elliottsj/botbot-web/internal/application/constant"
	"github.com/elliottsj/botbot-web/internal/infra/ports/http/dto"
	"github.com/elliottsj/botbot-web/internal/usecase"
)

// LogPushHandler is the IRC bot's write path: it accepts log lines over HTTP
// authenticated with a shared token.
type LogPushHandler struct {
	token      string
	logUsecase usecase.LogUsecase
}

func NewLogPushHandler(token string, logUsecase usecase.LogUsecase) *LogPushHandler {
	return &LogPushHandler{
		token:      token,
		logUsecase: logUsecase,
	}
}

func (h *LogPushHandler) Push(c echo.Context) error {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) != 1 {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid bot token"})
	}

	var req dto.PushLogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	channelID, err := uuid.Parse(req.ChannelID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid channel id"})
	}

	if req.Command == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "command is required"})
	}

	log, err := h.logUsecase.RecordLog(c.Request().Context(), channelID, req.Command, req.Nick, req.Text)
	if err != nil {
		slog.Error("record log", slog.Any(constant.Error, err), slog.String(constant.ChannelID, req.ChannelID))
		return c.JSON(http.StatusNotFound, map[string]string{"error": "channel not found"})
	}

	return c.JSON(http.StatusCreated, log)
}
