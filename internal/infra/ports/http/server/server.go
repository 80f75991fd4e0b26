package server

import (
	"github.com/labstack/echo/v4"

	"github.com/elliottsj/botbot-web/internal/infra/ports/http/handlers"
	"github.com/elliottsj/botbot-web/internal/infra/ports/http/middleware"
	"github.com/elliottsj/botbot-web/internal/infra/ports/http/web"
	"github.com/elliottsj/botbot-web/internal/usecase"
)

func New(
	sessionUsecase usecase.SessionUsecase,
	accountUsecase usecase.AccountUsecase,
	dashboardHandler *handlers.DashboardHandler,
	channelHandler *handlers.ChannelHandler,
	accountHandler *handlers.AccountHandler,
	authHandler *handlers.AuthHandler,
	timezoneHandler *handlers.TimezoneHandler,
	streamHandler *handlers.StreamHandler,
	logPushHandler *handlers.LogPushHandler,
) (*echo.Echo, error) {
	e := echo.New()

	e.HideBanner = true

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	e.Use(middleware.SlogLogger())
	e.Use(middleware.PrometheusMiddleware())
	e.Use(middleware.SessionMiddleware(sessionUsecase, accountUsecase))

	e.GET("/", dashboardHandler.Show)
	e.GET("/channels", channelHandler.List)

	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)

	settings := e.Group("/settings")
	settings.Use(middleware.RequireUser())
	{
		settings.GET("", accountHandler.Settings)
		settings.POST("", accountHandler.Update)
	}

	// POST only; echo answers GET with 405.
	e.POST("/account/timezone", timezoneHandler.Set)

	e.GET("/ws/channels/:id/stream", streamHandler.Stream)

	e.POST("/api/logs", logPushHandler.Push)

	return e, nil
}
