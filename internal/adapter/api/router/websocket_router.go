package router

import (
	"github.com/labstack/echo/v4"

	"homefood/internal/adapter/api/handler"
)

func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	// Auth happens inside the handler via token query parameter.
	e.GET("/ws/chat", wsHandler.HandleWebSocket)
}
