package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"homefood/internal/adapter/api/middleware"
	ws "homefood/internal/infrastructure/websocket"
	"homefood/internal/usecase"
	"homefood/pkg/errors"
	"homefood/pkg/logger"
)

type WebSocketHandler struct {
	wsManager      *ws.Manager
	authMiddleware *middleware.AuthMiddleware
	chatUseCase    *usecase.ChatUseCase
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Restrict in production
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, authMiddleware *middleware.AuthMiddleware, chatUseCase *usecase.ChatUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:      wsManager,
		authMiddleware: authMiddleware,
		chatUseCase:    chatUseCase,
	}
}

// HandleWebSocket upgrades the connection and pumps events. The token arrives
// as a query parameter because browsers cannot set headers on WebSocket
// upgrades.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return errors.Unauthorized("Authentication token is required", nil)
	}

	userID, err := h.authMiddleware.GetUIDFromToken(c.Request().Context(), token)
	if err != nil {
		return errors.Unauthorized("Invalid or expired token", err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager, h.handleClientEvent)
	go client.WritePump()

	return nil
}

type typingPayload struct {
	Typing bool `json:"typing"`
}

func (h *WebSocketHandler) handleClientEvent(client *ws.Client, raw []byte) {
	var event ws.Event
	if err := json.Unmarshal(raw, &event); err != nil {
		logger.Warn("WebSocket: invalid event from client %s: %v", client.UserID, err)
		h.sendError(client, "Invalid event format")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch event.Type {
	case ws.EventTypePing:
		if pong, err := ws.NewEvent(ws.EventTypePong, "", nil); err == nil {
			h.wsManager.SendToUser(client.UserID, pong)
		}

	case ws.EventTypeJoinOrder:
		if err := h.chatUseCase.JoinOrderRoom(ctx, client.UserID, event.OrderID); err != nil {
			h.sendError(client, "Cannot join order chat")
		}

	case ws.EventTypeLeaveOrder:
		h.chatUseCase.LeaveOrderRoom(event.OrderID, client.UserID)

	case ws.EventTypeTyping:
		var payload typingPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			h.sendError(client, "Invalid typing payload")
			return
		}
		h.chatUseCase.SetTyping(event.OrderID, client.UserID, payload.Typing)

	case ws.EventTypeMessageFeed:
		// Read receipt: the client has rendered the feed.
		if err := h.chatUseCase.MarkAllRead(ctx, event.OrderID, client.UserID); err != nil {
			logger.Warn("WebSocket: mark-all-read failed for order %s: %v", event.OrderID, err)
		}

	default:
		logger.Debug("WebSocket: unknown event type %q from %s", event.Type, client.UserID)
	}
}

func (h *WebSocketHandler) sendError(client *ws.Client, message string) {
	event, err := ws.NewEvent(ws.EventTypeError, "", map[string]string{"message": message})
	if err != nil {
		return
	}
	h.wsManager.SendToUser(client.UserID, event)
}
