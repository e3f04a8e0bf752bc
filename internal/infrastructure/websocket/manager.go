package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"homefood/pkg/logger"
)

// Client represents one WebSocket connection.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager tracks active connections and per-order chat rooms.
type Manager struct {
	clients    map[string]*Client
	rooms      map[string]map[string]struct{} // orderID -> userIDs joined
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]struct{}),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Info("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client.UserID]; ok {
					delete(m.clients, client.UserID)
					for _, room := range m.rooms {
						delete(room, client.UserID)
					}
					close(client.Send)
				}
				m.mutex.Unlock()
				logger.Info("Client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// IsOnline reports whether the user currently has a live connection.
func (m *Manager) IsOnline(userID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	_, ok := m.clients[userID]
	return ok
}

func (m *Manager) JoinRoom(orderID, userID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	room, ok := m.rooms[orderID]
	if !ok {
		room = make(map[string]struct{})
		m.rooms[orderID] = room
	}
	room[userID] = struct{}{}
}

func (m *Manager) LeaveRoom(orderID, userID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if room, ok := m.rooms[orderID]; ok {
		delete(room, userID)
		if len(room) == 0 {
			delete(m.rooms, orderID)
		}
	}
}

// SendToUser sends a message to a specific user, dropping it if the client's
// buffer is full.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if !ok {
		return
	}

	select {
	case client.Send <- message:
	default:
		logger.Warn("Dropping message to slow client %s", userID)
	}
}

// BroadcastToRoom sends a message to every user joined to the order's room,
// except the sender.
func (m *Manager) BroadcastToRoom(orderID, exceptUserID string, message []byte) {
	m.mutex.RLock()
	room := m.rooms[orderID]
	userIDs := make([]string, 0, len(room))
	for userID := range room {
		if userID != exceptUserID {
			userIDs = append(userIDs, userID)
		}
	}
	m.mutex.RUnlock()

	for _, userID := range userIDs {
		m.SendToUser(userID, message)
	}
}

// ReadPump reads messages from the WebSocket connection and hands them to the
// manager until the connection closes.
func (c *Client) ReadPump(m *Manager, handle func(client *Client, message []byte)) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("websocket read: %v", err)
			}
			break
		}
		handle(c, message)
	}
}

// WritePump sends queued messages to the WebSocket connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Error("websocket write: %v", err)
			return
		}
	}
}
