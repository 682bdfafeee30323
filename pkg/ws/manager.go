package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one connected device.
type Client struct {
	UserID uint
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager tracks online websocket clients. Events are server-to-client
// only; offline users are reached through push instead.
type Manager struct {
	clients map[uint]*Client
	lock    sync.RWMutex
}

// NewManager creates an empty connection manager.
func NewManager() *Manager {
	return &Manager{clients: make(map[uint]*Client)}
}

// AddClient registers a connection, replacing any previous one for the user.
func (m *Manager) AddClient(userID uint, client *Client) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if old, ok := m.clients[userID]; ok {
		close(old.Send)
	}
	m.clients[userID] = client
}

// RemoveClient drops a connection if it is still the registered one.
func (m *Manager) RemoveClient(userID uint, client *Client) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if c, ok := m.clients[userID]; ok && c == client {
		close(c.Send)
		delete(m.clients, userID)
	}
}

// SendToUser delivers an event to the user's connection if online. Delivery
// is best-effort: a full buffer drops the event rather than blocking. The
// read lock is held across the send; Send channels are only closed under
// the write lock, so the channel cannot close mid-send.
func (m *Manager) SendToUser(userID uint, msg []byte) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	client, ok := m.clients[userID]
	if !ok {
		return
	}
	select {
	case client.Send <- msg:
	default:
	}
}

// IsOnline reports whether the user has a live connection.
func (m *Manager) IsOnline(userID uint) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	_, ok := m.clients[userID]
	return ok
}
