package ws

import (
	"net/http"
	"strings"
	"time"

	"pulse-backend/config"
	"pulse-backend/pkg/jwt"
	"pulse-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Heartbeat fallbacks for a config that omits the websocket section.
const (
	defaultPingInterval = 30 * time.Second
	defaultReadTimeout  = 90 * time.Second
)

// Handler upgrades an authenticated request to a websocket connection and
// pumps activity events to it until the client goes away.
func Handler(m *Manager, jwtSvc *jwt.JWTService, cfg config.WebSocketConfig) gin.HandlerFunc {
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaultPingInterval
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = strings.TrimPrefix(c.GetHeader("Sec-WebSocket-Protocol"), "Bearer ")
		}
		if token == "" {
			response.Unauthorized(c, "missing token")
			return
		}

		claims, err := jwtSvc.ValidateToken(token)
		if err != nil {
			response.Unauthorized(c, "token invalid or expired")
			return
		}
		userID, err := claims.UserID()
		if err != nil || userID == 0 {
			response.Unauthorized(c, "token invalid")
			return
		}

		// Echo the subprotocol so browser clients don't warn about a
		// missing server selection.
		respHeader := http.Header{}
		if protocol := c.GetHeader("Sec-WebSocket-Protocol"); protocol != "" {
			respHeader.Set("Sec-WebSocket-Protocol", protocol)
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, respHeader)
		if err != nil {
			return
		}

		client := &Client{
			UserID: userID,
			Conn:   conn,
			Send:   make(chan []byte, 256),
		}
		m.AddClient(userID, client)
		defer m.RemoveClient(userID, client)

		// Writer side: events plus periodic pings.
		go func() {
			ticker := time.NewTicker(cfg.PingInterval)
			defer ticker.Stop()
			for {
				select {
				case msg, ok := <-client.Send:
					if !ok {
						_ = conn.Close()
						return
					}
					_ = conn.WriteMessage(websocket.TextMessage, msg)
				case <-ticker.C:
					if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
						_ = conn.Close()
						return
					}
				}
			}
		}()

		// Reader side: only pongs and client heartbeats are expected; a
		// silent connection past the read timeout is dropped.
		_ = conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
		conn.SetPongHandler(func(appData string) error {
			return conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
			_ = conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
		}
	}
}
