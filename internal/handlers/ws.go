package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/curalink-dev/curalink/internal/types"
	"github.com/curalink-dev/curalink/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// wsClient wraps a connection with a write lock. gorilla/websocket allows only
// one concurrent writer, and both the ping loop and NotifyUser write here.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) writeJSON(payload interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(payload)
}

func (c *wsClient) writePing() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

var (
	userClients   = make(map[uint]map[*wsClient]bool)
	userClientsMu sync.RWMutex
)

func registerClient(userID uint, client *wsClient) {
	userClientsMu.Lock()
	defer userClientsMu.Unlock()

	if userClients[userID] == nil {
		userClients[userID] = make(map[*wsClient]bool)
	}
	userClients[userID][client] = true
}

func unregisterClient(userID uint, client *wsClient) {
	userClientsMu.Lock()
	defer userClientsMu.Unlock()

	if clients, exists := userClients[userID]; exists {
		delete(clients, client)

		if len(clients) == 0 {
			delete(userClients, userID)
		}
	}
}

// NotifyUser pushes a payload to every open connection the user has. Offline
// users simply miss the push; the message itself is already persisted.
func NotifyUser(userID uint, payload interface{}) {
	userClientsMu.RLock()
	clients := make([]*wsClient, 0, len(userClients[userID]))
	for client := range userClients[userID] {
		clients = append(clients, client)
	}
	userClientsMu.RUnlock()

	for _, client := range clients {
		if err := client.writeJSON(payload); err != nil {
			log.Printf("Failed to notify client: %v", err)
			unregisterClient(userID, client)
			client.conn.Close()
		}
	}
}

// WebSocket registers an authenticated connection keyed by the caller's user
// ID so direct messages can be pushed in real time.
func WebSocket(c *gin.Context) {
	currentUser, err := utils.GetCurrentUser(c)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	client := &wsClient{conn: conn}

	registerClient(currentUser.ID, client)

	defer func() {
		unregisterClient(currentUser.ID, client)
		conn.Close()

		log.Printf("WebSocket connection closed for user %d", currentUser.ID)
	}()

	// Keep the connection alive with pings; inbound frames are ignored apart
	// from keeping the read deadline fresh.
	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-pingTicker.C:
			if err := client.writePing(); err != nil {
				return
			}
		}
	}
}
