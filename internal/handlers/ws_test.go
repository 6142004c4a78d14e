package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestNotifyUserOfflineIsNoOp(t *testing.T) {
	NotifyUser(9000, gin.H{"type": "message"})
}

// Pushes and keepalive pings share a connection; both must be able to write
// at the same time without tripping gorilla's single-writer rule.
func TestNotifyUserSerializesWithPings(t *testing.T) {
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	registered := make(chan *wsClient, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := &wsClient{conn: conn}
		registerClient(9001, client)
		registered <- client
	}))
	defer srv.Close()

	peer, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer peer.Close()

	client := <-registered
	defer func() {
		unregisterClient(9001, client)
		client.conn.Close()
	}()

	const pushes = 16

	var wg sync.WaitGroup

	for i := 0; i < pushes; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			NotifyUser(9001, gin.H{"type": "message"})
		}()
		go func() {
			defer wg.Done()
			if err := client.writePing(); err != nil {
				t.Error(err)
			}
		}()
	}

	wg.Wait()

	for received := 0; received < pushes; received++ {
		_, data, err := peer.ReadMessage()
		require.NoError(t, err)
		require.Contains(t, string(data), "message")
	}
}
