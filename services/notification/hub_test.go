package notification

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

// dialClient opens a loopback WebSocket and registers its server side
// with the hub.
func dialClient(t *testing.T, h *Hub, userID string) (*Client, *websocket.Conn, func()) {
	t.Helper()
	registered := make(chan *Client, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		registered <- h.Register(userID, conn)
	}))

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	dial, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	c := <-registered
	return c, dial, func() {
		_ = dial.Close()
		srv.Close()
	}
}

func TestSendToUserDelivers(t *testing.T) {
	h := NewHub()
	_, dial, cleanup := dialClient(t, h, "u1")
	defer cleanup()

	require.NoError(t, h.SendToUser("u1", map[string]string{"type": "booking_created"}))

	_ = dial.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := dial.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), "booking_created")
}

func TestSendToUserWithoutConnection(t *testing.T) {
	h := NewHub()
	assert.ErrorIs(t, h.SendToUser("nobody", "hello"), ErrNoConnection)
}

func TestDisconnectRemovesUser(t *testing.T) {
	h := NewHub()
	_, _, cleanup := dialClient(t, h, "u1")
	defer cleanup()

	require.Equal(t, 1, h.ConnectedUsers())
	h.Disconnect("u1")
	assert.Zero(t, h.ConnectedUsers())
	assert.ErrorIs(t, h.SendToUser("u1", "hello"), ErrNoConnection)
}

// Concurrent sends racing a disconnect used to write to a closed send
// channel and panic the process.
func TestSendRacingDisconnectDoesNotPanic(t *testing.T) {
	h := NewHub()
	for i := 0; i < 20; i++ {
		c, _, cleanup := dialClient(t, h, "u1")

		var wg sync.WaitGroup
		for j := 0; j < 8; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for k := 0; k < 50; k++ {
					_ = h.SendToUser("u1", "notice")
				}
			}()
		}
		h.Disconnect("u1")
		h.unregister(c) // racing teardown paths must stay idempotent
		wg.Wait()
		cleanup()
	}
	assert.Zero(t, h.ConnectedUsers())
}
