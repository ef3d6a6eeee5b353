package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialHub spins up a test server that registers every incoming
// connection with the hub under the given session ID, and dials it.
func dialHub(t *testing.T, hub *Hub, sessionID string) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.AddConnection(sessionID, conn)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func readCue(t *testing.T, client *websocket.Conn) Message {
	t.Helper()

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := client.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestSessionChanged_ReachesSubscribedClients(t *testing.T) {
	hub := NewHub()
	client := dialHub(t, hub, "session-a")

	hub.SessionChanged("session-a")

	msg := readCue(t, client)
	assert.Equal(t, "session_changed", msg.Type)
	assert.Equal(t, "session-a", msg.SessionID)
}

func TestSessionChanged_ScopedToTheSession(t *testing.T) {
	hub := NewHub()
	clientA := dialHub(t, hub, "session-a")
	clientB := dialHub(t, hub, "session-b")

	hub.SessionChanged("session-b")

	msg := readCue(t, clientB)
	assert.Equal(t, "session-b", msg.SessionID)

	// Nothing lands on the session-a client.
	require.NoError(t, clientA.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := clientA.ReadMessage()
	assert.Error(t, err)
}

func TestSessionChanged_NoSubscribersIsANoOp(t *testing.T) {
	hub := NewHub()

	// Must not panic or block.
	hub.SessionChanged("session-without-clients")
}

func TestBroadcast_FansOutToAllClients(t *testing.T) {
	hub := NewHub()
	first := dialHub(t, hub, "session-a")
	second := dialHub(t, hub, "session-a")

	hub.SessionChanged("session-a")

	assert.Equal(t, "session_changed", readCue(t, first).Type)
	assert.Equal(t, "session_changed", readCue(t, second).Type)
}
