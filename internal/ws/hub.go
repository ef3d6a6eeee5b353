package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type Message struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
}

// Hub fans out coarse change cues to clients subscribed to a session.
// The cue carries no state: clients re-fetch the read surface when they
// receive one, so duplicate or lost cues only cost an extra poll.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[string]map[*websocket.Conn]bool)}
}

func (h *Hub) AddConnection(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[*websocket.Conn]bool)
	}
	h.sessions[sessionID][conn] = true
	log.Debug().Str("sessionID", sessionID).Int("clients", len(h.sessions[sessionID])).
		Msg("ws client connected")
}

func (h *Hub) RemoveConnection(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.sessions[sessionID]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.sessions, sessionID)
		}
		log.Debug().Str("sessionID", sessionID).Msg("ws client disconnected")
	}
}

// SessionChanged implements the services' change notifier. Delivery is
// best-effort: a dead connection is dropped, never retried.
func (h *Hub) SessionChanged(sessionID string) {
	h.broadcast(sessionID, Message{Type: "session_changed", SessionID: sessionID})
}

func (h *Hub) broadcast(sessionID string, message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.sessions[sessionID]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Error().Err(err).Msg("ws marshal error")
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warn().Err(err).Str("sessionID", sessionID).Msg("ws write error, dropping client")
			conn.Close()
			delete(conns, conn)
		}
	}
}
