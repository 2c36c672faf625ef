// Package server exposes a human-versus-bot game over websockets.
// Every connected client sees the same live board; any client may
// submit the human side's moves.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"hex/game"
	"hex/searcher"
)

type wsMessage struct {
	Type string `json:"type"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

type wsError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// Server hosts a single shared game session.
type Server struct {
	session *Session
	hub     *Hub
}

// NewServer creates a server hosting one game of the given size. The
// bot plays with the supplied search options.
func NewServer(size int, opts ...searcher.Option) *Server {
	hub := NewHub()
	session := NewSession(size, hub.Publish, opts...)
	return &Server{session: session, hub: hub}
}

// ListenAndServe runs the hub and blocks serving websocket upgrades on
// /ws and a JSON snapshot on /state.
func (s *Server) ListenAndServe(addr string) error {
	done := make(chan struct{})
	defer close(done)
	go s.hub.Run(done)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/state", s.serveState)

	log.Info().Msgf("listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) serveState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.session.Snapshot()); err != nil {
		log.Error().Msgf("failed to encode snapshot: %v", err)
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Msgf("websocket upgrade failed: %v", err)
		return
	}

	client := &Client{hub: s.hub, conn: conn, send: make(chan []byte, 16)}
	s.hub.Register(client)
	go client.writeLoop()

	client.sendJSON(s.session.Snapshot())

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			s.hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.sendJSON(wsError{Type: "error", Error: "invalid message"})
			continue
		}
		switch msg.Type {
		case "move":
			mv := game.Move{Row: msg.Row, Col: msg.Col}
			if err := s.session.ApplyHumanMove(mv); err != nil {
				client.sendJSON(wsError{Type: "error", Error: err.Error()})
			}
		case "reset":
			s.session.Reset()
		case "state":
			client.sendJSON(s.session.Snapshot())
		}
	}
}
