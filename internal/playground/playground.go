// Package playground is a minimal WebSocket front end for the
// interpreter, built on github.com/gorilla/websocket: each inbound
// connection gets its own interp.Interpreter, never shared across
// connections, accepts one script per text frame, and replies with a
// single JSON result frame — upgrade, read, run, reply, repeat.
package playground

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"draconic/internal/config"
	"draconic/internal/errors"
	"draconic/internal/interp"
	"draconic/internal/repr"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// A playground deliberately accepts cross-origin connections; it
	// exposes nothing beyond the sandboxed envelope itself.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// errorBody is the shape of the "error" field in a result frame.
type errorBody struct {
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

// resultFrame is one outbound JSON message.
type resultFrame struct {
	Value interface{} `json:"value"`
	Error *errorBody  `json:"error"`
}

// Server upgrades HTTP connections to WebSocket and runs one script per
// inbound text frame against a fresh Config-bound interpreter.
type Server struct {
	cfg *config.Config
}

// New builds a Server that constructs one interp.Interpreter per
// connection using cfg.
func New(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// ServeHTTP implements http.Handler, upgrading the request and running
// the connection's read loop until the client disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("playground: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	it := interp.New(s.cfg)
	ctx := r.Context()
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		frame := s.run(ctx, it, string(data))
		out, err := json.Marshal(frame)
		if err != nil {
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
			return
		}
	}
}

func (s *Server) run(ctx context.Context, it *interp.Interpreter, src string) resultFrame {
	v, err := it.Execute(ctx, src)
	if err != nil {
		de, ok := err.(*errors.DraconicError)
		if !ok {
			return resultFrame{Error: &errorBody{Kind: "RuntimeTypeError", Message: err.Error()}}
		}
		return resultFrame{Error: &errorBody{Kind: string(de.Kind), Message: de.Message, Location: de.Location.String()}}
	}
	return resultFrame{Value: repr.Repr(v)}
}
