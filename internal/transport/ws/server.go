package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"freezerush/internal/protocol"
	"freezerush/internal/sim/kitchen"
)

// Server bridges websocket connections onto the kitchen's channel API. One
// reader loop per connection feeds INTERACT messages in; a writer goroutine
// drains the per-player out channel of STATE frames.
type Server struct {
	kitchen *kitchen.Kitchen
	log     *log.Logger

	upgrader websocket.Upgrader
}

func NewServer(k *kitchen.Kitchen, logger *log.Logger) *Server {
	return &Server{
		kitchen: k,
		log:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		playerID, out := s.handshake(conn)
		if playerID == "" {
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				break
			}
			base, err := protocol.DecodeBase(msg)
			if err != nil {
				s.writeError(conn, protocol.ErrProtoBadRequest, "malformed message")
				continue
			}
			if base.Type != protocol.TypeInteract {
				s.writeError(conn, protocol.ErrProtoBadRequest, "expected INTERACT")
				continue
			}
			var req protocol.InteractMsg
			if err := json.Unmarshal(msg, &req); err != nil {
				s.writeError(conn, protocol.ErrProtoBadRequest, "malformed INTERACT")
				continue
			}
			if req.ProtocolVersion != protocol.Version {
				s.writeError(conn, protocol.ErrProtoBadRequest, "bad protocol_version")
				continue
			}
			outcome := s.kitchen.Submit(playerID, req)
			s.writeOutcome(conn, playerID, req.ReqID, outcome)
		}

		s.kitchen.Leave(playerID)
	}
}

func (s *Server) handshake(conn *websocket.Conn) (playerID string, out chan []byte) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", nil
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"), time.Now().Add(time.Second))
		return "", nil
	}

	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return "", nil
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"), time.Now().Add(time.Second))
		return "", nil
	}
	if hello.PlayerName == "" {
		hello.PlayerName = "player"
	}

	out = make(chan []byte, 8)
	resp := s.kitchen.Join(hello.PlayerName, out)
	if resp.Welcome.PlayerID == "" {
		return "", nil
	}
	if err := writeJSON(conn, resp.Welcome); err != nil {
		return "", nil
	}
	return resp.Welcome.PlayerID, out
}

func (s *Server) writeOutcome(conn *websocket.Conn, playerID, reqID string, o kitchen.Outcome) {
	msg := protocol.OutcomeMsg{
		Type:    protocol.TypeOutcome,
		ReqID:   reqID,
		OK:      o.OK,
		Code:    o.Code,
		Reason:  o.Reason,
		Delta:   o.Delta,
		OrderID: o.OrderID,
	}
	if err := writeJSON(conn, msg); err != nil && s.log != nil {
		s.log.Printf("ws: write OUTCOME to %s: %v", playerID, err)
	}
}

func (s *Server) writeError(conn *websocket.Conn, code, detail string) {
	_ = writeJSON(conn, protocol.ErrorMsg{
		Type:    protocol.TypeError,
		Code:    code,
		Message: detail,
	})
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
