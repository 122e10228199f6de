package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/DoyleJ11/xiangqi-picker/internal/hub"
	"github.com/DoyleJ11/xiangqi-picker/internal/session"
	"github.com/DoyleJ11/xiangqi-picker/internal/types"
	wire "github.com/DoyleJ11/xiangqi-picker/pkg/types"
)

func Handler(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		s := h.Get(r.Context(), code)
		if s == nil {
			log.Warn("websocket for unknown session", zap.String("session", code))
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			log.Warn("websocket accept", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan session.Snapshot, 8)
		clientID := randID(6)
		log := log.With(zap.String("session", code), zap.String("client", clientID))

		if err := s.Send(r.Context(), session.Join{ClientID: clientID, Outbox: out}); err != nil {
			conn.Close(websocket.StatusGoingAway, "session closed")
			return
		}
		defer func() {
			// the request context may already be done here
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.Send(ctx, session.Leave{ClientID: clientID}); err != nil {
				log.Debug("leave", zap.Error(err))
			}
		}()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				state := wire.FromSnapshot(snap.Version, snap.State)
				msg := types.ServerMessage{Type: wire.MsgStateSnapshot, State: &state}
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				if err := wsjson.Write(ctx, conn, msg); err != nil {
					log.Debug("write snapshot", zap.Error(err))
				}
				cancel()
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					log.Debug("read", zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "bad json")
				continue
			}

			cmd, ok := cm.ToCommand()
			if !ok {
				writeError(r.Context(), conn, "unknown type")
				continue
			}

			if err := s.Send(r.Context(), session.FromClient{Cmd: cmd}); err != nil {
				log.Debug("session gone", zap.Error(err))
				conn.Close(websocket.StatusGoingAway, "session closed")
				return
			}
		}
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, msg string) {
	_ = wsjson.Write(ctx, conn, types.ServerMessage{Type: wire.MsgError, Error: msg})
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
