package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/DoyleJ11/xiangqi-picker/internal/catalog"
	"github.com/DoyleJ11/xiangqi-picker/internal/engine"
	"github.com/DoyleJ11/xiangqi-picker/internal/export"
	"github.com/DoyleJ11/xiangqi-picker/internal/hub"
	"github.com/DoyleJ11/xiangqi-picker/internal/render"
	"github.com/DoyleJ11/xiangqi-picker/internal/session"
	wire "github.com/DoyleJ11/xiangqi-picker/pkg/types"
)

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

type commandResponse struct {
	Applied bool          `json:"applied"`
	State   wire.Snapshot `json:"state"`
}

func CreateSession(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	const maxAttempts = 8
	return func(w http.ResponseWriter, r *http.Request) {
		for range maxAttempts {
			code, err := GenerateCode()
			if err != nil {
				writeError(w, http.StatusInternalServerError, "failed to generate code")
				return
			}
			if h.Create(r.Context(), code) != nil {
				writeJSON(w, http.StatusCreated, struct {
					Code string `json:"code"`
				}{Code: code})
				return
			}
			log.Debug("collision on code, regenerating", zap.String("code", code))
		}
		writeError(w, http.StatusServiceUnavailable, "failed to create session")
	}
}

func DeleteSession(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.Remove(r.Context(), chi.URLParam(r, "code")) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func GetSession(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := lookup(w, r, h)
		if s == nil {
			return
		}
		v, err := s.State(r.Context())
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, wire.FromSnapshot(v.Version, v.State))
	}
}

func Select(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "index must be an integer")
			return
		}
		do(w, r, h, engine.Command{Type: engine.CmdSelect, Index: index})
	}
}

func SelectKey(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := catalog.IndexForKey(chi.URLParam(r, "key"))
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown key")
			return
		}
		do(w, r, h, engine.Command{Type: engine.CmdSelect, Index: index})
	}
}

func Undo(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		do(w, r, h, engine.Command{Type: engine.CmdUndo})
	}
}

func Reset(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		do(w, r, h, engine.Command{Type: engine.CmdReset})
	}
}

// Export renders the session's current arrangement as a PNG download.
func Export(h *hub.Hub, rd *render.Renderer, fallback string, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := lookup(w, r, h)
		if s == nil {
			return
		}
		v, err := s.State(r.Context())
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}

		data, err := rd.Render(v.State)
		if err != nil {
			log.Error("export render failed", zap.String("session", chi.URLParam(r, "code")), zap.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		name := export.FileName(r.URL.Query().Get("name"), fallback)
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func do(w http.ResponseWriter, r *http.Request, h *hub.Hub, cmd engine.Command) {
	s := lookup(w, r, h)
	if s == nil {
		return
	}
	res, err := s.Do(r.Context(), cmd)
	if err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, r.Context().Err()) {
			status = http.StatusRequestTimeout
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, commandResponse{
		Applied: res.Applied,
		State:   wire.FromSnapshot(res.Snapshot.Version, res.Snapshot.State),
	})
}

func lookup(w http.ResponseWriter, r *http.Request, h *hub.Hub) *session.Session {
	s := h.Get(r.Context(), chi.URLParam(r, "code"))
	if s == nil {
		writeError(w, http.StatusNotFound, "session not found")
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{Error: msg})
}
