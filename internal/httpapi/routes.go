package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/DoyleJ11/xiangqi-picker/internal/hub"
	"github.com/DoyleJ11/xiangqi-picker/internal/render"
	"github.com/DoyleJ11/xiangqi-picker/internal/ws"
)

func SetupRoutes(h *hub.Hub, rd *render.Renderer, fallback string, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	r := chi.NewRouter()

	r.Post("/sessions", CreateSession(h, log))
	r.Route("/sessions/{code}", func(r chi.Router) {
		r.Get("/", GetSession(h))
		r.Delete("/", DeleteSession(h))
		r.Post("/select/{index}", Select(h))
		r.Post("/select/key/{key}", SelectKey(h))
		r.Post("/undo", Undo(h))
		r.Post("/reset", Reset(h))
		r.Get("/export", Export(h, rd, fallback, log))
	})
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, log))
	return r
}
