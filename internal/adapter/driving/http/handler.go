package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/huddle-rtc/huddle/internal/config"
	"github.com/huddle-rtc/huddle/internal/core/port"
	"github.com/huddle-rtc/huddle/internal/core/service"
	"github.com/huddle-rtc/huddle/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	cfg      config.Config
	verifier port.IdentityVerifier
	rooms    *service.RoomService
	users    *service.UserService
	relay    *service.RelayService
}

func NewHandler(
	cfg config.Config,
	verifier port.IdentityVerifier,
	rooms *service.RoomService,
	users *service.UserService,
	relay *service.RelayService,
) *Handler {
	return &Handler{
		cfg:      cfg,
		verifier: verifier,
		rooms:    rooms,
		users:    users,
		relay:    relay,
	}
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(CORS(h.cfg.AllowedOrigin))
	r.Use(RateLimit())

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(h.Authenticate)

		r.Get("/auth/me", h.me)

		r.Route("/meetings", func(r chi.Router) {
			r.Post("/create", h.createRoom)
			r.Post("/join", h.joinRoom)
			r.Get("/my-meetings", h.myRooms)
			r.Get("/invitation/{token}", h.invitation)
		})

		r.Get("/ws/{roomID}", h.serveWS)
	})

	return r
}
