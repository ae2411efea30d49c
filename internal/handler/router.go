package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	reservationHandler "github.com/reservehq/concierge/internal/handler/reservation"
	"github.com/reservehq/concierge/internal/handler/ws"
	"github.com/reservehq/concierge/internal/metrics"
	middlewarePkg "github.com/reservehq/concierge/internal/middleware"
	reservationService "github.com/reservehq/concierge/internal/service/reservation"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(svc *reservationService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		reservationHandler.New(svc).RegisterRoutes(api)
		ws.New(svc).RegisterRoutes(api)
	})

	return r
}
