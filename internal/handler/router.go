package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/voyago/travelbot/backend/internal/handler/chat"
	"github.com/voyago/travelbot/backend/internal/handler/flights"
	middlewarePkg "github.com/voyago/travelbot/backend/internal/middleware"
	"github.com/voyago/travelbot/backend/internal/model/booking"
	"github.com/voyago/travelbot/backend/internal/service/dialogue"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(dialogueSvc *dialogue.Service, offers dialogue.OfferSource, rides booking.RideStore, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	flightHandler := flights.New(offers, log)
	chatHandler := chat.New(dialogueSvc, rides, log)
	socketHandler := chat.NewWebSocketHandler(dialogueSvc, log)

	r.Route("/api", func(api chi.Router) {
		flightHandler.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)
		socketHandler.RegisterRoutes(api)
	})

	return r
}
