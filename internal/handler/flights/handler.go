package flights

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/voyago/travelbot/backend/internal/service/dialogue"
	"github.com/voyago/travelbot/backend/pkg/utils"
)

// Handler serves the offer search API consumed by the flight bot.
type Handler struct {
	offers dialogue.OfferSource
	log    *zap.Logger
}

// New creates the flight search handler.
func New(offers dialogue.OfferSource, log *zap.Logger) *Handler {
	return &Handler{offers: offers, log: log}
}

// RegisterRoutes mounts the flight routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/flights", h.handleSearch)
}

// handleSearch returns up to five assembled offers. Query parameters
// are accepted for contract compatibility but do not filter the
// result.
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	origin := query.Get("origin")
	destination := query.Get("destination")
	date := query.Get("date")

	found, err := h.offers.Search(r.Context(), origin, destination, date)
	if err != nil {
		h.log.Error("flight search failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "An error occurred while fetching flights")
		return
	}

	utils.RespondJSON(w, http.StatusOK, found)
}
