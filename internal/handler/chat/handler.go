package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/voyago/travelbot/backend/internal/model/booking"
	"github.com/voyago/travelbot/backend/internal/service/dialogue"
	"github.com/voyago/travelbot/backend/pkg/utils"
)

// Handler exposes the conversational booking API.
type Handler struct {
	dialogueSvc *dialogue.Service
	rides       booking.RideStore
	log         *zap.Logger
}

// New creates the chat handler.
func New(dialogueSvc *dialogue.Service, rides booking.RideStore, log *zap.Logger) *Handler {
	return &Handler{dialogueSvc: dialogueSvc, rides: rides, log: log}
}

// RegisterRoutes mounts the session and catalog routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Get("/session/{sessionID}/messages", h.handleTranscript)
	r.Post("/session/{sessionID}/messages", h.handleMessage)
	r.Post("/session/{sessionID}/choice", h.handleChoice)
	r.Get("/rides", h.handleListRides)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Domain string `json:"domain"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Domain == "" {
		utils.RespondError(w, http.StatusBadRequest, "domain is required")
		return
	}

	session, err := h.dialogueSvc.CreateSession(r.Context(), payload.Domain)
	if err != nil {
		if errors.Is(err, dialogue.ErrDomainUnknown) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	transcript, err := h.dialogueSvc.Transcript(r.Context(), sessionID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, transcript)
}

func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Text) == "" {
		utils.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}

	replies, err := h.dialogueSvc.HandleText(r.Context(), sessionID, payload.Text)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"messages": replies})
}

func (h *Handler) handleChoice(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Option string `json:"option"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Option == "" {
		utils.RespondError(w, http.StatusBadRequest, "option is required")
		return
	}

	replies, err := h.dialogueSvc.HandleChoice(r.Context(), sessionID, payload.Option)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"messages": replies})
}

func (h *Handler) handleListRides(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.rides.List())
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, dialogue.ErrSessionNotFound) {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	h.log.Error("dialogue service error", zap.Error(err))
	utils.RespondError(w, http.StatusInternalServerError, err.Error())
}
