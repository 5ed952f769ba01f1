package chat

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/voyago/travelbot/backend/internal/model/booking"
	"github.com/voyago/travelbot/backend/internal/service/dialogue"
)

// WebSocketHandler drives the same dialogue dispatch over a socket.
// Frames are read and processed one at a time, which preserves the
// per-session turn ordering on top of the service's own locking.
type WebSocketHandler struct {
	dialogueSvc *dialogue.Service
	upgrader    websocket.Upgrader
	log         *zap.Logger
}

// NewWebSocketHandler creates the socket transport for chat sessions.
func NewWebSocketHandler(dialogueSvc *dialogue.Service, log *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		dialogueSvc: dialogueSvc,
		log:         log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the WebSocket route.
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleSocket)
}

type inboundFrame struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type outboundFrame struct {
	Type    string           `json:"type"`
	Message *booking.Message `json:"message,omitempty"`
	Error   string           `json:"error,omitempty"`
}

func (h *WebSocketHandler) handleSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if _, err := h.dialogueSvc.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("websocket read failed", zap.String("session_id", sessionID), zap.Error(err))
			}
			return
		}

		var replies []booking.Message
		switch frame.Type {
		case "text":
			replies, err = h.dialogueSvc.HandleText(ctx, sessionID, frame.Content)
		case "choice":
			replies, err = h.dialogueSvc.HandleChoice(ctx, sessionID, frame.Content)
		default:
			err = errors.New("unknown frame type")
		}

		if err != nil {
			if writeErr := conn.WriteJSON(outboundFrame{Type: "error", Error: err.Error()}); writeErr != nil {
				return
			}
			continue
		}

		for i := range replies {
			if err := conn.WriteJSON(outboundFrame{Type: "message", Message: &replies[i]}); err != nil {
				return
			}
		}
	}
}
