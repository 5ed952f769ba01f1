package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/voyago/travelbot/backend/internal/model/booking"
	"github.com/voyago/travelbot/backend/internal/service/dialogue"
)

type noopOffers struct{}

func (noopOffers) Search(_ context.Context, _, _, _ string) ([]booking.Offer, error) {
	return nil, nil
}

func setupRouter() (*chi.Mux, *dialogue.Service) {
	log := zap.NewNop()
	rides := booking.NewRideCatalog(booking.SeedRides())
	flightEngine := dialogue.NewEngine(dialogue.NewFlightDomain(noopOffers{}, time.Second, log))
	cabEngine := dialogue.NewEngine(dialogue.NewCabDomain(rides))
	svc := dialogue.NewService(log, flightEngine, cabEngine)

	handler := New(svc, rides, log)
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, svc
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCreateSessionValidDomain(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(t, r, "/session", map[string]string{"domain": "flight"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var session booking.Session
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.ID == "" || session.Domain != "flight" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestCreateSessionUnknownDomain(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(t, r, "/session", map[string]string{"domain": "train"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCreateSessionMissingDomain(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(t, r, "/session", map[string]string{})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestMessageTurnReturnsBotReplies(t *testing.T) {
	r, svc := setupRouter()
	session, err := svc.CreateSession(context.Background(), "flight")
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	resp := postJSON(t, r, "/session/"+session.ID+"/messages", map[string]string{"text": "book a flight"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var payload struct {
		Messages []booking.Message `json:"messages"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if len(payload.Messages) != 1 || !payload.Messages[0].FromBot {
		t.Fatalf("unexpected replies: %+v", payload.Messages)
	}
}

func TestMessageTurnEmptyText(t *testing.T) {
	r, svc := setupRouter()
	session, _ := svc.CreateSession(context.Background(), "flight")

	resp := postJSON(t, r, "/session/"+session.ID+"/messages", map[string]string{"text": "   "})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestMessageTurnUnknownSession(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(t, r, "/session/missing/messages", map[string]string{"text": "hello"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestTranscriptIncludesSeedGreeting(t *testing.T) {
	r, svc := setupRouter()
	session, _ := svc.CreateSession(context.Background(), "cab")

	req := httptest.NewRequest(http.MethodGet, "/session/"+session.ID+"/messages", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var transcript []booking.Message
	if err := json.Unmarshal(resp.Body.Bytes(), &transcript); err != nil {
		t.Fatalf("decode transcript: %v", err)
	}
	if len(transcript) != 1 || !transcript[0].FromBot {
		t.Fatalf("expected seed greeting, got %+v", transcript)
	}
}

func TestChoiceEndpointDrivesSelection(t *testing.T) {
	r, svc := setupRouter()
	ctx := context.Background()
	session, _ := svc.CreateSession(ctx, "cab")

	for _, text := range []string{"book a cab", "Manali", "Delhi", "01-12-2024"} {
		if _, err := svc.HandleText(ctx, session.ID, text); err != nil {
			t.Fatalf("HandleText(%q) err: %v", text, err)
		}
	}

	resp := postJSON(t, r, "/session/"+session.ID+"/choice", map[string]string{"option": "Alto"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var payload struct {
		Messages []booking.Message `json:"messages"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if len(payload.Messages) != 4 {
		t.Fatalf("expected 4 replies, got %+v", payload.Messages)
	}
}

func TestListRides(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/rides", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var rides []booking.RideOption
	if err := json.Unmarshal(resp.Body.Bytes(), &rides); err != nil {
		t.Fatalf("decode rides: %v", err)
	}
	if len(rides) != 18 {
		t.Fatalf("expected 18 ride options, got %d", len(rides))
	}
	if rides[0].Name != "Mahindra Thar Roxx" || rides[0].PricePerDay != 1500 {
		t.Fatalf("unexpected first option: %+v", rides[0])
	}
}
