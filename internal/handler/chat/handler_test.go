package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	chatmodel "github.com/zhouzirui/warmline/backend/internal/model/chat"
	"github.com/zhouzirui/warmline/backend/internal/service/classifier"
	chatservice "github.com/zhouzirui/warmline/backend/internal/service/chat"
	"github.com/zhouzirui/warmline/backend/internal/service/suggestion"
	"github.com/zhouzirui/warmline/backend/internal/service/turn"
)

type stubModel struct{}

func (stubModel) Probabilities(_ context.Context, _ string) ([]float64, error) {
	// joy, sadness, anger, fear, surprise, disgust
	return []float64{0.1, 0.5, 0.1, 0.1, 0.1, 0.1}, nil
}

func setupRouter() (*chi.Mux, *chatservice.Service) {
	chatSvc := chatservice.NewService()
	classifierSvc := classifier.NewService(stubModel{})
	suggestionSvc := suggestion.NewService(nil)
	turnSvc := turn.NewService(classifierSvc, suggestionSvc, chatSvc)
	handler := New(chatSvc, turnSvc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, chatSvc
}

func createSession(t *testing.T, r *chi.Mux) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/session", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var payload struct {
		Session  chatmodel.Session   `json:"session"`
		Messages []chatmodel.Message `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode session response: %v", err)
	}
	if payload.Session.ID == "" {
		t.Fatal("expected session id")
	}
	if len(payload.Messages) != 1 || payload.Messages[0].Role != chatmodel.RoleAssistant {
		t.Fatalf("expected one welcome message, got %+v", payload.Messages)
	}
	return payload.Session.ID
}

func TestCreateSession(t *testing.T) {
	r, _ := setupRouter()
	createSession(t, r)
}

func TestChatTurn(t *testing.T) {
	r, _ := setupRouter()
	sessionID := createSession(t, r)

	body, _ := json.Marshal(map[string]string{
		"sessionId": sessionID,
		"message":   "I feel so hopeless about everything",
	})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result turn.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode turn response: %v", err)
	}
	if result.UserMessage.Role != chatmodel.RoleUser {
		t.Fatalf("expected user role, got %q", result.UserMessage.Role)
	}
	if result.Reply.Role != chatmodel.RoleAssistant {
		t.Fatalf("expected assistant role, got %q", result.Reply.Role)
	}
	// 情绪只标注在助手回复上，用户消息不带情绪。
	// "hopeless" 命中抑郁关键字覆写。
	if result.Reply.Emotion != "depression" {
		t.Fatalf("expected depression on reply, got %q", result.Reply.Emotion)
	}
	if result.UserMessage.Emotion != "" {
		t.Fatalf("expected no emotion on user message, got %q", result.UserMessage.Emotion)
	}
	if result.Reply.Content == "" {
		t.Fatal("expected non-empty reply")
	}
}

func TestChatTurnEmptyMessage(t *testing.T) {
	r, _ := setupRouter()
	sessionID := createSession(t, r)

	body, _ := json.Marshal(map[string]string{
		"sessionId": sessionID,
		"message":   "   ",
	})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestChatTurnUnknownSession(t *testing.T) {
	r, _ := setupRouter()

	body, _ := json.Marshal(map[string]string{
		"sessionId": "non-existent",
		"message":   "hello there",
	})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestChatTurnMissingSessionID(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestTranscriptAndClear(t *testing.T) {
	r, _ := setupRouter()
	sessionID := createSession(t, r)

	body, _ := json.Marshal(map[string]string{
		"sessionId": sessionID,
		"message":   "I am tired of homework",
	})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/session/"+sessionID+"/messages", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var transcript struct {
		Messages []chatmodel.Message `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&transcript); err != nil {
		t.Fatalf("decode transcript: %v", err)
	}
	if len(transcript.Messages) != 3 {
		t.Fatalf("expected 3 messages (welcome + user + reply), got %d", len(transcript.Messages))
	}

	req = httptest.NewRequest(http.MethodPost, "/session/"+sessionID+"/clear", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/session/"+sessionID+"/messages", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if err := json.NewDecoder(resp.Body).Decode(&transcript); err != nil {
		t.Fatalf("decode transcript after clear: %v", err)
	}
	if len(transcript.Messages) != 1 {
		t.Fatalf("expected only welcome message after clear, got %d", len(transcript.Messages))
	}
}

func TestSessionStats(t *testing.T) {
	r, _ := setupRouter()
	sessionID := createSession(t, r)

	body, _ := json.Marshal(map[string]string{
		"sessionId": sessionID,
		"message":   "I am fed up with everything",
	})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/session/"+sessionID+"/stats", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var stats chatservice.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.MessageCount != 3 {
		t.Fatalf("expected 3 messages, got %d", stats.MessageCount)
	}
	if stats.Emotions["frustration"] != 1 {
		t.Fatalf("expected one frustration entry, got %+v", stats.Emotions)
	}
}

func TestStatsUnknownSession(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/session/missing/stats", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
