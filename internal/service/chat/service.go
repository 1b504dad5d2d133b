package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/warmline/backend/internal/analysis/emotion"
	"github.com/zhouzirui/warmline/backend/internal/model/chat"
)

var ErrSessionNotFound = errors.New("session not found")

// WelcomeMessage 是每个会话开场时的固定助手消息。
const WelcomeMessage = "Hello! I'm here to listen and provide support. Feel free to share what's on your mind. So, tell me about your day."

// Stats 汇总一个会话的消息量与检测到的情绪分布。
type Stats struct {
	MessageCount int                   `json:"messageCount"`
	Emotions     map[emotion.Label]int `json:"emotions"`
}

// Service encapsulates conversation state management.
// 历史只增不改；唯一的清空操作会重置整段历史并重新播报欢迎语。
type Service struct {
	mu       sync.RWMutex
	sessions map[string]chat.Session
	messages map[string][]chat.Message
}

// NewService bootstraps the in-memory chat service suitable for a single-process demo.
func NewService() *Service {
	return &Service{
		sessions: make(map[string]chat.Session),
		messages: make(map[string][]chat.Message),
	}
}

// CreateSession provisions an anonymous session seeded with the welcome message.
func (s *Service) CreateSession(_ context.Context) (chat.Session, error) {
	session := chat.Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.messages[session.ID] = []chat.Message{welcomeFor(session.ID)}
	s.mu.Unlock()

	return session, nil
}

// SaveMessage appends a message to the session history.
func (s *Service) SaveMessage(_ context.Context, message chat.Message) (chat.Message, error) {
	if message.SessionID == "" {
		return chat.Message{}, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[message.SessionID]; !ok {
		return chat.Message{}, ErrSessionNotFound
	}

	message.ID = uuid.NewString()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	s.messages[message.SessionID] = append(s.messages[message.SessionID], message)
	return message, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// Transcript returns stored messages for the provided session.
func (s *Service) Transcript(_ context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}

// Clear 丢弃整段历史并重新写入欢迎消息。
func (s *Service) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}

	s.messages[sessionID] = []chat.Message{welcomeFor(sessionID)}
	return nil
}

// SessionStats 统计会话消息数与出现过的情绪标签。
func (s *Service) SessionStats(_ context.Context, sessionID string) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[sessionID]
	if !ok {
		return Stats{}, ErrSessionNotFound
	}

	stats := Stats{
		MessageCount: len(messages),
		Emotions:     make(map[emotion.Label]int),
	}
	for _, msg := range messages {
		if msg.Emotion != "" {
			stats.Emotions[msg.Emotion]++
		}
	}
	return stats, nil
}

func welcomeFor(sessionID string) chat.Message {
	return chat.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      chat.RoleAssistant,
		Content:   WelcomeMessage,
		CreatedAt: time.Now().UTC(),
	}
}
