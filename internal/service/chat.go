package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"lunacat/internal/content"
	"lunacat/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultHistoryLimit caps how many messages are kept per conversation
const DefaultHistoryLimit = 40

// ErrEmptyMessage is returned when the student sends only whitespace
var ErrEmptyMessage = errors.New("message is empty")

// ChatService holds conversations between students and the mascot
type ChatService struct {
	responder content.ChatResponder
	limit     int
	timeout   time.Duration
	now       func() time.Time
	logger    *zap.Logger

	mu            sync.Mutex
	conversations map[int64][]domain.ChatMessage
}

// NewChatService creates a new chat service
func NewChatService(responder content.ChatResponder, logger *zap.Logger) *ChatService {
	return &ChatService{
		responder:     responder,
		limit:         DefaultHistoryLimit,
		timeout:       DefaultFetchTimeout,
		now:           time.Now,
		logger:        logger,
		conversations: make(map[int64][]domain.ChatMessage),
	}
}

// Begin starts a new conversation and returns the mascot's greeting
func (s *ChatService) Begin(userID int64, name string) domain.ChatMessage {
	greeting := s.message(domain.SenderMascot, fmt.Sprintf("Ni Hao %s! How are you today? 😺", name))

	s.mu.Lock()
	s.conversations[userID] = []domain.ChatMessage{greeting}
	s.mu.Unlock()

	return greeting
}

// Send adds the student's message and returns the mascot's answer.
// When the mascot cannot be reached a fallback answer is used.
func (s *ChatService) Send(ctx context.Context, userID int64, name string, level domain.Level, text string) (domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatMessage{}, ErrEmptyMessage
	}

	s.mu.Lock()
	history := append([]domain.ChatMessage(nil), s.conversations[userID]...)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.responder.Reply(ctx, level, name, history, text)
	if err != nil {
		s.logger.Warn("Mascot reply failed", zap.Int64("user_id", userID), zap.Error(err))
		reply = content.FallbackReply
	}

	userMsg := s.message(domain.SenderUser, text)
	botMsg := s.message(domain.SenderMascot, reply)

	s.mu.Lock()
	s.conversations[userID] = s.trim(append(s.conversations[userID], userMsg, botMsg))
	s.mu.Unlock()

	return botMsg, nil
}

// History returns a copy of the conversation
func (s *ChatService) History(userID int64) []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ChatMessage(nil), s.conversations[userID]...)
}

// End forgets the conversation
func (s *ChatService) End(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, userID)
}

func (s *ChatService) message(sender domain.Sender, text string) domain.ChatMessage {
	return domain.ChatMessage{
		ID:     uuid.NewString(),
		Sender: sender,
		Text:   text,
		SentAt: s.now(),
	}
}

func (s *ChatService) trim(history []domain.ChatMessage) []domain.ChatMessage {
	if len(history) <= s.limit {
		return history
	}
	return append([]domain.ChatMessage(nil), history[len(history)-s.limit:]...)
}
