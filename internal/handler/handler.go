package handler

import (
	"context"
	"sync"

	"lunacat/internal/domain"
	"lunacat/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Services are the application services the bot talks to
type Services struct {
	Auth       *service.AuthService
	Words      *service.WordService
	Progress   *service.ProgressService
	Onboarding *service.OnboardingService
	Flashcards *service.FlashcardService
	Chat       *service.ChatService
	Games      *service.GameService
}

// Handler manages all bot interactions
type Handler struct {
	ctx         context.Context
	bot         *tele.Bot
	auth        *service.AuthService
	words       *service.WordService
	progress    *service.ProgressService
	onboarding  *service.OnboardingService
	flashcards  *service.FlashcardService
	chat        *service.ChatService
	games       *service.GameService
	studentName string
	logger      *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Callbacks of one user are handled one at a time
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// NewHandler creates a new handler instance. ctx bounds calls to the
// generation service. studentName is how the mascot addresses the student;
// the Telegram first name is used when it is empty.
func NewHandler(ctx context.Context, bot *tele.Bot, services Services, studentName string, logger *zap.Logger) *Handler {
	return &Handler{
		ctx:           ctx,
		bot:           bot,
		auth:          services.Auth,
		words:         services.Words,
		progress:      services.Progress,
		onboarding:    services.Onboarding,
		flashcards:    services.Flashcards,
		chat:          services.Chat,
		games:         services.Games,
		studentName:   studentName,
		logger:        logger,
		states:        make(map[int64]*domain.StateData),
		callbackLocks: make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/home", h.handleHome)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// All inline buttons are routed by their data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return domain.StateData{Mode: domain.ModeIdle}
	}
	return *state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = &state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, domain.StateData{Mode: domain.ModeIdle})
}

// leaveMode releases whatever the user's current screen holds
func (h *Handler) leaveMode(userID int64) {
	switch h.GetState(userID).Mode {
	case domain.ModeGame:
		h.games.EndGame(userID)
	case domain.ModeFlashcards:
		h.flashcards.Stop(userID)
	case domain.ModeChat:
		h.chat.End(userID)
	}
}

func (h *Handler) userLock(userID int64) *sync.Mutex {
	h.callbackMux.Lock()
	defer h.callbackMux.Unlock()

	lock, exists := h.callbackLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[userID] = lock
	}
	return lock
}

// nameFor returns how the mascot addresses the sender
func (h *Handler) nameFor(sender *tele.User) string {
	if h.studentName != "" {
		return h.studentName
	}
	if sender != nil && sender.FirstName != "" {
		return sender.FirstName
	}
	return "friend"
}
