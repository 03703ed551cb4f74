package chat

import (
	"context"

	"github.com/neeva-app/neeva-backend/internal/logger"
	"github.com/neeva-app/neeva-backend/internal/models"
)

// Completer is the slice of the AI gateway the orchestrator needs. It
// cannot fail: provider errors are absorbed into a fallback reply.
type Completer interface {
	Complete(ctx context.Context, systemHeader string, history []models.ChatMessage) string
}

// Service runs one request/response cycle: record the user turn, build
// the context window, complete, record the assistant turn.
type Service struct {
	store        *Store
	gateway      Completer
	historyLimit int
	log          *logger.Logger
}

func NewService(store *Store, gateway Completer, historyLimit int, log *logger.Logger) *Service {
	return &Service{
		store:        store,
		gateway:      gateway,
		historyLimit: historyLimit,
		log:          log.With("service", "ChatService"),
	}
}

// Send handles one incoming message. The user turn is persisted before
// anything else; if that write fails the model is never called. The
// assistant turn is persisted last; if that write fails the generated
// reply is still returned (with ID zero) alongside the StorageError so
// the caller can show it while reporting the save failure.
//
// Send is not idempotent: retrying an identical request stores a second
// pair of turns. Concurrent sends for the same user may interleave in
// either order; append order is the only guarantee.
func (s *Service) Send(ctx context.Context, user *models.User, content string) (*models.ChatMessage, error) {
	if _, err := s.store.Append(ctx, user.ID, models.RoleUser, content); err != nil {
		return nil, err
	}

	window, err := BuildWindow(ctx, s.store, user.ID, s.historyLimit)
	if err != nil {
		return nil, err
	}

	header := RenderHeader(ParseProfile(user.OnboardingData))
	reply := s.gateway.Complete(ctx, header, window)

	assistantTurn, err := s.store.Append(ctx, user.ID, models.RoleAssistant, reply)
	if err != nil {
		s.log.Error("assistant turn not saved",
			"user_id", user.ID,
			"error", err.Error())
		return &models.ChatMessage{UserID: user.ID, Role: models.RoleAssistant, Content: reply}, err
	}

	return assistantTurn, nil
}

// History returns a newest-first page of the user's conversation.
func (s *Service) History(ctx context.Context, userID uint, skip, limit int) ([]models.ChatMessage, error) {
	return s.store.History(ctx, userID, skip, limit)
}
