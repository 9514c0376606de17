package assistantService

import (
	"ShuleGolang/internal/api/assistant"
	"ShuleGolang/internal/entity"
	contextPkg "ShuleGolang/pkg/context"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *assistantService) GetHistory(ctx context.Context, conversationID string, limit, offset int) ([]entity.ConversationTurn, int, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	repo, err := s.assistantRepository.NewClient(false)
	if err != nil {
		return nil, 0, assistant.ErrHistoryUnavailable
	}

	turns, total, err := repo.Turns.GetTurnsByConversationID(ctx, conversationID, limit, offset)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":      requestID,
			"conversation_id": conversationID,
			"error":           err.Error(),
		}).Error("Failed to load conversation history")
		return nil, 0, assistant.ErrHistoryUnavailable
	}

	if total == 0 {
		return nil, 0, assistant.ErrConversationNotFound
	}

	return turns, total, nil
}

// Reset drops the in-process window and the persisted transcript for a
// conversation. Resetting an unknown conversation is a no-op.
func (s *assistantService) Reset(ctx context.Context, conversationID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	s.sessions.Reset(conversationID)

	repo, err := s.assistantRepository.NewClient(false)
	if err != nil {
		return err
	}

	if err := repo.Turns.DeleteTurnsByConversationID(ctx, conversationID); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":      requestID,
		"conversation_id": conversationID,
	}).Info("Conversation reset")

	return nil
}

func (s *assistantService) Health(ctx context.Context) assistant.HealthResponse {
	status := assistant.HealthResponse{
		Status: "ok",
		Ollama: "reachable",
		Model:  s.brainConfig.Model,
	}

	if !s.brainConfig.Enabled {
		status.Ollama = "disabled"
		return status
	}

	if err := s.brain.Health(ctx); err != nil {
		status.Status = "degraded"
		status.Ollama = "unreachable"
	}

	return status
}
