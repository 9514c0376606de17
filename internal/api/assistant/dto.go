package assistant

import (
	"ShuleGolang/internal/entity"
	"ShuleGolang/pkg/nlp"
)

// DecisionContext is the caller-supplied conversational state. The host
// runtime owns slot storage; the pipeline only reads it and hands back
// updates.
type DecisionContext struct {
	ActiveWorkflow string            `json:"active_workflow,omitempty"`
	Slots          map[string]string `json:"slots,omitempty"`
	RecentActions  []string          `json:"recent_actions,omitempty"`
}

type MessageRequest struct {
	ConversationID string          `json:"conversation_id"`
	Message        string          `json:"message" validate:"required,min=1,max=500"`
	Context        DecisionContext `json:"context"`
}

type MessageResponse struct {
	ConversationID string            `json:"conversation_id"`
	Response       string            `json:"response"`
	Action         string            `json:"action,omitempty"`
	Slots          map[string]string `json:"slots"`
	Dispatched     bool              `json:"dispatched"`
}

type PreprocessRequest struct {
	ConversationID string                 `json:"conversation_id"`
	Message        string                 `json:"message" validate:"required,min=1,max=500"`
	Context        map[string]interface{} `json:"context,omitempty"`
}

type PreprocessResponse struct {
	ConversationID string               `json:"conversation_id"`
	Result         nlp.PreprocessResult `json:"result"`
}

type ResetRequest struct {
	ConversationID string `json:"conversation_id" validate:"required"`
}

type HistoryResponse struct {
	ConversationID string                    `json:"conversation_id"`
	Turns          []entity.ConversationTurn `json:"turns"`
	Total          int                       `json:"total"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Ollama string `json:"ollama"`
	Model  string `json:"model"`
}
