package assistant

import "ShuleGolang/pkg/response"

var (
	ErrConversationNotFound = response.NewError(404, "conversation not found")
	ErrHistoryUnavailable   = response.NewError(500, "failed to load conversation history")
)
