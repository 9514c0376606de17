package assistantRepository

const (
	queryCreateTurn = `
		INSERT INTO assistant_turns (
			id,
			conversation_id,
			user_text,
			response,
			action,
			confidence,
			created_at
		) VALUES (
			:id,
			:conversation_id,
			:user_text,
			:response,
			:action,
			:confidence,
			:created_at
		)
	`

	queryGetTurnsByConversationID = `
		SELECT
			id,
			conversation_id,
			user_text,
			response,
			action,
			confidence,
			created_at
		FROM assistant_turns
		WHERE conversation_id = :conversation_id
		ORDER BY created_at ASC
		LIMIT :limit OFFSET :offset
	`

	queryCountTurnsByConversationID = `
		SELECT COUNT(*) FROM assistant_turns
		WHERE conversation_id = :conversation_id
	`

	queryDeleteTurnsByConversationID = `
		DELETE FROM assistant_turns
		WHERE conversation_id = :conversation_id
	`
)
