package assistantRepository

import (
	"ShuleGolang/internal/entity"
	contextPkg "ShuleGolang/pkg/context"
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type TurnDB struct {
	ID             string    `db:"id"`
	ConversationID string    `db:"conversation_id"`
	UserText       string    `db:"user_text"`
	Response       string    `db:"response"`
	Action         string    `db:"action"`
	Confidence     float64   `db:"confidence"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r *turnRepository) CreateTurn(ctx context.Context, turn entity.ConversationTurn) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":              turn.ID,
		"conversation_id": turn.ConversationID,
		"user_text":       turn.UserText,
		"response":        turn.Response,
		"action":          turn.Action,
		"confidence":      turn.Confidence,
		"created_at":      turn.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateTurn, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateTurn")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when recording conversation turn")
		return err
	}

	return nil
}

func (r *turnRepository) GetTurnsByConversationID(ctx context.Context, conversationID string, limit, offset int) ([]entity.ConversationTurn, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var turnsDB []TurnDB

	argsKV := map[string]interface{}{
		"conversation_id": conversationID,
		"limit":           limit,
		"offset":          offset,
	}

	query, args, err := sqlx.Named(queryGetTurnsByConversationID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTurnsByConversationID named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &turnsDB, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTurnsByConversationID execution err")
		return nil, 0, err
	}

	countQuery, countArgs, err := sqlx.Named(queryCountTurnsByConversationID, argsKV)
	if err != nil {
		return nil, 0, err
	}
	countQuery = r.q.Rebind(countQuery)

	var total int
	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTurnsByConversationID count err")
		return nil, 0, err
	}

	turns := make([]entity.ConversationTurn, 0, len(turnsDB))
	for _, turnDB := range turnsDB {
		turns = append(turns, makeTurn(turnDB))
	}

	return turns, total, nil
}

func (r *turnRepository) DeleteTurnsByConversationID(ctx context.Context, conversationID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"conversation_id": conversationID,
	}

	query, args, err := sqlx.Named(queryDeleteTurnsByConversationID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteTurnsByConversationID named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteTurnsByConversationID execution err")
		return err
	}

	return nil
}

func makeTurn(turnDB TurnDB) entity.ConversationTurn {
	return entity.ConversationTurn{
		ID:             turnDB.ID,
		ConversationID: turnDB.ConversationID,
		UserText:       turnDB.UserText,
		Response:       turnDB.Response,
		Action:         turnDB.Action,
		Confidence:     turnDB.Confidence,
		CreatedAt:      turnDB.CreatedAt,
	}
}
