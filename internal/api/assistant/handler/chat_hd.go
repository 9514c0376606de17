package assistantHandler

import (
	"ShuleGolang/internal/api/assistant"
	contextPkg "ShuleGolang/pkg/context"
	"ShuleGolang/pkg/handlerUtil"
	"ShuleGolang/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

// Message runs the full decision pipeline. The deadline leaves headroom
// over the reasoning model's own timeout so degradation happens in the
// service, not here.
func (h *AssistantHandler) Message(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 60*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req assistant.MessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := h.assistantService.Decide(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "assistant_message")
	}

	h.log.WithFields(log.Fields{
		"request_id":      requestID,
		"conversation_id": res.ConversationID,
		"action":          res.Action,
		"dispatched":      res.Dispatched,
	}).Info("Assistant message handled")

	return ctx.Status(fiber.StatusOK).JSON(res)
}

func (h *AssistantHandler) Preprocess(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 15*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req assistant.PreprocessRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.assistantService.Preprocess(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "assistant_preprocess")
	}

	return ctx.Status(fiber.StatusOK).JSON(assistant.PreprocessResponse{
		ConversationID: req.ConversationID,
		Result:         result,
	})
}

func (h *AssistantHandler) Reset(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req assistant.ResetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.assistantService.Reset(c, req.ConversationID); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "assistant_reset")
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *AssistantHandler) History(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	conversationID := ctx.Params("conversation_id")
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	turns, total, err := h.assistantService.GetHistory(c, conversationID, limit, offset)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "assistant_history")
	}

	return ctx.Status(fiber.StatusOK).JSON(assistant.HistoryResponse{
		ConversationID: conversationID,
		Turns:          turns,
		Total:          total,
	})
}

func (h *AssistantHandler) HealthCheck(ctx *fiber.Ctx) error {
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	status := h.assistantService.Health(c)

	code := fiber.StatusOK
	if status.Status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return ctx.Status(code).JSON(status)
}
