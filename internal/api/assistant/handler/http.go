package assistantHandler

import (
	assistantService "ShuleGolang/internal/api/assistant/service"
	"ShuleGolang/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AssistantHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	assistantService assistantService.IAssistantService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as assistantService.IAssistantService,
) *AssistantHandler {
	return &AssistantHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		assistantService: as,
	}
}

func (h *AssistantHandler) Start(srv fiber.Router) {
	assistant := srv.Group("/assistant")
	assistant.Use(h.middleware.NewRateLimiter)

	assistant.Post("/message", h.Message)
	assistant.Post("/preprocess", h.Preprocess)
	assistant.Post("/reset", h.Reset)
	assistant.Get("/history/:conversation_id", h.History)
	assistant.Get("/health", h.HealthCheck)
}
