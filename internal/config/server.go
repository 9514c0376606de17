package config

import (
	"ShuleGolang/database/postgres"
	assistantHandler "ShuleGolang/internal/api/assistant/handler"
	assistantRepository "ShuleGolang/internal/api/assistant/repository"
	assistantService "ShuleGolang/internal/api/assistant/service"
	schoolHandler "ShuleGolang/internal/api/school/handler"
	schoolRepository "ShuleGolang/internal/api/school/repository"
	schoolService "ShuleGolang/internal/api/school/service"
	"ShuleGolang/internal/middleware"
	"ShuleGolang/pkg/ollama"
	"ShuleGolang/pkg/redis"
	"ShuleGolang/pkg/rewrite"
	"ShuleGolang/pkg/utils"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine           *fiber.App
	db               *sqlx.DB
	log              *logrus.Logger
	middleware       middleware.Middleware
	validator        *validator.Validate
	utils            utils.IUtils
	handlers         []handler
	redisServer      redis.IRedis
	rewriter         rewrite.IRewrite
	brain            ollama.IOllama
	brainConfig      ollama.Config
	preprocessor     ollama.IOllama
	preprocessConfig ollama.Config
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithRewriter() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before rewriter")
		}
		s.rewriter = rewrite.New(s.log)
		return nil
	}
}

// WithOllamaBridges builds the two bridge instances: the decision path and
// the preprocessing path run with separate timeouts and memory windows.
func WithOllamaBridges() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before ollama bridges")
		}

		s.brainConfig = ollama.NewConfigFromEnv()
		s.brain = ollama.New(s.brainConfig, s.log)

		s.preprocessConfig = ollama.NewPreprocessConfigFromEnv()
		s.preprocessor = ollama.New(s.preprocessConfig, s.log)

		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// School Domain
	schoolRepo := schoolRepository.New(s.db, s.log)
	schoolServices := schoolService.NewSchoolService(s.log, schoolRepo, s.utils)
	schoolHandlers := schoolHandler.New(s.log, s.validator, s.middleware, schoolServices)

	// Assistant Domain
	assistantRepo := assistantRepository.New(s.db, s.log)
	assistantServices := assistantService.NewAssistantService(
		s.log,
		assistantRepo,
		s.redisServer,
		s.rewriter,
		s.brain,
		s.brainConfig,
		s.preprocessor,
		s.preprocessConfig,
		schoolServices,
		s.utils,
	)
	assistantHandlers := assistantHandler.New(s.log, s.validator, s.middleware, assistantServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, schoolHandlers, assistantHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
