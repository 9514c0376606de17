package assistantService

import (
	"ShuleGolang/internal/api/assistant"
	assistantRepository "ShuleGolang/internal/api/assistant/repository"
	schoolService "ShuleGolang/internal/api/school/service"
	"ShuleGolang/internal/entity"
	"ShuleGolang/pkg/nlp"
	"ShuleGolang/pkg/ollama"
	"ShuleGolang/pkg/redis"
	"ShuleGolang/pkg/rewrite"
	"ShuleGolang/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IAssistantService interface {
	Decide(ctx context.Context, req assistant.MessageRequest) (assistant.MessageResponse, error)
	Preprocess(ctx context.Context, req assistant.PreprocessRequest) (nlp.PreprocessResult, error)
	Reset(ctx context.Context, conversationID string) error
	GetHistory(ctx context.Context, conversationID string, limit, offset int) ([]entity.ConversationTurn, int, error)
	Health(ctx context.Context) assistant.HealthResponse
}

type assistantService struct {
	log                 *logrus.Logger
	assistantRepository assistantRepository.Repository
	cache               redis.IRedis
	rewriter            rewrite.IRewrite
	brain               ollama.IOllama
	brainConfig         ollama.Config
	preprocessor        ollama.IOllama
	preprocessConfig    ollama.Config
	schoolService       schoolService.ISchoolService
	utils               utils.IUtils
	sessions            *sessionStore
}

func NewAssistantService(
	log *logrus.Logger,
	ar assistantRepository.Repository,
	cache redis.IRedis,
	rewriter rewrite.IRewrite,
	brain ollama.IOllama,
	brainConfig ollama.Config,
	preprocessor ollama.IOllama,
	preprocessConfig ollama.Config,
	ss schoolService.ISchoolService,
	utils utils.IUtils,
) IAssistantService {
	return &assistantService{
		log:                 log,
		assistantRepository: ar,
		cache:               cache,
		rewriter:            rewriter,
		brain:               brain,
		brainConfig:         brainConfig,
		preprocessor:        preprocessor,
		preprocessConfig:    preprocessConfig,
		schoolService:       ss,
		utils:               utils,
		sessions:            newSessionStore(brainConfig.MemoryTurns),
	}
}
