package bootstrap

import (
	"log"

	"praxis-chat-be/internal/config"
	"praxis-chat-be/internal/controller"
	"praxis-chat-be/internal/pkg/logger"
	"praxis-chat-be/internal/repository/implementation"
	"praxis-chat-be/internal/service"
	"praxis-chat-be/pkg/embedding"
	"praxis-chat-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	FeedbackController controller.IFeedbackController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Repositories
	chunkRepo := implementation.NewChunkRepository(db)
	feedbackRepo := implementation.NewFeedbackRepository(db)

	// 4. AI Providers
	embeddingProvider := NewEmbeddingProvider(cfg)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL(cfg),
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}

	// 5. Services
	chatService := service.NewChatService(
		embeddingProvider,
		chunkRepo,
		llmProvider,
		cfg.Ai.Temperature,
		cfg.Ai.DefaultTopK,
		sysLogger,
	)
	feedbackService := service.NewFeedbackService(pubSub, cfg.App.FeedbackTopic, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.App.FeedbackTopic, feedbackRepo, sysLogger)

	// 6. Controllers
	return &Container{
		ChatController:     controller.NewChatController(chatService),
		FeedbackController: controller.NewFeedbackController(feedbackService),
		ConsumerService:    consumerService,
		Logger:             sysLogger,
	}
}

// NewEmbeddingProvider selects the embedding backend from config.
func NewEmbeddingProvider(cfg *config.Config) embedding.Provider {
	if cfg.Ai.EmbeddingProvider == "ollama" {
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
		return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	}
	log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	return embedding.NewOpenAIProvider(
		cfg.Ai.OpenAIAPIKey,
		cfg.Ai.OpenAIBaseURL,
		cfg.Ai.EmbeddingModel,
		cfg.Ai.EmbeddingDimensions,
	)
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return cfg.Ai.OpenAIBaseURL
}
