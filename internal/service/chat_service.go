package service

import (
	"context"
	"strings"

	"praxis-chat-be/internal/dto"
	"praxis-chat-be/internal/pkg/logger"
	"praxis-chat-be/internal/pkg/serverutils"
	"praxis-chat-be/internal/repository/contract"
	"praxis-chat-be/pkg/embedding"
	"praxis-chat-be/pkg/llm"
	"praxis-chat-be/pkg/rag"
)

// IChatService runs the single fixed answer pipeline:
// embed -> retrieve -> assemble (PrepareTurn), then prompt -> stream
// (StreamAnswer). There is no branching retrieval and no server-side
// conversation memory.
type IChatService interface {
	PrepareTurn(ctx context.Context, request *dto.ChatRequest) (*rag.PreparedTurn, error)
	StreamAnswer(ctx context.Context, turn *rag.PreparedTurn, emit rag.EmitFunc)
}

type chatService struct {
	embeddingProvider embedding.Provider
	chunkRepo         contract.ChunkRepository
	streamer          *rag.Streamer
	defaultTopK       int
	logger            logger.ILogger
}

func NewChatService(
	embeddingProvider embedding.Provider,
	chunkRepo contract.ChunkRepository,
	llmProvider llm.Provider,
	temperature float64,
	defaultTopK int,
	log logger.ILogger,
) IChatService {
	if defaultTopK <= 0 {
		defaultTopK = 12
	}
	return &chatService{
		embeddingProvider: embeddingProvider,
		chunkRepo:         chunkRepo,
		streamer:          rag.NewStreamer(llmProvider, temperature, log),
		defaultTopK:       defaultTopK,
		logger:            log,
	}
}

// PrepareTurn validates the question, embeds it, retrieves the nearest
// chunks, and assembles the bounded context. Any failure here is returned as
// a single non-streamed error; no events have been written yet.
func (s *chatService) PrepareTurn(ctx context.Context, request *dto.ChatRequest) (*rag.PreparedTurn, error) {
	question := strings.TrimSpace(request.Question)
	if question == "" {
		return nil, serverutils.NewValidationError("Question is required")
	}

	k := request.K
	if k <= 0 {
		k = s.defaultTopK
	}

	queryVector, err := s.embeddingProvider.Embed(ctx, question)
	if err != nil {
		return nil, serverutils.NewProviderError("Failed to embed question", err)
	}

	chunks, err := s.chunkRepo.SearchSimilar(ctx, queryVector, k)
	if err != nil {
		return nil, serverutils.NewRetrievalError("Failed to retrieve relevant chunks", err)
	}

	details := map[string]interface{}{"chunks": len(chunks), "k": k}
	if len(chunks) > 0 {
		details["first_distance"] = chunks[0].Distance
	}
	s.logger.Info("chat_service", "Retrieved chunks for question", details)

	// Zero chunks is not a failure: the turn proceeds with an empty context
	// and the instruction prompt produces a "no information" answer.
	contextText, sources := rag.Assemble(chunks)

	return &rag.PreparedTurn{
		Question:    question,
		ContextText: contextText,
		Sources:     sources,
	}, nil
}

func (s *chatService) StreamAnswer(ctx context.Context, turn *rag.PreparedTurn, emit rag.EmitFunc) {
	s.streamer.Stream(ctx, turn, emit)
}
