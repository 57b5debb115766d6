package contract

import (
	"context"

	"praxis-chat-be/internal/dto"
	"praxis-chat-be/internal/model"
)

type ChunkRepository interface {
	// SearchSimilar returns the k nearest chunks to the query vector,
	// ordered ascending by cosine distance. An empty result is not an
	// error; the pipeline still proceeds with an empty context.
	SearchSimilar(ctx context.Context, embedding []float32, k int) ([]dto.RetrievedChunk, error)

	CreateBulk(ctx context.Context, chunks []*model.DocChunk) error
}
