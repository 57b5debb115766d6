package implementation

import (
	"context"

	"praxis-chat-be/internal/dto"
	"praxis-chat-be/internal/model"
	"praxis-chat-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ChunkRepositoryImpl struct {
	db *gorm.DB
}

func NewChunkRepository(db *gorm.DB) contract.ChunkRepository {
	return &ChunkRepositoryImpl{db: db}
}

func (r *ChunkRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, k int) ([]dto.RetrievedChunk, error) {
	if k <= 0 {
		k = 12
	}

	queryVector := pgvector.NewVector(embedding)

	// pgvector cosine distance: embedding <=> vector. Ties fall back to the
	// store's deterministic scan order.
	var rows []dto.RetrievedChunk
	err := r.db.WithContext(ctx).
		Table("doc_chunks").
		Select("doc_chunks.content, documents.title, doc_chunks.embedding <=> ? AS distance", queryVector).
		Joins("JOIN documents ON documents.id = doc_chunks.doc_id").
		Order("distance ASC").
		Limit(k).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *ChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*model.DocChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(chunks).Error
}
