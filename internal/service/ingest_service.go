package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"praxis-chat-be/internal/model"
	"praxis-chat-be/internal/pkg/logger"
	"praxis-chat-be/internal/repository/contract"
	"praxis-chat-be/pkg/embedding"
	"praxis-chat-be/pkg/utils"

	"github.com/pgvector/pgvector-go"
)

// IIngestService is the one-shot offline producer of vector-store rows. It
// reads every markdown/text file in the docs directory, splits it into
// overlapping chunks, embeds each chunk, and bulk-inserts the rows.
type IIngestService interface {
	Run(ctx context.Context) (*IngestSummary, error)
}

type IngestSummary struct {
	Files  int
	Chunks int
	Failed int
}

type ingestService struct {
	docRepo           contract.DocumentRepository
	chunkRepo         contract.ChunkRepository
	embeddingProvider embedding.Provider
	docsDir           string
	chunkTokens       int
	overlapTokens     int
	logger            logger.ILogger
}

func NewIngestService(
	docRepo contract.DocumentRepository,
	chunkRepo contract.ChunkRepository,
	embeddingProvider embedding.Provider,
	docsDir string,
	chunkTokens, overlapTokens int,
	log logger.ILogger,
) IIngestService {
	return &ingestService{
		docRepo:           docRepo,
		chunkRepo:         chunkRepo,
		embeddingProvider: embeddingProvider,
		docsDir:           docsDir,
		chunkTokens:       chunkTokens,
		overlapTokens:     overlapTokens,
		logger:            log,
	}
}

func (s *ingestService) Run(ctx context.Context) (*IngestSummary, error) {
	entries, err := os.ReadDir(s.docsDir)
	if err != nil {
		return nil, err
	}

	summary := &IngestSummary{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".md" && ext != ".txt" {
			continue
		}

		// Per-file failures are logged and skipped; one broken document must
		// not abort the whole batch.
		chunks, err := s.ingestFile(ctx, name)
		if err != nil {
			s.logger.Error("ingest_service", "Failed to ingest file", map[string]interface{}{
				"file":  name,
				"error": err.Error(),
			})
			summary.Failed++
			continue
		}

		summary.Files++
		summary.Chunks += chunks
	}

	s.logger.Info("ingest_service", "Ingestion complete", map[string]interface{}{
		"files":  summary.Files,
		"chunks": summary.Chunks,
		"failed": summary.Failed,
	})
	return summary, nil
}

func (s *ingestService) ingestFile(ctx context.Context, fileName string) (int, error) {
	content, err := os.ReadFile(filepath.Join(s.docsDir, fileName))
	if err != nil {
		return 0, err
	}

	doc := &model.Document{
		Title:  fileName,
		Source: "upload",
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return 0, err
	}

	parts := utils.SplitText(string(content), s.chunkTokens, s.overlapTokens)

	rows := make([]*model.DocChunk, 0, len(parts))
	for i, part := range parts {
		vector, err := s.embeddingProvider.Embed(ctx, part)
		if err != nil {
			s.logger.Warn("ingest_service", "Failed to embed chunk, skipping", map[string]interface{}{
				"file":  fileName,
				"chunk": i,
				"error": err.Error(),
			})
			continue
		}
		rows = append(rows, &model.DocChunk{
			DocId:      doc.Id,
			ChunkIndex: i,
			Content:    part,
			Embedding:  pgvector.NewVector(vector),
		})
	}

	if err := s.chunkRepo.CreateBulk(ctx, rows); err != nil {
		return 0, err
	}

	s.logger.Info("ingest_service", "File ingested", map[string]interface{}{
		"file":   fileName,
		"chunks": len(rows),
	})
	return len(rows), nil
}
