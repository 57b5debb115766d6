package main

import (
	"context"
	"log"

	"praxis-chat-be/internal/bootstrap"
	"praxis-chat-be/internal/config"
	"praxis-chat-be/internal/pkg/logger"
	"praxis-chat-be/internal/repository/implementation"
	"praxis-chat-be/internal/service"
	"praxis-chat-be/pkg/database"
)

// One-shot document ingestion: reads the docs directory, chunks and embeds
// every markdown/text file, and fills the vector store.
func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	ingestService := service.NewIngestService(
		implementation.NewDocumentRepository(gormDB),
		implementation.NewChunkRepository(gormDB),
		bootstrap.NewEmbeddingProvider(cfg),
		cfg.Ingest.DocsDir,
		cfg.Ingest.ChunkTokens,
		cfg.Ingest.OverlapTokens,
		sysLogger,
	)

	summary, err := ingestService.Run(context.Background())
	if err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}

	log.Printf("Ingestion complete: %d files, %d chunks, %d failed", summary.Files, summary.Chunks, summary.Failed)
}
