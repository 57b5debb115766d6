package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Ingest   IngestConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	FeedbackTopic      string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	EmbeddingProvider   string // "openai" or "ollama"
	EmbeddingModel      string
	EmbeddingDimensions int
	LLMProvider         string // "openai" or "ollama"
	LLMModel            string
	OpenAIAPIKey        string
	OpenAIBaseURL       string // optional, for compatible gateways
	OllamaBaseURL       string
	Temperature         float64
	DefaultTopK         int
}

type IngestConfig struct {
	DocsDir       string
	ChunkTokens   int
	OverlapTokens int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3001"),
			FeedbackTopic:      getEnv("FEEDBACK_TOPIC_NAME", "CHAT_FEEDBACK"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider:   getEnv("EMBEDDING_PROVIDER", "openai"),
			EmbeddingModel:      getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			EmbeddingDimensions: getEnvAsInt("EMBEDDING_DIMENSIONS", 1536),
			LLMProvider:         getEnv("LLM_PROVIDER", "openai"),
			LLMModel:            getEnv("LLM_MODEL", "gpt-4o-mini"),
			OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", ""),
			OllamaBaseURL:       getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Temperature:         getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			DefaultTopK:         getEnvAsInt("RETRIEVAL_TOP_K", 12),
		},
		Ingest: IngestConfig{
			DocsDir:       getEnv("INGEST_DOCS_DIR", "data/praxis_docs"),
			ChunkTokens:   getEnvAsInt("INGEST_CHUNK_TOKENS", 700),
			OverlapTokens: getEnvAsInt("INGEST_OVERLAP_TOKENS", 100),
		},
	}
}

// Validate fails fast on missing upstream credentials/endpoints so a broken
// deployment surfaces at startup instead of on the first chat turn.
func (c *Config) Validate() error {
	if c.Database.Connection == "" {
		return fmt.Errorf("DB_CONNECTION_STRING is not configured")
	}
	if c.Ai.EmbeddingProvider == "openai" || c.Ai.LLMProvider == "openai" {
		if c.Ai.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is not configured")
		}
	}
	if c.Ai.EmbeddingDimensions <= 0 {
		return fmt.Errorf("EMBEDDING_DIMENSIONS must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
