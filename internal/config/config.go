package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Qdrant    QdrantConfig
	LLM       LLMConfig
	Storage   StorageConfig
	Interview InterviewConfig
	Worker    WorkerConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	Enabled    bool
	URL        string
	APIKey     string
	Collection string
}

type LLMConfig struct {
	Provider        string
	GeminiAPIKey    string
	GeminiModel     string
	EmbeddingModel  string
	AnthropicAPIKey string
	ClaudeModel     string
	Timeout         time.Duration
	RateLimit       int
}

type StorageConfig struct {
	ReportsPath string
	MaxFileSize int64
}

type InterviewConfig struct {
	HRQuestionsCount        int
	TechnicalQuestionsCount int
	EvalConcurrency         int
	ReferenceQuestions      int
}

type WorkerConfig struct {
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "interview_practice"),
		},
		Qdrant: QdrantConfig{
			Enabled:    getEnvAsBool("QDRANT_ENABLED", false),
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "interview_question_bank"),
		},
		LLM: LLMConfig{
			Provider:        getEnv("LLM_PROVIDER", "gemini"),
			GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
			GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EmbeddingModel:  getEnv("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
			AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
			ClaudeModel:     getEnv("CLAUDE_MODEL", "claude-3-7-sonnet-latest"),
			Timeout:         getEnvAsDuration("LLM_TIMEOUT", "60s"),
			RateLimit:       getEnvAsInt("LLM_RATE_LIMIT", 0),
		},
		Storage: StorageConfig{
			ReportsPath: getEnv("REPORTS_PATH", "./reports"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Interview: InterviewConfig{
			HRQuestionsCount:        getEnvAsInt("HR_QUESTIONS_COUNT", 5),
			TechnicalQuestionsCount: getEnvAsInt("TECHNICAL_QUESTIONS_COUNT", 5),
			EvalConcurrency:         getEnvAsInt("EVAL_CONCURRENCY", 1),
			ReferenceQuestions:      getEnvAsInt("REFERENCE_QUESTIONS", 3),
		},
		Worker: WorkerConfig{
			RetryMaxAttempts:  getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
			RetryInitialDelay: getEnvAsDuration("RETRY_INITIAL_DELAY", "2s"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", ""),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
