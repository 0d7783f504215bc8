package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Provider names accepted by TRANSCRIPTION_PROVIDER and SUMMARY_PROVIDER
const (
	ProviderOpenAI     = "openai"
	ProviderGroq       = "groq"
	ProviderAssemblyAI = "assemblyai"
	ProviderGemini     = "gemini"
)

// DefaultTranscriptionModel is the OpenAI speech-to-text model
const DefaultTranscriptionModel = "whisper-1"

// Storage backends accepted by STORAGE_TYPE
const (
	StorageTypeLocal = "local"
	StorageTypeMinIO = "minio"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig   `envconfig:"SERVER"`
	Database DatabaseConfig `envconfig:"DB"`
	Redis    RedisConfig    `envconfig:"REDIS"`
	Storage  StorageConfig  `envconfig:"STORAGE"`
	AI       AIConfig       `envconfig:"AI"`
	Log      LogConfig      `envconfig:"LOG"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://127.0.0.1:5173"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	BodyLimit       string        `envconfig:"MAX_UPLOAD_SIZE" default:"200M"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host          string `envconfig:"DB_HOST" default:"localhost"`
	Port          string `envconfig:"DB_PORT" default:"5432"`
	User          string `envconfig:"DB_USER" default:"postgres"`
	Password      string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name          string `envconfig:"DB_NAME" default:"meeting_summarizer"`
	SSLMode       string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns      int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns      int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate   bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
	MigrationsDir string `envconfig:"DB_MIGRATIONS_DIR" default:"migrations"`
}

// RedisConfig holds Redis configuration.
// When Enabled is false the read cache falls back to process memory.
type RedisConfig struct {
	Enabled  bool          `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string        `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string        `envconfig:"REDIS_PORT" default:"6379"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"CACHE_TTL" default:"1h"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Type            string `envconfig:"STORAGE_TYPE" default:"local"` // "local" or "minio"
	Dir             string `envconfig:"STORAGE_DIR" default:"./storage"`
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"meeting-audio"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// AIConfig holds the external transcription and summarization providers
type AIConfig struct {
	TranscriptionProvider string        `envconfig:"TRANSCRIPTION_PROVIDER" default:"openai"`
	TranscriptionModel    string        `envconfig:"TRANSCRIPTION_MODEL" default:"whisper-1"`
	SummaryProvider       string        `envconfig:"SUMMARY_PROVIDER" default:"openai"`
	SummaryModel          string        `envconfig:"SUMMARY_MODEL" default:"gpt-3.5-turbo"`
	SummaryMaxTokens      int           `envconfig:"SUMMARY_MAX_TOKENS" default:"600"`
	SummaryTemperature    float64       `envconfig:"SUMMARY_TEMPERATURE" default:"0.2"`
	HTTPTimeout           time.Duration `envconfig:"AI_HTTP_TIMEOUT" default:"0s"` // 0 = no client-side timeout

	OpenAI   OpenAIConfig     `envconfig:"OPENAI"`
	Groq     GroqConfig       `envconfig:"GROQ"`
	Assembly AssemblyAIConfig `envconfig:"ASSEMBLYAI"`
	Gemini   GeminiConfig     `envconfig:"GEMINI"`
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey  string `envconfig:"OPENAI_API_KEY"`
	BaseURL string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
}

// GroqConfig holds Groq API configuration (OpenAI compatible)
type GroqConfig struct {
	APIKey  string `envconfig:"GROQ_API_KEY"`
	BaseURL string `envconfig:"GROQ_API_URL" default:"https://api.groq.com/openai/v1"`
}

// AssemblyAIConfig holds AssemblyAI configuration
type AssemblyAIConfig struct {
	APIKey  string `envconfig:"ASSEMBLYAI_API_KEY"`
	BaseURL string `envconfig:"ASSEMBLYAI_BASE_URL"`
}

// GeminiConfig holds Gemini API configuration. Summaries only.
type GeminiConfig struct {
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	c.AI.TranscriptionProvider = strings.ToLower(strings.TrimSpace(c.AI.TranscriptionProvider))
	c.AI.SummaryProvider = strings.ToLower(strings.TrimSpace(c.AI.SummaryProvider))
	c.Storage.Type = strings.ToLower(strings.TrimSpace(c.Storage.Type))

	switch c.AI.TranscriptionProvider {
	case ProviderOpenAI, ProviderGroq, ProviderAssemblyAI:
	default:
		return fmt.Errorf("TRANSCRIPTION_PROVIDER must be one of openai, groq, assemblyai (got %q)", c.AI.TranscriptionProvider)
	}
	switch c.AI.SummaryProvider {
	case ProviderOpenAI, ProviderGroq, ProviderGemini:
	default:
		return fmt.Errorf("SUMMARY_PROVIDER must be one of openai, groq, gemini (got %q)", c.AI.SummaryProvider)
	}

	for _, provider := range []string{c.AI.TranscriptionProvider, c.AI.SummaryProvider} {
		if err := c.requireCredential(provider); err != nil {
			return err
		}
	}

	switch c.Storage.Type {
	case StorageTypeLocal:
		if c.Storage.Dir == "" {
			return fmt.Errorf("STORAGE_DIR is required")
		}
	case StorageTypeMinIO:
		if c.Storage.BucketName == "" {
			return fmt.Errorf("STORAGE_BUCKET is required")
		}
	default:
		return fmt.Errorf("STORAGE_TYPE must be local or minio (got %q)", c.Storage.Type)
	}

	if c.AI.HTTPTimeout < 0 {
		return fmt.Errorf("AI_HTTP_TIMEOUT must not be negative")
	}

	c.AI.TranscriptionModel = normalizeTranscriptionModel(c.AI.TranscriptionProvider, c.AI.TranscriptionModel)
	return nil
}

// normalizeTranscriptionModel maps the OpenAI default model onto the
// closest equivalent of providers that do not know "whisper-1"
func normalizeTranscriptionModel(provider, model string) string {
	model = strings.TrimSpace(model)
	if model != "" && model != DefaultTranscriptionModel {
		return model
	}
	switch provider {
	case ProviderAssemblyAI:
		return "best"
	case ProviderGroq:
		return "whisper-large-v3"
	default:
		return DefaultTranscriptionModel
	}
}

func (c *Config) requireCredential(provider string) error {
	switch provider {
	case ProviderOpenAI:
		if c.AI.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required")
		}
	case ProviderGroq:
		if c.AI.Groq.APIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required")
		}
	case ProviderAssemblyAI:
		if c.AI.Assembly.APIKey == "" {
			return fmt.Errorf("ASSEMBLYAI_API_KEY is required")
		}
	case ProviderGemini:
		if c.AI.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required")
		}
	}
	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// ShouldAutoMigrate reports whether the API applies migrations on startup.
// Production never does; the schema there is managed by cmd/migrate.
func (c *Config) ShouldAutoMigrate() bool {
	return c.Database.AutoMigrate && !c.IsProduction()
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// GetServerAddr returns the listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
