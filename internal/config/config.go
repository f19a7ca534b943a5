package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Ai       AIConfig
	Chat     ChatConfig
	Otel     OtelConfig
}

type AppConfig struct {
	Port               string `env:"APP_PORT" envDefault:"5000"`
	BaseURL            string `env:"APP_BASE_URL" envDefault:"http://localhost:5000"`
	Environment        string `env:"GO_ENV" envDefault:"development"`
	LogFilePath        string `env:"LOG_FILE_PATH" envDefault:"logs/app.log"`
	CorsAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
	UploadDir          string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	NatsURL            string `env:"NATS_URL"`
	RedisURL           string `env:"REDIS_URL"`
	MaxDocumentBytes   int64  `env:"MAX_DOCUMENT_BYTES" envDefault:"20971520"`
	MaxAvatarBytes     int64  `env:"MAX_AVATAR_BYTES" envDefault:"2097152"`
}

type DatabaseConfig struct {
	Connection string `env:"DB_CONNECTION_STRING"`
}

type AuthConfig struct {
	JwtSecret      string        `env:"JWT_SECRET,required,notEmpty"`
	AccessTokenTTL time.Duration `env:"JWT_ACCESS_TTL" envDefault:"24h"`
}

type AIConfig struct {
	LLMProvider    string        `env:"LLM_PROVIDER" envDefault:"gemini"` // "gemini", "ollama" or "openai"
	LLMModel       string        `env:"LLM_MODEL" envDefault:"gemini-1.5-flash"`
	GoogleGemini   string        `env:"GOOGLE_API_KEY"`
	GeminiBaseURL  string        `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	OpenAIKey      string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL  string        `env:"OPENAI_BASE_URL"`
	OllamaBaseURL  string        `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	RequestTimeout time.Duration `env:"LLM_REQUEST_TIMEOUT" envDefault:"60s"`
	Temperature    float64       `env:"LLM_TEMPERATURE" envDefault:"0.7"`
}

type ChatConfig struct {
	HistoryWindow int           `env:"CHAT_HISTORY_WINDOW" envDefault:"5"`
	SummaryLength int           `env:"CHAT_SUMMARY_LENGTH" envDefault:"40"`
	QuizSize      int           `env:"QUIZ_SIZE" envDefault:"5"`
	QuizTTL       time.Duration `env:"QUIZ_TTL" envDefault:"1h"`
}

type OtelConfig struct {
	Enabled  bool   `env:"OTEL_ENABLED" envDefault:"false"`
	Endpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Chat.HistoryWindow < 0 || cfg.Chat.QuizSize <= 0 || cfg.Chat.SummaryLength <= 0 {
		return nil, fmt.Errorf("invalid chat config: window=%d quiz_size=%d summary_length=%d",
			cfg.Chat.HistoryWindow, cfg.Chat.QuizSize, cfg.Chat.SummaryLength)
	}
	return cfg, nil
}
