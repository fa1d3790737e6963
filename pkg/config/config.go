package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Upload   UploadConfig
	AI       AIConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"meeting_scribe"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret  string        `envconfig:"JWT_ACCESS_SECRET" default:"your-access-secret-change-in-production"`
	RefreshSecret string        `envconfig:"JWT_REFRESH_SECRET" default:"your-refresh-secret-change-in-production"`
	AccessExpiry  time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"15m"`
	RefreshExpiry time.Duration `envconfig:"JWT_REFRESH_EXPIRY" default:"168h"`
}

// StorageConfig holds MinIO object storage configuration
type StorageConfig struct {
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"meeting-scribe"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// UploadConfig holds audio upload policy
type UploadConfig struct {
	// MaxBytes caps a single audio upload (default 100 MiB)
	MaxBytes     int64    `envconfig:"UPLOAD_MAX_BYTES" default:"104857600"`
	AllowedTypes []string `envconfig:"UPLOAD_ALLOWED_TYPES" default:"audio/webm,audio/wav,audio/x-wav,audio/mp4,audio/mpeg,audio/ogg,video/webm"`
}

// AIConfig holds external AI capability configuration
type AIConfig struct {
	// TranscribeProvider selects the speech-to-text backend: "whisper" or "assemblyai"
	TranscribeProvider string `envconfig:"TRANSCRIBE_PROVIDER" default:"whisper"`

	Whisper  WhisperConfig
	Assembly AssemblyAIConfig
	Groq     GroqConfig
}

// WhisperConfig holds OpenAI Whisper-compatible API configuration
type WhisperConfig struct {
	APIKey  string `envconfig:"OPENAI_API_KEY" default:""`
	BaseURL string `envconfig:"OPENAI_API_URL" default:"https://api.openai.com"`
	Model   string `envconfig:"WHISPER_MODEL" default:"whisper-1"`
}

// AssemblyAIConfig holds AssemblyAI configuration
type AssemblyAIConfig struct {
	APIKey string `envconfig:"ASSEMBLYAI_API_KEY" default:""`
}

// GroqConfig holds Groq chat-completions configuration for report generation
type GroqConfig struct {
	APIKey      string  `envconfig:"GROQ_API_KEY" default:""`
	BaseURL     string  `envconfig:"GROQ_API_URL" default:"https://api.groq.com"`
	Model       string  `envconfig:"GROQ_MODEL" default:"llama-3.3-70b-versatile"`
	Temperature float64 `envconfig:"GROQ_TEMPERATURE" default:"0.2"`
	MaxTokens   int     `envconfig:"GROQ_MAX_TOKENS" default:"2500"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive, got %d", c.Upload.MaxBytes)
	}
	if len(c.Upload.AllowedTypes) == 0 {
		return fmt.Errorf("UPLOAD_ALLOWED_TYPES must not be empty")
	}
	switch c.AI.TranscribeProvider {
	case "whisper", "assemblyai":
	default:
		return fmt.Errorf("TRANSCRIBE_PROVIDER must be whisper or assemblyai, got %q", c.AI.TranscribeProvider)
	}
	if c.IsProduction() {
		if c.JWT.AccessSecret == "your-access-secret-change-in-production" ||
			c.JWT.RefreshSecret == "your-refresh-secret-change-in-production" {
			return fmt.Errorf("JWT secrets must be set in production")
		}
	}
	return nil
}

// IsProduction reports whether fallback AI content is forbidden. Only the
// literal "production" environment disables the deterministic fallbacks.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
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

// IsAllowedMediaType checks an upload content type against the accepted set
func (c *Config) IsAllowedMediaType(contentType string) bool {
	for _, t := range c.Upload.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
