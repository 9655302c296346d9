package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	LLM        LLMConfig
	Assembly   AssemblyConfig
	Storage    StorageConfig
	Extraction ExtractionConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration. Redis backs the per-meeting
// extraction lock; when disabled an in-process lock is used instead.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret string
	AccessExpiry time.Duration
}

// LLMConfig holds Groq chat-completion configuration
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// AssemblyConfig holds AssemblyAI transcription configuration
type AssemblyConfig struct {
	APIKey       string
	LanguageCode string
}

// StorageConfig holds MinIO object storage configuration
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	UseSSL          bool
}

// ExtractionConfig holds extraction pipeline settings
type ExtractionConfig struct {
	WorkerCount       int
	QueueSize         int
	RunTimeout        time.Duration
	ResolverCharLimit int
	LockTTL           time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "notetrack"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			AccessSecret: getEnv("JWT_ACCESS_SECRET", "your-access-secret-change-in-production"),
			AccessExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRY", "15m"),
		},
		LLM: LLMConfig{
			APIKey:      getEnv("GROQ_API_KEY", ""),
			BaseURL:     getEnv("GROQ_API_URL", "https://api.groq.com"),
			Model:       getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
			Temperature: getEnvAsFloat("GROQ_TEMPERATURE", 0.2),
			MaxTokens:   getEnvAsInt("GROQ_MAX_TOKENS", 4096),
			Timeout:     getEnvAsDuration("GROQ_TIMEOUT", "60s"),
		},
		Assembly: AssemblyConfig{
			APIKey:       getEnv("ASSEMBLYAI_API_KEY", ""),
			LanguageCode: getEnv("ASSEMBLYAI_LANGUAGE", "en"),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "notetrack-audio"),
			PublicURL:       getEnv("STORAGE_PUBLIC_URL", ""),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
		},
		Extraction: ExtractionConfig{
			WorkerCount:       getEnvAsInt("EXTRACTION_WORKERS", 4),
			QueueSize:         getEnvAsInt("EXTRACTION_QUEUE_SIZE", 256),
			RunTimeout:        getEnvAsDuration("EXTRACTION_RUN_TIMEOUT", "5m"),
			ResolverCharLimit: getEnvAsInt("EXTRACTION_RESOLVER_CHAR_LIMIT", 8000),
			LockTTL:           getEnvAsDuration("EXTRACTION_LOCK_TTL", "10m"),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	if c.Extraction.WorkerCount < 1 {
		return fmt.Errorf("EXTRACTION_WORKERS must be at least 1")
	}
	if c.Extraction.QueueSize < 1 {
		return fmt.Errorf("EXTRACTION_QUEUE_SIZE must be at least 1")
	}
	return nil
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

// Helper functions

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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
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
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
