package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// SupportedProviders lists the completion providers that can be selected with AI_PROVIDER.
var SupportedProviders = map[string]bool{
	"gemini":    true,
	"langchain": true,
}

const defaultJWTSecret = "dev"

// app config, read once at startup
type Config struct {
	Port     string
	Provider string

	JWTSecret string
	TokenTTL  time.Duration

	PostgresDSN      string
	DBConnectTimeout time.Duration

	MongoURI    string
	MongoDBName string

	// empty disables event publishing
	RedisAddr string

	AllowedOrigins []string

	LogLevel   string
	LogFile    string
	TracesFile string

	Export ExportConfig
}

type ExportConfig struct {
	Enabled  bool
	Schedule string // cron spec, e.g. "0 2 * * *"
	Dir      string
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	ttl, err := getEnvDuration("JWT_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	connectTimeout, err := getEnvDuration("DB_CONNECT_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Port:             getEnvOrDefault("PORT", "8080"),
		Provider:         getEnvOrDefault("AI_PROVIDER", "gemini"),
		JWTSecret:        getEnvOrDefault("JWT_SECRET", defaultJWTSecret),
		TokenTTL:         ttl,
		PostgresDSN:      buildPostgresDSN(),
		DBConnectTimeout: connectTimeout,
		MongoURI:         getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:      getEnvOrDefault("MONGO_DB_NAME", "jobprep"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		AllowedOrigins:   splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:          os.Getenv("LOG_FILE"),
		TracesFile:       os.Getenv("TRACES_FILE"),
		Export: ExportConfig{
			Enabled:  getEnvBool("INTERVIEW_EXPORT_ENABLED", false),
			Schedule: getEnvOrDefault("INTERVIEW_EXPORT_SCHEDULE", "0 2 * * *"),
			Dir:      getEnvOrDefault("INTERVIEW_EXPORT_DIR", "./exports"),
		},
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// UsesDefaultSecret reports whether tokens are signed with the development secret.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

func validateConfig(config *Config) error {
	if !SupportedProviders[config.Provider] {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini, langchain")
	}
	// provider credentials are validated by the provider's own NewConfig()
	if config.TokenTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if config.MongoURI == "" {
		return errors.New("MONGO_URI is empty")
	}
	if config.Export.Enabled && config.Export.Dir == "" {
		return errors.New("INTERVIEW_EXPORT_DIR is required when exports are enabled")
	}
	return nil
}

func buildPostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		getEnvOrDefault("POSTGRES_HOST", "localhost"),
		getEnvOrDefault("POSTGRES_USER", "postgres"),
		getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
		getEnvOrDefault("POSTGRES_DB", "postgres"),
		getEnvOrDefault("POSTGRES_PORT", "5432"),
		getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
