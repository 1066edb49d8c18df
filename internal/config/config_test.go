package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "AI_PROVIDER", "JWT_SECRET", "JWT_TTL", "MONGO_URI", "REDIS_ADDR", "CORS_ALLOWED_ORIGINS", "INTERVIEW_EXPORT_ENABLED", "DB_CONNECT_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Provider != "gemini" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TokenTTL != 24*time.Hour || cfg.DBConnectTimeout != 30*time.Second {
		t.Fatalf("unexpected durations: ttl=%s timeout=%s", cfg.TokenTTL, cfg.DBConnectTimeout)
	}
	if !cfg.UsesDefaultSecret() {
		t.Fatal("expected development secret to be in use")
	}
	if cfg.RedisAddr != "" || cfg.Export.Enabled {
		t.Fatalf("expected optional features disabled: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:5173" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if !strings.Contains(cfg.PostgresDSN, "host=localhost") || !strings.Contains(cfg.PostgresDSN, "sslmode=disable") {
		t.Fatalf("unexpected dsn: %s", cfg.PostgresDSN)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("AI_PROVIDER", "langchain")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("INTERVIEW_EXPORT_ENABLED", "true")
	t.Setenv("INTERVIEW_EXPORT_DIR", "/tmp/exports")
	t.Setenv("POSTGRES_HOST", "db")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Provider != "langchain" || cfg.UsesDefaultSecret() || cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if !cfg.Export.Enabled || cfg.Export.Dir != "/tmp/exports" {
		t.Fatalf("unexpected export config: %+v", cfg.Export)
	}
	if !strings.Contains(cfg.PostgresDSN, "host=db") {
		t.Fatalf("unexpected dsn: %s", cfg.PostgresDSN)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Run("provider", func(t *testing.T) {
		t.Setenv("AI_PROVIDER", "openai")
		if _, err := LoadConfig(); err == nil {
			t.Fatal("expected error for unsupported provider")
		}
	})

	t.Run("ttl", func(t *testing.T) {
		t.Setenv("JWT_TTL", "soon")
		if _, err := LoadConfig(); err == nil {
			t.Fatal("expected error for unparsable ttl")
		}
	})

	t.Run("negative ttl", func(t *testing.T) {
		t.Setenv("JWT_TTL", "-1h")
		if _, err := LoadConfig(); err == nil {
			t.Fatal("expected error for negative ttl")
		}
	})
}
