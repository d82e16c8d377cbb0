package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/logging"
)

var configKeys = []string{
	"APP_ENV", "APP_SERVICE_NAME", "APP_SERVICE_VERSION", "APP_HTTP_ADDR", "APP_READ_TIMEOUT",
	"APP_WRITE_TIMEOUT", "APP_LOG_LEVEL", "CORS_ALLOWED_ORIGINS", "STORAGE_DRIVER", "DB_URL",
	"DB_DISABLE_PREPARED_BINARY_RESULT", "DB_BOOTSTRAP_SEED", "CACHE_ENABLED", "CACHE_TTL",
	"PPROF_ENABLED", "PPROF_ADDR", "SWAGGER_ENABLED", "INTERNAL_JOB_TOKEN", "UPTRACE_ENABLED", "UPTRACE_DSN",
	"OTEL_EXPORTER_OTLP_HEADERS", "PYROSCOPE_ENABLED", "PYROSCOPE_SERVER_ADDRESS",
	"PYROSCOPE_UPLOAD_RATE", "SCORING_MAX_WORKERS", "SCORING_WRITE_RETRIES",
	"SCORING_RETRY_INITIAL_INTERVAL", "SCORING_RETRY_MAX_INTERVAL", "SCORING_CIRCUIT_ENABLED",
	"SCORING_CIRCUIT_FAILURE_COUNT", "SCORING_CIRCUIT_OPEN_TIMEOUT",
	"SCORING_CIRCUIT_HALF_OPEN_MAX_REQ", "SCORING_DEFAULT_BRACKET_FORMAT", "SCORING_CRON",
	"QSTASH_BASE_URL", "QSTASH_TOKEN", "QSTASH_TARGET_BASE_URL", "QSTASH_RETRIES", "QSTASH_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("expected dev env, got %s", cfg.AppEnv)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("expected memory storage in dev, got %s", cfg.StorageDriver)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %s", cfg.HTTPAddr)
	}
	if cfg.ScoringMaxWorkers != 4 || cfg.ScoringWriteRetries != 3 {
		t.Fatalf("unexpected scoring defaults: workers=%d retries=%d", cfg.ScoringMaxWorkers, cfg.ScoringWriteRetries)
	}
	if cfg.ScoringDefaultBracketFormat != "cfp12_v2" {
		t.Fatalf("unexpected default bracket format: %s", cfg.ScoringDefaultBracketFormat)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("unexpected cache defaults: enabled=%t ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if !cfg.SwaggerEnabled {
		t.Fatalf("expected SwaggerEnabled=true in dev by default")
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
	if cfg.QStashBaseURL != "https://qstash.upstash.io" || cfg.QStashRetries != 3 || cfg.QStashTimeout != 10*time.Second {
		t.Fatalf("unexpected qstash defaults: %s retries=%d timeout=%s", cfg.QStashBaseURL, cfg.QStashRetries, cfg.QStashTimeout)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageDriver(t *testing.T) {
	t.Run("prod defaults to postgres and requires DB_URL", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", EnvProd)
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when postgres storage has no DB_URL")
		}
	})

	t.Run("prod with DB_URL", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("DB_URL", "postgres://scoring:secret@db:5432/scoring?sslmode=disable")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StoragePostgres {
			t.Fatalf("expected postgres storage, got %s", cfg.StorageDriver)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORAGE_DRIVER", "sqlite")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORAGE_DRIVER")
		}
	})

	t.Run("bootstrap seed is rejected in prod", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("DB_URL", "postgres://localhost/scoring")
		t.Setenv("DB_BOOTSTRAP_SEED", "true")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for DB_BOOTSTRAP_SEED in prod")
		}
	})
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_ScoringSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCORING_MAX_WORKERS", "8")
	t.Setenv("SCORING_WRITE_RETRIES", "5")
	t.Setenv("SCORING_RETRY_INITIAL_INTERVAL", "50ms")
	t.Setenv("SCORING_RETRY_MAX_INTERVAL", "1s")
	t.Setenv("SCORING_CIRCUIT_ENABLED", "false")
	t.Setenv("SCORING_DEFAULT_BRACKET_FORMAT", " CFP12_V2 ")
	t.Setenv("SCORING_CRON", "0 */6 * * *")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ScoringMaxWorkers != 8 || cfg.ScoringWriteRetries != 5 {
		t.Fatalf("unexpected workers/retries: %d/%d", cfg.ScoringMaxWorkers, cfg.ScoringWriteRetries)
	}
	if cfg.ScoringRetryInitialInterval != 50*time.Millisecond || cfg.ScoringRetryMaxInterval != time.Second {
		t.Fatalf("unexpected retry intervals: %s/%s", cfg.ScoringRetryInitialInterval, cfg.ScoringRetryMaxInterval)
	}
	if cfg.ScoringCircuitEnabled {
		t.Fatalf("expected circuit disabled")
	}
	if cfg.ScoringDefaultBracketFormat != "cfp12_v2" {
		t.Fatalf("expected normalized bracket format, got %q", cfg.ScoringDefaultBracketFormat)
	}
	if cfg.ScoringCron != "0 */6 * * *" {
		t.Fatalf("unexpected cron: %q", cfg.ScoringCron)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "zero workers", key: "SCORING_MAX_WORKERS", value: "0"},
		{name: "non numeric retries", key: "SCORING_WRITE_RETRIES", value: "many"},
		{name: "bad duration", key: "CACHE_TTL", value: "soon"},
		{name: "negative duration", key: "APP_READ_TIMEOUT", value: "-1s"},
		{name: "bad bool", key: "CACHE_ENABLED", value: "maybe"},
		{name: "max below initial", key: "SCORING_RETRY_MAX_INTERVAL", value: "10ms"},
		{name: "zero qstash retries", key: "QSTASH_RETRIES", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
			t.Fatalf("expected nil for missing file, got %v", err)
		}
	})

	t.Run("does not override existing env", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		content := "SCORING_CRON=@hourly\nAPP_SERVICE_NAME=from-file\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write env file: %v", err)
		}
		t.Setenv("APP_SERVICE_NAME", "from-env")
		t.Setenv("SCORING_CRON", "")
		if err := os.Unsetenv("SCORING_CRON"); err != nil {
			t.Fatalf("unset SCORING_CRON: %v", err)
		}

		if err := LoadDotEnv(path); err != nil {
			t.Fatalf("load dotenv: %v", err)
		}
		if got := os.Getenv("APP_SERVICE_NAME"); got != "from-env" {
			t.Fatalf("expected existing env to win, got %q", got)
		}
		if got := os.Getenv("SCORING_CRON"); got != "@hourly" {
			t.Fatalf("expected SCORING_CRON from file, got %q", got)
		}
	})
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]logging.Level{
		"debug":   logging.LevelDebug,
		"WARNING": logging.LevelWarn,
		"error":   logging.LevelError,
		"":        logging.LevelInfo,
		"verbose": logging.LevelInfo,
	}
	for raw, want := range tests {
		if got := parseLogLevel(raw); got != want {
			t.Fatalf("parseLogLevel(%q)=%s want %s", raw, got, want)
		}
	}
}
