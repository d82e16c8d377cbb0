package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config stores runtime configuration for the API, the scoring CLI and migrations.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	LogLevel                logging.Level
	CORSAllowedOrigins      []string
	StorageDriver           string
	DBURL                   string
	DBDisablePreparedBinary bool
	DBBootstrapSeed         bool
	CacheEnabled            bool
	CacheTTL                time.Duration
	PprofEnabled            bool
	PprofAddr               string
	SwaggerEnabled          bool
	InternalJobToken        string

	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	ScoringMaxWorkers            int
	ScoringWriteRetries          int
	ScoringRetryInitialInterval  time.Duration
	ScoringRetryMaxInterval      time.Duration
	ScoringCircuitEnabled        bool
	ScoringCircuitFailureCount   int
	ScoringCircuitOpenTimeout    time.Duration
	ScoringCircuitHalfOpenMaxReq int
	ScoringDefaultBracketFormat  string
	ScoringCron                  string

	QStashBaseURL       string
	QStashToken         string
	QStashTargetBaseURL string
	QStashRetries       int
	QStashTimeout       time.Duration
}

// LoadDotEnv reads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                      appEnv,
		ServiceName:                 strings.TrimSpace(getEnv("APP_SERVICE_NAME", "cfb-fantasy-scoring")),
		ServiceVersion:              strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		HTTPAddr:                    strings.TrimSpace(getEnv("APP_HTTP_ADDR", ":8080")),
		LogLevel:                    parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins:          splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		DBURL:                       strings.TrimSpace(getEnv("DB_URL", "")),
		PprofAddr:                   strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		InternalJobToken:            strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		UptraceDSN:                  strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		PyroscopeServerAddress:      strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAppName:            strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", "cfb-fantasy-scoring")),
		PyroscopeAuthToken:          strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:      strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:  strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		ScoringDefaultBracketFormat: strings.ToLower(strings.TrimSpace(getEnv("SCORING_DEFAULT_BRACKET_FORMAT", "cfp12_v2"))),
		ScoringCron:                 strings.TrimSpace(getEnv("SCORING_CRON", "")),
		QStashBaseURL:               strings.TrimSpace(getEnv("QSTASH_BASE_URL", "https://qstash.upstash.io")),
		QStashToken:                 strings.TrimSpace(getEnv("QSTASH_TOKEN", "")),
		QStashTargetBaseURL:         strings.TrimSpace(getEnv("QSTASH_TARGET_BASE_URL", "")),
	}
	if cfg.HTTPAddr == "" {
		return Config{}, fmt.Errorf("APP_HTTP_ADDR cannot be empty")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.ScoringDefaultBracketFormat == "" {
		return Config{}, fmt.Errorf("SCORING_DEFAULT_BRACKET_FORMAT cannot be empty")
	}

	if cfg.ReadTimeout, err = getEnvAsDuration("APP_READ_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsDuration("APP_WRITE_TIMEOUT", 60*time.Second); err != nil {
		return Config{}, err
	}

	storageDefault := StoragePostgres
	if appEnv == EnvDev {
		storageDefault = StorageMemory
	}
	cfg.StorageDriver, err = parseStorageDriver(getEnv("STORAGE_DRIVER", storageDefault))
	if err != nil {
		return Config{}, err
	}
	if cfg.StorageDriver == StoragePostgres && cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
	}
	if cfg.DBDisablePreparedBinary, err = getEnvAsBool("DB_DISABLE_PREPARED_BINARY_RESULT", false); err != nil {
		return Config{}, err
	}
	if cfg.DBBootstrapSeed, err = getEnvAsBool("DB_BOOTSTRAP_SEED", false); err != nil {
		return Config{}, err
	}
	if cfg.DBBootstrapSeed && appEnv == EnvProd {
		return Config{}, fmt.Errorf("DB_BOOTSTRAP_SEED is not allowed when APP_ENV=%s", EnvProd)
	}

	if cfg.CacheEnabled, err = getEnvAsBool("CACHE_ENABLED", true); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}

	if cfg.PprofEnabled, err = getEnvAsBool("PPROF_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	if cfg.SwaggerEnabled, err = getEnvAsBool("SWAGGER_ENABLED", appEnv != EnvProd); err != nil {
		return Config{}, err
	}

	if cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second); err != nil {
		return Config{}, err
	}

	if cfg.ScoringMaxWorkers, err = getEnvAsPositiveInt("SCORING_MAX_WORKERS", 4); err != nil {
		return Config{}, err
	}
	if cfg.ScoringWriteRetries, err = getEnvAsPositiveInt("SCORING_WRITE_RETRIES", 3); err != nil {
		return Config{}, err
	}
	if cfg.ScoringRetryInitialInterval, err = getEnvAsDuration("SCORING_RETRY_INITIAL_INTERVAL", 200*time.Millisecond); err != nil {
		return Config{}, err
	}
	if cfg.ScoringRetryMaxInterval, err = getEnvAsDuration("SCORING_RETRY_MAX_INTERVAL", 2*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ScoringRetryMaxInterval < cfg.ScoringRetryInitialInterval {
		return Config{}, fmt.Errorf("SCORING_RETRY_MAX_INTERVAL must be >= SCORING_RETRY_INITIAL_INTERVAL")
	}
	if cfg.ScoringCircuitEnabled, err = getEnvAsBool("SCORING_CIRCUIT_ENABLED", true); err != nil {
		return Config{}, err
	}
	if cfg.ScoringCircuitFailureCount, err = getEnvAsPositiveInt("SCORING_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return Config{}, err
	}
	if cfg.ScoringCircuitOpenTimeout, err = getEnvAsDuration("SCORING_CIRCUIT_OPEN_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ScoringCircuitHalfOpenMaxReq, err = getEnvAsPositiveInt("SCORING_CIRCUIT_HALF_OPEN_MAX_REQ", 2); err != nil {
		return Config{}, err
	}

	if cfg.QStashRetries, err = getEnvAsPositiveInt("QSTASH_RETRIES", 3); err != nil {
		return Config{}, err
	}
	if cfg.QStashTimeout, err = getEnvAsDuration("QSTASH_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseStorageDriver(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case StorageMemory, StoragePostgres:
		return value, nil
	default:
		return "", fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", v, StorageMemory, StoragePostgres)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsPositiveInt(key string, fallback int) (int, error) {
	out, err := getEnvAsInt(key, fallback)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out < 1 {
		return 0, fmt.Errorf("%s must be >= 1", key)
	}
	return out, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	out, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}
