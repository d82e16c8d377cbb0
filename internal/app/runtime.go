package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/config"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/cache"
	"github.com/riskibarqy/cfb-fantasy-scoring/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

// Runtime owns the storage handles and services shared by the API and the
// scoring CLI.
type Runtime struct {
	Config   config.Config
	Logger   *logging.Logger
	DB       *sqlx.DB
	Repos    Repositories
	Services Services
}

func NewRuntime(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}

	rt := &Runtime{Config: cfg, Logger: logger}

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := OpenPostgres(ctx, cfg.DBURL, cfg.DBDisablePreparedBinary)
		if err != nil {
			return nil, err
		}
		rt.DB = db
		if cfg.DBBootstrapSeed {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("bootstrap seed: %w", err)
			}
			logger.Info("database bootstrap seed applied")
		}
		rt.Repos = NewPostgresRepositories(db)
	default:
		rt.Repos = NewMemoryRepositories()
	}

	var afterRun []func(context.Context)
	if cfg.CacheEnabled {
		repos, reset := rt.Repos.WithCache(basecache.NewStore(cfg.CacheTTL))
		rt.Repos = repos
		afterRun = append(afterRun, reset)
	}

	services, err := NewServices(rt.Repos, ScoringOptionsFromConfig(cfg), logger, afterRun...)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.Services = services

	logger.Info("runtime ready",
		"storage", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"bracket_format", cfg.ScoringDefaultBracketFormat,
	)

	return rt, nil
}

func (rt *Runtime) Close() error {
	if rt == nil || rt.DB == nil {
		return nil
	}
	return rt.DB.Close()
}

// OpenPostgres opens a traced lib/pq pool and pings it.
func OpenPostgres(ctx context.Context, rawURL string, disablePreparedBinary bool) (*sqlx.DB, error) {
	dsn := normalizeDBURL(strings.TrimSpace(rawURL), disablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
