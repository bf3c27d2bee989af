package commands

import (
	"context"
	"fmt"

	"github.com/stockpulse/platform/internal/calc"
	"github.com/stockpulse/platform/internal/catalog"
	"github.com/stockpulse/platform/internal/clean"
	"github.com/stockpulse/platform/internal/extract"
	"github.com/stockpulse/platform/internal/extract/bhavcopy"
	"github.com/stockpulse/platform/internal/extract/screener"
	"github.com/stockpulse/platform/internal/extract/yahoo"
	"github.com/stockpulse/platform/internal/pipeline"
	"github.com/stockpulse/platform/internal/quality"
	"github.com/stockpulse/platform/internal/storage"
	"github.com/stockpulse/platform/internal/technical"
	"github.com/stockpulse/platform/internal/validate"
	"github.com/stockpulse/platform/pkg/config"
	"github.com/stockpulse/platform/pkg/database"
	"github.com/stockpulse/platform/pkg/httputil"
	"github.com/stockpulse/platform/pkg/logger"
	"github.com/stockpulse/platform/pkg/redis"
)

// app holds the wired dependency graph shared by the commands.
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	db    *database.DB
	store *storage.Store
	pipe  *pipeline.Pipeline
}

// initApp loads config and builds every component in one place.
func initApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log := logger.New(logger.Options{
		Level:  level,
		Format: cfg.LogFormat,
		Env:    cfg.Env,
	})

	cat, err := catalog.New()
	if err != nil {
		return nil, fmt.Errorf("load field catalog: %w", err)
	}

	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	store := storage.New(db.Pool, log)
	if err := store.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, continuing without cache")
		redisClient = redis.Disabled()
	}
	cache := redis.NewCache(redisClient, "stockpulse")

	nseClient := httputil.New(cfg.NSE, log)
	yahooClient := httputil.New(cfg.Yahoo, log)
	screenerClient := httputil.New(cfg.Screener, log)

	extractors := []extract.Extractor{
		bhavcopy.New(nseClient, cache, log).WithBaseURLs(
			cfg.NSE.BaseURL+"/content/historical/EQUITIES",
			cfg.NSE.BaseURL+"/products/content",
		),
		yahoo.New(yahooClient, log).WithBaseURLs(
			cfg.Yahoo.BaseURL+"/v8/finance/chart",
			cfg.Yahoo.BaseURL+"/v10/finance/quoteSummary",
		),
		screener.New(screenerClient, log).WithBaseURL(cfg.Screener.BaseURL + "/company"),
	}

	pipe := pipeline.New(
		cat,
		extractors,
		clean.New(cat, log),
		calc.New(cat, log, calc.Options{
			LargeCapCr: cfg.Pipeline.LargeCapMinCrore,
			MidCapCr:   cfg.Pipeline.MidCapMinCrore,
		}),
		technical.New(log),
		validate.New(cat, log, cfg.Pipeline.BoosterCap),
		quality.New(cat, log),
		store,
		log,
	)

	return &app{cfg: cfg, log: log, db: db, store: store, pipe: pipe}, nil
}

func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
