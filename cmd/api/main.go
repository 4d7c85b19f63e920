package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/leebrouse/favorites/internal/config"
	"github.com/leebrouse/favorites/internal/data"
	"github.com/leebrouse/favorites/internal/jsonlog"
	"github.com/leebrouse/favorites/internal/view"
)

const version = "1.0.0"

type application struct {
	config   *config.Config
	logger   *jsonlog.Logger
	models   data.Models
	views    *view.Renderer
	registry *prometheus.Registry
	prom     *httpMetrics
}

func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		logger.PrintFatal(err, nil)
	}

	level, err := jsonlog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.PrintError(err, map[string]string{"log_level": cfg.LogLevel})
	}
	logger = jsonlog.New(os.Stdout, level)

	movies, err := loadMovies(cfg, logger)
	if err != nil {
		logger.PrintFatal(err, map[string]string{"seed_source": cfg.Seed.Source})
	}

	app, err := newApplication(cfg, logger, movies)
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	if err := app.serve(); err != nil {
		logger.PrintFatal(err, nil)
	}
}

func newApplication(cfg *config.Config, logger *jsonlog.Logger, movies []*data.Movie) (*application, error) {
	models, err := data.NewModels(movies)
	if err != nil {
		return nil, err
	}

	views, err := view.New()
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	prom := newHTTPMetrics(registry)
	prom.moviesLoaded.Set(float64(models.Movies.Len()))

	return &application{
		config:   cfg,
		logger:   logger,
		models:   models,
		views:    views,
		registry: registry,
		prom:     prom,
	}, nil
}

// loadMovies builds the seed list once at start-up. The database, when used,
// is only read and is closed again before the server starts.
func loadMovies(cfg *config.Config, logger *jsonlog.Logger) ([]*data.Movie, error) {
	if cfg.Seed.Source != config.SeedPostgres {
		movies := data.BuiltinMovies()
		logger.PrintInfo("movies seeded", map[string]string{
			"source": config.SeedBuiltin,
		})
		return movies, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	logger.PrintInfo("database connection pool established", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	movies, err := data.LoadMovies(ctx, db)
	if err != nil {
		return nil, err
	}

	logger.PrintInfo("movies seeded", map[string]string{
		"source": config.SeedPostgres,
	})

	return movies, nil
}

func openDB(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.DB.MaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
