package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"landing-sequencer-service/internal/adapters/cache"
	"landing-sequencer-service/internal/adapters/dataset"
	"landing-sequencer-service/internal/adapters/repositories"
	"landing-sequencer-service/internal/api"
	"landing-sequencer-service/internal/config"
	"landing-sequencer-service/internal/platform/db"
	"landing-sequencer-service/internal/platform/metrics"
	"landing-sequencer-service/internal/ports"
	"landing-sequencer-service/internal/services"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (dataset source, Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var database *sql.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer database.Close()

		if err := repositories.InitSchema(context.Background(), database); err != nil {
			log.Fatal(err)
		}
	}

	provider, err := newProvider(cfg, database)
	if err != nil {
		log.Fatal(err)
	}

	deps := services.RunDeps{}
	if database != nil {
		deps.Runs = repositories.NewSQLRunRepository(database)
	}

	// Identical datasets sequence identically, so results are cached by fingerprint.
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("redis unavailable, result cache disabled: addr=%s err=%v", cfg.RedisAddr, err)
		} else {
			deps.Cache = cache.NewRedisResultCache(client, cfg.ResultCacheTTL)
		}
		cancel()
	}

	collector, err := metrics.NewSequencerCollector(nil)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(provider, cfg.DatasetSource, deps, collector)

	log.Printf("Server listening addr=:%s source=%s dataset=%s", cfg.Port, cfg.DatasetSource, cfg.DatasetName)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func newProvider(cfg config.Config, database *sql.DB) (ports.DatasetProvider, error) {
	if cfg.DatasetSource == "postgres" {
		if database == nil {
			return nil, errors.New("dataset source postgres: no database configured")
		}
		return repositories.NewSQLDatasetRepository(database, cfg.DatasetName), nil
	}

	layout, err := dataset.ParseLayout(cfg.DatasetLayout)
	if err != nil {
		return nil, fmt.Errorf("dataset source %s: %w", cfg.DatasetSource, err)
	}

	switch cfg.DatasetSource {
	case "file":
		return dataset.NewFileDatasetProvider(cfg.DatasetFile, layout, cfg.DatasetName), nil
	default:
		remote, err := dataset.NewRemoteDatasetProvider(cfg.DatasetURL, cfg.DatasetFile, layout, cfg.DatasetName)
		if err != nil {
			return nil, err
		}
		return remote, nil
	}
}
