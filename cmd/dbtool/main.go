package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"landing-sequencer-service/internal/adapters/dataset"
	"landing-sequencer-service/internal/adapters/repositories"
	"landing-sequencer-service/internal/config"
	"landing-sequencer-service/internal/platform/db"
	"log"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	return initAndSeed(ctx, database, cfg)
}

// initAndSeed creates the schema and stores the configured dataset, fetching
// it first if the local file is missing.
func initAndSeed(ctx context.Context, database *sql.DB, cfg config.Config) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, database); err != nil {
		return fmt.Errorf("init and seed: schema initialization: %w", err)
	}
	log.Println("Schema ready.")

	layout, err := dataset.ParseLayout(cfg.DatasetLayout)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	provider, err := dataset.NewRemoteDatasetProvider(cfg.DatasetURL, cfg.DatasetFile, layout, cfg.DatasetName)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	ds, err := provider.LoadDataset(ctx)
	if err != nil {
		return fmt.Errorf("init and seed: load dataset: %w", err)
	}

	log.Printf("Seeding dataset %s (%d aircraft)...", ds.Name, len(ds.Aircraft))
	if err := repositories.SeedDataset(ctx, database, ds); err != nil {
		return fmt.Errorf("init and seed: seed dataset: %w", err)
	}
	log.Println("Seeding complete.")

	return nil
}
