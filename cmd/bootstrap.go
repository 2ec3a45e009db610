package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/rm-hull/godx"

	"github.com/rm-hull/product-sheets/internal"
	"github.com/rm-hull/product-sheets/internal/catalog"
)

// bootstrap initialises shared resources used by every command. It returns
// the configuration, a repository and a loader bound to it.
func bootstrap() (internal.Config, catalog.ProductRepository, *internal.Loader, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	godx.GitVersion()
	godx.EnvironmentVars()
	godx.UserInfo()

	cfg, err := internal.LoadConfig()
	if err != nil {
		return internal.Config{}, nil, nil, fmt.Errorf("config error: %w", err)
	}

	repo := catalog.NewProductRepository()
	client := internal.NewSheetsClient(cfg.SheetsURL, cfg.FetchTimeout)
	loader := internal.NewLoader(client, repo)

	return cfg, repo, loader, nil
}

// loadOnce performs a single load; commands other than the server treat a
// failure as fatal because they have nothing to show without a table.
func loadOnce(ctx context.Context, loader *internal.Loader) (int, error) {
	count, err := loader.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load product sheet: %w", err)
	}
	return count, nil
}
