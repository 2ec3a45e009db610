package internal

import (
	"context"
	"log"

	"github.com/cockroachdb/errors"

	"github.com/rm-hull/product-sheets/internal/catalog"
	"github.com/rm-hull/product-sheets/internal/sheet"
)

// Loader fetches the sheet and publishes it to the repository. A failed
// load leaves the repository's current table untouched.
type Loader struct {
	client SheetsClient
	repo   catalog.ProductRepository
}

func NewLoader(client SheetsClient, repo catalog.ProductRepository) *Loader {
	return &Loader{client: client, repo: repo}
}

// Load returns the number of records published.
func (l *Loader) Load(ctx context.Context) (int, error) {
	text, err := l.client.FetchCSV(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to fetch sheet")
	}

	rows := sheet.Parse(text)
	if len(rows) == 0 {
		return 0, catalog.ErrNoRows
	}

	table, err := catalog.Build(rows)
	if err != nil {
		return 0, errors.Wrap(err, "failed to build table")
	}

	l.repo.Replace(table)
	return table.Len(), nil
}

// LoadAndLog runs Load and logs the outcome; failures are never fatal.
func (l *Loader) LoadAndLog(ctx context.Context) bool {
	count, err := l.Load(ctx)
	if err != nil {
		log.Printf("WARNING: failed to load product sheet: %v", err)
		return false
	}
	log.Printf("Loaded %d product records", count)
	return true
}
