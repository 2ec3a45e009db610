package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/rm-hull/product-sheets/internal/cards"
	"github.com/rm-hull/product-sheets/internal/presenter"
	"github.com/rm-hull/product-sheets/internal/tui"
)

var ErrEmptyKey = errors.New("product key must not be empty")

// Show loads the sheet and opens the product dialog for key in the terminal.
// A failed load still shows the dialog, with placeholders.
func Show(ctx context.Context, w io.Writer, key string) error {

	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}

	cfg, repo, loader, err := bootstrap()
	if err != nil {
		return err
	}

	dialog := tui.NewDialog(w)
	p := presenter.New(repo, dialog, nil)
	repo.Subscribe(p.OnLoaded)

	loader.LoadAndLog(ctx)

	cs, err := cards.Load(ctx, &http.Client{Timeout: cfg.FetchTimeout}, cfg.ProductPage)
	if err != nil {
		log.Printf("WARNING: failed to scan product cards: %v", err)
	}
	p.Bind(cs)
	if !p.Bound(key) {
		// no card on the page for this key: show it without an image
		p.Bind([]cards.Card{{Key: key}})
	}

	p.Activate(key)
	defer p.Close()

	if err := dialog.Err(); err != nil {
		return fmt.Errorf("failed to render dialog: %w", err)
	}
	return nil
}
