package cards

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"github.com/rm-hull/product-sheets/internal/models"
)

const CARD_SELECTOR = ".product-card"

// Card is a product card on the page. Only Key and Image are used.
type Card struct {
	Key   string
	Image *models.Image
}

// Scan finds every product card carrying a non-empty data-key attribute.
func Scan(r io.Reader) ([]Card, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse product page")
	}

	var cards []Card
	doc.Find(CARD_SELECTOR).Each(func(_ int, s *goquery.Selection) {
		key, _ := s.Attr("data-key")
		if key == "" {
			return
		}

		card := Card{Key: key}
		if img := s.Find("img").First(); img.Length() > 0 {
			src, _ := img.Attr("src")
			alt, _ := img.Attr("alt")
			if alt == "" {
				alt = key
			}
			card.Image = &models.Image{Src: src, Alt: alt}
		}
		cards = append(cards, card)
	})

	return cards, nil
}

// Index maps each key to the first card carrying it.
func Index(cards []Card) map[string]Card {
	m := make(map[string]Card, len(cards))
	for _, card := range cards {
		if _, ok := m[card.Key]; !ok {
			m[card.Key] = card
		}
	}
	return m
}

// Load scans the page at location, which is either a file path or an
// http(s) URL fetched with client.
func Load(ctx context.Context, client *http.Client, location string) ([]Card, error) {
	if location == "" {
		return nil, nil
	}

	var body io.ReadCloser
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch from %s: %w", location, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			_ = resp.Body.Close()
			return nil, errors.Newf("http status response from %s: %s", location, resp.Status)
		}
		body = resp.Body
	} else {
		f, err := os.Open(location)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open product page %s", location)
		}
		body = f
	}
	defer func() {
		if err := body.Close(); err != nil {
			log.Printf("failed to close product page: %v", err)
		}
	}()

	return Scan(body)
}
