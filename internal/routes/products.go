package routes

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kofalt/go-memoize"

	"github.com/rm-hull/product-sheets/internal/cards"
	"github.com/rm-hull/product-sheets/internal/catalog"
	"github.com/rm-hull/product-sheets/internal/models"
	"github.com/rm-hull/product-sheets/internal/presenter"
	"github.com/rm-hull/product-sheets/internal/stats"
)

const (
	CARD_INDEX_TTL    = 5 * time.Minute
	CARD_SCAN_TIMEOUT = 30 * time.Second
)

// CardIndex returns the product cards on the page, keyed by data-key.
type CardIndex func(ctx context.Context) map[string]cards.Card

// Register mounts the product routes. Paths are matched on their escaped
// form so a key containing "/" can be requested as %2F.
func Register(r *gin.Engine, repo catalog.ProductRepository, index CardIndex) {
	r.UseRawPath = true
	r.UnescapePathValues = true

	r.GET("/v1/products", Products(repo))
	r.GET("/v1/products/:key", Product(repo, index))
	r.GET("/v1/stats", Stats(repo))
}

// MemoizedCardIndex scans the page at location at most once per ttl. Failed
// scans are not cached, and the dialog simply renders without an image.
// Concurrent callers share one scan, so it runs detached from the caller's
// cancellation and is bounded by CARD_SCAN_TIMEOUT instead.
func MemoizedCardIndex(location string, ttl time.Duration, client *http.Client) CardIndex {
	if location == "" {
		return func(context.Context) map[string]cards.Card { return nil }
	}

	cache := memoize.NewMemoizer(ttl, 2*ttl)
	return func(ctx context.Context) map[string]cards.Card {
		result, err, _ := cache.Memoize(location, func() (interface{}, error) {
			scanCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), CARD_SCAN_TIMEOUT)
			defer cancel()

			cs, err := cards.Load(scanCtx, client, location)
			if err != nil {
				return nil, err
			}
			return cards.Index(cs), nil
		})
		if err != nil {
			log.Printf("WARNING: failed to scan product cards: %v", err)
			return nil
		}
		return result.(map[string]cards.Card)
	}
}

func Products(repo catalog.ProductRepository) func(c *gin.Context) {
	return func(c *gin.Context) {
		table := repo.Current()
		c.JSON(http.StatusOK, models.ProductsResponse{
			Keys:        table.Keys(),
			Count:       table.Len(),
			KeyField:    table.KeyField(),
			LastUpdated: repo.LastLoaded(),
		})
	}
}

// Product always answers with dialog content: a missing record or an empty
// table degrades to placeholders rather than an error.
func Product(repo catalog.ProductRepository, index CardIndex) func(c *gin.Context) {
	return func(c *gin.Context) {
		key := c.Param("key")

		var card *cards.Card
		if found, ok := index(c.Request.Context())[key]; ok {
			card = &found
		}

		record, _ := repo.Lookup(key)
		c.JSON(http.StatusOK, presenter.Format(key, record, card))
	}
}

func Stats(repo catalog.ProductRepository) func(c *gin.Context) {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, stats.Derive(repo.Current()))
	}
}
