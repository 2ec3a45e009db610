package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rm-hull/product-sheets/internal/catalog"
	"github.com/rm-hull/product-sheets/internal/models"
	"github.com/rm-hull/product-sheets/internal/presenter"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var client = &http.Client{Timeout: 5 * time.Second}

func setupRouter(t *testing.T, repo catalog.ProductRepository, index CardIndex) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(r, repo, index)
	return r
}

func loadedRepo(t *testing.T) catalog.ProductRepository {
	repo := catalog.NewProductRepository()
	table, err := catalog.Build([][]string{
		{"name", "description", "price", "currency", "availability"},
		{"Apple", "Fresh fruit", "1.50", "USD", "In stock"},
		{"Pear", "", "", "", ""},
	})
	require.NoError(t, err)
	repo.Replace(table)
	return repo
}

func get(t *testing.T, r http.Handler, path string, v any) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if v != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
	}
	return w
}

func writePage(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "index.html")
	html := `<div class="product-card" data-key="Apple"><img src="/apple.jpg" alt="Apple"></div>`
	require.NoError(t, os.WriteFile(path, []byte(html), 0o600))
	return path
}

func TestProducts(t *testing.T) {
	r := setupRouter(t, loadedRepo(t), MemoizedCardIndex("", time.Minute, client))

	var resp models.ProductsResponse
	w := get(t, r, "/v1/products", &resp)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Apple", "Pear"}, resp.Keys)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "name", resp.KeyField)
	assert.NotNil(t, resp.LastUpdated)
}

func TestProduct(t *testing.T) {
	r := setupRouter(t, loadedRepo(t), MemoizedCardIndex(writePage(t), time.Minute, client))

	t.Run("Found with card image", func(t *testing.T) {
		var content models.ModalContent
		w := get(t, r, "/v1/products/Apple", &content)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.ModalContent{
			Title:        "Apple",
			Image:        &models.Image{Src: "/apple.jpg", Alt: "Apple"},
			Description:  "Fresh fruit",
			Price:        "1.50 USD",
			Unit:         presenter.PLACEHOLDER,
			Availability: "In stock",
			SKU:          presenter.PLACEHOLDER,
			Found:        true,
		}, content)
	})

	t.Run("Found with empty fields", func(t *testing.T) {
		var content models.ModalContent
		get(t, r, "/v1/products/Pear", &content)

		assert.True(t, content.Found)
		assert.Nil(t, content.Image)
		assert.Equal(t, presenter.DESCRIPTION_UNAVAILABLE, content.Description)
		assert.Equal(t, presenter.PLACEHOLDER, content.Price)
	})

	t.Run("Miss degrades to placeholders", func(t *testing.T) {
		var content models.ModalContent
		w := get(t, r, "/v1/products/Durian", &content)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, content.Found)
		assert.Equal(t, "Durian", content.Title)
		assert.Equal(t, presenter.DESCRIPTION_UNAVAILABLE, content.Description)
	})

	t.Run("Lookups are case sensitive", func(t *testing.T) {
		var content models.ModalContent
		get(t, r, "/v1/products/apple", &content)
		assert.False(t, content.Found)
	})
}

func TestProductWithUnreadablePage(t *testing.T) {
	index := MemoizedCardIndex(filepath.Join(t.TempDir(), "missing.html"), time.Minute, client)
	r := setupRouter(t, loadedRepo(t), index)

	var content models.ModalContent
	w := get(t, r, "/v1/products/Apple", &content)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, content.Found)
	assert.Nil(t, content.Image)
}

func TestMemoizedCardIndexCachesScan(t *testing.T) {
	path := writePage(t)
	index := MemoizedCardIndex(path, time.Minute, client)

	first := index(t.Context())
	require.Contains(t, first, "Apple")

	require.NoError(t, os.Remove(path))
	assert.Contains(t, index(t.Context()), "Apple")
}

func TestStats(t *testing.T) {
	r := setupRouter(t, loadedRepo(t), MemoizedCardIndex("", time.Minute, client))

	var stats models.CatalogStatistics
	w := get(t, r, "/v1/stats", &stats)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 1.5, stats.LowestPrice["USD"])
	assert.Equal(t, map[string]int{"In stock": 1}, stats.AvailabilityDistribution)
}

func TestProductKeysOutsideSingleSegment(t *testing.T) {
	repo := catalog.NewProductRepository()
	table, err := catalog.Build([][]string{
		{"name", "price"},
		{"Oil 1/2 L", "3.20"},
		{"stats", "9.99"},
		{"50% off", "1.00"},
	})
	require.NoError(t, err)
	repo.Replace(table)

	r := setupRouter(t, repo, MemoizedCardIndex("", time.Minute, client))

	for _, key := range []string{"Oil 1/2 L", "stats", "50% off"} {
		t.Run(key, func(t *testing.T) {
			var content models.ModalContent
			w := get(t, r, "/v1/products/"+url.PathEscape(key), &content)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, key, content.Title)
			assert.True(t, content.Found)
			assert.NotEqual(t, presenter.PLACEHOLDER, content.Price)
		})
	}

	t.Run("Unescaped slash splits the path", func(t *testing.T) {
		w := get(t, r, "/v1/products/Oil%201/2%20L", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMemoizedCardIndexIgnoresCallerCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<div class="product-card" data-key="Apple"><img src="/apple.jpg"></div>`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	index := MemoizedCardIndex(server.URL, time.Minute, client)
	assert.Contains(t, index(ctx), "Apple")
}
