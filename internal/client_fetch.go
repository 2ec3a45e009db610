package internal

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

const DEFAULT_SHEETS_CSV_URL = "https://docs.google.com/spreadsheets/d/1gcciGJgrT7NQNj4qWOMtS7C854nDXCi2XVwxTZmhGC8/export?format=csv"

var ErrEmptyBody = errors.New("empty CSV")

// HTTPStatusError is returned when the remote server responds with a non-2xx status.
type HTTPStatusError struct {
	URL        string
	Status     string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("http status response from %s: %s", e.URL, e.Status)
}

type SheetsClient interface {
	FetchCSV(ctx context.Context) (string, error)
}

type sheetsManager struct {
	url    string
	client *http.Client
}

// NewSheetsClient returns a client for the CSV export at url. A zero timeout
// means requests are never abandoned.
func NewSheetsClient(url string, timeout time.Duration) SheetsClient {
	return &sheetsManager{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (mgr *sheetsManager) FetchCSV(ctx context.Context) (string, error) {
	body, err := mgr.get(ctx, mgr.url)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := body.Close(); err != nil {
			log.Printf("failed to close body: %v", err)
		}
	}()

	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	text := string(bodyBytes)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyBody
	}
	return text, nil
}

func (mgr *sheetsManager) get(ctx context.Context, url string) (io.ReadCloser, error) {

	log.Printf("GET %s", url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := mgr.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from %s: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, &HTTPStatusError{URL: url, Status: resp.Status, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}
