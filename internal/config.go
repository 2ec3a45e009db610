package internal

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envKeySheetsURL           = "SHEETS_CSV_URL"
	envKeyProductPage         = "PRODUCT_PAGE"
	envKeyRefreshSchedule     = "SHEETS_REFRESH_SCHEDULE"
	envKeyFetchTimeoutSeconds = "SHEETS_FETCH_TIMEOUT_SECONDS"

	defaultFetchTimeoutSeconds = 30
)

type Config struct {
	SheetsURL       string
	ProductPage     string
	RefreshSchedule string
	FetchTimeout    time.Duration
}

// LoadConfig reads the environment. An unset refresh schedule falls back to
// CRON_SCHEDULE_SHEETS; set it to "off" to disable reloading.
func LoadConfig() (Config, error) {
	sheetsURL := strings.TrimSpace(os.Getenv(envKeySheetsURL))
	if sheetsURL == "" {
		sheetsURL = DEFAULT_SHEETS_CSV_URL
	}
	if parsed, err := url.Parse(sheetsURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("bad %s: %q", envKeySheetsURL, sheetsURL)
	}

	schedule, ok := os.LookupEnv(envKeyRefreshSchedule)
	schedule = strings.TrimSpace(schedule)
	switch {
	case !ok || schedule == "":
		schedule = CRON_SCHEDULE_SHEETS
	case strings.EqualFold(schedule, "off"):
		schedule = ""
	}

	timeoutSeconds := defaultFetchTimeoutSeconds
	if timeoutEnv := strings.TrimSpace(os.Getenv(envKeyFetchTimeoutSeconds)); timeoutEnv != "" {
		parsed, err := strconv.Atoi(timeoutEnv)
		if err != nil || parsed < 0 {
			return Config{}, fmt.Errorf("bad %s: %q", envKeyFetchTimeoutSeconds, timeoutEnv)
		}
		timeoutSeconds = parsed
	}

	return Config{
		SheetsURL:       sheetsURL,
		ProductPage:     strings.TrimSpace(os.Getenv(envKeyProductPage)),
		RefreshSchedule: schedule,
		FetchTimeout:    time.Duration(timeoutSeconds) * time.Second,
	}, nil
}
