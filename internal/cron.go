package internal

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

const CRON_SCHEDULE_SHEETS = "*/30 * * * *" // Every 30 minutes

// StartCron reloads the product sheet on schedule. An empty schedule
// disables reloading and returns a nil scheduler.
func StartCron(loader *Loader, schedule string) (*cron.Cron, error) {
	if schedule == "" {
		log.Print("Product sheet refresh disabled")
		return nil, nil
	}

	c := cron.New()

	log.Printf("Starting CRON job to refresh the product sheet (%s)", schedule)

	if _, err := c.AddFunc(schedule, func() {
		loader.LoadAndLog(context.Background())
	}); err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
