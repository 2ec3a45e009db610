package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/Depado/ginprom"
	"github.com/aurowora/compress"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rm-hull/product-sheets/internal"
	"github.com/rm-hull/product-sheets/internal/metrics"
	"github.com/rm-hull/product-sheets/internal/routes"
	healthcheck "github.com/tavsec/gin-healthcheck"
	"github.com/tavsec/gin-healthcheck/checks"
	hc_config "github.com/tavsec/gin-healthcheck/config"
)

func ApiServer(port int, debug bool) error {

	cfg, repo, loader, err := bootstrap()
	if err != nil {
		return err
	}

	loadMetrics, err := metrics.NewLoadMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	repo.Subscribe(loadMetrics.Observe)

	// The server starts regardless; requests made before the first
	// successful load are answered with placeholders.
	go loader.LoadAndLog(context.Background())

	scheduler, err := internal.StartCron(loader, cfg.RefreshSchedule)
	if err != nil {
		return fmt.Errorf("failed to start CRON jobs: %w", err)
	}
	if scheduler != nil {
		defer scheduler.Stop()
	}

	r := gin.New()

	prom := ginprom.New(
		ginprom.Engine(r),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/healthz"),
	)

	r.Use(
		gin.Recovery(),
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		prom.Instrument(),
		compress.Compress(),
		cors.Default(),
	)

	if debug {
		log.Println("WARNING: pprof endpoints are enabled and exposed. Do not run with this flag in production.")
		pprof.Register(r)
	}

	err = healthcheck.New(r, hc_config.DefaultConfig(), []checks.Check{
		repo.Check(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize healthcheck: %v", err)
	}

	pageClient := &http.Client{Timeout: cfg.FetchTimeout}
	cardIndex := routes.MemoizedCardIndex(cfg.ProductPage, routes.CARD_INDEX_TTL, pageClient)
	routes.Register(r, repo, cardIndex)

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting HTTP API Server on port %d...", port)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP API Server failed to start on port %d: %v", port, err)
	}

	return nil
}
