package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rm-hull/product-sheets/internal/catalog"
)

type LoadMetrics struct {
	records  prometheus.Gauge
	loads    prometheus.Counter
	lastLoad prometheus.Gauge
}

func NewLoadMetrics(reg prometheus.Registerer) (*LoadMetrics, error) {
	m := &LoadMetrics{
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "product_sheets_records",
			Help: "Number of product records in the current table.",
		}),
		loads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "product_sheets_loads_total",
			Help: "Number of successful product sheet loads.",
		}),
		lastLoad: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "product_sheets_last_load_timestamp_seconds",
			Help: "Unix time of the last successful product sheet load.",
		}),
	}

	for _, c := range []prometheus.Collector{m.records, m.loads, m.lastLoad} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe is a catalog.Subscriber.
func (m *LoadMetrics) Observe(event catalog.Loaded) {
	m.records.Set(float64(event.Count))
	m.loads.Inc()
	m.lastLoad.Set(float64(event.LoadedAt.Unix()))
}
