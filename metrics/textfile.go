package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"worktime/session"
)

// Exporter holds the gauges written for node_exporter's textfile collector.
type Exporter struct {
	registry    *prometheus.Registry
	bootActive  *prometheus.GaugeVec
	bootSpan    *prometheus.GaugeVec
	activeTotal prometheus.Gauge
	discarded   *prometheus.GaugeVec
	failures    prometheus.Gauge
}

// NewExporter registers the worktime gauges on a private registry.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		bootActive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "worktime_boot_active_seconds",
			Help: "Reconciled active (powered on, not suspended) time of one boot.",
		}, []string{"boot_id"}),
		bootSpan: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "worktime_boot_span_seconds",
			Help: "Time between first and last journal entry of one boot.",
		}, []string{"boot_id"}),
		activeTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "worktime_active_seconds_total",
			Help: "Sum of active time over all reported boots.",
		}),
		discarded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "worktime_discarded_events",
			Help: "Suspend or wake timestamps dropped while reconciling.",
		}, []string{"kind"}),
		failures: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "worktime_boot_failures",
			Help: "Boots whose power events could not be read.",
		}),
	}
	e.registry.MustRegister(e.bootActive, e.bootSpan, e.activeTotal, e.discarded, e.failures)
	return e
}

// Observe records the results of one run. Calling it again replaces the previous values.
func (e *Exporter) Observe(results []session.Result, failures int) {
	e.bootActive.Reset()
	e.bootSpan.Reset()
	e.discarded.Reset()

	for _, r := range results {
		e.bootActive.WithLabelValues(r.ID).Set(r.Total.Seconds())
		e.bootSpan.WithLabelValues(r.ID).Set(r.Span.Duration().Seconds())
	}
	sum := session.Summarize(results)
	e.activeTotal.Set(sum.Total.Seconds())
	for _, k := range []session.SkipKind{session.SkippedStart, session.SkippedEnd, session.TrailingStart, session.TrailingEnd} {
		e.discarded.WithLabelValues(k.String()).Set(float64(sum.Skipped[k]))
	}
	e.failures.Set(float64(failures))
}

// WriteFile atomically writes the metrics in text exposition format.
func (e *Exporter) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
