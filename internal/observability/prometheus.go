package observability

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"atsscore/internal/config"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
)

// NewPrometheusReader creates an OpenTelemetry reader backed by a private
// registry, together with the handler that serves it.
func NewPrometheusReader(cfg config.PrometheusConfig) (metric.Reader, http.Handler, error) {
	registry := promclient.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Endpoint, promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	return exporter, mux, nil
}

// StartPrometheusServer serves handler on the configured port in the background
func StartPrometheusServer(handler http.Handler, cfg config.PrometheusConfig) *http.Server {
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("[METRICS] Prometheus metrics at http://localhost%s%s", server.Addr, cfg.Endpoint)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[METRICS] Prometheus server error: %v", err)
		}
	}()
	return server
}
