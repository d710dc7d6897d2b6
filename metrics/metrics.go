// Package metrics exposes Prometheus-format metrics on a dedicated listen
// address, kept separate from the public API port.
package metrics

import (
	"context"
	"fmt"
	"net/http"

	vmmetrics "github.com/VictoriaMetrics/metrics"
)

// MetricsServer serves /metrics for scraping.
type MetricsServer struct {
	srv *http.Server
}

// New creates a metrics server for the given service name listening on addr.
func New(name, addr string) (*MetricsServer, error) {
	if addr == "" {
		return nil, fmt.Errorf("metrics server: empty listen address")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		vmmetrics.WritePrometheus(w, true)
	})

	return &MetricsServer{
		srv: &http.Server{Addr: addr, Handler: mux},
	}, nil
}

func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
