package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments exported at /metrics.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	DiagnosticsTotal prometheus.Counter
	BusMessagesSent  prometheus.Counter
	BackupsCreated   prometheus.Counter
	BackupsRestored  prometheus.Counter
	WSClients        prometheus.GaugeFunc
}

// NewMetrics builds a self-contained metrics registry for one server.
func NewMetrics(hub *Hub) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		registry: registry,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tunedeck",
			Name:      "http_requests_total",
			Help:      "HTTP requests processed, by method and status class.",
		}, []string{"method", "status"}),
		DiagnosticsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tunedeck",
			Name:      "diagnostics_runs_total",
			Help:      "Diagnostic runs executed.",
		}),
		BusMessagesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tunedeck",
			Name:      "bus_messages_sent_total",
			Help:      "CAN messages pushed onto simulated buses.",
		}),
		BackupsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tunedeck",
			Name:      "backups_created_total",
			Help:      "Snapshots created.",
		}),
		BackupsRestored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tunedeck",
			Name:      "backups_restored_total",
			Help:      "Snapshots restored.",
		}),
	}

	m.WSClients = factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "tunedeck",
		Name:      "websocket_clients",
		Help:      "Currently connected WebSocket clients.",
	}, func() float64 {
		return float64(hub.ClientCount())
	})

	return m
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
