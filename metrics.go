// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"

	"github.com/zoomvr/geomodelportal/store/metric"
)

const ServerLabel = "server"

// ServerMeasures holds the request-level metrics for the HTTP servers.
type ServerMeasures struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// provideMetrics builds the application metrics and makes them available to
// the container.
func provideMetrics() fx.Option {
	return fx.Options(
		fx.Provide(
			newRegistry,
			newServerMeasures,
		),
		metric.ProvideMetrics(),
	)
}

func newRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func newServerMeasures(registry *prometheus.Registry) (ServerMeasures, error) {
	m := ServerMeasures{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "server_request_count",
			Help: "total incoming HTTP requests",
		}, []string{ServerLabel}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "server_request_duration_ms",
			Help: "tracks incoming request durations in ms",
		}, []string{ServerLabel}),
	}
	if err := registry.Register(m.Requests); err != nil {
		return ServerMeasures{}, err
	}
	if err := registry.Register(m.Duration); err != nil {
		return ServerMeasures{}, err
	}
	return m, nil
}
