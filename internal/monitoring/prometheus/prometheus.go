// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/canonical/scim-bulk/internal/logging"
	"github.com/canonical/scim-bulk/internal/monitoring"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

// Monitor keeps the metrics of a single bulk run in its own registry so
// they can be pushed to a Pushgateway once the run is over.
type Monitor struct {
	service  string
	registry *prometheus.Registry

	responseTime           *prometheus.HistogramVec
	dependencyAvailability *prometheus.GaugeVec
	operations             *prometheus.CounterVec

	logger logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Monitor) SetResponseTimeMetric(labels map[string]string, value float64) error {
	o, err := m.responseTime.GetMetricWith(m.withService(labels))
	if err != nil {
		return err
	}
	o.Observe(value)
	return nil
}

func (m *Monitor) SetDependencyAvailability(labels map[string]string, value float64) error {
	g, err := m.dependencyAvailability.GetMetricWith(m.withService(labels))
	if err != nil {
		return err
	}
	g.Set(value)
	return nil
}

func (m *Monitor) IncOperationsMetric(labels map[string]string, value float64) error {
	c, err := m.operations.GetMetricWith(m.withService(labels))
	if err != nil {
		return err
	}
	c.Add(value)
	return nil
}

// Push sends the collected metrics to a Pushgateway under the given job name.
func (m *Monitor) Push(ctx context.Context, gatewayURL, job string) error {
	if gatewayURL == "" {
		return nil
	}

	err := push.New(gatewayURL, job).
		Gatherer(m.registry).
		Grouping("service", m.service).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", gatewayURL, err)
	}

	m.logger.Debugf("Pushed metrics to %s (job=%s)", gatewayURL, job)
	return nil
}

func (m *Monitor) withService(labels map[string]string) prometheus.Labels {
	l := prometheus.Labels{"service": m.service}
	for k, v := range labels {
		l[k] = v
	}
	return l
}

func (m *Monitor) register() {
	m.responseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_client_response_time_seconds",
			Help:    "Response time of calls to the identity directory",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 180},
		},
		[]string{"service", "route", "status"},
	)
	m.dependencyAvailability = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_available",
			Help: "Whether a remote dependency answered during the run",
		},
		[]string{"service", "component"},
	)
	m.operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bulk_operations_total",
			Help: "SCIM bulk operations by flow and outcome",
		},
		[]string{"service", "flow", "outcome"},
	)

	m.registry.MustRegister(m.responseTime, m.dependencyAvailability, m.operations)
}

func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.registry = prometheus.NewRegistry()
	m.logger = logger

	m.register()

	return m
}
