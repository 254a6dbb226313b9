// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/canonical/aap-sync-service/internal/logging"
	"github.com/canonical/aap-sync-service/internal/monitoring"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

type Monitor struct {
	service string

	responseTime           *prometheus.HistogramVec
	dependencyAvailability *prometheus.GaugeVec

	logger logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) SetResponseTimeMetric(labels map[string]string, value float64) error {
	metric, err := m.responseTime.GetMetricWith(labels)
	if err != nil {
		return err
	}

	metric.Observe(value)

	return nil
}

func (m *Monitor) SetDependencyAvailability(labels map[string]string, value float64) error {
	metric, err := m.dependencyAvailability.GetMetricWith(labels)
	if err != nil {
		return err
	}

	metric.Set(value)

	return nil
}

func (m *Monitor) registerMetrics() {
	m.responseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "http",
			Name:      "response_time_seconds",
			Help:      "response time of http calls by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	m.dependencyAvailability = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_available",
			Help: "availability of upstream dependencies, 1 up 0 down",
		},
		[]string{"component"},
	)

	prometheus.MustRegister(m.responseTime, m.dependencyAvailability)
}

func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger

	m.registerMetrics()

	return m
}
