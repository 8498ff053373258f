// Package metrics exposes Prometheus collectors for HTTP traffic and budget activity.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/finance-tracker/budget-api/internal/application/adapter"
	"github.com/finance-tracker/budget-api/internal/domain/entity"
)

// Metrics holds every collector the service exports.
type Metrics struct {
	gatherer prometheus.Gatherer

	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	budgetsRegistered   *prometheus.CounterVec
	expensesRecorded    *prometheus.CounterVec
	budgetLimitExceeded *prometheus.CounterVec
}

// New creates the collectors and registers them with registry.
func New(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		gatherer: registry,
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "requests_total",
				Help: "How many HTTP requests processed, partitioned by status code and HTTP method.",
			},
			[]string{"code", "method", "url"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "request_duration_seconds",
				Help: "The HTTP request latencies in seconds.",
			},
			[]string{"code", "method", "url"},
		),
		budgetsRegistered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgets_registered_total",
				Help: "How many budgets were registered, partitioned by budget type.",
			},
			[]string{"type_of_budget"},
		),
		expensesRecorded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "expenses_recorded_total",
				Help: "How many expenses were recorded, partitioned by budget type.",
			},
			[]string{"type_of_budget"},
		),
		budgetLimitExceeded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budget_limit_exceeded_total",
				Help: "How many times a budget went over its limit, partitioned by budget type.",
			},
			[]string{"type_of_budget"},
		),
	}

	for _, c := range []prometheus.Collector{
		m.requestCount,
		m.requestDuration,
		m.budgetsRegistered,
		m.expensesRecorded,
		m.budgetLimitExceeded,
	} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("could not register %v with Prometheus: %w", c, err)
		}
	}

	return m, nil
}

// ObserveRequest records one handled HTTP request.
func (m *Metrics) ObserveRequest(code, method, url string, elapsed time.Duration) {
	m.requestDuration.WithLabelValues(code, method, url).Observe(elapsed.Seconds())
	m.requestCount.WithLabelValues(code, method, url).Inc()
}

// BudgetRegistered counts a newly registered budget.
func (m *Metrics) BudgetRegistered(typeOfBudget entity.TypeOfBudget) {
	m.budgetsRegistered.WithLabelValues(string(typeOfBudget)).Inc()
}

// ExpenseRecorded counts a recorded expense.
func (m *Metrics) ExpenseRecorded(typeOfBudget entity.TypeOfBudget) {
	m.expensesRecorded.WithLabelValues(string(typeOfBudget)).Inc()
}

// BudgetLimitExceeded counts a budget crossing its limit.
func (m *Metrics) BudgetLimitExceeded(typeOfBudget entity.TypeOfBudget) {
	m.budgetLimitExceeded.WithLabelValues(string(typeOfBudget)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

var _ adapter.MetricsRecorder = (*Metrics)(nil)
