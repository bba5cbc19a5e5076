package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/formwizard/pkg/domain"
)

// Metrics holds the prometheus collectors of one wizard.
type Metrics struct {
	stepVisits     *prometheus.CounterVec
	stepBlocked    *prometheus.CounterVec
	submits        *prometheus.CounterVec
	submitDuration prometheus.Histogram
	itemReplaced   prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		stepVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formwizard_step_visits_total",
				Help: "Total number of step visits",
			},
			[]string{"step_id"},
		),
		stepBlocked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formwizard_step_blocked_total",
				Help: "Total number of Next attempts refused because of validation errors",
			},
			[]string{"step_id"},
		),
		submits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formwizard_submits_total",
				Help: "Total number of completed submits by outcome",
			},
			[]string{"outcome"},
		),
		submitDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "formwizard_submit_duration_seconds",
				Help:    "Duration of the host submit callback",
				Buckets: prometheus.DefBuckets,
			},
		),
		itemReplaced: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "formwizard_item_replaced_total",
				Help: "Total number of wholesale item replacements",
			},
		),
	}

	for _, c := range []prometheus.Collector{m.stepVisits, m.stepBlocked, m.submits, m.submitDuration, m.itemReplaced} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(_ context.Context, e *domain.StepEvent) {
			m.stepVisits.WithLabelValues(e.StepID).Inc()
		},
		OnStepBlocked: func(_ context.Context, e *domain.StepEvent) {
			m.stepBlocked.WithLabelValues(e.StepID).Inc()
		},
		OnSubmitResult: func(_ context.Context, e *domain.SubmitEvent) {
			m.submits.WithLabelValues(string(e.Outcome)).Inc()
			m.submitDuration.Observe(e.Duration.Seconds())
		},
		OnItemReplaced: func(context.Context, *domain.ItemEvent) {
			m.itemReplaced.Inc()
		},
	}
}
