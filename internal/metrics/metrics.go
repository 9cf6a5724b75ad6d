package metrics

import (
	"fmt"
	"io"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "minisocial"

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
)

// Metrics tracks directory activity. A nil *Metrics is a valid no-op recorder.
type Metrics struct {
	Operations *prometheus.CounterVec
	Accounts   prometheus.Gauge
	Posts      prometheus.Gauge
}

// New registers the collectors with reg. Passing a fresh prometheus.NewRegistry()
// keeps tests and multiple directories from colliding on the default registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Directory operations by name and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		Accounts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "accounts",
			Help:      "Registered accounts.",
		}),
		Posts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "posts",
			Help:      "Published posts.",
		}),
	}

	reg.MustRegister(m.Operations, m.Accounts, m.Posts)
	return m
}

func (m *Metrics) Observe(operation, outcome string) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) SetAccounts(n int) {
	if m == nil {
		return
	}
	m.Accounts.Set(float64(n))
}

func (m *Metrics) SetPosts(n int) {
	if m == nil {
		return
	}
	m.Posts.Set(float64(n))
}

// WriteText prints every counter and gauge sample gathered from g, one per line,
// sorted by metric name and labels.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			labels := ""
			for i, lp := range metric.GetLabel() {
				if i > 0 {
					labels += ","
				}
				labels += fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue())
			}
			if labels != "" {
				labels = "{" + labels + "}"
			}

			var value float64
			switch {
			case metric.GetCounter() != nil:
				value = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				value = metric.GetGauge().GetValue()
			default:
				continue
			}
			lines = append(lines, fmt.Sprintf("%s%s %g", mf.GetName(), labels, value))
		}
	}
	sort.Strings(lines)

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}
