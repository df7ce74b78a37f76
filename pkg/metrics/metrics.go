// Package metrics exposes engine decisions as Prometheus metrics.
//
// A Collector is a trace.Logger: wire it into the engine's tracer (alone or
// through trace.MultiLogger) and every decision updates the counters.
package metrics

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/mpn-kit/mpn-go/pkg/trace"
)

const (
	namespace = "mpn"
	subsystem = "engine"
)

// ErrNoRegisterer is returned by NewCollector when no registerer is given.
var ErrNoRegisterer = errors.New("metrics: nil registerer")

// Collector holds the engine metrics.
type Collector struct {
	operationsTotal      *prometheus.CounterVec
	classificationsTotal *prometheus.CounterVec
	verdictsTotal        *prometheus.CounterVec
	errorsTotal          *prometheus.CounterVec
	duration             *prometheus.HistogramVec
}

// NewCollector creates the collector and registers it with reg. Pass
// prometheus.DefaultRegisterer to expose the metrics globally.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		return nil, ErrNoRegisterer
	}

	c := &Collector{
		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "operations_total",
			Help:      "Engine calls by operation and outcome",
		}, []string{"operation", "outcome"}),

		classificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "classifications_total",
			Help:      "Successful classifications by owner and component type",
		}, []string{"owner", "type"}),

		verdictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "verdicts_total",
			Help:      "Replacement verdicts by deciding stage",
		}, []string{"stage", "replaceable"}),

		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "errors_total",
			Help:      "Failed engine calls by operation",
		}, []string{"operation"}),

		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "operation_duration_seconds",
			Help:      "Time spent per engine call",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}, []string{"operation"}),
	}

	var err error
	if c.operationsTotal, err = register(reg, c.operationsTotal); err != nil {
		return nil, err
	}
	if c.classificationsTotal, err = register(reg, c.classificationsTotal); err != nil {
		return nil, err
	}
	if c.verdictsTotal, err = register(reg, c.verdictsTotal); err != nil {
		return nil, err
	}
	if c.errorsTotal, err = register(reg, c.errorsTotal); err != nil {
		return nil, err
	}
	if c.duration, err = register(reg, c.duration); err != nil {
		return nil, err
	}
	return c, nil
}

// register registers col, or returns the collector already registered
// under the same descriptor.
func register[T prometheus.Collector](reg prometheus.Registerer, col T) (T, error) {
	if err := reg.Register(col); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, err
	}
	return col, nil
}

// Log implements trace.Logger.
func (c *Collector) Log(event trace.Event) {
	op := event.Operation.String()
	c.operationsTotal.WithLabelValues(op, event.Outcome.String()).Inc()
	c.duration.WithLabelValues(op).Observe(event.Duration.Seconds())

	if event.Classification != nil && event.Outcome == trace.OutcomeHit {
		c.classificationsTotal.WithLabelValues(event.Classification.Owner, event.Classification.Type).Inc()
	}
	if event.Replacement != nil {
		c.verdictsTotal.WithLabelValues(event.Replacement.Stage, strconv.FormatBool(event.Replacement.Replaceable)).Inc()
	}
	if event.Outcome == trace.OutcomeError {
		c.errorsTotal.WithLabelValues(op).Inc()
	}
}

var _ trace.Logger = (*Collector)(nil)

// Sample is one counter value, or the observation count of a histogram.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// LabelString renders labels as k=v pairs sorted by key.
func (s Sample) LabelString() string {
	keys := make([]string, 0, len(s.Labels))
	for k := range s.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + s.Labels[k]
	}
	return strings.Join(parts, ",")
}

// Summarize gathers the engine's metric families from g and flattens them
// into samples ordered by name, then labels.
func Summarize(g prometheus.Gatherer) ([]Sample, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	prefix := namespace + "_" + subsystem + "_"
	var out []Sample
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), prefix) {
			continue
		}
		for _, m := range mf.GetMetric() {
			s := Sample{Name: mf.GetName(), Labels: labels(m)}
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				s.Value = m.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				s.Value = m.GetGauge().GetValue()
			case dto.MetricType_HISTOGRAM:
				s.Name += "_count"
				s.Value = float64(m.GetHistogram().GetSampleCount())
			default:
				continue
			}
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].LabelString() < out[j].LabelString()
	})
	return out, nil
}

func labels(m *dto.Metric) map[string]string {
	out := make(map[string]string, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		out[lp.GetName()] = lp.GetValue()
	}
	return out
}
