package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpn-kit/mpn-go/pkg/trace"
)

func TestCollectorCountsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	hit := trace.NewEvent(trace.OpClassify)
	hit.Duration = 50 * time.Microsecond
	hit.Classification = &trace.ClassificationEvent{Owner: "ti", Type: "LOGIC_IC"}
	c.Log(hit)
	c.Log(hit)

	miss := trace.NewEvent(trace.OpClassify)
	miss.Outcome = trace.OutcomeMiss
	c.Log(miss)

	verdict := trace.NewEvent(trace.OpReplacement)
	verdict.Outcome = trace.OutcomeMiss
	verdict.Replacement = &trace.ReplacementEvent{Stage: "series"}
	c.Log(verdict)

	failed := trace.NewEvent(trace.OpReplacement)
	failed.Outcome = trace.OutcomeError
	failed.Error = &trace.ErrorEvent{Message: "kind mismatch"}
	c.Log(failed)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.operationsTotal.WithLabelValues("classify", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.operationsTotal.WithLabelValues("classify", "miss")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.classificationsTotal.WithLabelValues("ti", "LOGIC_IC")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.verdictsTotal.WithLabelValues("series", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.errorsTotal.WithLabelValues("replacement")))
	assert.Equal(t, 4, testutil.CollectAndCount(c.operationsTotal))
}

func TestNewCollectorRequiresRegisterer(t *testing.T) {
	c, err := NewCollector(nil)
	assert.ErrorIs(t, err, ErrNoRegisterer)
	assert.Nil(t, c)
}

func TestCollectorReRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	require.NoError(t, err)
	second, err := NewCollector(reg)
	require.NoError(t, err)

	second.Log(trace.NewEvent(trace.OpRank))
	assert.Equal(t, 1.0, testutil.ToFloat64(first.operationsTotal.WithLabelValues("rank", "hit")),
		"collectors on one registry share series")
}

func TestSummarize(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	other := prometheus.NewCounter(prometheus.CounterOpts{Name: "unrelated_total"})
	reg.MustRegister(other)
	other.Inc()

	e := trace.NewEvent(trace.OpClassify)
	e.Classification = &trace.ClassificationEvent{Owner: "murata", Type: "CAPACITOR_CERAMIC"}
	c.Log(e)

	samples, err := Summarize(reg)
	require.NoError(t, err)

	byName := map[string]Sample{}
	for _, s := range samples {
		assert.NotEqual(t, "unrelated_total", s.Name)
		byName[s.Name+"{"+s.LabelString()+"}"] = s
	}
	assert.Equal(t, 1.0, byName["mpn_engine_classifications_total{owner=murata,type=CAPACITOR_CERAMIC}"].Value)
	assert.Equal(t, 1.0, byName["mpn_engine_operations_total{operation=classify,outcome=hit}"].Value)
	assert.Equal(t, 1.0, byName["mpn_engine_operation_duration_seconds_count{operation=classify}"].Value)

	for i := 1; i < len(samples); i++ {
		assert.LessOrEqual(t, samples[i-1].Name, samples[i].Name)
	}
}
