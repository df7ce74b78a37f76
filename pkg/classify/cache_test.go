package classify

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpn-kit/mpn-go/pkg/capability"
	"github.com/mpn-kit/mpn-go/pkg/component"
	"github.com/mpn-kit/mpn-go/pkg/provider"
)

type countingClassifier struct {
	calls atomic.Int32
}

func (c *countingClassifier) Classify(mpn string) (Result, bool) {
	c.calls.Add(1)
	if mpn == "" || mpn == "NOPE" {
		return Result{}, false
	}
	return Result{
		MPN:          mpn,
		Normalized:   "X1",
		Type:         component.IC,
		Base:         component.IC,
		Owner:        "a",
		Capabilities: []capability.Attribute{capability.Set("features", "ANC")},
	}, true
}

func (c *countingClassifier) Provider(string) (provider.Provider, bool) {
	return nil, false
}

func TestCachedClassify(t *testing.T) {
	next := &countingClassifier{}
	c := NewCached(next, time.Minute, 0)

	r, ok := c.Classify("x1")
	require.True(t, ok)
	assert.Equal(t, "x1", r.MPN)

	r, ok = c.Classify(" X1 ")
	require.True(t, ok)
	assert.Equal(t, " X1 ", r.MPN, "MPN reflects the caller's input")
	assert.Equal(t, int32(1), next.calls.Load(), "second lookup served from cache")

	r.Capabilities[0].Members[0] = "MUTATED"
	r, _ = c.Classify("X1")
	assert.Equal(t, []string{"ANC"}, r.Capabilities[0].Members, "cache holds its own copy")

	_, ok = c.Classify("NOPE")
	assert.False(t, ok)
	_, ok = c.Classify("nope")
	assert.False(t, ok)
	assert.Equal(t, int32(2), next.calls.Load(), "negative results are cached")
	assert.Equal(t, 2, c.Len())

	c.Flush()
	assert.Equal(t, 0, c.Len())
	c.Classify("X1")
	assert.Equal(t, int32(3), next.calls.Load())

	_, ok = c.Provider("a")
	assert.False(t, ok)
}
