package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ProposalAdmitted()
	m.TransactionExecuted()
	m.TransactionExecuted()
	m.ProposalInvalidated("expired")
	m.Rejected("execute", "cooldown_not_elapsed")

	assert.InDelta(t, 1, testutil.ToFloat64(m.Admitted), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Executed), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Invalidated.WithLabelValues("expired")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Rejections.WithLabelValues("execute", "cooldown_not_elapsed")), 0)

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestMetrics_RegisterTwice(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	first := NewMetrics(reg)
	second := NewMetrics(reg)

	first.ProposalAdmitted()

	assert.InDelta(t, 1, testutil.ToFloat64(second.Admitted), 0)
}

func TestMetrics_Nil(t *testing.T) {
	t.Parallel()

	var m *Metrics

	assert.NotPanics(t, func() {
		m.ProposalAdmitted()
		m.TransactionExecuted()
		m.ProposalInvalidated("direct")
		m.Rejected("admit", "already_invalidated")
	})
}
