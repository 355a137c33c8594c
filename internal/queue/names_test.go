package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityBand(t *testing.T) {
	t.Parallel()

	cases := []struct {
		priority int
		want     string
	}{
		{-3, bandCritical},
		{1, bandCritical},
		{2, bandDefault},
		{5, bandDefault},
		{6, bandLow},
		{100, bandLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, priorityBand(tc.priority), "priority %d", tc.priority)
	}
}

func TestBrokerQueues(t *testing.T) {
	t.Parallel()

	queues := BrokerQueues(QueueRecomputeStats)

	assert.Len(t, queues, 3)
	assert.Equal(t, 6, queues["recompute-stats.critical"])
	assert.Equal(t, 3, queues["recompute-stats.default"])
	assert.Equal(t, 1, queues["recompute-stats.low"])
}

func TestNames_StableOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		QueueRecomputeStats,
		QueueSendNotification,
		QueueHousekeeping,
		QueueProcessUpload,
	}, Names())
}
