package queue

import "fmt"

// Logical queue names. Each owns its own worker pool, retry policy, and
// retention policy.
const (
	QueueRecomputeStats   = "recompute-stats"
	QueueSendNotification = "send-notification"
	QueueHousekeeping     = "housekeeping"
	QueueProcessUpload    = "process-upload"
)

// Names returns every logical queue name in a stable order.
func Names() []string {
	return []string{
		QueueRecomputeStats,
		QueueSendNotification,
		QueueHousekeeping,
		QueueProcessUpload,
	}
}

// Priority bands. A logical queue is materialized as three broker queues
// consumed by one worker pool with weighted preference, so the small-integer
// job priority becomes a soft ordering hint the way the broker understands
// it. Lower numbers are more urgent.
const (
	bandCritical = "critical"
	bandDefault  = "default"
	bandLow      = "low"
)

// DefaultPriority is used when the caller does not specify one.
const DefaultPriority = 5

// brokerQueue returns the broker-level queue name for a logical queue and
// priority band.
func brokerQueue(name, band string) string {
	return fmt.Sprintf("%s.%s", name, band)
}

// priorityBand buckets a job priority into a band: <=1 critical, <=5
// default, everything else low.
func priorityBand(priority int) string {
	switch {
	case priority <= 1:
		return bandCritical
	case priority <= DefaultPriority:
		return bandDefault
	default:
		return bandLow
	}
}

// BrokerQueues returns the weighted broker queue set for one logical queue.
// The worker pool for that queue consumes exactly these, preferring the
// critical band roughly 6:3:1 over default and low.
func BrokerQueues(name string) map[string]int {
	return map[string]int{
		brokerQueue(name, bandCritical): 6,
		brokerQueue(name, bandDefault):  3,
		brokerQueue(name, bandLow):      1,
	}
}
