package kernel

import "sync/atomic"

// Metrics is a point-in-time snapshot of kernel observability counters,
// retrievable via Kernel.Metrics() when the kernel was constructed with
// WithMetrics(true). These are diagnostic only — nothing in the public
// contract depends on them.
type Metrics struct {
	Ticks           uint64
	ContextSwitches uint64
	TimerFires      uint64
	TaskCreates     uint64
	SemWaits        uint64
	QueueSends      uint64
	QueueReceives   uint64
	EventSends      uint64
}

// metricsCounters holds the live atomics backing Metrics; zero value is
// usable whether or not metrics are enabled, so internal increments never
// need a nil check beyond the enabled gate each inc method checks.
type metricsCounters struct {
	enabled         bool
	ticks           atomic.Uint64
	timerFires      atomic.Uint64
	taskCreates     atomic.Uint64
	semWaits        atomic.Uint64
	queueSends      atomic.Uint64
	queueReceives   atomic.Uint64
	eventSends      atomic.Uint64
}

func newMetricsCounters(enabled bool) *metricsCounters {
	return &metricsCounters{enabled: enabled}
}

func (m *metricsCounters) incTick() {
	if m.enabled {
		m.ticks.Add(1)
	}
}

func (m *metricsCounters) incTimerFire() {
	if m.enabled {
		m.timerFires.Add(1)
	}
}

func (m *metricsCounters) incTaskCreate() {
	if m.enabled {
		m.taskCreates.Add(1)
	}
}

func (m *metricsCounters) incSemWait() {
	if m.enabled {
		m.semWaits.Add(1)
	}
}

func (m *metricsCounters) incQueueSend() {
	if m.enabled {
		m.queueSends.Add(1)
	}
}

func (m *metricsCounters) incQueueReceive() {
	if m.enabled {
		m.queueReceives.Add(1)
	}
}

func (m *metricsCounters) incEventSend() {
	if m.enabled {
		m.eventSends.Add(1)
	}
}
