package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestTimerService(t *testing.T) (*timerService, *HostSimPort) {
	t.Helper()
	port := NewHostSimPort()
	return newTimerService(8, port), port
}

func TestTimerServiceInsertSortedOrdersByExpiry(t *testing.T) {
	ts, _ := newTestTimerService(t)
	idLate, _ := ts.armWake(TimerOneShot, 300, 0, 1)
	idEarly, _ := ts.armWake(TimerOneShot, 100, 0, 2)
	idMid, _ := ts.armWake(TimerOneShot, 200, 0, 3)

	var fired []uint32
	ts.expired(1000, func(tb *timerBlock) { fired = append(fired, tb.id) })
	require.Equal(t, []uint32{idEarly, idMid, idLate}, fired, "active list must drain in non-decreasing expiry order")
}

func TestTimerServiceTiesFireInInsertionOrder(t *testing.T) {
	ts, _ := newTestTimerService(t)
	first, _ := ts.armWake(TimerOneShot, 100, 0, 1)
	second, _ := ts.armWake(TimerOneShot, 100, 0, 2)
	third, _ := ts.armWake(TimerOneShot, 100, 0, 3)

	var fired []uint32
	ts.expired(100, func(tb *timerBlock) { fired = append(fired, tb.id) })
	require.Equal(t, []uint32{first, second, third}, fired)
}

func TestTimerServiceOnlyFiresExpiredHeads(t *testing.T) {
	ts, _ := newTestTimerService(t)
	ts.armWake(TimerOneShot, 50, 0, 1)
	ts.armWake(TimerOneShot, 150, 0, 2)

	var fired []uint32
	ts.expired(100, func(tb *timerBlock) { fired = append(fired, tb.id) })
	require.Equal(t, []uint32{1}, fired)

	fired = nil
	ts.expired(150, func(tb *timerBlock) { fired = append(fired, tb.id) })
	require.Equal(t, []uint32{2}, fired)
}

func TestTimerServicePeriodicRearmsAfterFiring(t *testing.T) {
	ts, _ := newTestTimerService(t)
	id, ok := ts.armWake(TimerPeriodic, 100, 100, 7)
	require.True(t, ok)

	var fired []uint32
	ts.expired(100, func(tb *timerBlock) { fired = append(fired, tb.id) })
	require.Equal(t, []uint32{id}, fired)

	idx, ok := ts.pool.findByID(id)
	require.True(t, ok, "a periodic timer must still be live (re-armed), not freed")
	require.Equal(t, uint64(200), ts.pool.at(idx).expireTicks)
}

func TestTimerServiceCancelReprogramsAlarmWhenHeadRemoved(t *testing.T) {
	ts, port := newTestTimerService(t)
	headID, _ := ts.armWake(TimerOneShot, 100, 0, 1)
	ts.armWake(TimerOneShot, 200, 0, 2)
	require.Equal(t, uint64(100), port.NextAlarm())

	require.True(t, ts.cancel(headID))
	require.Equal(t, uint64(200), port.NextAlarm(), "removing the head must reprogram the alarm to the new head")

	require.False(t, ts.cancel(headID), "cancelling twice must fail the second time")
}

func TestTimerServiceExpiredReprogramsAlarmToRemainingHead(t *testing.T) {
	ts, port := newTestTimerService(t)
	ts.armWake(TimerOneShot, 100, 0, 1)
	ts.armWake(TimerOneShot, 200, 0, 2)

	ts.expired(100, func(tb *timerBlock) {})
	require.Equal(t, uint64(200), port.NextAlarm())
}
