package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T) (*scheduler, *pool[TCB]) {
	t.Helper()
	tasks := newPool[TCB](8, tcbMagic)
	return newScheduler(tasks), tasks
}

func allocTCB(t *testing.T, tasks *pool[TCB], priority int) int32 {
	t.Helper()
	idx, id, ok := tasks.alloc()
	require.True(t, ok)
	tcb := tasks.at(idx)
	tcb.id = TaskID(id)
	tcb.priority = priority
	tcb.resetLinks()
	return idx
}

func TestSchedulerReadyMaskTracksBucketOccupancy(t *testing.T) {
	s, tasks := newTestScheduler(t)
	require.Equal(t, -1, s.highestReady())

	low := allocTCB(t, tasks, 200)
	s.enqueueReady(low)
	require.Equal(t, 200, s.highestReady())

	high := allocTCB(t, tasks, 10)
	s.enqueueReady(high)
	require.Equal(t, 10, s.highestReady(), "lower numeric priority must win")

	s.unlinkReady(high)
	require.Equal(t, 200, s.highestReady(), "mask bit must clear once the bucket empties")
}

func TestSchedulerFIFOWithinPriority(t *testing.T) {
	s, tasks := newTestScheduler(t)
	a := allocTCB(t, tasks, 50)
	b := allocTCB(t, tasks, 50)
	c := allocTCB(t, tasks, 50)
	s.enqueueReady(a)
	s.enqueueReady(b)
	s.enqueueReady(c)

	require.Equal(t, a, s.popHighest())
	require.Equal(t, b, s.popHighest())
	require.Equal(t, c, s.popHighest())
	require.Equal(t, int32(noIndex), s.popHighest())
}

func TestSchedulerWouldPreempt(t *testing.T) {
	s, tasks := newTestScheduler(t)
	require.True(t, s.wouldPreempt(100), "no current task means anything is a preemption")

	cur := allocTCB(t, tasks, 50)
	tasks.at(cur).state = TaskRunning
	s.current = cur

	require.True(t, s.wouldPreempt(10), "higher priority (lower number) than current should preempt")
	require.False(t, s.wouldPreempt(100), "lower priority than current should not preempt")

	tasks.at(cur).mode = ModeNoPreempt
	require.False(t, s.wouldPreempt(1), "ModeNoPreempt on current blocks any preemption")
}

func TestSchedulerRescheduleReenqueuesPreemptedRunningTask(t *testing.T) {
	s, tasks := newTestScheduler(t)
	idle := allocTCB(t, tasks, MaxPriority)
	s.idle = idle
	s.current = idle
	tasks.at(idle).state = TaskRunning

	higher := allocTCB(t, tasks, 5)
	s.enqueueReady(higher)

	switched := s.reschedule()
	require.True(t, switched)
	require.Equal(t, higher, s.current)
	require.Equal(t, TaskRunning, tasks.at(higher).state)
	require.Equal(t, TaskReady, tasks.at(idle).state, "the preempted task returns to Ready, not Blocked")
	require.Equal(t, uint64(1), s.contextSwitches)
}
