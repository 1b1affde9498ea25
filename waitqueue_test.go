package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWaitQueueFIFOAppendsAtTail(t *testing.T) {
	tasks := newPool[TCB](8, tcbMagic)
	q := newWaitQueue(tasks)
	a := allocTCB(t, tasks, 50)
	b := allocTCB(t, tasks, 50)
	c := allocTCB(t, tasks, 50)

	q.insert(a, orderFIFO)
	q.insert(b, orderFIFO)
	q.insert(c, orderFIFO)

	require.Equal(t, a, q.popHead())
	require.Equal(t, b, q.popHead())
	require.Equal(t, c, q.popHead())
	require.True(t, q.empty())
}

func TestWaitQueuePriorityOrdersByAscendingNumberTiesArrival(t *testing.T) {
	tasks := newPool[TCB](8, tcbMagic)
	q := newWaitQueue(tasks)
	p2 := allocTCB(t, tasks, 2)
	p5a := allocTCB(t, tasks, 5)
	p5b := allocTCB(t, tasks, 5)
	p3 := allocTCB(t, tasks, 3)

	q.insert(p2, orderPriority)
	q.insert(p5a, orderPriority)
	q.insert(p5b, orderPriority)
	q.insert(p3, orderPriority)

	require.Equal(t, p2, q.popHead())
	require.Equal(t, p3, q.popHead())
	require.Equal(t, p5a, q.popHead(), "equal-priority waiters keep arrival order")
	require.Equal(t, p5b, q.popHead())
}

func TestWaitQueueRemoveFromMiddle(t *testing.T) {
	tasks := newPool[TCB](8, tcbMagic)
	q := newWaitQueue(tasks)
	a := allocTCB(t, tasks, 10)
	b := allocTCB(t, tasks, 10)
	c := allocTCB(t, tasks, 10)
	q.insert(a, orderFIFO)
	q.insert(b, orderFIFO)
	q.insert(c, orderFIFO)

	q.remove(b)
	require.Equal(t, a, q.popHead())
	require.Equal(t, c, q.popHead())
	require.True(t, q.empty())
}

func TestWaitQueueDrainEmptiesAndReturnsAllInOrder(t *testing.T) {
	tasks := newPool[TCB](8, tcbMagic)
	q := newWaitQueue(tasks)
	a := allocTCB(t, tasks, 10)
	b := allocTCB(t, tasks, 10)
	q.insert(a, orderFIFO)
	q.insert(b, orderFIFO)

	drained := q.drain()
	require.Equal(t, []int32{a, b}, drained)
	require.True(t, q.empty())
}
