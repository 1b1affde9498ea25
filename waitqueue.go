package kernel

// waitQueue is an intrusive doubly-linked list of blocked TCBs, built on
// the same prevIdx/nextIdx fields the scheduler uses for ready buckets —
// a task is only ever on one such list at a time, which is exactly the
// invariant its state field is supposed to witness. It backs both
// semaphore wait queues and (via the internal per-queue semaphore) message
// queue receive-side blocking.
type waitQueue struct {
	tasks *pool[TCB]
	head  int32
	tail  int32
}

func newWaitQueue(tasks *pool[TCB]) waitQueue {
	return waitQueue{tasks: tasks, head: noIndex, tail: noIndex}
}

func (q *waitQueue) empty() bool { return q.head == noIndex }

// insert adds idx per the requested ordering: FIFO appends at the tail;
// Priority inserts before the first entry with a strictly greater priority
// number (i.e. strictly lower urgency), so ties preserve arrival order.
func (q *waitQueue) insert(idx int32, order waitOrderKind) {
	tcb := q.tasks.at(idx)
	tcb.resetLinks()
	if order == orderFIFO {
		q.appendTail(idx)
		return
	}
	if q.head == noIndex {
		q.head, q.tail = idx, idx
		return
	}
	cur := q.head
	for cur != noIndex {
		curTCB := q.tasks.at(cur)
		if curTCB.priority > tcb.priority {
			break
		}
		cur = curTCB.nextIdx
	}
	if cur == noIndex {
		q.appendTail(idx)
		return
	}
	curTCB := q.tasks.at(cur)
	prev := curTCB.prevIdx
	tcb.nextIdx = cur
	tcb.prevIdx = prev
	curTCB.prevIdx = idx
	if prev == noIndex {
		q.head = idx
	} else {
		q.tasks.at(prev).nextIdx = idx
	}
}

func (q *waitQueue) appendTail(idx int32) {
	tcb := q.tasks.at(idx)
	if q.tail == noIndex {
		q.head, q.tail = idx, idx
		tcb.prevIdx, tcb.nextIdx = noIndex, noIndex
		return
	}
	q.tasks.at(q.tail).nextIdx = idx
	tcb.prevIdx = q.tail
	tcb.nextIdx = noIndex
	q.tail = idx
}

// popHead removes and returns the head of the queue, or noIndex if empty.
func (q *waitQueue) popHead() int32 {
	if q.head == noIndex {
		return noIndex
	}
	idx := q.head
	q.remove(idx)
	return idx
}

// remove unlinks idx from wherever it sits in the queue (used for timeout
// and delete paths, not just head-pop).
func (q *waitQueue) remove(idx int32) {
	tcb := q.tasks.at(idx)
	if tcb.prevIdx != noIndex {
		q.tasks.at(tcb.prevIdx).nextIdx = tcb.nextIdx
	} else {
		q.head = tcb.nextIdx
	}
	if tcb.nextIdx != noIndex {
		q.tasks.at(tcb.nextIdx).prevIdx = tcb.prevIdx
	} else {
		q.tail = tcb.prevIdx
	}
	tcb.resetLinks()
}

// drain removes and returns every waiter, head first, emptying the queue.
// Used by sem_delete/queue_delete to resume all waiters with an error.
func (q *waitQueue) drain() []int32 {
	var out []int32
	for idx := q.popHead(); idx != noIndex; idx = q.popHead() {
		out = append(out, idx)
	}
	return out
}
