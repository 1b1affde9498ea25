package kernel

const queueMagic uint32 = 0x5143_4231 // "QCB1"

// queueBlock is a fixed-capacity circular message queue. Its blocking
// receive side is mediated by an internal available-to-receive counter and
// wait queue that behave exactly like the semaphore primitive described
// for the rest of the kernel (P on empty, V on send) — it is implemented
// inline here rather than by allocating a semBlock from the semaphore
// pool, since a QCB's internal semaphore is never named or shared outside
// the QCB that owns it.
type queueBlock struct {
	magic    uint32
	id       uint32
	name     string
	capacity int
	order    waitOrderKind

	bufBase int32 // offset into the shared msgArena
	nextin  int
	nextout int
	count   int // current_messages; also the internal semaphore's count

	recvWaiters waitQueue
}

func (k *Kernel) queueCreate(name string, capacity int, flags ModeBits) (uint32, error) {
	if capacity <= 0 {
		return 0, ErrBadParam
	}
	offset, ok := k.arena.alloc(capacity)
	if !ok {
		return 0, ErrNoMGB
	}
	idx, id, ok := k.queues.alloc()
	if !ok {
		k.arena.release(offset, capacity)
		return 0, ErrNoQCB
	}
	qb := k.queues.at(idx)
	qb.magic = queueMagic
	qb.id = id
	qb.name = name
	qb.capacity = capacity
	qb.order = waitOrder(flags)
	qb.bufBase = offset
	qb.nextin, qb.nextout, qb.count = 0, 0, 0
	qb.recvWaiters = newWaitQueue(k.tasks)
	return id, nil
}

func (k *Kernel) queueDelete(id uint32) error {
	idx, ok := k.queues.findByID(id)
	if !ok {
		return ErrBadID
	}
	qb := k.queues.at(idx)
	for _, wIdx := range qb.recvWaiters.drain() {
		logWarn("queue", "queue deleted with a receiver blocked on it", uint32(k.tasks.at(wIdx).id), id, ErrObjDeleted)
		k.failWait(wIdx, ErrObjDeleted)
	}
	k.arena.release(qb.bufBase, qb.capacity)
	k.queues.release(idx)
	return nil
}

func (k *Kernel) queueIdent(name string) (uint32, error) {
	var found uint32
	k.queues.each(func(idx int32, qb *queueBlock) {
		if found == 0 && qb.name == name {
			found = qb.id
		}
	})
	if found == 0 {
		return 0, ErrObjNotFound
	}
	return found, nil
}

func (k *Kernel) queueSend(id uint32, msg Message, urgent bool) error {
	idx, ok := k.queues.findByID(id)
	if !ok {
		return ErrBadID
	}
	qb := k.queues.at(idx)
	if qb.count >= qb.capacity {
		return ErrQFull
	}
	if urgent {
		qb.nextout = (qb.nextout - 1 + qb.capacity) % qb.capacity
		*k.arena.at(qb.bufBase, qb.nextout) = msg
	} else {
		*k.arena.at(qb.bufBase, qb.nextin) = msg
		qb.nextin = (qb.nextin + 1) % qb.capacity
	}
	qb.count++
	if !qb.recvWaiters.empty() {
		wIdx := qb.recvWaiters.popHead()
		k.wakeWaiter(wIdx, nil)
	}
	return nil
}

// queueReceive implements the fast-path/slow-path/retry contract: if a
// message is already available, copy and return immediately; otherwise
// block on the internal semaphore and, on a normal (non-direct-delivery)
// wake, retry the fast path under the critical section exactly once.
func (k *Kernel) queueReceive(id uint32, flags ModeBits, timeoutTicks uint64) (Message, error) {
	idx, ok := k.queues.findByID(id)
	if !ok {
		return Message{}, ErrBadID
	}
	qb := k.queues.at(idx)
	if msg, ok := k.tryDequeue(qb); ok {
		return msg, nil
	}
	if flags.has(ModeNoWait) {
		return Message{}, ErrNoMsg
	}
	cur := k.scheduler.current
	qb.recvWaiters.insert(cur, qb.order)
	if _, err := k.blockCurrent(waitMsgQueue, id, timeoutTicks); err != nil {
		return Message{}, err
	}
	tcb := k.tasks.at(cur)
	if tcb.directMsg != nil {
		m := *tcb.directMsg
		tcb.directMsg = nil
		return m, nil
	}
	if msg, ok := k.tryDequeue(qb); ok {
		return msg, nil
	}
	return Message{}, ErrNoMsg
}

func (k *Kernel) tryDequeue(qb *queueBlock) (Message, bool) {
	if qb.count == 0 {
		return Message{}, false
	}
	msg := *k.arena.at(qb.bufBase, qb.nextout)
	qb.nextout = (qb.nextout + 1) % qb.capacity
	qb.count--
	return msg, true
}

// queueBroadcast delivers msg directly to every currently-waiting receiver
// (up to capacity of them), bypassing the ring buffer entirely: each
// waiter's retry after waking finds its message already attached rather
// than re-reading from nextout. With no waiters, it behaves as queueSend.
func (k *Kernel) queueBroadcast(id uint32, msg Message) (int, error) {
	idx, ok := k.queues.findByID(id)
	if !ok {
		return 0, ErrBadID
	}
	qb := k.queues.at(idx)
	if qb.recvWaiters.empty() {
		if err := k.queueSend(id, msg, false); err != nil {
			return 0, err
		}
		return 0, nil
	}
	woken := 0
	for !qb.recvWaiters.empty() && woken < qb.capacity {
		wIdx := qb.recvWaiters.popHead()
		copied := msg
		k.tasks.at(wIdx).directMsg = &copied
		k.wakeWaiter(wIdx, nil)
		woken++
	}
	return woken, nil
}
