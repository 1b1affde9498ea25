package kernel

// QueueCreate reserves capacity slots in the shared message-buffer arena
// for a new queue, ordered FIFO or by priority per flags.
func (k *Kernel) QueueCreate(name string, capacity int, flags ModeBits) (uint32, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.exit()
	return k.queueCreate(name, capacity, flags)
}

// QueueDelete releases a queue's arena slots and resumes every waiting
// receiver with ErrObjDeleted.
func (k *Kernel) QueueDelete(id uint32) error {
	if err := k.enter(); err != nil {
		return err
	}
	defer k.exit()
	return k.queueDelete(id)
}

// QueueIdent resolves a queue name to its id.
func (k *Kernel) QueueIdent(name string) (uint32, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.exit()
	return k.queueIdent(name)
}

// QueueSend appends msg at the tail, returning ErrQFull if the queue is
// already at capacity.
func (k *Kernel) QueueSend(id uint32, msg Message) error {
	if err := k.enter(); err != nil {
		return err
	}
	defer k.exit()
	k.metrics.incQueueSend()
	return k.queueSend(id, msg, false)
}

// QueueUrgent inserts msg at the receive end, so it is the next message a
// receiver sees, ahead of everything already queued.
func (k *Kernel) QueueUrgent(id uint32, msg Message) error {
	if err := k.enter(); err != nil {
		return err
	}
	defer k.exit()
	k.metrics.incQueueSend()
	return k.queueSend(id, msg, true)
}

// QueueReceive dequeues the head message, blocking (optionally with a
// timeout) if the queue is empty, unless ModeNoWait is set.
func (k *Kernel) QueueReceive(id uint32, flags ModeBits, timeoutTicks uint64) (Message, error) {
	if err := k.enter(); err != nil {
		return Message{}, err
	}
	k.metrics.incQueueReceive()
	msg, err := k.queueReceive(id, flags, timeoutTicks)
	k.exit()
	return msg, err
}

// QueueBroadcast delivers msg directly to every currently-waiting
// receiver (up to the queue's capacity of them) and reports how many were
// woken; with no waiters it behaves exactly like QueueSend.
func (k *Kernel) QueueBroadcast(id uint32, msg Message) (int, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.exit()
	return k.queueBroadcast(id, msg)
}
