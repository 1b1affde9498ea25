package kernel

const semMagic uint32 = 0x5343_4231 // "SCB1"

// MaxSemaphoreCount bounds a counting semaphore's count, matching the
// "max count is bounded" contract.
const MaxSemaphoreCount = 1 << 30

// semBlock is a counting semaphore: count plus a wait queue of blocked
// P-callers, ordered FIFO or by ascending priority number per its creation
// flags.
type semBlock struct {
	magic    uint32
	id       uint32
	name     string
	count    int
	maxCount int
	order    waitOrderKind
	waiters  waitQueue

	pCalls int
	vCalls int
}

// semCreate allocates a semaphore with the given initial count and
// ordering/flags. ModeWaitPriority selects priority ordering; otherwise
// FIFO.
func (k *Kernel) semCreate(name string, count, maxCount int, flags ModeBits) (uint32, error) {
	if maxCount <= 0 || count < 0 || count > maxCount {
		return 0, ErrBadParam
	}
	if maxCount > MaxSemaphoreCount {
		return 0, ErrBadParam
	}
	idx, id, ok := k.sems.alloc()
	if !ok {
		return 0, ErrNoSem
	}
	sb := k.sems.at(idx)
	sb.magic = semMagic
	sb.id = id
	sb.name = name
	sb.count = count
	sb.maxCount = maxCount
	sb.order = waitOrder(flags)
	sb.waiters = newWaitQueue(k.tasks)
	return id, nil
}

func (k *Kernel) semDelete(id uint32) error {
	idx, ok := k.sems.findByID(id)
	if !ok {
		return ErrBadID
	}
	sb := k.sems.at(idx)
	for _, wIdx := range sb.waiters.drain() {
		logWarn("sem", "semaphore deleted with a waiter blocked on it", uint32(k.tasks.at(wIdx).id), id, ErrObjDeleted)
		k.failWait(wIdx, ErrObjDeleted)
	}
	k.sems.release(idx)
	return nil
}

func (k *Kernel) semIdent(name string) (uint32, error) {
	var found uint32
	k.sems.each(func(idx int32, sb *semBlock) {
		if found == 0 && sb.name == name {
			found = sb.id
		}
	})
	if found == 0 {
		return 0, ErrObjNotFound
	}
	return found, nil
}

// semP is P (wait/decrement). timeoutTicks == 0 with ModeNoWait returns
// ErrNoSem immediately on an empty semaphore; timeoutTicks == 0 without
// ModeNoWait blocks forever (no timer armed).
func (k *Kernel) semP(id uint32, flags ModeBits, timeoutTicks uint64) error {
	idx, ok := k.sems.findByID(id)
	if !ok {
		return ErrBadID
	}
	sb := k.sems.at(idx)
	if sb.count > 0 {
		sb.count--
		sb.pCalls++
		return nil
	}
	if flags.has(ModeNoWait) {
		return ErrNoSem
	}
	cur := k.scheduler.current
	sb.waiters.insert(cur, sb.order)
	_, err := k.blockCurrent(waitSemaphore, id, timeoutTicks)
	return err
}

// semV is V (signal/increment): direct handoff to the head waiter if one
// exists (count is not touched), else increment count, failing at the max.
func (k *Kernel) semV(id uint32) error {
	idx, ok := k.sems.findByID(id)
	if !ok {
		return ErrBadID
	}
	sb := k.sems.at(idx)
	sb.vCalls++
	if !sb.waiters.empty() {
		wIdx := sb.waiters.popHead()
		k.wakeWaiter(wIdx, nil)
		return nil
	}
	if sb.count >= sb.maxCount {
		return ErrSemFull
	}
	sb.count++
	return nil
}
