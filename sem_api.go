package kernel

// SemCreate allocates a counting semaphore with the given initial count,
// a bound on its maximum count, and wait-queue ordering taken from flags
// (ModeWaitPriority selects priority order; otherwise FIFO).
func (k *Kernel) SemCreate(name string, count, maxCount int, flags ModeBits) (uint32, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.exit()
	return k.semCreate(name, count, maxCount, flags)
}

// SemDelete frees a semaphore, resuming every waiter with ErrObjDeleted.
func (k *Kernel) SemDelete(id uint32) error {
	if err := k.enter(); err != nil {
		return err
	}
	defer k.exit()
	return k.semDelete(id)
}

// SemIdent resolves a semaphore name to its id.
func (k *Kernel) SemIdent(name string) (uint32, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.exit()
	return k.semIdent(name)
}

// SemP (wait/decrement) blocks the calling goroutine if the semaphore is
// at zero, per flags/timeoutTicks: ModeNoWait returns ErrNoSem instead of
// blocking; timeoutTicks == 0 without ModeNoWait blocks forever.
func (k *Kernel) SemP(id uint32, flags ModeBits, timeoutTicks uint64) error {
	if err := k.enter(); err != nil {
		return err
	}
	k.metrics.incSemWait()
	err := k.semP(id, flags, timeoutTicks)
	k.exit()
	return err
}

// SemV (signal/increment) hands the semaphore directly to the longest-
// waiting (or highest-priority) blocked caller if one exists, else
// increments count, failing with ErrSemFull at the configured maximum.
func (k *Kernel) SemV(id uint32) error {
	if err := k.enter(); err != nil {
		return err
	}
	defer k.exit()
	return k.semV(id)
}
