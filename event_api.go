package kernel

// EvSend ORs events into target's pending mask, waking it if it is
// blocked in EvReceive and its wait condition is now satisfied.
func (k *Kernel) EvSend(target TaskID, events uint32) error {
	if err := k.enter(); err != nil {
		return err
	}
	k.metrics.incEventSend()
	err := k.evSend(target, events)
	k.exit()
	return err
}

// EvReceive waits for events satisfying flags' ANY/ALL condition,
// returning immediately if already satisfied, ErrNoEvents under
// ModeNoWait, or blocking (optionally with a timeout) otherwise.
func (k *Kernel) EvReceive(events uint32, flags ModeBits, timeoutTicks uint64) (uint32, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	received, err := k.evReceive(events, flags, timeoutTicks)
	k.exit()
	return received, err
}
