package kernel

// evSend ORs events into target's pending mask; if target is blocked in
// ev_receive and its condition is now satisfied, it is woken with the
// computed received set and its pending timeout (if any) is cancelled.
// No separate event control-block pool exists — per-task event state lives
// directly on the TCB, since an ECB is one-per-task by definition.
func (k *Kernel) evSend(target TaskID, events uint32) error {
	idx, ok := k.taskIndex(target)
	if !ok {
		return ErrBadID
	}
	k.evSendIdx(idx, events)
	return nil
}

// evSendIdx is the index-based core of evSend, reused by the timer
// service's SendEvents action (which already has a pool index, not a
// freshly-looked-up id).
func (k *Kernel) evSendIdx(idx int32, events uint32) {
	tcb := k.tasks.at(idx)
	tcb.pendingEvents |= events
	if tcb.state != TaskBlocked || tcb.waitOn != waitEvent {
		return
	}
	if !eventMatches(tcb.waitCond, tcb.pendingEvents, tcb.waitingEvents) {
		return
	}
	received := tcb.pendingEvents & tcb.waitingEvents
	if tcb.waitCond.has(ModeConsume) {
		tcb.pendingEvents &^= received
	}
	k.wakeWaiterValue(idx, received, nil)
}

// evReceive sets waiting/condition on the current task, evaluates
// immediately, and only blocks (optionally with a timeout) if not already
// satisfied.
func (k *Kernel) evReceive(events uint32, flags ModeBits, timeoutTicks uint64) (uint32, error) {
	if events == 0 {
		return 0, ErrBadParam
	}
	cur := k.scheduler.current
	tcb := k.tasks.at(cur)
	cond := ModeEventAny
	if flags.has(ModeEventAll) {
		cond = ModeEventAll
	}
	if flags.has(ModeConsume) {
		cond |= ModeConsume
	}
	if eventMatches(cond, tcb.pendingEvents, events) {
		received := tcb.pendingEvents & events
		if cond.has(ModeConsume) {
			tcb.pendingEvents &^= received
		}
		return received, nil
	}
	if flags.has(ModeNoWait) {
		return 0, ErrNoEvents
	}
	tcb.waitingEvents = events
	tcb.waitCond = cond
	received, err := k.blockCurrent(waitEvent, 0, timeoutTicks)
	if err != nil {
		return 0, err
	}
	return received, nil
}
