package kernel

// TimerEvAfter arms a one-shot timer that sends events to the calling task
// after ticks ticks.
func (k *Kernel) TimerEvAfter(ticks uint64, events uint32) (uint32, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.exit()
	if ticks == 0 {
		return 0, ErrIllTicks
	}
	tcb := k.tasks.at(k.scheduler.current)
	id, ok := k.timers.armEvents(TimerOneShot, k.tickCount+ticks, 0, tcb.id, events)
	if !ok {
		return 0, ErrNoTimers
	}
	return id, nil
}

// TimerEvEvery arms a periodic timer that sends events to the calling
// task every ticks ticks.
func (k *Kernel) TimerEvEvery(ticks uint64, events uint32) (uint32, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.exit()
	if ticks == 0 {
		return 0, ErrIllTicks
	}
	tcb := k.tasks.at(k.scheduler.current)
	id, ok := k.timers.armEvents(TimerPeriodic, k.tickCount+ticks, ticks, tcb.id, events)
	if !ok {
		return 0, ErrNoTimers
	}
	return id, nil
}

// TimerEvWhen arms a one-shot timer at an absolute wall-clock expiry,
// converted to a monotonic tick via the current (date, time) calibration.
// An expiry already in the past fires at the next Tick.
func (k *Kernel) TimerEvWhen(date, timeOfDay, subTicks uint32, events uint32) (uint32, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.exit()
	expire := k.wall.toAbsoluteTicks(date, timeOfDay, subTicks)
	if expire < k.tickCount {
		expire = k.tickCount
	}
	tcb := k.tasks.at(k.scheduler.current)
	id, ok := k.timers.armEvents(TimerAbsolute, expire, 0, tcb.id, events)
	if !ok {
		return 0, ErrNoTimers
	}
	return id, nil
}

// TimerWkAfter blocks the calling task until ticks ticks have elapsed.
func (k *Kernel) TimerWkAfter(ticks uint64) error {
	if err := k.enter(); err != nil {
		return err
	}
	if ticks == 0 {
		k.exit()
		return ErrIllTicks
	}
	_, err := k.blockCurrent(waitSuspendSelf, 0, ticks)
	k.exit()
	return err
}

// TimerWkWhen blocks the calling task until the given wall-clock deadline.
func (k *Kernel) TimerWkWhen(date, timeOfDay, subTicks uint32) error {
	if err := k.enter(); err != nil {
		return err
	}
	expire := k.wall.toAbsoluteTicks(date, timeOfDay, subTicks)
	now := k.tickCount
	var delta uint64
	if expire > now {
		delta = expire - now
	} else {
		delta = 1 // past deadline: fire at the next Tick
	}
	_, err := k.blockCurrent(waitSuspendSelf, 0, delta)
	k.exit()
	return err
}

// TimerCancel removes an armed timer. If it was the head of the active
// list, the next alarm is reprogrammed.
func (k *Kernel) TimerCancel(id uint32) error {
	if err := k.enter(); err != nil {
		return err
	}
	defer k.exit()
	if !k.timers.cancel(id) {
		return ErrBadTimerID
	}
	return nil
}

// TimerGet reads the current wall-clock correspondence.
func (k *Kernel) TimerGet() (date, timeOfDay uint32, err error) {
	if err := k.enter(); err != nil {
		return 0, 0, err
	}
	defer k.exit()
	date, timeOfDay = k.wall.get()
	return date, timeOfDay, nil
}

// TimerSet writes the wall-clock correspondence, calibrated against the
// kernel's current tick count. It does not affect any already-armed
// timer's monotonic expiry.
func (k *Kernel) TimerSet(date, timeOfDay uint32) error {
	if err := k.enter(); err != nil {
		return err
	}
	defer k.exit()
	k.wall.set(date, timeOfDay, k.tickCount)
	return nil
}
