package kernel

// Kernel aggregates the task table, scheduler, timer service, semaphore
// and queue pools, and the message-buffer arena behind a single critical
// section, exposing the public call surface described across §4 of the
// supervisory contract this package implements.
type Kernel struct {
	cfg   config
	port  Port
	state *fastState
	crit  *critSection

	tasks   *pool[TCB]
	sems    *pool[semBlock]
	queues  *pool[queueBlock]
	timers  *timerService
	arena   *msgArena
	wall    *wallClock
	metrics *metricsCounters

	scheduler *scheduler
	tickCount uint64
}

// New constructs a Kernel bound to port, with pool sizes and tick rate
// taken from opts (or the static configuration defaults: 64 tasks, 64
// timers, 128 semaphores, 32 queues, 2048 buffer slots, 100 Hz).
func New(port Port, opts ...Option) *Kernel {
	cfg := resolveOptions(opts)
	tasks := newPool[TCB](cfg.maxTasks, tcbMagic)
	k := &Kernel{
		cfg:     cfg,
		port:    port,
		state:   newFastState(),
		tasks:   tasks,
		sems:    newPool[semBlock](cfg.maxSems, semMagic),
		queues:  newPool[queueBlock](cfg.maxQueues, queueMagic),
		arena:   newMsgArena(cfg.maxBuffers),
		wall:    &wallClock{ticksPerSecond: uint64(cfg.tickRateHz)},
		metrics: newMetricsCounters(cfg.metricsEnabled),
	}
	k.timers = newTimerService(cfg.maxTimers, port)
	k.scheduler = newScheduler(tasks)
	k.crit = newCritSection(port)
	return k
}

// Init brings up the idle task and transitions the kernel to StateReady.
// It is the one-time init sweep; a second call returns
// ErrAlreadyInitialized.
func (k *Kernel) Init() error {
	if !k.state.TryTransition(StateUninit, StateReady) {
		return ErrAlreadyInitialized
	}
	idx, id, ok := k.tasks.alloc()
	if !ok {
		k.state.Store(StateUninit)
		return ErrNoTCB
	}
	tcb := k.tasks.at(idx)
	tcb.magic = tcbMagic
	tcb.id = TaskID(id)
	tcb.name = "idle"
	tcb.priority = MaxPriority
	tcb.state = TaskRunning
	tcb.resetLinks()
	k.scheduler.idle = idx
	k.scheduler.current = idx
	logDebug("kernel", "initialized", 0, 0)
	return nil
}

// Shutdown transitions the kernel to StateTerminated. Every subsystem call
// made afterward returns ErrLoopNotRunning.
func (k *Kernel) Shutdown() error {
	if !k.state.TryTransition(StateReady, StateTerminated) {
		return ErrLoopNotRunning
	}
	logDebug("kernel", "shutdown", 0, 0)
	return nil
}

func (k *Kernel) enter() error {
	if k.state.Load() != StateReady {
		return ErrLoopNotRunning
	}
	k.crit.Enter()
	return nil
}

func (k *Kernel) exit() {
	k.crit.Exit(k.dispatchPending)
}

func (k *Kernel) dispatchPending() {
	k.scheduler.reschedule()
}

func (k *Kernel) taskIndex(id TaskID) (int32, bool) {
	return k.tasks.findByID(uint32(id))
}

// NowTicks returns the kernel's own monotonic tick counter, advanced once
// per Tick call. It is distinct from (and authoritative over) whatever the
// Port's own NowTicks reports: the tick pipeline's job is exactly to
// "advance tick_count", so the kernel keeps that counter itself rather
// than re-deriving it from the port on every timer arithmetic op.
func (k *Kernel) NowTicks() uint64 {
	return k.tickCount
}

// --- blocking / waking -----------------------------------------------

// blockCurrent suspends the calling goroutine on the current task's wake
// channel until a concurrent call (SemV, EvSend, QueueSend/Broadcast, or a
// Tick-driven timer expiry) resumes it. It releases the critical section
// while parked so other goroutines — standing in for other tasks or an
// interrupt source — can make progress, and reacquires it before
// returning, so callers observe the same critical-section discipline as
// every other public call.
func (k *Kernel) blockCurrent(kind waitKind, objID uint32, timeoutTicks uint64) (uint32, error) {
	cur := k.scheduler.current
	tcb := k.tasks.at(cur)
	tcb.waitOn = kind
	tcb.waitObjID = objID
	if kind == waitSuspendSelf {
		tcb.state = TaskSuspended
	} else {
		tcb.state = TaskBlocked
	}
	if kind == waitEvent || kind == waitSuspendSelf {
		// Semaphore and queue waits already linked the task into their
		// own wait queue before calling in here; resetting links would
		// clobber that. Event and timed-suspend waits never join a
		// structural list, so their links are simply cleared.
		tcb.resetLinks()
	}
	if tcb.wakeCh == nil {
		tcb.wakeCh = make(chan wakeResult, 1)
	}
	if timeoutTicks > 0 {
		if tid, ok := k.timers.armWake(TimerOneShot, k.tickCount+timeoutTicks, 0, tcb.id); ok {
			tcb.timerID = tid
		}
	}
	k.scheduler.current = noIndex
	k.crit.requestSwitch()
	ch := tcb.wakeCh
	k.crit.Exit(k.dispatchPending)
	res := <-ch
	k.crit.Enter()
	return res.value, res.err
}

// wakeWaiterValue resumes a blocked task: cancels any armed timeout,
// clears wait bookkeeping, moves it to the tail of its ready bucket, and
// delivers value/err to the parked blockCurrent call.
func (k *Kernel) wakeWaiterValue(idx int32, value uint32, err error) {
	tcb := k.tasks.at(idx)
	if tcb.timerID != 0 {
		k.timers.cancelForTask(tcb.timerID)
	}
	tcb.clearWait()
	k.scheduler.enqueueReady(idx)
	k.crit.requestSwitch()
	if tcb.wakeCh != nil {
		select {
		case tcb.wakeCh <- wakeResult{value: value, err: err}:
		default:
		}
	}
}

func (k *Kernel) wakeWaiter(idx int32, err error) {
	k.wakeWaiterValue(idx, 0, err)
}

// failWait is wakeWaiter under another name, used at call sites (delete
// paths) that resume a waiter with an error rather than a success value —
// named separately so those call sites read as what they intend.
func (k *Kernel) failWait(idx int32, err error) {
	k.wakeWaiterValue(idx, 0, err)
}

// forceWakeError resumes a blocked task's goroutine with an error without
// making it Ready — used only by TaskDelete, which immediately frees the
// task's slot.
func (k *Kernel) forceWakeError(idx int32, err error) {
	tcb := k.tasks.at(idx)
	if tcb.timerID != 0 {
		k.timers.cancelForTask(tcb.timerID)
	}
	tcb.clearWait()
	if tcb.wakeCh != nil {
		select {
		case tcb.wakeCh <- wakeResult{err: err}:
		default:
		}
	}
}

// unlinkFromWait removes idx from whichever structural wait queue its
// waitOn names (semaphore or queue; event waits are not linked anywhere
// but the TCB itself).
func (k *Kernel) unlinkFromWait(idx int32) {
	tcb := k.tasks.at(idx)
	switch tcb.waitOn {
	case waitSemaphore:
		if sIdx, ok := k.sems.findByID(tcb.waitObjID); ok {
			k.sems.at(sIdx).waiters.remove(idx)
		}
	case waitMsgQueue:
		if qIdx, ok := k.queues.findByID(tcb.waitObjID); ok {
			k.queues.at(qIdx).recvWaiters.remove(idx)
		}
	}
}

// --- tick pipeline -----------------------------------------------------

// Tick is the single interrupt-context entry point: it advances the
// kernel's tick counter by one and drains every timer whose expiry has
// been reached, firing each in expiry (then arrival) order.
func (k *Kernel) Tick() {
	if k.state.Load() != StateReady {
		return
	}
	k.crit.Enter()
	k.tickCount++
	now := k.tickCount
	k.metrics.incTick()
	if k.scheduler.current != noIndex && k.tasks.inUse(k.scheduler.current) {
		cur := k.tasks.at(k.scheduler.current)
		if cur.mode.has(ModeTimeSlice) {
			cur.sliceBudget--
			if cur.sliceBudget <= 0 {
				if cur.sliceReset > 0 {
					cur.sliceBudget = cur.sliceReset
				} else {
					cur.sliceBudget = 1
				}
				k.crit.requestSwitch()
			}
		}
	}
	k.timers.expired(now, func(tb *timerBlock) {
		k.metrics.incTimerFire()
		switch tb.action {
		case actionSendEvents:
			k.handleSendEvents(tb)
		case actionWakeTask:
			k.handleWakeTask(tb)
		}
	})
	k.crit.Exit(k.dispatchPending)
}

// Drive advances a HostSimPort's clock by n ticks, calling Tick once per
// tick — the two steps (hardware counter increments, ISR invokes the
// single tick entry point) a real SysTick handler performs in one breath.
func (k *Kernel) Drive(port *HostSimPort, n uint64) {
	for i := uint64(0); i < n; i++ {
		port.AdvanceTicks(1)
		k.Tick()
	}
}

func (k *Kernel) handleSendEvents(tb *timerBlock) {
	idx, ok := k.taskIndex(tb.targetTask)
	if !ok {
		logWarn("timer", "expired timer's target task no longer exists", uint32(tb.targetTask), tb.id, ErrBadID)
		return // target freed; silently dropped per the firing semantics
	}
	k.evSendIdx(idx, tb.eventMask)
}

func (k *Kernel) handleWakeTask(tb *timerBlock) {
	idx, ok := k.taskIndex(tb.targetTask)
	if !ok {
		logWarn("timer", "expired timer's target task no longer exists", uint32(tb.targetTask), tb.id, ErrBadID)
		return
	}
	tcb := k.tasks.at(idx)
	if tcb.timerID != tb.id {
		return // stale: this wait was already resolved by something else
	}
	switch tcb.waitOn {
	case waitSuspendSelf:
		k.wakeWaiterValue(idx, 0, nil)
	case waitSemaphore, waitMsgQueue, waitEvent:
		k.unlinkFromWait(idx)
		k.wakeWaiterValue(idx, 0, ErrTimeout)
	}
}

// --- metrics -------------------------------------------------------------

// Metrics returns a snapshot of runtime counters. Meaningful only when the
// kernel was constructed with WithMetrics(true); otherwise every field is
// zero.
func (k *Kernel) Metrics() Metrics {
	var cs uint64
	if k.metrics.enabled {
		k.crit.Enter()
		cs = k.scheduler.contextSwitches
		k.crit.Exit(nil)
	}
	return Metrics{
		Ticks:           k.metrics.ticks.Load(),
		ContextSwitches: cs,
		TimerFires:      k.metrics.timerFires.Load(),
		TaskCreates:     k.metrics.taskCreates.Load(),
		SemWaits:        k.metrics.semWaits.Load(),
		QueueSends:      k.metrics.queueSends.Load(),
		QueueReceives:   k.metrics.queueReceives.Load(),
		EventSends:      k.metrics.eventSends.Load(),
	}
}
