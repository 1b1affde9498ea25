package kernel

import "time"

// TaskCreate allocates a TCB and validates priority/stack size, leaving the
// new task in TaskCreated. It does not make the task Ready; call TaskStart
// for that.
func (k *Kernel) TaskCreate(name string, priority, stackBytes int, flags ModeBits) (TaskID, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.exit()
	if priority < MinPriority || priority > MaxPriority {
		return 0, ErrBadPriority
	}
	if stackBytes == 0 {
		return 0, ErrNoStack
	}
	if stackBytes < MinStackBytes {
		return 0, ErrTinyStack
	}
	idx, id, ok := k.tasks.alloc()
	if !ok {
		return 0, ErrNoTCB
	}
	tcb := k.tasks.at(idx)
	tcb.magic = tcbMagic
	tcb.id = TaskID(id)
	tcb.name = name
	tcb.priority = priority
	tcb.mode = flags
	tcb.state = TaskCreated
	tcb.stackBytes = stackBytes
	tcb.sliceReset = 10
	tcb.sliceBudget = 10
	tcb.createdAt = time.Now()
	tcb.resetLinks()
	k.metrics.incTaskCreate()
	logDebug("task", "created", uint32(tcb.id), 0)
	return tcb.id, nil
}

// TaskStart moves a Created task to Ready, installing its entry point and
// argument vector, and requests a preemption if the new task outranks the
// currently running one and mode does not disable preemption.
func (k *Kernel) TaskStart(id TaskID, mode ModeBits, entry func(Args), args Args) error {
	if err := k.enter(); err != nil {
		return err
	}
	defer k.exit()
	idx, ok := k.taskIndex(id)
	if !ok {
		return ErrBadID
	}
	tcb := k.tasks.at(idx)
	if tcb.state != TaskCreated {
		return ErrActive
	}
	tcb.mode = mode
	tcb.entry = entry
	tcb.args = args
	preempts := k.scheduler.wouldPreempt(tcb.priority)
	k.scheduler.enqueueReady(idx)
	if preempts {
		k.crit.requestSwitch()
	}
	return nil
}

// TaskSuspend moves a Ready, Running, or Created task to Suspended.
// Suspending the running task schedules another before returning.
// Suspending an already-blocked task is not supported by this core — it
// returns ErrNotActive — since there is no first-class "suspended while
// blocked" wait-queue representation specified for that case.
func (k *Kernel) TaskSuspend(id TaskID) error {
	if err := k.enter(); err != nil {
		return err
	}
	defer k.exit()
	idx, ok := k.taskIndex(id)
	if !ok {
		return ErrBadID
	}
	tcb := k.tasks.at(idx)
	switch tcb.state {
	case TaskSuspended:
		return ErrSuspended
	case TaskBlocked, TaskDeleted, TaskFree:
		return ErrNotActive
	}
	wasCurrent := idx == k.scheduler.current
	if tcb.state == TaskReady {
		k.scheduler.unlinkReady(idx)
	}
	tcb.state = TaskSuspended
	if wasCurrent {
		k.scheduler.current = noIndex
		k.crit.requestSwitch()
	}
	return nil
}

// TaskResume moves a Suspended task to Ready.
func (k *Kernel) TaskResume(id TaskID) error {
	if err := k.enter(); err != nil {
		return err
	}
	defer k.exit()
	idx, ok := k.taskIndex(id)
	if !ok {
		return ErrBadID
	}
	tcb := k.tasks.at(idx)
	if tcb.state != TaskSuspended {
		return ErrNotSuspended
	}
	preempts := k.scheduler.wouldPreempt(tcb.priority)
	k.scheduler.enqueueReady(idx)
	if preempts {
		k.crit.requestSwitch()
	}
	return nil
}

// TaskDelete frees a task's slot, first removing it from any list it
// belongs to and waking it with ErrObjDeleted if it was blocked.
func (k *Kernel) TaskDelete(id TaskID) error {
	if err := k.enter(); err != nil {
		return err
	}
	defer k.exit()
	idx, ok := k.taskIndex(id)
	if !ok {
		return ErrBadID
	}
	tcb := k.tasks.at(idx)
	wasCurrent := idx == k.scheduler.current
	switch tcb.state {
	case TaskReady:
		k.scheduler.unlinkReady(idx)
	case TaskBlocked:
		k.unlinkFromWait(idx)
		k.forceWakeError(idx, ErrObjDeleted)
	}
	k.tasks.release(idx)
	if wasCurrent {
		k.scheduler.current = noIndex
		k.crit.requestSwitch()
	}
	return nil
}

// TaskRestart reinitializes a task's entry point and argument vector in
// place and transitions it to Ready, without freeing and reallocating its
// slot. Valid from any state except Created or Free (see the design notes
// on the source's inconsistent restart-from-Created behavior); restarting
// a Blocked task is also rejected, for the same reason TaskSuspend rejects
// it.
func (k *Kernel) TaskRestart(id TaskID, entry func(Args), args Args) error {
	if err := k.enter(); err != nil {
		return err
	}
	defer k.exit()
	idx, ok := k.taskIndex(id)
	if !ok {
		return ErrBadID
	}
	tcb := k.tasks.at(idx)
	switch tcb.state {
	case TaskCreated, TaskFree, TaskDeleted, TaskBlocked:
		return ErrNotActive
	}
	wasCurrent := idx == k.scheduler.current
	if tcb.state == TaskReady {
		k.scheduler.unlinkReady(idx)
	}
	tcb.entry = entry
	tcb.args = args
	tcb.pendingEvents, tcb.waitingEvents, tcb.waitCond = 0, 0, 0
	tcb.sliceBudget = tcb.sliceReset
	preempts := wasCurrent || k.scheduler.wouldPreempt(tcb.priority)
	k.scheduler.enqueueReady(idx)
	if wasCurrent {
		k.scheduler.current = noIndex
	}
	if preempts {
		k.crit.requestSwitch()
	}
	return nil
}

// TaskSetPri changes a task's priority, re-linking it into the new bucket
// if it is currently Ready, and returns its previous priority.
func (k *Kernel) TaskSetPri(id TaskID, newPriority int) (int, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.exit()
	if newPriority < MinPriority || newPriority > MaxPriority {
		return 0, ErrBadPriority
	}
	idx, ok := k.taskIndex(id)
	if !ok {
		return 0, ErrBadID
	}
	tcb := k.tasks.at(idx)
	old := tcb.priority
	if tcb.state == TaskReady {
		k.scheduler.unlinkReady(idx)
		tcb.priority = newPriority
		k.scheduler.enqueueReady(idx)
	} else {
		tcb.priority = newPriority
	}
	if idx == k.scheduler.current {
		if top := k.scheduler.highestReady(); top >= 0 && top < newPriority {
			k.crit.requestSwitch()
		}
	}
	return old, nil
}

// TaskMode updates the bits named by mask on the running task to the
// corresponding bits of newMode, returning the previous mode word.
func (k *Kernel) TaskMode(mask, newMode ModeBits) (ModeBits, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.exit()
	idx := k.scheduler.current
	if idx == noIndex || !k.tasks.inUse(idx) {
		return 0, ErrNotActive
	}
	tcb := k.tasks.at(idx)
	old := tcb.mode
	tcb.mode = (tcb.mode &^ mask) | (newMode & mask)
	return old, nil
}

// TaskIdent resolves a task name to its id via linear scan over the active
// set.
func (k *Kernel) TaskIdent(name string) (TaskID, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.exit()
	var found TaskID
	k.tasks.each(func(idx int32, tcb *TCB) {
		if found == 0 && tcb.name == name {
			found = tcb.id
		}
	})
	if found == 0 {
		return 0, ErrObjNotFound
	}
	return found, nil
}

// TaskGetReg reads one of the four argument registers.
func (k *Kernel) TaskGetReg(id TaskID, reg int) (uintptr, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.exit()
	if reg < 0 || reg >= regCount {
		return 0, ErrRegNum
	}
	idx, ok := k.taskIndex(id)
	if !ok {
		return 0, ErrBadID
	}
	return k.tasks.at(idx).regs[reg], nil
}

// TaskSetReg writes one of the four argument registers.
func (k *Kernel) TaskSetReg(id TaskID, reg int, val uintptr) error {
	if err := k.enter(); err != nil {
		return err
	}
	defer k.exit()
	if reg < 0 || reg >= regCount {
		return ErrRegNum
	}
	idx, ok := k.taskIndex(id)
	if !ok {
		return ErrBadID
	}
	k.tasks.at(idx).regs[reg] = val
	return nil
}

// TaskState reports a task's current lifecycle state, for tests and
// diagnostics.
func (k *Kernel) TaskState(id TaskID) (TaskState, error) {
	if err := k.enter(); err != nil {
		return TaskFree, err
	}
	defer k.exit()
	idx, ok := k.taskIndex(id)
	if !ok {
		return TaskFree, ErrBadID
	}
	return k.tasks.at(idx).state, nil
}
