package kernel

import "time"

// tcbMagic tags a live TCB slot. It is not relied upon for memory safety
// (the arena index already guarantees that), and no lookup checks it.
const tcbMagic uint32 = 0x5443_4231 // "TCB1"

const (
	// MinPriority is the highest-urgency priority value.
	MinPriority = 1
	// MaxPriority is the lowest-urgency priority value.
	MaxPriority = 255
	// MinStackBytes is the smallest stack a task may be created with.
	MinStackBytes = 256
	// regCount is the number of addressable argument registers.
	regCount = 4
)

// TaskID is a dense, generation-stamped task identity. The zero value never
// names a live task.
type TaskID uint32

// TaskState is the task lifecycle state described by the scheduler's state
// machine: Free -> Created -> Ready <-> Running; Running -> Blocked;
// Blocked -> Ready; any -> Suspended; terminal states -> Deleted -> Free.
type TaskState int

const (
	TaskFree TaskState = iota
	TaskCreated
	TaskReady
	TaskRunning
	TaskBlocked
	TaskSuspended
	TaskDeleted
)

func (s TaskState) String() string {
	switch s {
	case TaskFree:
		return "Free"
	case TaskCreated:
		return "Created"
	case TaskReady:
		return "Ready"
	case TaskRunning:
		return "Running"
	case TaskBlocked:
		return "Blocked"
	case TaskSuspended:
		return "Suspended"
	case TaskDeleted:
		return "Deleted"
	default:
		return "Unknown"
	}
}

// waitKind records which subsystem a Blocked task is waiting on, so a
// timeout or delete can unlink it from the right structure without the
// caller needing to remember.
type waitKind int

const (
	waitNone waitKind = iota
	waitSemaphore
	waitEvent
	waitMsgQueue
	waitSuspendSelf
)

// TCB is a task control block. Link fields (prevIdx/nextIdx) are owned
// exclusively by whichever list currently holds the task — the ready
// bucket for its priority, a semaphore's wait queue, or a queue's internal
// semaphore's wait queue — per the rule that state identifies the list.
type TCB struct {
	magic uint32
	id    TaskID
	name  string

	priority    int
	state       TaskState
	mode        ModeBits
	sliceBudget int
	sliceReset  int

	stackBytes int
	entry      func(Args)
	args       Args
	regs       [regCount]uintptr

	pendingEvents uint32
	waitingEvents uint32
	waitCond      ModeBits // ModeEventAny or ModeEventAll, plus ModeConsume if requested; valid while waiting
	waitOn        waitKind
	waitObjID     uint32 // semaphore/queue id the task is blocked on, 0 if none
	timerID       uint32 // id of the timeout timer armed for this wait, 0 if none
	deadline      uint64 // absolute tick deadline, 0 if none

	prevIdx int32
	nextIdx int32

	// wakeCh is the channel a blocking call (SemP, EvReceive, QueueReceive,
	// WkAfter/WkWhen) parks on; allocated lazily, reused across the slot's
	// lifetime. Sending on it is how a concurrent call (SemV, EvSend,
	// QueueSend, Tick) resumes the goroutine that made the blocking call.
	wakeCh chan wakeResult
	// directMsg carries a message delivered straight to a queue_broadcast
	// waiter, bypassing the ring buffer retry a normal wake would use.
	directMsg *Message

	createdAt time.Time
}

// wakeResult is what a blocking call receives on wakeCh: either a value
// (the satisfied event set, for ev_receive) or an error (ErrTimeout,
// ErrObjDeleted).
type wakeResult struct {
	value uint32
	err   error
}

func (t *TCB) resetLinks() {
	t.prevIdx = noIndex
	t.nextIdx = noIndex
}

// clearWait resets the wait-related bookkeeping once a task leaves Blocked,
// whether by satisfaction, timeout, or deletion of the object it waited on.
func (t *TCB) clearWait() {
	t.waitOn = waitNone
	t.waitObjID = 0
	t.waitingEvents = 0
	t.waitCond = 0
	t.timerID = 0
	t.deadline = 0
}
