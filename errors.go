package kernel

import "errors"

// Standard errors. The taxonomy is closed: these are the only failure codes
// a kernel call returns (see spec §6/§7); anything else is a programming
// error in this package, not a caller-visible outcome.
var (
	// ErrTimeout is returned by a blocking call whose timeout elapsed before
	// the wait condition was satisfied.
	ErrTimeout = errors.New("kernel: timed out")

	// ErrBadID is returned when an id refers to no live object (programming
	// error, surfaced rather than asserted). Stored magic words are not
	// compared, so a magic mismatch is not detected.
	ErrBadID = errors.New("kernel: invalid or stale id")

	// ErrObjDeleted is returned by a call racing a delete of the object it
	// was waiting on.
	ErrObjDeleted = errors.New("kernel: object deleted")

	// ErrObjNotFound is returned by a name lookup (*_ident) that found no
	// matching live object.
	ErrObjNotFound = errors.New("kernel: object not found")

	// ErrNoTCB is returned when the task pool is exhausted.
	ErrNoTCB = errors.New("kernel: task pool exhausted")

	// ErrNoStack is returned when stack_bytes is zero.
	ErrNoStack = errors.New("kernel: no stack")

	// ErrTinyStack is returned when stack_bytes is non-zero but too small.
	ErrTinyStack = errors.New("kernel: stack too small")

	// ErrBadPriority is returned when priority is outside 1..255.
	ErrBadPriority = errors.New("kernel: priority out of range")

	// ErrActive is returned when a call requires a task not already started
	// (e.g. task_start on a task that is not Created).
	ErrActive = errors.New("kernel: task already active")

	// ErrNotActive is returned when a call requires a started task.
	ErrNotActive = errors.New("kernel: task not active")

	// ErrSuspended is returned by task_suspend on an already-suspended task.
	ErrSuspended = errors.New("kernel: task already suspended")

	// ErrNotSuspended is returned by task_resume on a task that is not
	// suspended.
	ErrNotSuspended = errors.New("kernel: task not suspended")

	// ErrRegNum is returned by argument-register accessors given an
	// out-of-range register index.
	ErrRegNum = errors.New("kernel: invalid register number")

	// ErrNoSem is returned by a non-blocking sem_p on an empty semaphore.
	ErrNoSem = errors.New("kernel: semaphore not available")

	// ErrSemFull is returned by sem_v when count is already at its max.
	ErrSemFull = errors.New("kernel: semaphore at max count")

	// ErrNoQCB is returned when the queue pool is exhausted.
	ErrNoQCB = errors.New("kernel: queue pool exhausted")

	// ErrNoMGB is returned when the message-buffer arena cannot satisfy a
	// queue's requested capacity.
	ErrNoMGB = errors.New("kernel: message buffer arena exhausted")

	// ErrQFull is returned by queue_send/queue_urgent on a full queue.
	ErrQFull = errors.New("kernel: queue full")

	// ErrNoMsg is returned by a non-blocking queue_receive on an empty queue.
	ErrNoMsg = errors.New("kernel: no message available")

	// ErrNoEvents is returned by a non-blocking ev_receive whose condition
	// is not yet satisfied.
	ErrNoEvents = errors.New("kernel: events not available")

	// ErrNoTimers is returned when the timer pool is exhausted.
	ErrNoTimers = errors.New("kernel: timer pool exhausted")

	// ErrBadTimerID is returned by timer_cancel given an id with no live
	// armed timer.
	ErrBadTimerID = errors.New("kernel: invalid timer id")

	// ErrIllTicks is returned when arming a timer with a zero delay.
	ErrIllTicks = errors.New("kernel: illegal tick count")

	// ErrBadParam is returned for argument validation failures not covered
	// by a more specific error (nil buffers, zero capacity, zero event mask).
	ErrBadParam = errors.New("kernel: bad parameter")

	// ErrLoopNotRunning is returned by any subsystem call made before Init
	// or after Shutdown.
	ErrLoopNotRunning = errors.New("kernel: not initialized")

	// ErrAlreadyInitialized is returned by a second call to Init.
	ErrAlreadyInitialized = errors.New("kernel: already initialized")
)
