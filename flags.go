package kernel

// ModeBits configures per-call behavior (blocking vs non-blocking, FIFO vs
// priority wait-queue ordering, ALL vs ANY event matching). They are
// combined with bitwise OR, mirroring a C kernel's mode-word calling
// convention.
type ModeBits uint32

const (
	// ModePreemptible marks a task as subject to normal priority-based
	// preemption (the default; named explicitly for readability at call
	// sites).
	ModePreemptible ModeBits = 0

	// ModeNoPreempt marks a task as non-preemptible: it only yields the
	// processor voluntarily (blocking call, explicit yield, or completion),
	// never due to a higher-priority task becoming ready.
	ModeNoPreempt ModeBits = 1 << iota

	// ModeTimeSlice enables round-robin time-slicing among ready tasks of
	// equal priority: Tick debits the running task's slice budget and
	// requests a switch when it reaches zero.
	ModeTimeSlice

	// ModeISRMask mirrors an ISR-masking mode bit on real hardware. It has
	// no host-simulation effect beyond bookkeeping; in particular it does
	// not suppress Tick.
	ModeISRMask

	// ModeFPU marks a task as using the floating-point unit, so its context
	// switch must preserve FPU state. The host-simulation port has no FPU
	// context to preserve and treats this as bookkeeping only.
	ModeFPU

	// ModeNoWait makes a call that would otherwise block return
	// ErrNoSem/ErrNoMsg/ErrNoEvents (per call) immediately instead.
	ModeNoWait

	// ModeWaitFIFO selects first-in-first-out wait-queue ordering for a
	// semaphore or queue. Mutually exclusive with ModeWaitPriority; FIFO is
	// the default when neither is set.
	ModeWaitFIFO

	// ModeWaitPriority selects priority-ordered (lower number = higher
	// priority, ties broken by arrival order) wait-queue ordering.
	ModeWaitPriority

	// ModeEventAll requires every bit in the supplied event mask to be
	// pending before ev_receive completes. Mutually exclusive with
	// ModeEventAny; ANY is the default when neither is set.
	ModeEventAll

	// ModeEventAny completes ev_receive as soon as any bit in the supplied
	// mask is pending.
	ModeEventAny

	// ModeConsume clears the matched event bits on a successful ev_receive.
	// Without it, matched bits are left pending (peek semantics).
	ModeConsume
)

func (m ModeBits) has(bit ModeBits) bool { return m&bit != 0 }

// waitOrder resolves the effective wait-queue ordering for a set of mode
// bits, defaulting to FIFO.
func waitOrder(m ModeBits) waitOrderKind {
	if m.has(ModeWaitPriority) {
		return orderPriority
	}
	return orderFIFO
}

type waitOrderKind int

const (
	orderFIFO waitOrderKind = iota
	orderPriority
)

// eventMatches reports whether pending satisfies mask under the ALL/ANY
// condition encoded in m.
func eventMatches(m ModeBits, pending, mask uint32) bool {
	if mask == 0 {
		return false
	}
	if m.has(ModeEventAll) {
		return pending&mask == mask
	}
	return pending&mask != 0
}

// Args is the fixed argument block passed to a task entry function,
// mirroring a C kernel's four-register argument-passing convention.
type Args [4]uintptr
