package kernel

// Port is the integrator-supplied hardware capability set. It is the only
// boundary at which this package touches anything target-specific; every
// scheduling decision, wait-queue ordering, and timer computation above it
// is pure Go with no dependency on an actual interrupt controller or stack
// layout.
//
// A real MCU target implements Port against its NVIC/SysTick (or equivalent)
// and a hand-written context-switch trampoline. [NewHostSimPort] is the
// reference implementation used by this package's own tests and by hosts
// that have no need for literal preemption (simulation, fuzzing, unit
// tests of application logic built on top of the kernel).
type Port interface {
	// IntsDisable raises the interrupt mask, preventing the tick source (and,
	// on real hardware, any other interrupt) from reentering the kernel.
	// Calls may nest; only the outermost IntsDisable/IntsRestore pair has an
	// observable effect (critSection already guarantees this and is the only
	// caller).
	IntsDisable()

	// IntsRestore lowers the interrupt mask raised by the matching
	// IntsDisable.
	IntsRestore()

	// NowTicks returns the current monotonic tick count.
	NowTicks() uint64

	// SetNextAlarm programs the next hardware alarm to fire no later than
	// the given absolute tick count. A port without a programmable alarm
	// (pure tick-driven hosts) may implement this as a no-op.
	SetNextAlarm(atTick uint64)

	// InitStack prepares a new task's stack so that, on a real target, the
	// first context switch into it begins executing entry with the given
	// initial register/argument state. The host-simulation port does not
	// need a usable machine stack and treats this as bookkeeping only.
	InitStack(stack []byte, entry func(Args), args Args) (stackPointer uintptr)

	// RequestSwitch notifies the port that the scheduler has chosen a new
	// current task and a context switch should occur at the next safe
	// point (immediately, if interrupts are already enabled). On a real
	// target this typically pends a PendSV-style exception; the host-
	// simulation port treats it as an observation hook.
	RequestSwitch()
}
