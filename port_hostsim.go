package kernel

import "sync/atomic"

// HostSimPort is a [Port] implementation for running this kernel on a host
// OS (tests, simulation, tooling) rather than a microcontroller. It has no
// real interrupt controller to mask, so IntsDisable/IntsRestore are no-ops
// (nesting depth is tracked by the kernel's critical section), and RequestSwitch is an observation
// hook: it records that a switch was requested so tests and callers can
// assert on scheduling behavior, rather than asynchronously preempting a
// running goroutine (which Go provides no mechanism for).
//
// Ticks are driven explicitly by calling Kernel.Drive; HostSimPort does not
// spawn a ticker goroutine of its own, keeping tests deterministic.
type HostSimPort struct {
	ticks       atomic.Uint64
	nextAlarm   atomic.Uint64
	switchCount atomic.Uint64
}

// NewHostSimPort constructs a HostSimPort with its tick counter at zero.
func NewHostSimPort() *HostSimPort {
	return &HostSimPort{}
}

func (p *HostSimPort) IntsDisable() {}

func (p *HostSimPort) IntsRestore() {}

func (p *HostSimPort) NowTicks() uint64 { return p.ticks.Load() }

// AdvanceTicks moves the simulated clock forward by n ticks. Callers
// normally drive this indirectly via Kernel.Drive, which calls it once per
// tick before calling Kernel.Tick.
func (p *HostSimPort) AdvanceTicks(n uint64) {
	p.ticks.Add(n)
}

func (p *HostSimPort) SetNextAlarm(atTick uint64) {
	p.nextAlarm.Store(atTick)
}

// NextAlarm reports the last tick value passed to SetNextAlarm, for tests
// that want to assert the timer service is programming alarms correctly.
func (p *HostSimPort) NextAlarm() uint64 {
	return p.nextAlarm.Load()
}

func (p *HostSimPort) InitStack(stack []byte, entry func(Args), args Args) uintptr {
	if len(stack) > 0 {
		stack[0] = 0
	}
	return 0
}

// RequestSwitch records that a switch was requested. See the type doc for
// why this does not perform a literal goroutine handoff.
func (p *HostSimPort) RequestSwitch() {
	p.switchCount.Add(1)
}

// SwitchCount reports how many times RequestSwitch has fired, for tests
// asserting that preemption was triggered without needing to observe an
// actual task-body execution handoff.
func (p *HostSimPort) SwitchCount() uint64 {
	return p.switchCount.Load()
}
