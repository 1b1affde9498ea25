package kernel

import "sync/atomic"

// RunState is the lifecycle state of a Kernel instance.
//
// State machine:
//
//	StateUninit (0) -> StateReady (1)      [Init()]
//	StateReady  (1) -> StateTerminated (2) [Shutdown()]
//
// Uninitialized or terminated kernels reject every subsystem call; this
// mirrors the one-time init sweep described for the public API surface.
type RunState uint32

const (
	StateUninit RunState = iota
	StateReady
	StateTerminated
)

func (s RunState) String() string {
	switch s {
	case StateUninit:
		return "Uninit"
	case StateReady:
		return "Ready"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// fastState is a lock-free state cell, cache-line padded to avoid false
// sharing with neighboring hot fields (the kernel checks it on every call).
type fastState struct { // betteralign:ignore
	_ [64]byte
	v atomic.Uint32
	_ [60]byte
}

func newFastState() *fastState {
	s := &fastState{}
	s.v.Store(uint32(StateUninit))
	return s
}

func (s *fastState) Load() RunState { return RunState(s.v.Load()) }

func (s *fastState) Store(state RunState) { s.v.Store(uint32(state)) }

func (s *fastState) TryTransition(from, to RunState) bool {
	return s.v.CompareAndSwap(uint32(from), uint32(to))
}
