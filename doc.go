// Package kernel implements a real-time microkernel core for deeply-embedded,
// single-core targets: fixed-priority preemptive task scheduling, a sorted
// timer service driven by a single tick entry point, and three interlocking
// IPC primitives (counting semaphores, per-task event flags, fixed-size
// message queues).
//
// # Architecture
//
// A [Kernel] owns five coupled subsystems, all but events backed by a
// fixed-size pool (see pool.go):
//
//   - the task table and scheduler ([TCB], ready buckets keyed by priority
//     with an O(1) highest-priority lookup via a ready mask)
//   - the timer service ([timerBlock], a single list sorted by absolute
//     expiry, driven by [Kernel.Tick])
//   - semaphores ([semBlock], FIFO or priority-ordered wait queues)
//   - events (a 32-bit pending/waiting mask held directly on each [TCB],
//     since an event block is one-per-task by definition)
//   - message queues ([queueBlock], fixed 16-byte slots drawn from a shared
//     arena)
//
// All mutable kernel state is protected by a single nestable critical
// section (see [critSection]), mirroring a real target's interrupt mask:
// every public call takes it on entry and releases it on the outermost
// exit, at which point a pending scheduler switch (if any) is carried out.
//
// # Port layer
//
// The kernel depends on a small [Port] capability set (interrupt mask,
// monotonic ticks, next-alarm programming, stack init, and a deferred
// context switch) supplied by the integrator. [NewHostSimPort] is a
// goroutine-friendly port suitable for tests and non-MCU hosts; a real
// target supplies its own implementation backed by NVIC/SysTick and a
// hand-written context-switch trampoline — none of that register-level
// work lives here.
//
// # Concurrency model
//
// Task bodies are driven directly through the public API (TaskCreate,
// SemP, EvReceive, ...) exactly as an application on a real MCU port
// would drive them; the kernel itself is safe for concurrent use from
// multiple goroutines, each standing in for one interrupt or task context.
// The observable contract — ready-set membership, wait-queue ordering, the
// context-switch counter, and every invariant in the data model — does not
// depend on a task's entry function literally running as a goroutine.
//
// # Usage
//
//	k := kernel.New(kernel.NewHostSimPort())
//	if err := k.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer k.Shutdown()
//
//	id, err := k.TaskCreate("wrkr", 10, 4096, kernel.ModePreemptible)
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = k.TaskStart(id, kernel.ModePreemptible, entry, kernel.Args{})
package kernel
