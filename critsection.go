package kernel

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// critSection emulates a target's interrupt mask as a nestable, reentrant
// lock keyed by goroutine id: a goroutine that already holds the section may
// re-enter it (matching nested IntsDisable/IntsRestore on real hardware)
// without deadlocking itself, while a different goroutine genuinely blocks.
//
// Only the outermost Enter/Exit pair actually calls into the Port; nested
// calls just bump a depth counter. The outermost Exit is also the point at
// which a deferred scheduler switch, if one was requested while the section
// was held, is carried out.
type critSection struct {
	mu      sync.Mutex
	holder  int64 // goroutine id of current holder, 0 if unheld
	depth   int
	port    Port
	pending bool // RequestSwitch was called while held
}

func newCritSection(port Port) *critSection {
	return &critSection{port: port}
}

// Enter acquires the section, blocking if another goroutine holds it.
// Returns the depth after entry (1 means this call took the outer lock).
func (c *critSection) Enter() int {
	gid := getGoroutineID()
	for {
		c.mu.Lock()
		if c.holder == 0 {
			c.holder = gid
			c.depth = 1
			c.mu.Unlock()
			c.port.IntsDisable()
			return 1
		}
		if c.holder == gid {
			c.depth++
			d := c.depth
			c.mu.Unlock()
			return d
		}
		c.mu.Unlock()
		runtime.Gosched()
	}
}

// Exit releases one level of nesting. On the outermost exit it restores
// interrupts and, if a switch was requested while the section was held,
// invokes the supplied dispatch function after the Port has been notified.
func (c *critSection) Exit(dispatch func()) {
	c.mu.Lock()
	c.depth--
	if c.depth > 0 {
		c.mu.Unlock()
		return
	}
	pending := c.pending
	c.pending = false
	c.holder = 0
	c.mu.Unlock()
	c.port.IntsRestore()
	if pending && dispatch != nil {
		dispatch()
	}
}

// requestSwitch marks that a context switch should be dispatched when the
// outermost critical section exits. Must be called while held.
func (c *critSection) requestSwitch() {
	c.mu.Lock()
	c.pending = true
	c.mu.Unlock()
	c.port.RequestSwitch()
}

// getGoroutineID parses the calling goroutine's id out of a runtime.Stack
// trace. It is used only to key critSection reentrancy and carries no
// correctness requirement beyond "stable for the lifetime of one goroutine".
func getGoroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	const prefix = "goroutine "
	if !bytes.HasPrefix(b, []byte(prefix)) {
		return 0
	}
	b = b[len(prefix):]
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
