package kernel

import "sort"

// Message is a fixed four-word message queue payload. No byte ordering is
// assumed beyond "as the caller wrote it".
type Message [4]uint32

// msgArena is the kernel-wide, first-fit bump-allocated region of message
// slots shared by every queue. A QCB's slots are owned exclusively by that
// QCB for its lifetime and are never aliased with another queue's range.
type msgArena struct {
	slots []Message
	free  []arenaRange // sorted by offset, coalesced
}

type arenaRange struct {
	offset, length int32
}

func newMsgArena(size int) *msgArena {
	return &msgArena{
		slots: make([]Message, size),
		free:  []arenaRange{{offset: 0, length: int32(size)}},
	}
}

// alloc reserves the first free range of at least n contiguous slots,
// splitting it if it is larger than requested.
func (a *msgArena) alloc(n int) (offset int32, ok bool) {
	if n <= 0 {
		return 0, false
	}
	for i, r := range a.free {
		if int(r.length) >= n {
			offset = r.offset
			if int(r.length) == n {
				a.free = append(a.free[:i], a.free[i+1:]...)
			} else {
				a.free[i] = arenaRange{offset: r.offset + int32(n), length: r.length - int32(n)}
			}
			return offset, true
		}
	}
	return 0, false
}

// release returns a previously-allocated range to the free list, coalescing
// with any adjacent free ranges.
func (a *msgArena) release(offset int32, n int) {
	if n <= 0 {
		return
	}
	r := arenaRange{offset: offset, length: int32(n)}
	a.free = append(a.free, r)
	sort.Slice(a.free, func(i, j int) bool { return a.free[i].offset < a.free[j].offset })
	merged := a.free[:0]
	for _, cur := range a.free {
		if len(merged) > 0 {
			last := &merged[len(merged)-1]
			if last.offset+last.length == cur.offset {
				last.length += cur.length
				continue
			}
		}
		merged = append(merged, cur)
	}
	a.free = merged
}

func (a *msgArena) at(offset int32, idx int) *Message {
	return &a.slots[int(offset)+idx]
}
