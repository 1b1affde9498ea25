package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMsgArenaAllocSplitsAndReleaseCoalesces(t *testing.T) {
	a := newMsgArena(16)

	off1, ok := a.alloc(4)
	require.True(t, ok)
	require.Equal(t, int32(0), off1)

	off2, ok := a.alloc(4)
	require.True(t, ok)
	require.Equal(t, int32(4), off2)

	a.release(off1, 4)
	a.release(off2, 4)
	require.Equal(t, []arenaRange{{offset: 0, length: 16}}, a.free, "adjacent released ranges must coalesce back into one")
}

func TestMsgArenaExhaustionReturnsNotOK(t *testing.T) {
	a := newMsgArena(8)
	_, ok := a.alloc(8)
	require.True(t, ok)
	_, ok = a.alloc(1)
	require.False(t, ok)
}

func TestMsgArenaAtRoundTrips(t *testing.T) {
	a := newMsgArena(4)
	off, ok := a.alloc(2)
	require.True(t, ok)
	*a.at(off, 0) = Message{1, 2, 3, 4}
	*a.at(off, 1) = Message{5, 6, 7, 8}
	require.Equal(t, Message{1, 2, 3, 4}, *a.at(off, 0))
	require.Equal(t, Message{5, 6, 7, 8}, *a.at(off, 1))
}
