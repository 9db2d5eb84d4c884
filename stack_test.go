package gale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackPushPop(t *testing.T) {
	s := NewStack(4)
	_, err := s.Push(NewSignedInt(1))
	require.NoError(t, err)
	_, err = s.Push(NewSignedInt(2))
	require.NoError(t, err)

	top, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(2), top.SignedInt())

	top, err = s.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(1), top.SignedInt())

	_, err = s.Pop()
	assert.ErrorIs(t, err, UnderflowError{Op: "pop"})
}

func TestStackCrossesChunkBoundary(t *testing.T) {
	s := NewStack(2)
	for i := 0; i < 5; i++ {
		_, err := s.Push(NewSignedInt(int64(i)))
		require.NoError(t, err)
	}
	for i := 4; i >= 0; i-- {
		top, err := s.Pop()
		require.NoError(t, err)
		assert.Equal(t, int64(i), top.SignedInt())
	}
	_, err := s.Pop()
	assert.Error(t, err)
}

func TestStackNonTerminalChunkGuard(t *testing.T) {
	s := NewStack(2)
	first := s.Current()
	_, err := s.Push(NewSignedInt(1))
	require.NoError(t, err)
	_, err = s.Push(NewSignedInt(2))
	require.NoError(t, err)
	_, err = s.Push(NewSignedInt(3)) // forces a new chunk
	require.NoError(t, err)

	assert.NotEqual(t, first, s.Current())
	_, err = s.ChunkLen(first)
	assert.ErrorIs(t, err, NonTerminalStackError{})
}

func TestStackPopPairAtomic(t *testing.T) {
	s := NewStack(4)
	_, _ = s.Push(NewSignedInt(1))

	_, _, err := s.PopPair()
	assert.Error(t, err)
	assert.Equal(t, 1, s.Len(), "failed pop_pair must not remove the sole element")
}

func TestStackSwapAcrossChunks(t *testing.T) {
	s := NewStack(1)
	_, _ = s.Push(NewSignedInt(1))
	_, _ = s.Push(NewSignedInt(2))

	require.NoError(t, s.Swap())
	top, _ := s.Pop()
	assert.Equal(t, int64(1), top.SignedInt())
	top, _ = s.Pop()
	assert.Equal(t, int64(2), top.SignedInt())
}

func TestStackTwoDupShuf(t *testing.T) {
	s := NewStack(8)
	_, _ = s.Push(NewSignedInt(1))
	_, _ = s.Push(NewSignedInt(2))

	require.NoError(t, s.TwoDupShuf())
	assert.Equal(t, 4, s.depth(4))

	vals := []int64{2, 1, 2, 1}
	for _, want := range vals {
		top, err := s.Pop()
		require.NoError(t, err)
		assert.Equal(t, want, top.SignedInt())
	}
}

func TestStackDrop(t *testing.T) {
	h := NewRefcell("x")
	s := NewStack(4)
	_, _ = s.Push(NewStringObject(h))

	require.NoError(t, s.Drop())
	assert.True(t, h.Dead())
}
