package gale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefcellLifecycle(t *testing.T) {
	rc := NewRefcell(42)
	assert.Equal(t, uint32(0), rc.StrongCount())
	assert.False(t, rc.Dead())

	require.NoError(t, rc.Incref())
	assert.Equal(t, uint32(1), rc.StrongCount())
	assert.Equal(t, 42, *rc.Value())

	require.NoError(t, rc.Incref())
	assert.Equal(t, uint32(2), rc.StrongCount())

	pruned, didPrune := rc.DecrefAndPrune()
	assert.False(t, didPrune)
	assert.Zero(t, pruned)
	assert.False(t, rc.Dead())

	pruned, didPrune = rc.DecrefAndPrune()
	assert.True(t, didPrune)
	assert.Equal(t, 42, pruned)
	assert.True(t, rc.Dead())
}

func TestRefcellExhausted(t *testing.T) {
	rc := NewRefcell("x")
	require.NoError(t, rc.Incref())
	rc.DecrefAndPrune()

	err := rc.Incref()
	assert.ErrorIs(t, err, ExhaustedRefcellError{})
}

func TestRefcellManagedDestroyRunsOnce(t *testing.T) {
	var destroyed int
	rc := NewManagedRefcell("payload", func(string) { destroyed++ })
	require.NoError(t, rc.Incref())
	require.NoError(t, rc.Incref())

	rc.DecrefAndPrune()
	assert.Equal(t, 0, destroyed)

	rc.DecrefAndPrune()
	assert.Equal(t, 1, destroyed)
}

func TestRefcellReferencedStartsAtOne(t *testing.T) {
	rc := NewRefcellReferenced("sym")
	assert.Equal(t, uint32(1), rc.StrongCount())
}

func TestRefcellDecrefOfDeadCellPanics(t *testing.T) {
	rc := NewRefcell(1)
	require.NoError(t, rc.Incref())
	rc.DecrefAndPrune()
	assert.Panics(t, func() { rc.DecrefAndPrune() })
}
