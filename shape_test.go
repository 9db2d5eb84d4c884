package gale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeCompatiblePrimitiveUnbounded(t *testing.T) {
	a := NewUnboundedShape(KindSignedInt)
	b := NewUnboundedShape(KindSignedInt)

	verdict, err := a.CompatibleWith(b)
	require.NoError(t, err)
	assert.Equal(t, ShapeCompatible, verdict)
}

func TestShapeDisparatePrimitivesError(t *testing.T) {
	a := NewUnboundedShape(KindSignedInt)
	b := NewUnboundedShape(KindBoolean)

	_, err := a.CompatibleWith(b)
	assert.ErrorIs(t, err, DisparateUnderlyingPrimitivesError{Left: KindSignedInt, Right: KindBoolean})
}

func TestShapeBoundedSameKindIsIndeterminate(t *testing.T) {
	a := NewBoundedShape(KindSignedInt, func(o Object) bool { return o.SignedInt() >= 0 })
	b := NewUnboundedShape(KindSignedInt)

	verdict, err := a.CompatibleWith(b)
	require.NoError(t, err)
	assert.Equal(t, ShapeIndeterminate, verdict)
}

func TestShapeInBounds(t *testing.T) {
	nonneg := NewBoundedShape(KindSignedInt, func(o Object) bool { return o.SignedInt() >= 0 })
	assert.True(t, nonneg.InBounds(NewSignedInt(3)))
	assert.False(t, nonneg.InBounds(NewSignedInt(-1)))

	unbounded := NewUnboundedShape(KindSignedInt)
	assert.True(t, unbounded.InBounds(NewSignedInt(-999)))
}

func TestShapeEmptyAlwaysCompatible(t *testing.T) {
	verdict, err := NewEmptyShape().CompatibleWith(NewEmptyShape())
	require.NoError(t, err)
	assert.Equal(t, ShapeCompatible, verdict)
}

func TestShapeCatchAllSameID(t *testing.T) {
	a := NewCatchAll(0)
	b := NewCatchAll(0)
	verdict, err := a.CompatibleWith(b)
	require.NoError(t, err)
	assert.Equal(t, ShapeCompatible, verdict)
}

func TestShapeCatchAllDifferentIDIsIndeterminate(t *testing.T) {
	a := NewCatchAll(0)
	b := NewCatchAll(1)
	verdict, err := a.CompatibleWith(b)
	require.NoError(t, err)
	assert.Equal(t, ShapeIndeterminate, verdict)
}

func TestShapeTagMismatchIncomparable(t *testing.T) {
	_, err := NewEmptyShape().CompatibleWith(NewUnboundedShape(KindSignedInt))
	assert.ErrorAs(t, err, &IncomparableError{})
}

func TestShapeEvolutionLineage(t *testing.T) {
	base := NewUnboundedShape(KindSignedInt)
	evolvedA := base.Evolve()
	evolvedB := base.Evolve()

	_, err := evolvedA.CompatibleWith(evolvedB)
	assert.ErrorIs(t, err, DisparateEvolutionsError{Left: 0, Right: 1})

	evolvedASibling := evolvedA
	verdict, err := evolvedA.CompatibleWith(evolvedASibling)
	require.NoError(t, err)
	assert.Equal(t, ShapeCompatible, verdict)
}

func TestShapeEvolutionVsUnevolvedBase(t *testing.T) {
	base := NewUnboundedShape(KindSignedInt)
	evolved := base.Evolve()

	_, err := base.CompatibleWith(evolved)
	assert.ErrorIs(t, err, DisparateEvolutionBasesError{})
}

func TestShapeNameFallsBackToAnonymous(t *testing.T) {
	pool := NewSymbolPool()
	s := NewUnboundedShape(KindSignedInt)

	h, err := s.Name(pool)
	require.NoError(t, err)
	assert.Equal(t, "<anonymous shape>", *h.Value())
}
