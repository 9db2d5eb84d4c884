package gale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureCompatibleSimple(t *testing.T) {
	intShape := NewUnboundedShape(KindSignedInt)
	self := NewPurelyConsuming([]*Shape{intShape})
	other := NewPurelyConsuming([]*Shape{intShape})

	ok, err := self.CompatibleWith(other)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSignatureTagMismatch(t *testing.T) {
	self := NewNullary(nil)
	other := NewPurelyConsuming(nil)

	_, err := self.CompatibleWith(other)
	assert.ErrorAs(t, err, &IncomparableError{})
}

func TestSignatureDisparateShapeCount(t *testing.T) {
	intShape := NewUnboundedShape(KindSignedInt)
	self := NewPurelyConsuming([]*Shape{intShape, intShape})
	other := NewPurelyConsuming([]*Shape{intShape})

	_, err := self.CompatibleWith(other)
	assert.Error(t, err)
}

func TestSignatureCatchAllConsistentResolution(t *testing.T) {
	c0 := NewCatchAll(0)
	self := NewPurelyAdditive([]*Shape{c0, c0}, nil)

	boolShape := NewUnboundedShape(KindBoolean)
	other := NewPurelyAdditive([]*Shape{boolShape, boolShape}, nil)

	ok, err := self.CompatibleWith(other)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSignatureCatchAllConflictingResolution(t *testing.T) {
	c0 := NewCatchAll(0)
	self := NewPurelyAdditive([]*Shape{c0, c0}, nil)

	boolShape := NewUnboundedShape(KindBoolean)
	intShape := NewUnboundedShape(KindSignedInt)
	other := NewPurelyAdditive([]*Shape{boolShape, intShape}, nil)

	_, err := self.CompatibleWith(other)
	assert.Error(t, err)
}

func TestSignatureTerminal(t *testing.T) {
	assert.True(t, NewNullaryTerminal().Terminal())
	assert.True(t, NewConsumingTerminal(nil).Terminal())
	assert.False(t, NewNullary(nil).Terminal())
	assert.False(t, NewSideEffectary().Terminal())
}
