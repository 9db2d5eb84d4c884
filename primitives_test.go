package gale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func popInt(t *testing.T, rt *Runtime) int64 {
	t.Helper()
	top, err := rt.stack.Pop()
	require.NoError(t, err)
	return top.SignedInt()
}

func TestPrimEq(t *testing.T) {
	rt := NewRuntime()
	require.NoError(t, rt.Eval(`5 5 @EQ`))
	top, err := rt.stack.Pop()
	require.NoError(t, err)
	assert.True(t, top.Boolean())
}

func TestPrimDropUnderflows(t *testing.T) {
	rt := NewRuntime()
	err := rt.Eval("@DROP")
	assert.Error(t, err)
}

func TestPrimCondJmpRunsTrueBranch(t *testing.T) {
	rt := NewRuntime()
	lit := NewHeapLitWord(NewSignedInt(7))
	litHandle := NewRefcellReferenced(*lit)
	require.NoError(t, litHandle.Incref())
	_, err := rt.stack.Push(NewBoolean(true))
	require.NoError(t, err)
	_, err = rt.stack.Push(NewWordObject(litHandle))
	require.NoError(t, err)

	require.NoError(t, primCondJmp(rt))
	assert.Equal(t, int64(7), popInt(t, rt))
}

func TestPrimCondJmpSkipsFalseBranch(t *testing.T) {
	rt := NewRuntime()
	lit := NewHeapLitWord(NewSignedInt(7))
	litHandle := NewRefcellReferenced(*lit)
	require.NoError(t, litHandle.Incref())
	_, _ = rt.stack.Push(NewBoolean(false))
	_, _ = rt.stack.Push(NewWordObject(litHandle))

	require.NoError(t, primCondJmp(rt))
	assert.Equal(t, 0, rt.stack.Len())
}

func TestPrimPrivSpaceSetByte(t *testing.T) {
	rt := NewRuntime()
	_, _ = rt.stack.Push(NewUnsignedInt(200))
	_, _ = rt.stack.Push(NewUnsignedInt(5))
	require.NoError(t, primPrivSpaceSetByte(rt))

	v, err := rt.priv.Byte(5)
	require.NoError(t, err)
	assert.Equal(t, byte(200), v)
}

func TestPrimPrivSpaceSetByteWritesModeByte(t *testing.T) {
	rt := NewRuntime()
	_, _ = rt.stack.Push(NewUnsignedInt(1))
	_, _ = rt.stack.Push(NewUnsignedInt(0))
	require.NoError(t, primPrivSpaceSetByte(rt))

	v, err := rt.priv.Byte(0)
	require.NoError(t, err)
	assert.Equal(t, byte(1), v)
	assert.Equal(t, ModeSymbol, rt.priv.Mode())
}

func TestPrimBeforeWordArmsHook(t *testing.T) {
	rt := NewRuntime()
	var hookRan int
	hook := NewPrimitiveWord(nil, func(rt *Runtime) error { hookRan++; return nil })
	hookHandle := NewRefcellReferenced(*hook)
	_, _ = rt.stack.Push(NewWordObject(hookHandle))
	require.NoError(t, primBeforeWord(rt))

	require.NoError(t, rt.Eval("1"))
	require.NoError(t, rt.Eval("2"))
	assert.Equal(t, 2, hookRan, "the hook runs before every subsequent token")
}

func TestPrimLitWrapsValueIntoCallableWord(t *testing.T) {
	rt := NewRuntime()
	_, _ = rt.stack.Push(NewSignedInt(42))
	require.NoError(t, primLit(rt))

	top, err := rt.stack.Pop()
	require.NoError(t, err)
	assert.Equal(t, KindWord, top.Kind())
	w := top.Word().Value()
	require.NotNil(t, w)
	assert.Equal(t, WordHeapLit, w.ImplTag())

	const k = 3
	for i := 0; i < k; i++ {
		require.NoError(t, w.Run(rt))
	}
	for i := 0; i < k; i++ {
		assert.Equal(t, int64(42), popInt(t, rt))
	}
}

// TestDefineWordVa1DefinesCompoundWord covers E4: @DEFINE-WORD-VA1 must
// produce a genuine Compound word whose single inner handle is the exact
// word handle it was given (here, a HeapLit built by @LIT), not a wrapper
// that merely forwards to it, and invoking the defined word through
// ordinary dictionary lookup must produce the literal it carries.
func TestDefineWordVa1DefinesCompoundWord(t *testing.T) {
	rt := NewRuntime()
	require.NoError(t, rt.Eval(":push-one 1/u @LIT @DEFINE-WORD-VA1"))

	name, ok := rt.symbols.Lookup("push-one")
	require.True(t, ok)
	wl, ok := rt.dict.Lookup(name)
	require.True(t, ok)
	entries := wl.Entries()
	defined := entries[len(entries)-1].Value()
	require.NotNil(t, defined)
	assert.Equal(t, WordCompound, defined.ImplTag())
	require.Len(t, defined.Compound(), 1)

	inner := defined.Compound()[0].Word().Value()
	require.NotNil(t, inner)
	assert.Equal(t, WordHeapLit, inner.ImplTag(), "the inner handle is the exact HeapLit word @LIT produced, not a wrapper")

	require.NoError(t, rt.Eval("push-one"))
	top, err := rt.stack.Pop()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), top.UnsignedInt())
}
