package gale

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuntimeRegistersPrimitives(t *testing.T) {
	rt := NewRuntime()
	name := rt.symbols.GetOrPut("@DROP")
	_, ok := rt.dict.Lookup(name)
	assert.True(t, ok)
}

func TestRuntimeWithOutputCapturesWrites(t *testing.T) {
	var buf bytes.Buffer
	rt := NewRuntime(WithOutput(&buf))
	rt.writeString("hi")
	require.NoError(t, rt.Flush())
	assert.Equal(t, "hi", buf.String())
}

func TestRuntimeWithChunkSize(t *testing.T) {
	rt := NewRuntime(WithChunkSize(1))
	for i := 0; i < 3; i++ {
		_, err := rt.stack.Push(NewSignedInt(int64(i)))
		require.NoError(t, err)
	}
	assert.Equal(t, 3, rt.stack.depth(3))
}

func TestRuntimeEvalEndToEnd(t *testing.T) {
	rt := NewRuntime()
	require.NoError(t, rt.Eval(`3 @DUP @EQ`))
	top, err := rt.stack.Pop()
	require.NoError(t, err)
	assert.True(t, top.Boolean())
}

func TestRecoverTurnsPanicIntoError(t *testing.T) {
	err := Recover("test", func() error {
		panic("boom")
	})
	assert.Error(t, err)
}

func TestRuntimeWithMemLimitRefusesNewSymbolsPastLimit(t *testing.T) {
	probe := NewRuntime()
	limit := probe.symbols.Len()

	rt := NewRuntime(WithMemLimit(limit))
	assert.Equal(t, limit, rt.symbols.Len())

	_, err := rt.internSymbol("@DROP")
	assert.NoError(t, err, "re-interning an already-known symbol must not count against the limit")

	_, err = rt.internSymbol("brand-new-word")
	assert.Error(t, err)
	assert.IsType(t, MemLimitError{}, err)
}

func TestRuntimeWithLoggerOverridesDefault(t *testing.T) {
	custom := newLogger(io.Discard)
	rt := NewRuntime(WithLogger(custom))
	assert.Same(t, custom, rt.Logger())
}

func TestRuntimeMaxCatchallReportDefaultsToPackageConstant(t *testing.T) {
	rt := NewRuntime()
	assert.Equal(t, MaxCatchallReport, rt.MaxCatchallReport())

	rt2 := NewRuntime(WithMaxCatchallReport(2))
	assert.Equal(t, 2, rt2.MaxCatchallReport())
}
