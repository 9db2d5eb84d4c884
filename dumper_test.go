package gale

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuntimeDumpRendersStackAndDictionary(t *testing.T) {
	rt := NewRuntime()
	require.NoError(t, rt.Eval(`3 true`))

	var buf bytes.Buffer
	require.NoError(t, rt.Dump(&buf))

	out := buf.String()
	assert.Contains(t, out, "# Gale Dump")
	assert.Contains(t, out, "symbols:")
	assert.Contains(t, out, "dict:")
	assert.Contains(t, out, "@DROP")
	assert.Contains(t, out, "SInt: 3")
	assert.Contains(t, out, "Boolean: true")
}

func TestRuntimeDumpOrdersStackBottomUp(t *testing.T) {
	rt := NewRuntime(WithChunkSize(1))
	require.NoError(t, rt.Eval(`1 2 3`))

	var buf bytes.Buffer
	require.NoError(t, rt.Dump(&buf))

	out := buf.String()
	iOne := bytes.Index(buf.Bytes(), []byte("SInt: 1"))
	iTwo := bytes.Index(buf.Bytes(), []byte("SInt: 2"))
	iThree := bytes.Index(buf.Bytes(), []byte("SInt: 3"))
	require.NotEqual(t, -1, iOne)
	require.NotEqual(t, -1, iTwo)
	require.NotEqual(t, -1, iThree)
	assert.True(t, iOne < iTwo && iTwo < iThree, "expected bottom-up order in %q", out)
}
