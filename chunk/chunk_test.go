package chunk

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loxvm/value"
)

func TestWriteTracksLinesOnlyOnChange(t *testing.T) {
	c := New()
	c.Write(byte(OpNil), 1)
	c.Write(byte(OpTrue), 1)
	c.Write(byte(OpFalse), 2)
	c.Write(byte(OpReturn), 2)

	assert.Len(t, c.lines, 2)
	assert.Equal(t, 1, c.GetLine(0))
	assert.Equal(t, 1, c.GetLine(1))
	assert.Equal(t, 2, c.GetLine(2))
	assert.Equal(t, 2, c.GetLine(3))
}

func TestGetLineMonotonic(t *testing.T) {
	c := New()
	for i, line := range []int{1, 1, 2, 2, 2, 5, 5} {
		c.Write(byte(i), line)
	}
	prev := 0
	for offset := range c.Code {
		got := c.GetLine(offset)
		require.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestAddConstantReturnsIndex(t *testing.T) {
	c := New()
	i0 := c.AddConstant(value.Number(1))
	i1 := c.AddConstant(value.Number(2))
	assert.Equal(t, 0, i0)
	assert.Equal(t, 1, i1)
}

func TestWriteConstantShortForm(t *testing.T) {
	c := New()
	c.WriteConstant(value.Number(42), 7)
	assert.Equal(t, []byte{byte(OpConstant), 0}, c.Code)
}

func TestWriteConstantLongFormRoundTrips(t *testing.T) {
	c := New()
	for i := 0; i < MaxShortConstants; i++ {
		c.AddConstant(value.Number(float64(i)))
	}
	c.WriteConstant(value.Number(999), 1)

	require.Equal(t, byte(OpConstantLong), c.Code[0])
	index := ReadConstantLong(c.Code, 1)
	assert.Equal(t, MaxShortConstants, index)
	assert.Equal(t, value.Number(999), c.Constants[index])
}

func TestDisassembleInstructionAdvancesByInstructionWidth(t *testing.T) {
	c := New()
	c.Write(byte(OpConstant), 1)
	c.Write(0, 1)
	c.AddConstant(value.Number(1))
	c.Write(byte(OpReturn), 1)

	var buf bytes.Buffer
	next := DisassembleInstruction(&buf, c, 0)
	assert.Equal(t, 2, next)

	next = DisassembleInstruction(&buf, c, next)
	assert.Equal(t, 3, next)
}
