package compiler

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loxvm/chunk"
	"loxvm/value"
)

func compile(t *testing.T, source string) *chunk.Chunk {
	t.Helper()
	c := chunk.New()
	ok, err := Compile(source, c, value.NewHeap())
	require.True(t, ok, "expected success, got error: %v", err)
	require.NoError(t, err)
	return c
}

func TestCompileNumberLiteralEmitsConstant(t *testing.T) {
	c := compile(t, "1;")
	assert.Equal(t, []byte{byte(chunk.OpConstant), 0, byte(chunk.OpPop), byte(chunk.OpReturn)}, c.Code)
	assert.Equal(t, value.Number(1), c.Constants[0])
}

func TestCompileUnaryNegate(t *testing.T) {
	c := compile(t, "-1;")
	assert.Equal(t, []byte{
		byte(chunk.OpConstant), 0, byte(chunk.OpNegate), byte(chunk.OpPop), byte(chunk.OpReturn),
	}, c.Code)
}

func TestCompileBinaryPrecedence(t *testing.T) {
	c := compile(t, "1 + 2 * 3;")
	assert.Equal(t, []byte{
		byte(chunk.OpConstant), 0,
		byte(chunk.OpConstant), 1,
		byte(chunk.OpConstant), 2,
		byte(chunk.OpMultiply),
		byte(chunk.OpAdd),
		byte(chunk.OpPop),
		byte(chunk.OpReturn),
	}, c.Code)
}

func TestCompileGroupingOverridesPrecedence(t *testing.T) {
	c := compile(t, "(1 + 2) * 3;")
	assert.Equal(t, []byte{
		byte(chunk.OpConstant), 0,
		byte(chunk.OpConstant), 1,
		byte(chunk.OpAdd),
		byte(chunk.OpConstant), 2,
		byte(chunk.OpMultiply),
		byte(chunk.OpPop),
		byte(chunk.OpReturn),
	}, c.Code)
}

func TestCompileComparisonDesugaring(t *testing.T) {
	cases := map[string][]byte{
		"1 != 2;": {byte(chunk.OpEqual), byte(chunk.OpNot)},
		"1 == 2;": {byte(chunk.OpEqual)},
		"1 >= 2;": {byte(chunk.OpLess), byte(chunk.OpNot)},
		"1 <= 2;": {byte(chunk.OpGreater), byte(chunk.OpNot)},
		"1 > 2;":  {byte(chunk.OpGreater)},
		"1 < 2;":  {byte(chunk.OpLess)},
	}
	for source, tail := range cases {
		c := compile(t, source)
		got := c.Code[4 : len(c.Code)-2] // after the two OP_CONSTANT pairs, before OP_POP/OP_RETURN
		assert.Equal(t, tail, got, source)
	}
}

func TestCompileStringLiteralInterns(t *testing.T) {
	c := chunk.New()
	heap := value.NewHeap()
	ok, err := Compile(`"hi";`, c, heap)
	require.True(t, ok)
	require.NoError(t, err)
	assert.True(t, c.Constants[0].IsString())
	assert.Equal(t, "hi", c.Constants[0].AsString().Chars)
	assert.Same(t, heap.Intern("hi"), c.Constants[0].AsObject())
}

func TestCompileLiterals(t *testing.T) {
	c := compile(t, "true;")
	assert.Equal(t, []byte{byte(chunk.OpTrue), byte(chunk.OpPop), byte(chunk.OpReturn)}, c.Code)

	c = compile(t, "false;")
	assert.Equal(t, []byte{byte(chunk.OpFalse), byte(chunk.OpPop), byte(chunk.OpReturn)}, c.Code)

	c = compile(t, "nil;")
	assert.Equal(t, []byte{byte(chunk.OpNil), byte(chunk.OpPop), byte(chunk.OpReturn)}, c.Code)
}

func TestCompilePrintStatement(t *testing.T) {
	c := compile(t, "print 1;")
	assert.Equal(t, []byte{byte(chunk.OpConstant), 0, byte(chunk.OpPrint), byte(chunk.OpReturn)}, c.Code)
}

func TestCompileMissingSemicolonIsError(t *testing.T) {
	c := chunk.New()
	ok, err := Compile("1", c, value.NewHeap())
	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected ';' after expression.")
}

func TestCompileSuppressesErrorCascadeAfterFirst(t *testing.T) {
	c := chunk.New()
	// "+" has no prefix rule, so each one is a parse error on its own;
	// panic mode suppresses every error after the first until EOF, so
	// exactly one error surfaces even though three are malformed.
	ok, err := Compile("+ + +;", c, value.NewHeap())
	assert.False(t, ok)
	require.Error(t, err)

	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	assert.Len(t, merr.Errors, 1)
}

func TestCompileUnexpectedCharacterReportsErrorToken(t *testing.T) {
	c := chunk.New()
	ok, err := Compile("@;", c, value.NewHeap())
	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unexpected character.")
}

func TestCompileEndsWithReturn(t *testing.T) {
	c := compile(t, "1;")
	assert.Equal(t, byte(chunk.OpReturn), c.Code[len(c.Code)-1])
}
