package chunk

import (
	"fmt"
	"io"
)

// Disassemble writes every instruction in c under a heading, the way
// DEBUG_PRINT_CODE and the `dis` CLI command do.
func Disassemble(w io.Writer, c *Chunk, name string) {
	fmt.Fprintf(w, "== %s ==\n", name)
	for offset := 0; offset < len(c.Code); {
		offset = DisassembleInstruction(w, c, offset)
	}
}

// DisassembleInstruction prints one instruction at offset and returns the
// offset of the instruction that follows it. The line column prints
// "   | " when the instruction shares its line with the previous one, or
// the right-aligned line number otherwise.
func DisassembleInstruction(w io.Writer, c *Chunk, offset int) int {
	fmt.Fprintf(w, "%04d ", offset)

	line := c.GetLine(offset)
	if offset > 0 && line == c.GetLine(offset-1) {
		fmt.Fprint(w, "   | ")
	} else {
		fmt.Fprintf(w, "%4d ", line)
	}

	op := Opcode(c.Code[offset])
	switch op {
	case OpConstant:
		return constantInstruction(w, c, offset)
	case OpConstantLong:
		return constantLongInstruction(w, c, offset)
	case OpNil, OpTrue, OpFalse, OpPop, OpEqual, OpGreater, OpLess,
		OpAdd, OpSubtract, OpMultiply, OpDivide, OpNegate, OpNot,
		OpPrint, OpReturn:
		return simpleInstruction(w, op, offset)
	default:
		fmt.Fprintf(w, "Unknown opcode %d\n", byte(op))
		return offset + 1
	}
}

func simpleInstruction(w io.Writer, op Opcode, offset int) int {
	fmt.Fprintf(w, "%s\n", op)
	return offset + 1
}

func constantInstruction(w io.Writer, c *Chunk, offset int) int {
	index := int(c.Code[offset+1])
	fmt.Fprintf(w, "%-16s %4d '%s'\n", OpConstant, index, c.Constants[index])
	return offset + 2
}

func constantLongInstruction(w io.Writer, c *Chunk, offset int) int {
	index := ReadConstantLong(c.Code, offset+1)
	fmt.Fprintf(w, "%-16s %4d '%s'\n", OpConstantLong, index, c.Constants[index])
	return offset + 4
}
