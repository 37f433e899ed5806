// Package vm implements the stack-based virtual machine that executes a
// compiled chunk.Chunk: the fetch-decode-dispatch loop, the value stack,
// and the VM-owned heap object registry and string intern table that
// outlive any single Interpret call.
package vm

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"loxvm/chunk"
	"loxvm/compiler"
	"loxvm/value"
)

// Result is the three-valued outcome of Interpret.
type Result int

const (
	ResultOK Result = iota
	ResultCompileError
	ResultRuntimeError
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "OK"
	case ResultCompileError:
		return "COMPILE_ERROR"
	case ResultRuntimeError:
		return "RUNTIME_ERROR"
	default:
		return "UNKNOWN"
	}
}

// VM owns everything that survives across repeated Interpret calls: the
// heap object registry and string intern table. The chunk, instruction
// pointer, and stack are installed fresh by each Interpret call.
type VM struct {
	chunk *chunk.Chunk
	ip    int
	stack Stack
	heap  *value.Heap

	Stdout io.Writer
	Stderr io.Writer
	Log    *logrus.Logger

	// Trace enables DEBUG_TRACE_EXECUTION: the stack and the upcoming
	// instruction are printed before each dispatch step. Observational
	// only; it never alters VM state.
	Trace bool

	// PrintCode enables DEBUG_PRINT_CODE: after a successful compile,
	// the chunk is disassembled to Stdout under the heading "code".
	PrintCode bool
}

// New returns a VM with an empty stack, object list, and intern table,
// writing normal output to stdout and diagnostics to stderr.
func New() *VM {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.DebugLevel)
	return &VM{
		heap:   value.NewHeap(),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Log:    log,
	}
}

// Free releases every object the VM's heap is tracking. Call it once the
// VM will no longer run any further source, mirroring free_VM.
func (vm *VM) Free() {
	vm.heap.Free()
}

// Interpret compiles source into a fresh chunk and, on success, runs it.
// The VM's heap and intern table persist across calls; the chunk, ip,
// and stack do not.
func (vm *VM) Interpret(source string) (Result, error) {
	c := chunk.New()
	ok, err := compiler.Compile(source, c, vm.heap)
	if !ok {
		return ResultCompileError, err
	}

	if vm.PrintCode {
		chunk.Disassemble(vm.Stdout, c, "code")
	}

	vm.chunk = c
	vm.ip = 0
	vm.stack.Reset()
	return vm.run()
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) readConstant() value.Value {
	return vm.chunk.Constants[vm.readByte()]
}

func (vm *VM) run() (Result, error) {
	for {
		if vm.Trace {
			vm.logTrace()
		}

		switch op := chunk.Opcode(vm.readByte()); op {
		case chunk.OpConstant:
			vm.stack.Push(vm.readConstant())

		case chunk.OpConstantLong:
			index := chunk.ReadConstantLong(vm.chunk.Code, vm.ip)
			vm.ip += 3
			vm.stack.Push(vm.chunk.Constants[index])

		case chunk.OpNil:
			vm.stack.Push(value.Nil)
		case chunk.OpTrue:
			vm.stack.Push(value.Bool(true))
		case chunk.OpFalse:
			vm.stack.Push(value.Bool(false))

		case chunk.OpPop:
			vm.stack.Pop()

		case chunk.OpEqual:
			b, a := vm.stack.Pop(), vm.stack.Pop()
			vm.stack.Push(value.Bool(value.Equal(a, b)))

		case chunk.OpGreater:
			if res, err := vm.binaryNumeric(func(a, b float64) value.Value { return value.Bool(a > b) }); err != nil {
				return res, err
			}
		case chunk.OpLess:
			if res, err := vm.binaryNumeric(func(a, b float64) value.Value { return value.Bool(a < b) }); err != nil {
				return res, err
			}

		case chunk.OpAdd:
			if res, err := vm.add(); err != nil {
				return res, err
			}
		case chunk.OpSubtract:
			if res, err := vm.binaryNumeric(func(a, b float64) value.Value { return value.Number(a - b) }); err != nil {
				return res, err
			}
		case chunk.OpMultiply:
			if res, err := vm.binaryNumeric(func(a, b float64) value.Value { return value.Number(a * b) }); err != nil {
				return res, err
			}
		case chunk.OpDivide:
			if res, err := vm.binaryNumeric(func(a, b float64) value.Value { return value.Number(a / b) }); err != nil {
				return res, err
			}

		case chunk.OpNegate:
			if !vm.stack.Peek(0).IsNumber() {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.stack.Push(value.Number(-vm.stack.Pop().AsNumber()))

		case chunk.OpNot:
			vm.stack.Push(value.Bool(vm.stack.Pop().IsFalsey()))

		case chunk.OpPrint:
			fmt.Fprintln(vm.Stdout, vm.stack.Pop().String())

		case chunk.OpReturn:
			return ResultOK, nil

		default:
			panic(fmt.Sprintf("vm: unknown opcode %d", byte(op)))
		}
	}
}

// binaryNumeric requires both of the top two stack values to be numbers
// (an AND check, not the OR that a buggy draft of this loop used — OR
// would wrongly accept the case where exactly one operand is numeric),
// pops them, and pushes apply(left, right).
func (vm *VM) binaryNumeric(apply func(a, b float64) value.Value) (Result, error) {
	if !vm.stack.Peek(0).IsNumber() || !vm.stack.Peek(1).IsNumber() {
		_, err := vm.runtimeError("Operands must be numbers.")
		return ResultRuntimeError, err
	}
	b := vm.stack.Pop().AsNumber()
	a := vm.stack.Pop().AsNumber()
	vm.stack.Push(apply(a, b))
	return ResultOK, nil
}

// add implements OP_ADD: string+string concatenates (left operand
// first, matching a.Chars+b.Chars — not the reversed pop order a prior
// draft used), number+number adds, anything else is a runtime error.
func (vm *VM) add() (Result, error) {
	bv, av := vm.stack.Peek(0), vm.stack.Peek(1)
	switch {
	case av.IsString() && bv.IsString():
		b, a := vm.stack.Pop(), vm.stack.Pop()
		result := vm.heap.Concat(a.AsObject(), b.AsObject())
		vm.stack.Push(value.Obj(result))
		return ResultOK, nil
	case av.IsNumber() && bv.IsNumber():
		b, a := vm.stack.Pop().AsNumber(), vm.stack.Pop().AsNumber()
		vm.stack.Push(value.Number(a + b))
		return ResultOK, nil
	default:
		return vm.runtimeError("Operands must be two numbers or strings.")
	}
}

// runtimeError reports a dispatch-time failure at the line of the
// instruction currently being executed, resets the stack, and returns
// ResultRuntimeError. vm.ip has already advanced past the opcode byte of
// the failing (operand-less) instruction, so ip-1 is its offset.
func (vm *VM) runtimeError(msg string) (Result, error) {
	err := &RuntimeError{Message: msg, Line: vm.chunk.GetLine(vm.ip - 1)}
	vm.stack.Reset()
	vm.Log.SetOutput(vm.Stderr)
	vm.Log.Error(err.Error())
	return ResultRuntimeError, err
}

// logTrace renders DEBUG_TRACE_EXECUTION's per-step stack dump and
// upcoming-instruction disassembly through the diagnostics logger rather
// than Stdout: it is debug output, not the program's own stdout stream.
func (vm *VM) logTrace() {
	var stack strings.Builder
	for i := 0; i < vm.stack.top; i++ {
		fmt.Fprintf(&stack, "[ %s ]", vm.stack.values[i].String())
	}

	var instruction bytes.Buffer
	chunk.DisassembleInstruction(&instruction, vm.chunk, vm.ip)

	vm.Log.SetOutput(vm.Stderr)
	vm.Log.WithField("stack", stack.String()).Debug(strings.TrimSuffix(instruction.String(), "\n"))
}
