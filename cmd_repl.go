package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"loxvm/vm"
)

// replLineLimit mirrors the fixed 1024-byte line buffer the REPL reads
// into: a single cap applied uniformly rather than growing per input.
const replLineLimit = 1024

// replCmd starts an interactive session: one line in, one Interpret call,
// repeat. The VM persists across lines so string interning and the
// object list accumulate for the life of the session, the way a REPL
// built around one long-lived VM value should.
type replCmd struct {
	trace     bool
	printCode bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "start an interactive session" }
func (*replCmd) Usage() string {
	return `repl:
  Read one line at a time and interpret it. "exit" quits.
`
}

func (cmd *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.trace, "trace", false, "print the stack and disassemble each instruction before it executes")
	f.BoolVar(&cmd.printCode, "print-code", false, "disassemble the chunk after a successful compile")
}

func (cmd *replCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.NewEx(&readline.Config{Prompt: "> "})
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to start the line editor: %v\n", err)
		return exitIOFailure
	}
	defer rl.Close()

	machine := vm.New()
	machine.Trace = cmd.trace
	machine.PrintCode = cmd.printCode
	defer machine.Free()

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return exitOK
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return exitIOFailure
		}

		if line == "exit" {
			return exitOK
		}
		if len(line) > replLineLimit {
			fmt.Fprintf(os.Stderr, "💥 line exceeds %d bytes\n", replLineLimit)
			continue
		}

		// Runtime errors are already reported by the VM's diagnostics
		// logger; only a compile error needs printing here.
		if result, err := machine.Interpret(line); err != nil && result == vm.ResultCompileError {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
