package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"loxvm/vm"
)

// runCmd executes a source file to completion and exits with the code
// matching its outcome, the collaborator role §6 assigns to the file
// runner: feed the whole file to one Interpret call, map the result.
type runCmd struct {
	trace     bool
	printCode bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run a source file" }
func (*runCmd) Usage() string {
	return `run <file>:
  Execute a source file and exit with 0 (ok), 64 (usage error),
  65 (compile error), 70 (runtime error), or 74 (I/O failure).
`
}

func (cmd *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.trace, "trace", false, "print the stack and disassemble each instruction before it executes")
	f.BoolVar(&cmd.printCode, "print-code", false, "disassemble the chunk after a successful compile")
}

func (cmd *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "💥 expected exactly one file argument")
		return exitArgumentUsage
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read %s: %v\n", args[0], err)
		return exitIOFailure
	}

	machine := vm.New()
	machine.Trace = cmd.trace
	machine.PrintCode = cmd.printCode
	defer machine.Free()

	result, runErr := machine.Interpret(string(source))
	// Runtime errors are already reported by the VM's diagnostics logger;
	// only compile errors (raised before a VM run begins) need printing here.
	if runErr != nil && result == vm.ResultCompileError {
		fmt.Fprintln(os.Stderr, runErr.Error())
	}

	switch result {
	case vm.ResultCompileError:
		return exitCompileError
	case vm.ResultRuntimeError:
		return exitRuntimeError
	default:
		return exitOK
	}
}
