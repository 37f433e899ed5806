package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"loxvm/chunk"
	"loxvm/compiler"
	"loxvm/value"
)

// disCmd compiles a source file and writes its disassembly to stdout
// without executing it — the disassembly-output-formatting concern §1
// assigns to the CLI rather than the core, exposed here as its own
// command instead of only as the -print-code flag on run.
type disCmd struct{}

func (*disCmd) Name() string     { return "dis" }
func (*disCmd) Synopsis() string { return "disassemble a source file without running it" }
func (*disCmd) Usage() string {
	return `dis <file>:
  Compile a source file and print its disassembly.
`
}

func (*disCmd) SetFlags(*flag.FlagSet) {}

func (*disCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	c := chunk.New()
	ok, compileErr := compiler.Compile(string(source), c, value.NewHeap())
	if !ok {
		fmt.Fprintln(os.Stderr, compileErr)
		return exitCompileError
	}

	chunk.Disassemble(os.Stdout, c, args[0])
	return exitOK
}
