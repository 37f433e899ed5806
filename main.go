package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	cmdr := subcommands.NewCommander(flag.CommandLine, "loxvm")
	cmdr.Register(cmdr.HelpCommand(), "")
	cmdr.Register(cmdr.FlagsCommand(), "")
	cmdr.Register(cmdr.CommandsCommand(), "")
	cmdr.Register(&replCmd{}, "")
	cmdr.Register(&runCmd{}, "")
	cmdr.Register(&disCmd{}, "")

	flag.Parse()
	os.Exit(int(cmdr.Execute(context.Background())))
}
