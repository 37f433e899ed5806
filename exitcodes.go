package main

import "github.com/google/subcommands"

// Exit codes mirror the file-runner/REPL convention of the interpreter
// this CLI wraps: distinct codes for compile vs. runtime failure let
// calling scripts distinguish "your program is wrong" from "it crashed".
const (
	exitOK            subcommands.ExitStatus = 0
	exitCompileError  subcommands.ExitStatus = 65
	exitRuntimeError  subcommands.ExitStatus = 70
	exitArgumentUsage subcommands.ExitStatus = 64
	exitIOFailure     subcommands.ExitStatus = 74
)
