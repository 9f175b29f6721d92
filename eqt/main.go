// Command eqt tracks stock options and computes their taxes.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/equity/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, "eqt")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// exits when invoked by the shell completion.
	cmd.Completion(flag.CommandLine).Complete("eqt")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
