// Command fin is a set of corporate finance calculators. Run 'fin help' for
// the list of commands and 'fin topic' for the manual.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/finkit/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// FIN_* variables may come from a .env file, a missing one is fine.
	_ = godotenv.Load()

	name := path.Base(os.Args[0])
	// exits when invoked by the shell to complete a command line.
	cmd.Completion(cmd.Commands).Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
