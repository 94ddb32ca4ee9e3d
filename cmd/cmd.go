// Package cmd implements the ember command line tool, the offline
// companion of the runtime: it packs compiled resources into archives
// and inspects existing ones. Subcommands register themselves against
// Root from their init functions.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ember-engine/ember/logging"
)

// Root is the parent of all ember subcommands.
var Root = &cobra.Command{
	Use:   "ember",
	Short: "Ember resource bundle tool",
	Long: `Ember packs compiled game resources into archive bundles and
inspects existing bundles. Archives are authored offline; the engine
runtime only ever reads them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(command *cobra.Command, args []string) {
		if verbose {
			logging.SetLevel(logging.LevelDebug)
		}
	},
}

var verbose bool

func init() {
	Root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// CheckArgs checks there are enough arguments and prints a message if
// not.
func CheckArgs(min, max int, command *cobra.Command, args []string) {
	if len(args) < min || len(args) > max {
		_ = command.Usage()
		if min == max {
			fmt.Fprintf(os.Stderr, "Command %s needs %d arguments, got %d\n", command.Name(), min, len(args))
		} else {
			fmt.Fprintf(os.Stderr, "Command %s needs %d to %d arguments, got %d\n", command.Name(), min, max, len(args))
		}
		os.Exit(1)
	}
}

// Main runs the root command and exits non-zero on failure.
func Main() {
	if err := Root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ember: %v\n", err)
		os.Exit(1)
	}
}
