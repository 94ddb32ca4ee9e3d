// Package seed implements the "ember seed" command.
package seed

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ember-engine/ember/cmd"
	"github.com/ember-engine/ember/resource"
)

var contentSeed uint32

func init() {
	cmd.Root.AddCommand(commandDefinition)
	commandDefinition.Flags().Uint32Var(&contentSeed, "seed", 0, "Content seed mixed into resource name hashes")
}

var commandDefinition = &cobra.Command{
	Use:   "seed resource-path...",
	Short: `Print the bundle ids of resource paths.`,
	Long: `Seed derives the id the engine would use for each resource path, e.g.
"textures/brick.tga": the basename hashed with --seed, the extension
hashed unseeded. Useful for matching archive entries and loose file
names back to their source paths.`,
	RunE: func(command *cobra.Command, args []string) error {
		cmd.CheckArgs(1, 1<<16, command, args)
		for _, path := range args {
			basename, ext := resource.SplitPath(path)
			name := resource.NameHash(basename, contentSeed)
			typ := resource.TypeHash(ext)
			fmt.Printf("%08x%08x  %s\n", name, typ, path)
		}
		return nil
	},
}
