// Package cat implements the "ember cat" command.
package cat

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ember-engine/ember/bundle"
	"github.com/ember-engine/ember/bundle/archive"
	"github.com/ember-engine/ember/cmd"
	"github.com/ember-engine/ember/fsys"
	"github.com/ember-engine/ember/resource"
)

var seed uint32

func init() {
	cmd.Root.AddCommand(commandDefinition)
	commandDefinition.Flags().Uint32Var(&seed, "seed", 0, "Content seed mixed into resource name hashes")
}

var commandDefinition = &cobra.Command{
	Use:   "cat archive-file resource-path",
	Short: `Write one resource payload to stdout.`,
	Long: `Cat extracts a single payload from a packed archive. The resource is
named the way the engine names it, e.g. "textures/brick.tga"; pass the
--seed the archive was packed with.`,
	RunE: func(command *cobra.Command, args []string) error {
		cmd.CheckArgs(2, 2, command, args)
		return cat(args[0], args[1])
	},
}

func cat(path, name string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	fs, err := fsys.New(filepath.Dir(abs))
	if err != nil {
		return err
	}
	b, err := archive.New(fs, filepath.Base(abs))
	if err != nil {
		return err
	}
	defer func() { _ = b.Shutdown() }()

	basename, ext := resource.SplitPath(name)
	id := bundle.ID{
		Name: resource.NameHash(basename, seed),
		Type: resource.TypeHash(ext),
	}
	s, err := b.Open(id)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", name, err)
	}
	defer func() { _ = b.Close(s) }()
	_, err = io.CopyN(os.Stdout, s, s.Size())
	return err
}
