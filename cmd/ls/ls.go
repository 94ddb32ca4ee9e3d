// Package ls implements the "ember ls" command.
package ls

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ember-engine/ember/bundle/archive"
	"github.com/ember-engine/ember/cmd"
	"github.com/ember-engine/ember/fsys"
)

func init() {
	cmd.Root.AddCommand(commandDefinition)
}

var commandDefinition = &cobra.Command{
	Use:   "ls archive-file",
	Short: `List the entries of a packed archive.`,
	RunE: func(command *cobra.Command, args []string) error {
		cmd.CheckArgs(1, 1, command, args)
		return list(args[0])
	},
}

// open mounts the directory holding path and opens the archive in it.
func open(path string) (*archive.Bundle, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fs, err := fsys.New(filepath.Dir(abs))
	if err != nil {
		return nil, err
	}
	return archive.New(fs, filepath.Base(abs))
}

func list(path string) error {
	b, err := open(path)
	if err != nil {
		return err
	}
	defer func() { _ = b.Shutdown() }()

	fmt.Printf("archive version %d, %d entries\n", b.Version(), len(b.Entries()))
	for _, e := range b.Entries() {
		fmt.Fprintf(os.Stdout, "%08x%08x  %10s  at %d\n", e.Name, e.Type, humanize.Bytes(uint64(e.Size)), e.Offset)
	}
	return nil
}
