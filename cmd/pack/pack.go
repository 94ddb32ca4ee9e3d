// Package pack implements the "ember pack" command.
package pack

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ember-engine/ember/bundle/archive"
	"github.com/ember-engine/ember/cmd"
	"github.com/ember-engine/ember/logging"
	"github.com/ember-engine/ember/resource"
)

var (
	seed  uint32
	align uint64
)

func init() {
	cmd.Root.AddCommand(commandDefinition)
	flags := commandDefinition.Flags()
	flags.Uint32Var(&seed, "seed", 0, "Content seed mixed into resource name hashes")
	flags.Uint64Var(&align, "align", 1, "Byte alignment of payloads inside the archive")
}

var commandDefinition = &cobra.Command{
	Use:   "pack source-dir archive-file",
	Short: `Pack a directory of compiled resources into an archive.`,
	Long: `Pack walks source-dir and stores every file it finds as one archive
entry. The entry id is derived from the file name the same way the
runtime derives it: the basename is hashed with --seed, the extension
is hashed unseeded. Pass the seed the target game build uses.`,
	RunE: func(command *cobra.Command, args []string) error {
		cmd.CheckArgs(2, 2, command, args)
		return pack(args[0], args[1])
	},
}

func pack(dir, out string) error {
	w := archive.NewWriter(align)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		payload, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %q: %w", path, err)
		}
		basename, ext := resource.SplitPath(filepath.ToSlash(rel))
		name := resource.NameHash(basename, seed)
		typ := resource.TypeHash(ext)
		logging.Debugf(nil, "packing %q as %08x%08x (%d bytes)", rel, name, typ, len(payload))
		return w.Add(name, typ, payload)
	})
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", out, err)
	}
	n, err := w.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", out, err)
	}
	logging.Infof(nil, "packed %d resources into %q (%d bytes)", w.Len(), out, n)
	return nil
}
