// Package fsys provides rooted access to the host filesystem.
//
// Every file the engine touches is addressed by a relative, slash-separated
// path resolved against the filesystem root. Paths containing ".", ".." or
// an OS separator other than '/' are rejected so that nothing outside the
// root can ever be reached.
package fsys

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Mode selects how a file is opened.
type Mode int

// Open modes.
const (
	ModeRead Mode = iota
	ModeWrite
)

// Filesystem gives access to files below a fixed root directory.
type Filesystem struct {
	root string // absolute path all operations are relative to
}

// New creates a Filesystem rooted at root. The root must exist and be a
// directory.
func New(root string) (*Filesystem, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", root, err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root %q: %w", root, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("root %q is not a directory", root)
	}
	return &Filesystem{root: abs}, nil
}

// Root returns the absolute root path.
func (fs *Filesystem) Root() string {
	return fs.root
}

// String converts the filesystem into a human readable form for logs.
func (fs *Filesystem) String() string {
	return fmt.Sprintf("filesystem root %q", fs.root)
}

// checkPath validates a relative engine path against the root jail.
func checkPath(name string) error {
	if name == "" {
		return fmt.Errorf("empty path")
	}
	if strings.HasPrefix(name, "/") || filepath.IsAbs(name) {
		return fmt.Errorf("absolute path %q not allowed", name)
	}
	if strings.ContainsRune(name, '\\') || strings.ContainsRune(name, ':') {
		return fmt.Errorf("path %q contains forbidden characters", name)
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("path %q escapes the filesystem root", name)
		}
	}
	return nil
}

// resolve maps a relative engine path to an absolute OS path.
func (fs *Filesystem) resolve(name string) (string, error) {
	if err := checkPath(name); err != nil {
		return "", err
	}
	return filepath.Join(fs.root, filepath.FromSlash(name)), nil
}

// Open opens the file at the relative path name. ModeWrite creates or
// truncates the file.
func (fs *Filesystem) Open(name string, mode Mode) (*os.File, error) {
	osPath, err := fs.resolve(name)
	if err != nil {
		return nil, err
	}
	switch mode {
	case ModeRead:
		return os.Open(osPath)
	case ModeWrite:
		return os.OpenFile(osPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
	}
	return nil, fmt.Errorf("unknown open mode %d", mode)
}

// Create creates or truncates the file at the relative path name and
// opens it for writing.
func (fs *Filesystem) Create(name string) (*os.File, error) {
	return fs.Open(name, ModeWrite)
}

// Close closes a file previously returned by Open.
func (fs *Filesystem) Close(f *os.File) error {
	return f.Close()
}

// Exists reports whether the file or directory at name exists.
func (fs *Filesystem) Exists(name string) bool {
	osPath, err := fs.resolve(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(osPath)
	return err == nil
}

// Size returns the size in bytes of the file at name.
func (fs *Filesystem) Size(name string) (int64, error) {
	osPath, err := fs.resolve(name)
	if err != nil {
		return 0, err
	}
	fi, err := os.Stat(osPath)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}
