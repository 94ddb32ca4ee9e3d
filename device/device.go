// Package device boots the engine runtime: it reads the boot
// configuration, opens the resource bundle, assembles the codec table
// and the resource manager, and pumps the manager once per frame.
package device

import (
	"fmt"

	"github.com/ember-engine/ember/bundle"
	"github.com/ember-engine/ember/bundle/archive"
	"github.com/ember-engine/ember/bundle/loose"
	"github.com/ember-engine/ember/config"
	"github.com/ember-engine/ember/fsys"
	"github.com/ember-engine/ember/logging"
	"github.com/ember-engine/ember/render"
	"github.com/ember-engine/ember/resource"
	"github.com/ember-engine/ember/restype/all"
)

// Device owns the engine-side collaborators of the resource subsystem.
type Device struct {
	fs       *fsys.Filesystem
	bundle   bundle.Bundle
	arch     *archive.Bundle // non-nil when the bundle is a packed archive
	renderer render.Ops
	manager  *resource.Manager
	frames   uint64
}

// New boots a device over the content root directory, using r as the
// renderer. It reads seed.ini and engine.ini, opens the configured
// bundle (validating the archive version) and starts the resource
// manager's loader. Configuration and version errors are fatal for the
// boot and returned to the caller.
func New(root string, r render.Ops) (*Device, error) {
	fs, err := fsys.New(root)
	if err != nil {
		return nil, fmt.Errorf("failed to mount content root: %w", err)
	}

	seed, err := config.LoadSeed(fs)
	if err != nil {
		return nil, err
	}

	settings, err := config.LoadSettings(fs)
	if err != nil {
		return nil, err
	}
	switch settings.LogLevel {
	case "debug":
		logging.SetLevel(logging.LevelDebug)
	case "error":
		logging.SetLevel(logging.LevelError)
	}

	d := &Device{
		fs:       fs,
		renderer: r,
	}
	switch settings.BundleKind {
	case config.BundleArchive:
		arch, err := archive.New(fs, settings.BundlePath)
		if err != nil {
			return nil, err
		}
		d.arch = arch
		d.bundle = arch
	case config.BundleLoose:
		d.bundle = loose.New(fs, settings.BundlePath)
	}

	codecs := resource.NewCodecSet(all.Codecs(r)...)
	alloc := resource.NewAllocator("resources")
	d.manager = resource.New(d.bundle, codecs, alloc, seed)
	d.manager.Start()

	logging.Infof(d, "booted with %v, seed %d", d.bundle, seed)
	return d, nil
}

// String converts the device into a human readable form for logs.
func (d *Device) String() string {
	return "device"
}

// Filesystem returns the content root filesystem.
func (d *Device) Filesystem() *fsys.Filesystem {
	return d.fs
}

// Manager returns the resource manager.
func (d *Device) Manager() *resource.Manager {
	return d.manager
}

// Frame runs the per-frame resource pump: it pokes the loader and
// brings completed loads online. Call once per frame from the main
// goroutine.
func (d *Device) Frame() {
	d.frames++
	d.manager.CheckLoadQueue()
	d.manager.BringLoadedOnline()
}

// Frames returns the number of frames pumped so far.
func (d *Device) Frames() uint64 {
	return d.frames
}

// Close shuts the device down: the manager flushes and unloads
// everything, the loader goroutine exits, and the archive handle (if
// any) is closed.
func (d *Device) Close() error {
	err := d.manager.Close()
	if d.arch != nil {
		if cerr := d.arch.Shutdown(); err == nil {
			err = cerr
		}
	}
	return err
}
