// Package config reads the engine's boot-time configuration from the
// filesystem root.
//
// Two files take part: seed.ini, a bare decimal integer seeding the
// resource name hash (required, and kept bit-compatible with the
// content pipeline), and engine.ini, optional INI-style settings.
package config

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Unknwon/goconfig"

	"github.com/ember-engine/ember/fsys"
)

// Well-known configuration files at the filesystem root.
const (
	SeedFile     = "seed.ini"
	SettingsFile = "engine.ini"
)

// Bundle kinds accepted in engine.ini.
const (
	BundleArchive = "archive"
	BundleLoose   = "loose"
)

// Settings is the parsed engine.ini.
type Settings struct {
	BundleKind string // "archive" or "loose"
	BundlePath string // archive file or loose-file directory
	LogLevel   string // "debug", "info" or "error"
}

// Defaults returns the settings used when engine.ini is absent.
func Defaults() Settings {
	return Settings{
		BundleKind: BundleArchive,
		BundlePath: "archive.bin",
		LogLevel:   "info",
	}
}

// LoadSeed reads the content seed from seed.ini. A missing or
// malformed seed file is a fatal boot error for the engine; the error
// is returned for the caller to act on.
func LoadSeed(fs *fsys.Filesystem) (uint32, error) {
	if !fs.Exists(SeedFile) {
		return 0, fmt.Errorf("missing %s at the filesystem root", SeedFile)
	}
	f, err := fs.Open(SeedFile, fsys.ModeRead)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", SeedFile, err)
	}
	defer func() { _ = fs.Close(f) }()
	raw, err := io.ReadAll(f)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", SeedFile, err)
	}
	seed, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("malformed seed in %s: %w", SeedFile, err)
	}
	return uint32(seed), nil
}

// LoadSettings reads engine.ini, falling back to Defaults when the
// file does not exist.
func LoadSettings(fs *fsys.Filesystem) (Settings, error) {
	s := Defaults()
	if !fs.Exists(SettingsFile) {
		return s, nil
	}
	f, err := fs.Open(SettingsFile, fsys.ModeRead)
	if err != nil {
		return s, fmt.Errorf("failed to open %s: %w", SettingsFile, err)
	}
	defer func() { _ = fs.Close(f) }()
	cfg, err := goconfig.LoadFromReader(f)
	if err != nil {
		return s, fmt.Errorf("failed to parse %s: %w", SettingsFile, err)
	}
	s.BundleKind = cfg.MustValue("resources", "bundle", s.BundleKind)
	s.BundlePath = cfg.MustValue("resources", "path", s.BundlePath)
	s.LogLevel = cfg.MustValue("log", "level", s.LogLevel)
	if s.BundleKind != BundleArchive && s.BundleKind != BundleLoose {
		return s, fmt.Errorf("unknown bundle kind %q in %s", s.BundleKind, SettingsFile)
	}
	return s, nil
}
