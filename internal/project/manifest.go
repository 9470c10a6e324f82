// Package project locates and reads iona.toml, the per-project manifest.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the project root is identified by.
const ManifestName = "iona.toml"

// Manifest is a parsed iona.toml plus where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config is the TOML shape of iona.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

type PackageConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type BuildConfig struct {
	// Main is the entry source file, relative to the project root.
	Main string `toml:"main"`
	// OutDir is where generated C lands. Defaults to "build".
	OutDir string `toml:"out_dir"`
}

// FindManifest walks up from startDir to locate iona.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindProjectRoot returns the directory containing iona.toml, if any.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(manifestPath), true, nil
}

// Load locates and parses the manifest governing startDir.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package] section", path)
	}
	if cfg.Package.Name == "" {
		return Config{}, fmt.Errorf("%s: package.name must not be empty", path)
	}
	if cfg.Build.OutDir == "" {
		cfg.Build.OutDir = "build"
	}
	return cfg, nil
}

// OutDir resolves the build output directory against the project root.
func (m *Manifest) OutDir() string {
	if filepath.IsAbs(m.Config.Build.OutDir) {
		return m.Config.Build.OutDir
	}
	return filepath.Join(m.Root, m.Config.Build.OutDir)
}

// MainPath resolves the entry source file against the project root.
// Empty when the manifest does not declare one.
func (m *Manifest) MainPath() string {
	if m.Config.Build.Main == "" {
		return ""
	}
	if filepath.IsAbs(m.Config.Build.Main) {
		return m.Config.Build.Main
	}
	return filepath.Join(m.Root, m.Config.Build.Main)
}
