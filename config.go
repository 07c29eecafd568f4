package flusty

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/agiangrant/flusty/internal/ffi"
)

// ConfigFile is the name of the project configuration file.
const ConfigFile = "flusty.toml"

// Config represents the flusty.toml configuration file.
type Config struct {
	// Root is the directory the config was loaded from. Relative
	// paths in the file are resolved against it.
	Root string `toml:"-"`

	Native NativeConfig `toml:"native"`
	Log    LogConfig    `toml:"log"`
}

// NativeConfig locates the Rust crate and its build output.
type NativeConfig struct {
	// Crate directory, relative to the root
	Dir string `toml:"dir"`
	// Cargo profile (release, debug)
	Profile string `toml:"profile"`
	// Library name as declared in Cargo.toml
	Name string `toml:"name"`
	// Explicit library path, overrides Dir/Profile/Name
	Path string `toml:"path,omitempty"`
	// Symbols checked by `flusty check`
	Symbols []string `toml:"symbols"`
}

type LogConfig struct {
	Debug bool `toml:"debug"`
}

// DefaultConfig returns the configuration used when no flusty.toml exists.
func DefaultConfig() Config {
	return Config{
		Native: NativeConfig{
			Dir:     ffi.DefaultCrateDir,
			Profile: ffi.DefaultProfile,
			Name:    "native",
			Symbols: []string{SymbolHelloWorld},
		},
	}
}

// FindRoot walks from start towards the filesystem root and returns the
// first directory containing flusty.toml. If there is none, start is
// returned.
func FindRoot(start string) string {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, ConfigFile)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

// LoadConfig loads flusty.toml from root.
// If the file doesn't exist, returns the default config.
func LoadConfig(root string) (Config, error) {
	config := DefaultConfig()
	config.Root = root

	configPath := filepath.Join(root, ConfigFile)
	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}
	config.Root = root
	return config, nil
}

// SaveConfig writes cfg to flusty.toml in root.
func SaveConfig(root string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	configPath := filepath.Join(root, ConfigFile)
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	return nil
}

// LibraryPath returns the native library path for goos described by cfg.
func (cfg Config) LibraryPath(goos string) string {
	if cfg.Native.Path != "" {
		if filepath.IsAbs(cfg.Native.Path) {
			return cfg.Native.Path
		}
		return filepath.Join(cfg.Root, cfg.Native.Path)
	}
	name := cfg.Native.Name
	if name == "" {
		name = DefaultConfig().Native.Name
	}
	layout := ffi.Layout{CrateDir: cfg.Native.Dir, Profile: cfg.Native.Profile}
	return layout.Path(cfg.Root, goos, name)
}
