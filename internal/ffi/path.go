package ffi

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Default location of the cargo build output, relative to the project root.
const (
	DefaultCrateDir = "native"
	DefaultProfile  = "release"
)

// LibraryFileName returns the file name cargo gives a cdylib called name
// when building for goos.
func LibraryFileName(goos, name string) string {
	switch goos {
	case "darwin", "ios":
		return "lib" + name + ".dylib"
	case "windows":
		return name + ".dll"
	default:
		return "lib" + name + ".so"
	}
}

// Layout describes where cargo places the built library under a root.
type Layout struct {
	CrateDir string
	Profile  string
}

// DefaultLayout is native/target/release.
var DefaultLayout = Layout{CrateDir: DefaultCrateDir, Profile: DefaultProfile}

// Dir returns the directory holding the built library under root.
func (l Layout) Dir(root string) string {
	crate := l.CrateDir
	if crate == "" {
		crate = DefaultCrateDir
	}
	profile := l.Profile
	if profile == "" {
		profile = DefaultProfile
	}
	return filepath.Join(root, crate, "target", profile)
}

// Path returns the full library path for name built for goos under root.
func (l Layout) Path(root, goos, name string) string {
	return filepath.Join(l.Dir(root), LibraryFileName(goos, name))
}

// LibraryPath returns <root>/native/target/release/<file> for goos.
func LibraryPath(root, goos, name string) string {
	return DefaultLayout.Path(root, goos, name)
}

// DefaultLibraryPath returns the library path under the working
// directory for the running platform.
func DefaultLibraryPath(name string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return LibraryPath(cwd, runtime.GOOS, name), nil
}
