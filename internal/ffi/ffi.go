// Package ffi locates and opens native shared libraries built from the Rust
// crate and binds their exported symbols to Go functions via purego.
// No CGo is required, so the package cross-compiles freely.
package ffi

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/agiangrant/flusty/internal/log"
)

var (
	// ErrOpen is returned when a shared library cannot be opened.
	ErrOpen = errors.New("cannot open native library")

	// ErrSymbol is returned when a library does not export a symbol.
	ErrSymbol = errors.New("symbol not found")
)

// Library is an opened shared library. Handles are never closed.
type Library struct {
	path   string
	handle uintptr
	log    *zap.Logger
}

// Path returns the path the library was opened from.
func (l *Library) Path() string { return l.path }

// Handle returns the OS handle of the library.
func (l *Library) Handle() uintptr { return l.handle }

// Lookup returns the address of the exported symbol name.
func (l *Library) Lookup(name string) (uintptr, error) {
	addr, err := getSymbol(l.handle, name)
	if err == nil && addr == 0 {
		err = errors.New("null address")
	}
	if err != nil {
		l.log.Error("symbol lookup failed", log.Fn(name), log.Path(l.path), zap.Error(err))
		return 0, fmt.Errorf("%w: %s in %s: %w", ErrSymbol, name, l.path, err)
	}
	l.log.Debug("resolved", log.Fn(name), log.Addr(addr))
	return addr, nil
}

// Bind resolves the symbol name and stores a callable for it in fptr,
// which must be a non-nil pointer to a func variable. The func type must
// match the native signature; a mismatch is undefined behavior.
func (l *Library) Bind(fptr any, name string) error {
	v := reflect.ValueOf(fptr)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Func {
		return fmt.Errorf("bind %s: want non-nil pointer to func, got %T", name, fptr)
	}
	addr, err := l.Lookup(name)
	if err != nil {
		return err
	}
	registerFunc(fptr, addr)
	return nil
}

// Loader opens a shared library on first use and caches the result.
// A Loader is safe for concurrent use; concurrent first callers all
// observe the same Library or the same error.
type Loader struct {
	path string
	log  *zap.Logger

	once sync.Once
	lib  *Library
	err  error
}

// NewLoader returns a Loader for the library at path. A nil logger
// disables logging.
func NewLoader(path string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{path: path, log: logger}
}

// Path returns the path the Loader opens.
func (l *Loader) Path() string { return l.path }

// Library opens the library on the first call. Later calls return the
// cached Library, or the cached error, without reopening.
func (l *Loader) Library() (*Library, error) {
	l.once.Do(func() {
		l.log.Debug("loading native library", log.Path(l.path))
		handle, err := openLibrary(l.path)
		if err == nil && handle == 0 {
			err = errors.New("null handle")
		}
		if err != nil {
			l.log.Error("failed to load native library", log.Path(l.path), zap.Error(err))
			l.err = fmt.Errorf("%w from %s: %w", ErrOpen, l.path, err)
			return
		}
		l.log.Info("loaded native library", log.Path(l.path), log.Addr(handle))
		l.lib = &Library{path: l.path, handle: handle, log: l.log}
	})
	return l.lib, l.err
}
