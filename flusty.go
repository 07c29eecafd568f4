// Package flusty binds the functions exported by the project's native
// Rust library. The library is located under native/target/release,
// opened on first use and kept open for the life of the process.
//
//	b, err := flusty.New(flusty.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	if err := b.HelloWorld(); err != nil {
//		return err
//	}
package flusty

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/agiangrant/flusty/internal/ffi"
	"github.com/agiangrant/flusty/internal/log"
)

// Exported native symbols.
const (
	SymbolHelloWorld = "hello_world"
)

var (
	// ErrOpen is returned when the native library cannot be opened.
	// This is a re-export of ffi.ErrOpen.
	ErrOpen = ffi.ErrOpen

	// ErrSymbol is returned when the native library lacks a symbol.
	// This is a re-export of ffi.ErrSymbol.
	ErrSymbol = ffi.ErrSymbol
)

// Bindings owns the native library and the functions bound from it.
// A Bindings is safe for concurrent use.
type Bindings struct {
	loader *ffi.Loader
	log    *zap.Logger

	helloOnce  sync.Once
	helloWorld func()
	helloErr   error
}

type options struct {
	logger *zap.Logger
	goos   string
}

// Option configures New.
type Option func(*options)

// WithLogger sets the logger used for library events.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithGOOS computes the library path for goos instead of the running
// platform. A library built for another platform will not open.
func WithGOOS(goos string) Option {
	return func(o *options) { o.goos = goos }
}

// New returns Bindings for the library described by cfg. An empty
// cfg.Root means the working directory. The library is not opened
// until first needed.
func New(cfg Config, opts ...Option) (*Bindings, error) {
	o := options{logger: zap.NewNop(), goos: runtime.GOOS}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	if cfg.Root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		cfg.Root = cwd
	}

	path := cfg.LibraryPath(o.goos)
	return &Bindings{
		loader: ffi.NewLoader(path, o.logger),
		log:    o.logger,
	}, nil
}

// Path returns the path of the native library.
func (b *Bindings) Path() string {
	return b.loader.Path()
}

// Resolve opens the library and checks that every named symbol is
// exported. All missing symbols are reported.
func (b *Bindings) Resolve(symbols ...string) (map[string]uintptr, error) {
	lib, err := b.loader.Library()
	if err != nil {
		return nil, err
	}
	addrs := make(map[string]uintptr, len(symbols))
	var errs []error
	for _, name := range symbols {
		addr, err := lib.Lookup(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		addrs[name] = addr
	}
	return addrs, errors.Join(errs...)
}

// HelloWorld calls the native hello_world function.
func (b *Bindings) HelloWorld() error {
	b.helloOnce.Do(func() {
		lib, err := b.loader.Library()
		if err != nil {
			b.helloErr = err
			return
		}
		b.helloErr = lib.Bind(&b.helloWorld, SymbolHelloWorld)
	})
	if b.helloErr != nil {
		return b.helloErr
	}
	b.log.Debug("calling", log.Fn(SymbolHelloWorld))
	b.helloWorld()
	return nil
}
