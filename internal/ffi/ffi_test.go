package ffi

import (
	"errors"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"go.uber.org/zap/zaptest"
)

// systemLibrary returns a library every supported platform ships and a
// symbol in it that takes no arguments.
func systemLibrary(t *testing.T) (path, symbol string) {
	t.Helper()
	switch runtime.GOOS {
	case "linux":
		return "libc.so.6", "getpid"
	case "freebsd":
		return "libc.so.7", "getpid"
	case "darwin":
		return "/usr/lib/libSystem.B.dylib", "getpid"
	case "windows":
		return "kernel32.dll", "GetCurrentProcessId"
	default:
		t.Skipf("no dynamic loader on %s", runtime.GOOS)
		return "", ""
	}
}

func openSystemLibrary(t *testing.T) (*Loader, *Library, string) {
	t.Helper()
	path, symbol := systemLibrary(t)
	l := NewLoader(path, zaptest.NewLogger(t))
	lib, err := l.Library()
	if err != nil {
		t.Skipf("system library unavailable: %v", err)
	}
	return l, lib, symbol
}

func TestLoaderCachesHandle(t *testing.T) {
	l, first, _ := openSystemLibrary(t)

	second, err := l.Library()
	if err != nil {
		t.Fatalf("second Library call failed: %v", err)
	}
	if first != second {
		t.Error("second call returned a different *Library")
	}
	if first.Handle() != second.Handle() {
		t.Errorf("handle changed: %#x != %#x", first.Handle(), second.Handle())
	}
	if first.Path() != l.Path() {
		t.Errorf("Library.Path() = %q, want %q", first.Path(), l.Path())
	}
}

func TestLoaderConcurrentFirstUse(t *testing.T) {
	path, _ := systemLibrary(t)
	l := NewLoader(path, nil)

	const n = 16
	libs := make([]*Library, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			libs[i], errs[i] = l.Library()
		}()
	}
	wg.Wait()

	if errs[0] != nil {
		t.Skipf("system library unavailable: %v", errs[0])
	}
	for i := 1; i < n; i++ {
		if libs[i] != libs[0] || errs[i] != nil {
			t.Errorf("caller %d got (%p, %v), want (%p, nil)", i, libs[i], errs[i], libs[0])
		}
	}
}

func TestLoaderMissingLibrary(t *testing.T) {
	path := LibraryPath(t.TempDir(), runtime.GOOS, "native")
	l := NewLoader(path, zaptest.NewLogger(t))

	lib, err := l.Library()
	if !errors.Is(err, ErrOpen) {
		t.Fatalf("error = %v, want ErrOpen", err)
	}
	if lib != nil {
		t.Errorf("got library %v for failed load", lib)
	}

	_, again := l.Library()
	if again != err {
		t.Errorf("failure not cached: %v != %v", again, err)
	}
}

func TestLoaderNotALibrary(t *testing.T) {
	path := filepath.Join("testdata", LibraryFileName(runtime.GOOS, "bogus"))
	_, err := NewLoader(path, nil).Library()
	if !errors.Is(err, ErrOpen) {
		t.Fatalf("error = %v, want ErrOpen", err)
	}
}

func TestLookup(t *testing.T) {
	_, lib, symbol := openSystemLibrary(t)

	addr, err := lib.Lookup(symbol)
	if err != nil {
		t.Fatalf("Lookup(%q) failed: %v", symbol, err)
	}
	if addr == 0 {
		t.Errorf("Lookup(%q) returned null address", symbol)
	}

	_, err = lib.Lookup("flusty_no_such_symbol")
	if !errors.Is(err, ErrSymbol) {
		t.Errorf("error = %v, want ErrSymbol", err)
	}
}

func TestBind(t *testing.T) {
	_, lib, symbol := openSystemLibrary(t)

	var fn func()
	if err := lib.Bind(&fn, symbol); err != nil {
		t.Fatalf("Bind(%q) failed: %v", symbol, err)
	}
	if fn == nil {
		t.Fatal("Bind left func nil")
	}
	fn()

	var missing func()
	if err := lib.Bind(&missing, "flusty_no_such_symbol"); !errors.Is(err, ErrSymbol) {
		t.Errorf("error = %v, want ErrSymbol", err)
	}
	if missing != nil {
		t.Error("Bind populated func for missing symbol")
	}
}

func TestBindRejectsNonFunc(t *testing.T) {
	_, lib, symbol := openSystemLibrary(t)

	var n int
	var fn func()
	tests := []struct {
		name string
		fptr any
	}{
		{"nil", nil},
		{"func value", fn},
		{"nil func pointer", (*func())(nil)},
		{"int pointer", &n},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := lib.Bind(tt.fptr, symbol); err == nil {
				t.Error("expected error")
			}
		})
	}
}
