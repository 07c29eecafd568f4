//go:build !(darwin || freebsd || linux || windows)

package ffi

import (
	"errors"
	"fmt"
	"runtime"
)

// js/wasm and other targets have no dynamic loader.

func openLibrary(path string) (uintptr, error) {
	return 0, fmt.Errorf("dynamic libraries on %s/%s: %w", runtime.GOOS, runtime.GOARCH, errors.ErrUnsupported)
}

func getSymbol(handle uintptr, name string) (uintptr, error) {
	return 0, errors.ErrUnsupported
}

func registerFunc(fptr any, addr uintptr) {
	panic("unreachable: no symbols resolve on " + runtime.GOOS)
}
