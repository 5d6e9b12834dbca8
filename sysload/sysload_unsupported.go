//go:build !windows && !(linux && cgo)

package sysload

import "errors"

var errUnsupported = errors.New("sysload is only supported on windows, and on linux with cgo")

const (
	MaxPath   = 260
	Separator = "/"
)

type System struct{}

func (System) SystemDirectory() (string, error) {
	return "", errUnsupported
}

func (System) LoadLibrary(path string) (uintptr, error) {
	_ = path
	return 0, errUnsupported
}

func (System) ProcAddress(module uintptr, name string) (uintptr, error) {
	_, _ = module, name
	return 0, errUnsupported
}

func (System) MaxPath() int { return MaxPath }

func (System) PathLen(s string) int { return len(s) }

func (System) Separator() string { return Separator }

func Call(addr uintptr, args ...uintptr) uintptr {
	panic("sysload: Call is not supported on this platform")
}
