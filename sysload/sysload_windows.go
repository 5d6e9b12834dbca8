//go:build windows

package sysload

import (
	"errors"
	"fmt"
	"syscall"
	"unicode/utf16"

	"golang.org/x/sys/windows"
)

// MaxPath is the length, in UTF-16 code units, of the fixed path buffer.
const MaxPath = windows.MAX_PATH

// Separator joins the system directory and a library file name.
const Separator = `\`

// System is the Windows loader.
type System struct{}

func (System) SystemDirectory() (string, error) {
	dir, err := windows.GetSystemDirectory()
	if err != nil {
		return "", fmt.Errorf("GetSystemDirectoryW: %w", err)
	}
	return dir, nil
}

// LoadLibrary loads the library at path, which must be absolute.
func (System) LoadLibrary(path string) (uintptr, error) {
	handle, err := windows.LoadLibrary(path)
	if err != nil {
		return 0, fmt.Errorf("LoadLibraryW(%s): %w", path, err)
	}
	if handle == 0 {
		return 0, fmt.Errorf("LoadLibraryW(%s): nil module handle", path)
	}
	return uintptr(handle), nil
}

func (System) ProcAddress(module uintptr, name string) (uintptr, error) {
	if module == 0 {
		return 0, errors.New("library handle is nil")
	}
	addr, err := windows.GetProcAddress(windows.Handle(module), name)
	if err != nil {
		return 0, fmt.Errorf("GetProcAddress(%s): %w", name, err)
	}
	return addr, nil
}

func (System) MaxPath() int { return MaxPath }

// PathLen counts s in UTF-16 code units, the unit of the wide path buffer.
func (System) PathLen(s string) int {
	n := 0
	for _, c := range s {
		n += utf16.RuneLen(c)
	}
	return n
}

func (System) Separator() string { return Separator }

// Call invokes addr with args using the platform calling convention and
// returns the first result register.
func Call(addr uintptr, args ...uintptr) uintptr {
	r1, _, _ := syscall.SyscallN(addr, args...)
	return r1
}
