//go:build linux && cgo

package sysload

/*
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdint.h>
#include <stdlib.h>

// dlerror is thread-local, so it is read in the same C call that failed.
static uintptr_t tether_dlopen(const char *path, const char **err) {
	void *handle = dlopen(path, RTLD_NOW | RTLD_LOCAL);
	*err = handle == NULL ? dlerror() : NULL;
	return (uintptr_t)handle;
}

static uintptr_t tether_dlsym(uintptr_t handle, const char *name, const char **err) {
	dlerror();
	void *sym = dlsym((void *)handle, name);
	*err = sym == NULL ? dlerror() : NULL;
	return (uintptr_t)sym;
}
*/
import "C"

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

// MaxPath is the length, in bytes, of the longest path the loader accepts.
const MaxPath = unix.PathMax

const Separator = "/"

// System is the Linux loader. The protected directory is the one the
// process's own libc was mapped from.
type System struct{}

func (System) SystemDirectory() (string, error) {
	libc, err := findRuntimeLibc()
	if err != nil {
		return "", err
	}
	return filepath.Dir(libc), nil
}

func (System) LoadLibrary(path string) (uintptr, error) {
	if !filepath.IsAbs(path) {
		return 0, fmt.Errorf("dlopen(%s): path is not absolute", path)
	}
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	var cErr *C.char
	handle := uintptr(C.tether_dlopen(cPath, &cErr))
	if handle == 0 {
		return 0, fmt.Errorf("dlopen(%s): %w", path, dlError(cErr, "unknown dlopen error"))
	}
	return handle, nil
}

func (System) ProcAddress(module uintptr, name string) (uintptr, error) {
	if module == 0 {
		return 0, errors.New("library handle is nil")
	}
	if strings.ContainsRune(name, '\x00') {
		return 0, errors.New("string contains NUL")
	}
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var cErr *C.char
	sym := uintptr(C.tether_dlsym(C.uintptr_t(module), cName, &cErr))
	if sym == 0 {
		return 0, fmt.Errorf("dlsym(%s): %w", name, dlError(cErr, "symbol address is nil"))
	}
	return sym, nil
}

func (System) MaxPath() int { return MaxPath }

// PathLen counts s in bytes, the unit dlopen and PATH_MAX use.
func (System) PathLen(s string) int { return len(s) }

func (System) Separator() string { return Separator }

func dlError(msg *C.char, fallback string) error {
	if msg == nil {
		return errors.New(fallback)
	}
	return errors.New(C.GoString(msg))
}

func findRuntimeLibc() (string, error) {
	paths, err := readProcMaps()
	if err != nil {
		return "", err
	}

	bestScore := -1
	var best string
	for _, path := range paths {
		score := libcPathScore(path)
		if score > bestScore {
			bestScore = score
			best = path
		}
	}
	if bestScore < 0 || best == "" {
		return "", errors.New("failed to locate runtime libc mapping")
	}
	return best, nil
}

func libcPathScore(path string) int {
	p := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasPrefix(p, "libc.so"):
		return 100
	case strings.HasPrefix(p, "libc-"):
		return 95
	case strings.HasPrefix(p, "ld-musl"):
		return 90
	default:
		return -1
	}
}

func readProcMaps() ([]string, error) {
	raw, err := os.ReadFile("/proc/self/maps")
	if err != nil {
		return nil, fmt.Errorf("read /proc/self/maps: %w", err)
	}
	return parseProcMaps(string(raw)), nil
}

// parseProcMaps returns the paths of executable, file-backed mappings.
func parseProcMaps(raw string) []string {
	lines := strings.Split(raw, "\n")
	paths := make([]string, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 6 {
			continue
		}
		if !strings.Contains(fields[1], "x") {
			continue
		}

		path := strings.TrimSuffix(strings.Join(fields[5:], " "), " (deleted)")
		if !strings.HasPrefix(path, "/") {
			continue
		}
		paths = append(paths, path)
	}
	return paths
}
