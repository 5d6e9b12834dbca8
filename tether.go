// Package tether resolves exports of genuine system libraries by absolute
// path, so a proxy library can forward calls to the library it stands in
// for.
//
// The path is always built from a freshly queried system directory and
// never from the loader's search order. A same-named library planted
// earlier in the search path, including the proxy itself, is therefore
// never the one resolved.
//
// An EntryPoint is an untyped address. Its real signature cannot be
// checked at runtime; callers must bind it only to the documented
// signature of that exact library/export pair.
package tether

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sliverarmory/tether/sysload"
)

// Platform is the loader a Resolver runs against.
type Platform interface {
	SystemDirectory() (string, error)
	// LoadLibrary loads the library at an absolute path.
	LoadLibrary(path string) (uintptr, error)
	ProcAddress(module uintptr, name string) (uintptr, error)
	// MaxPath is the size of the path buffer, including its terminator.
	MaxPath() int
	// PathLen measures s in the units MaxPath is counted in.
	PathLen(s string) int
	Separator() string
}

// EntryPoint is the resolved address of an export.
type EntryPoint uintptr

func (e EntryPoint) Addr() uintptr { return uintptr(e) }

func (e EntryPoint) IsZero() bool { return e == 0 }

func (e EntryPoint) String() string { return fmt.Sprintf("%#x", uintptr(e)) }

// Resolver creates tethers. A Resolver without a cache holds no mutable
// state and is safe for concurrent use; with a cache it is also safe.
type Resolver struct {
	platform Platform
	logger   *zap.Logger
	cache    *cache
}

type Option func(*Resolver)

// WithPlatform replaces the host loader.
func WithPlatform(p Platform) Option {
	return func(r *Resolver) {
		r.platform = p
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithCache keeps resolved libraries and entry points for the lifetime of
// the Resolver. Each distinct library is loaded at most once; failures are
// never cached.
func WithCache() Option {
	return func(r *Resolver) {
		r.cache = newCache()
	}
}

func New(opts ...Option) *Resolver {
	r := &Resolver{
		platform: sysload.System{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the address of export inside the genuine copy of library
// in the system directory. A non-nil error is always a *Failure.
func (r *Resolver) Resolve(library, export string) (EntryPoint, error) {
	if r.cache != nil {
		if entry, ok := r.cache.entry(library, export); ok {
			return entry, nil
		}
	}

	entry, err := r.resolve(library, export)
	if err != nil {
		f := AsFailure(err)
		r.logger.Warn("tether failed",
			zap.String("library", library),
			zap.String("export", export),
			zap.Int("code", f.Code()),
			zap.Error(err))
		return 0, err
	}

	if r.cache != nil {
		entry = r.cache.storeEntry(library, export, entry)
	}
	r.logger.Debug("tether resolved",
		zap.String("library", library),
		zap.String("export", export),
		zap.Stringer("addr", entry))
	return entry, nil
}

func (r *Resolver) resolve(library, export string) (EntryPoint, error) {
	path, err := r.libraryPath(library)
	if err != nil {
		return 0, err
	}

	module, err := r.load(library, path)
	if err != nil {
		return 0, err
	}

	if strings.IndexByte(export, 0) >= 0 {
		return 0, &Failure{
			Kind:    ExportNameEncodingFailed,
			Library: library,
			Export:  export,
			Path:    path,
			Detail:  "Failed to create procedure name string.",
		}
	}

	addr, err := r.platform.ProcAddress(module, export)
	if err == nil && addr == 0 {
		err = fmt.Errorf("%s resolved to a nil address", export)
	}
	if err != nil {
		return 0, &Failure{
			Kind:    ExportNotFound,
			Library: library,
			Export:  export,
			Path:    path,
			Detail:  fmt.Sprintf("Failed to get address of %s in %s", export, library),
			Err:     err,
		}
	}
	return EntryPoint(addr), nil
}

// LibraryPath returns the absolute path Resolve would load library from.
func (r *Resolver) LibraryPath(library string) (string, error) {
	return r.libraryPath(library)
}

func (r *Resolver) libraryPath(library string) (string, error) {
	maxPath := r.platform.MaxPath()

	dir, err := r.platform.SystemDirectory()
	if err != nil {
		return "", &Failure{
			Kind:    SystemDirectoryUnavailable,
			Library: library,
			Detail:  "Couldn't get system directory.",
			Err:     err,
		}
	}
	dirLen := r.platform.PathLen(dir)
	if dirLen == 0 || dirLen >= maxPath {
		return "", &Failure{
			Kind:    SystemDirectoryUnavailable,
			Library: library,
			Detail:  "Couldn't get system directory.",
			Err:     fmt.Errorf("system directory length %d outside (0, %d)", dirLen, maxPath),
		}
	}

	sep := r.platform.Separator()
	sepLen := r.platform.PathLen(sep)
	if dirLen+sepLen >= maxPath {
		return "", &Failure{
			Kind:    PathBufferOverflow,
			Library: library,
			Detail:  "Buffer too small for system directory.",
			Err:     fmt.Errorf("%s%s leaves no room in %d units", dir, sep, maxPath),
		}
	}
	if dirLen+sepLen+r.platform.PathLen(library) >= maxPath {
		return "", &Failure{
			Kind:    PathBufferOverflow,
			Library: library,
			Detail:  "Buffer too small for module name.",
			Err:     fmt.Errorf("%s%s%s does not fit in %d units", dir, sep, library, maxPath),
		}
	}
	return dir + sep + library, nil
}

func (r *Resolver) load(library, path string) (uintptr, error) {
	load := func() (uintptr, error) {
		module, err := r.platform.LoadLibrary(path)
		if err == nil && module == 0 {
			err = fmt.Errorf("loader returned a nil handle for %s", path)
		}
		if err != nil {
			return 0, &Failure{
				Kind:    LibraryLoadFailed,
				Library: library,
				Path:    path,
				Detail:  fmt.Sprintf("Failed to load %s when creating tether.", path),
				Err:     err,
			}
		}
		return module, nil
	}
	if r.cache != nil {
		return r.cache.library(path, load)
	}
	return load()
}
