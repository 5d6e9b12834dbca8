package tether

import (
	"errors"
	"fmt"
)

// Kind discriminates why a tether could not be created. The numeric codes
// are stable and are what a user sees in a failure notification.
type Kind int

const (
	// Undefined marks an error that did not come from the resolver.
	Undefined                  Kind = 0
	SystemDirectoryUnavailable Kind = -1
	PathBufferOverflow         Kind = -2
	LibraryLoadFailed          Kind = -3
	ExportNotFound             Kind = -4
	ExportNameEncodingFailed   Kind = -5
)

// Code returns the stable integer code for k.
func (k Kind) Code() int { return int(k) }

func (k Kind) String() string {
	switch k {
	case Undefined:
		return "undefined"
	case SystemDirectoryUnavailable:
		return "system directory unavailable"
	case PathBufferOverflow:
		return "path buffer overflow"
	case LibraryLoadFailed:
		return "library load failed"
	case ExportNotFound:
		return "export not found"
	case ExportNameEncodingFailed:
		return "export name encoding failed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Failure is the only error type Resolve returns.
type Failure struct {
	Kind    Kind
	Library string
	Export  string
	// Path is the absolute library path, once it has been built.
	Path   string
	Detail string
	Err    error
}

var (
	ErrSystemDirectoryUnavailable = &Failure{Kind: SystemDirectoryUnavailable}
	ErrPathBufferOverflow         = &Failure{Kind: PathBufferOverflow}
	ErrLibraryLoadFailed          = &Failure{Kind: LibraryLoadFailed}
	ErrExportNotFound             = &Failure{Kind: ExportNotFound}
	ErrExportNameEncodingFailed   = &Failure{Kind: ExportNameEncodingFailed}
)

func (f *Failure) Error() string {
	msg := "tether: " + f.Kind.String()
	if f.Detail != "" {
		msg += ": " + f.Detail
	}
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	return msg
}

func (f *Failure) Unwrap() error { return f.Err }

// Is reports whether target is a *Failure of the same kind, so the
// package sentinels work with errors.Is.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	return ok && t.Kind == f.Kind
}

func (f *Failure) Code() int { return f.Kind.Code() }

// Message is the user-facing text: the detail followed by the numeric code.
func (f *Failure) Message() string {
	if f.Detail == "" {
		return fmt.Sprintf("%d", f.Code())
	}
	return fmt.Sprintf("%s (%d)", f.Detail, f.Code())
}

// AsFailure returns the *Failure in err's chain, or wraps err as an
// Undefined failure. It returns nil for a nil error.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Kind: Undefined, Detail: err.Error(), Err: err}
}

// KindOf returns the failure kind carried by err, or Undefined.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return Undefined
}
