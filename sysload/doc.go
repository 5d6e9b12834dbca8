// Package sysload wraps the three loader primitives a tether needs: the
// protected system library directory, loading a library by absolute path
// and resolving an export by name. It also provides Call for invoking a
// resolved address with raw word-sized arguments.
//
// Library handles returned by LoadLibrary are never released. Entry points
// resolved from them must stay valid for the lifetime of the process.
package sysload
