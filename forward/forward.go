// Package forward relays calls made against a proxy export to the genuine
// export resolved by a tether.
//
// Each API has one typed method on Forwarder. That method is the only place
// the API's signature is asserted, because the resolver hands back an
// untyped address. Arguments are passed through unchanged and the genuine
// result is returned unchanged. Pointer arguments arrive as uintptr and must
// reference memory that does not move, normally memory owned by the C caller
// of the proxy export.
package forward

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sliverarmory/tether"
	"github.com/sliverarmory/tether/notify"
	"github.com/sliverarmory/tether/sysload"
)

// HRESULT is the COM status word every forwarded API returns.
type HRESULT int32

const (
	SOK HRESULT = 0
	// EFail is E_FAIL (0x80004005), returned whenever a tether could not
	// be created.
	EFail HRESULT = -0x7FFFBFFB
)

func (h HRESULT) Failed() bool { return h < 0 }

func (h HRESULT) String() string { return fmt.Sprintf("0x%08X", uint32(h)) }

// Resolver is satisfied by *tether.Resolver.
type Resolver interface {
	Resolve(library, export string) (tether.EntryPoint, error)
}

// Caller invokes a resolved address with raw arguments.
type Caller func(addr uintptr, args ...uintptr) uintptr

type Forwarder struct {
	resolver Resolver
	notifier notify.Notifier
	call     Caller
	logger   *zap.Logger
}

type Option func(*Forwarder)

func WithCaller(c Caller) Option {
	return func(f *Forwarder) {
		if c != nil {
			f.call = c
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(f *Forwarder) {
		if l != nil {
			f.logger = l
		}
	}
}

// New returns a Forwarder. A nil notifier reports nothing.
func New(resolver Resolver, notifier notify.Notifier, opts ...Option) *Forwarder {
	if notifier == nil {
		notifier = notify.Silent()
	}
	f := &Forwarder{
		resolver: resolver,
		notifier: notify.Safe(notifier),
		call:     sysload.Call,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Forward resolves b and calls it with args. On any failure the notifier is
// told and EFail is returned; the genuine export is never partially called.
func (f *Forwarder) Forward(b Binding, args ...uintptr) HRESULT {
	if len(args) != b.Arity {
		f.report(&tether.Failure{
			Kind:    tether.Undefined,
			Library: b.Library,
			Export:  b.Export,
			Detail:  fmt.Sprintf("%s takes %d arguments, got %d", b.Export, b.Arity, len(args)),
		})
		return EFail
	}

	entry, err := f.resolver.Resolve(b.Library, b.Export)
	if err != nil {
		f.report(tether.AsFailure(err))
		return EFail
	}

	hr := HRESULT(int32(uint32(f.call(entry.Addr(), args...))))
	f.logger.Debug("forwarded",
		zap.String("export", b.Export),
		zap.Stringer("hresult", hr))
	return hr
}

func (f *Forwarder) report(failure *tether.Failure) {
	f.logger.Error("forward failed",
		zap.String("library", failure.Library),
		zap.String("export", failure.Export),
		zap.Int("code", failure.Code()),
		zap.Error(failure))
	f.notifier.Notify(failure)
}
