// Package notify reports tether failures to the user before a proxy export
// returns its failure status.
package notify

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sliverarmory/tether"
)

// Notifier presents a failure. Notify blocks until the report is done.
type Notifier interface {
	Notify(f *tether.Failure)
}

// Func adapts a function to a Notifier.
type Func func(f *tether.Failure)

func (fn Func) Notify(f *tether.Failure) { fn(f) }

// Mode selects the notifier a proxy is built with.
type Mode string

const (
	ModeModal  Mode = "modal"
	ModeLog    Mode = "log"
	ModeSilent Mode = "silent"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeModal, ModeLog, ModeSilent:
		return m, nil
	default:
		return "", fmt.Errorf("unknown notify mode %q (want modal, log or silent)", s)
	}
}

// ForMode builds the notifier for m. Log output goes to logger. Modal
// failures are logged before the message is shown, so the record exists
// even if the display fails.
func ForMode(m Mode, logger *zap.Logger) Notifier {
	switch m {
	case ModeLog:
		return Log(logger)
	case ModeSilent:
		return Silent()
	default:
		return Multi(Log(logger), Safe(Modal()))
	}
}

type silent struct{}

func (silent) Notify(*tether.Failure) {}

// Silent drops every failure.
func Silent() Notifier { return silent{} }

// Log writes failures to logger at error level.
func Log(logger *zap.Logger) Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Func(func(f *tether.Failure) {
		if f == nil {
			return
		}
		logger.Error(f.Message(),
			zap.Int("code", f.Code()),
			zap.Stringer("kind", f.Kind),
			zap.String("library", f.Library),
			zap.String("export", f.Export),
			zap.String("path", f.Path),
			zap.NamedError("cause", f.Err))
	})
}

// Multi notifies each of ns in order.
func Multi(ns ...Notifier) Notifier {
	return Func(func(f *tether.Failure) {
		for _, n := range ns {
			n.Notify(f)
		}
	})
}

// Safe wraps n so a panic while reporting is swallowed. The caller still
// returns its failure status either way.
func Safe(n Notifier) Notifier {
	return Func(func(f *tether.Failure) {
		defer func() {
			_ = recover()
		}()
		n.Notify(f)
	})
}

// text is the string shown to the user, with NULs removed so the
// platform's string conversion cannot fail.
func text(f *tether.Failure) string {
	if f == nil {
		return "tether failure"
	}
	return strings.ReplaceAll(f.Message(), "\x00", "")
}
