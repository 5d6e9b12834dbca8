//go:build !windows

package notify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sliverarmory/tether"
	"github.com/sliverarmory/tether/notify"
)

func TestForModeModalAlsoLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	failure := &tether.Failure{Kind: tether.PathBufferOverflow, Detail: "Buffer too small for system directory."}

	notify.ForMode(notify.ModeModal, zap.New(core)).Notify(failure)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "Buffer too small for system directory. (-2)", entries[0].Message)
	}
}
