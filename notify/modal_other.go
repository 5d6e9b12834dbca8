//go:build !windows

package notify

import (
	"fmt"
	"os"

	"github.com/sliverarmory/tether"
)

type modal struct{}

// Modal writes each failure to stderr. There is no message box outside
// Windows.
func Modal() Notifier { return modal{} }

func (modal) Notify(f *tether.Failure) {
	_, _ = fmt.Fprintln(os.Stderr, text(f))
}
