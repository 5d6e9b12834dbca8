//go:build windows

package notify

import (
	"golang.org/x/sys/windows"

	"github.com/sliverarmory/tether"
)

var (
	moduser32           = windows.NewLazySystemDLL("user32.dll")
	procGetActiveWindow = moduser32.NewProc("GetActiveWindow")
)

type modal struct{}

// Modal shows each failure in a blocking message box owned by the active
// window. The message is used as both text and caption.
func Modal() Notifier { return modal{} }

func (modal) Notify(f *tether.Failure) {
	msg, err := windows.UTF16PtrFromString(text(f))
	if err != nil {
		return
	}
	_, _ = windows.MessageBox(activeWindow(), msg, msg, windows.MB_OK)
}

func activeWindow() windows.HWND {
	if err := procGetActiveWindow.Find(); err != nil {
		return 0
	}
	hwnd, _, _ := procGetActiveWindow.Call()
	return windows.HWND(hwnd)
}
