//go:build windows

package window

import (
	"time"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW         = user32.NewProc("FindWindowW")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	procShowWindow          = user32.NewProc("ShowWindow")
	procIsIconic            = user32.NewProc("IsIconic")
	procKeybdEvent          = user32.NewProc("keybd_event")
)

const (
	vkMenu         = 0x12
	keyeventfKeyUp = 0x0002
	swRestore      = 9
)

// Focus activates the top-level window whose title is exactly title.
func Focus(title string) error {
	t, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return errors.Wrapf(err, "encode title %q", title)
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(t)))
	if hwnd == 0 {
		return errors.Wrapf(ErrNotFound, "title %q", title)
	}

	if iconic, _, _ := procIsIconic.Call(hwnd); iconic != 0 {
		procShowWindow.Call(hwnd, swRestore)
	}

	// 前台锁：先按一下 ALT 才允许 SetForegroundWindow
	procKeybdEvent.Call(vkMenu, 0, 0, 0)
	procKeybdEvent.Call(vkMenu, 0, keyeventfKeyUp, 0)

	if ok, _, callErr := procSetForegroundWindow.Call(hwnd); ok == 0 {
		return errors.Wrapf(callErr, "set foreground %q", title)
	}
	time.Sleep(100 * time.Millisecond)
	log.Info().Str("title", title).Msg("<Window> focused")
	return nil
}
