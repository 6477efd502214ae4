//go:build windows

package wallpaper

import (
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	systemParametersInfo = user32.NewProc("SystemParametersInfoW")
)

// Windows API constants
const (
	spiSetDeskWallpaper = 0x0014
	spifUpdateIniFile   = 0x01
	spifSendChange      = 0x02
)

// windowsOS implements the OS interface for Windows.
type windowsOS struct{}

// getOS returns the Windows backend.
func getOS() OS {
	return &windowsOS{}
}

func (w *windowsOS) name() string { return "windows" }

// setWallpaper sets the desktop wallpaper to the given image file path.
func (w *windowsOS) setWallpaper(imagePath string, target Target) error {
	// The lock screen is only reachable through WinRT.
	if target.Has(TargetLock) {
		return &unsupportedTargetError{target: target, backend: w.name()}
	}

	imagePath, err := filepath.Abs(imagePath)
	if err != nil {
		return err
	}
	imagePathUTF16, err := windows.UTF16PtrFromString(imagePath)
	if err != nil {
		return err
	}

	ret, _, err := systemParametersInfo.Call(
		uintptr(spiSetDeskWallpaper),
		uintptr(0),
		uintptr(unsafe.Pointer(imagePathUTF16)),
		uintptr(spifUpdateIniFile|spifSendChange),
	)
	if ret == 0 {
		return err
	}
	return nil
}
