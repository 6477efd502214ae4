//go:build windows

package sysinfo

import (
	"golang.org/x/sys/windows"

	"github.com/dixieflatline76/setwallpaper/pkg/crop"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	getSystemMetrics = user32.NewProc("GetSystemMetrics")
)

const (
	smCXScreen = 0
	smCYScreen = 1
)

// screenDimensions returns the primary desktop dimension (width and height) in pixels.
func screenDimensions() (crop.Dimensions, error) {
	width, _, err := getSystemMetrics.Call(uintptr(smCXScreen))
	if err != windows.NOERROR {
		return crop.Dimensions{}, err
	}
	height, _, err := getSystemMetrics.Call(uintptr(smCYScreen))
	if err != windows.NOERROR {
		return crop.Dimensions{}, err
	}

	return crop.Dimensions{Width: int(width), Height: int(height)}, nil
}
