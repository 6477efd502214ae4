//go:build !linux && !darwin && !windows

package wallpaper

import "runtime"

// unsupportedOS reports ErrNotImplemented for every request.
type unsupportedOS struct{}

func getOS() OS {
	return unsupportedOS{}
}

func (unsupportedOS) name() string { return runtime.GOOS }

func (unsupportedOS) setWallpaper(string, Target) error {
	return ErrNotImplemented
}
