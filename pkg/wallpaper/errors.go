package wallpaper

import "errors"

// Failure categories reported by Setter.Set. Callers match them with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrFileNotFound    = errors.New("image file not found")
	ErrInvalidImage    = errors.New("could not decode image")
	ErrSetWallpaper    = errors.New("failed to set wallpaper")

	// ErrNotImplemented marks platforms without a wallpaper backend.
	ErrNotImplemented = errors.New("setting the wallpaper is not implemented on this platform")
)

// unsupportedTargetError is returned when a backend cannot apply a target.
type unsupportedTargetError struct {
	target  Target
	backend string
}

func (e *unsupportedTargetError) Error() string {
	return "target " + e.target.String() + " is not supported by " + e.backend
}

// Unwrap lets errors.Is match ErrSetWallpaper.
func (e *unsupportedTargetError) Unwrap() error {
	return ErrSetWallpaper
}
