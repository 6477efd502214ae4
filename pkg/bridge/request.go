package bridge

import (
	"bytes"
	"encoding/json"

	"github.com/dixieflatline76/setwallpaper/pkg/wallpaper"
)

// Request is one invocation crossing the boundary.
type Request struct {
	Method Method          `json:"method"`
	Args   json.RawMessage `json:"args,omitempty"`
}

// SetWallpaperArgs is the loosely typed argument record of setWallpaper.
// Both fields may be absent on the wire.
type SetWallpaperArgs struct {
	ImagePath     *string `json:"imagePath"`
	WallpaperType *int    `json:"wallpaperType"`
}

// Options holds the defaults applied at the boundary.
type Options struct {
	DefaultTarget wallpaper.Target
}

// DefaultOptions returns the boundary defaults.
func DefaultOptions() Options {
	return Options{DefaultTarget: wallpaper.DefaultTarget}
}

// Validate turns the argument record into a wallpaper request. Only a null
// path is an argument error; an empty one fails later as a missing file.
func (a SetWallpaperArgs) Validate(opts Options) (wallpaper.Request, *Error) {
	if a.ImagePath == nil {
		return wallpaper.Request{}, Errorf(CodeInvalidArgument, "Image path cannot be null")
	}

	target := opts.DefaultTarget
	if !target.Valid() {
		target = wallpaper.DefaultTarget
	}
	if a.WallpaperType != nil {
		target = wallpaper.Target(*a.WallpaperType)
		if !target.Valid() {
			return wallpaper.Request{}, Errorf(CodeInvalidArgument, "wallpaperType must be 1 (system), 2 (lock) or 3 (both), got %d", *a.WallpaperType)
		}
	}

	return wallpaper.Request{ImagePath: *a.ImagePath, Target: target}, nil
}

// DecodeArgs unmarshals the request arguments into v. Absent arguments leave v untouched.
func (r Request) DecodeArgs(v interface{}) *Error {
	if len(bytes.TrimSpace(r.Args)) == 0 || bytes.Equal(bytes.TrimSpace(r.Args), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(r.Args, v); err != nil {
		return Errorf(CodeInvalidArgument, "malformed arguments for %s: %v", r.Method, err)
	}
	return nil
}

// NewSetWallpaperRequest builds a setWallpaper request.
func NewSetWallpaperRequest(imagePath string, target *wallpaper.Target) Request {
	args := SetWallpaperArgs{ImagePath: &imagePath}
	if target != nil {
		t := int(*target)
		args.WallpaperType = &t
	}
	raw, _ := json.Marshal(args)
	return Request{Method: MethodSetWallpaper, Args: raw}
}
