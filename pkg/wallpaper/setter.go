// Package wallpaper applies an image file as the desktop or lock screen wallpaper.
package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/dixieflatline76/setwallpaper/pkg/crop"
	"github.com/dixieflatline76/setwallpaper/pkg/sysinfo"
	"github.com/dixieflatline76/setwallpaper/util/log"
	"golang.org/x/sync/singleflight"
)

// Request names the image to apply and where.
type Request struct {
	ImagePath string
	Target    Target
}

// Result describes an applied wallpaper.
type Result struct {
	// Path is the file handed to the OS: the source or its fitted derivative.
	Path    string          `json:"path"`
	Target  Target          `json:"target"`
	Source  crop.Dimensions `json:"source"`
	Display crop.Dimensions `json:"display"`
	// Crop is the visible crop hint, nil when the image was used uncropped.
	Crop *crop.Rect `json:"crop,omitempty"`
}

// DisplayFunc reports the pixel dimensions of the display.
type DisplayFunc func() (crop.Dimensions, error)

// Setter validates, fits and applies wallpaper images.
type Setter struct {
	os        OS
	display   DisplayFunc
	fittedDir string
	quality   int

	mu      sync.RWMutex
	cropper crop.Cropper

	group     singleflight.Group
	flightsMu sync.Mutex
	flights   map[string]*flight
}

// Option configures a Setter.
type Option func(*Setter)

// WithOS replaces the platform backend.
func WithOS(o OS) Option {
	return func(s *Setter) { s.os = o }
}

// WithDisplay replaces the display size lookup.
func WithDisplay(fn DisplayFunc) Option {
	return func(s *Setter) { s.display = fn }
}

// WithCropper sets the crop strategy. A nil Cropper disables cropping.
func WithCropper(c crop.Cropper) Option {
	return func(s *Setter) { s.cropper = c }
}

// WithFittedDir sets where cropped derivatives are written.
func WithFittedDir(dir string) Option {
	return func(s *Setter) { s.fittedDir = dir }
}

// WithQuality sets the JPEG quality of cropped derivatives.
func WithQuality(q int) Option {
	return func(s *Setter) { s.quality = q }
}

// NewSetter returns a Setter for the current platform that center-crops to the primary display.
func NewSetter(opts ...Option) *Setter {
	s := &Setter{
		os:        getOS(),
		display:   sysinfo.PrimaryDisplay,
		cropper:   crop.CenterCropper{},
		fittedDir: filepath.Join(os.TempDir(), "setwallpaper", "fitted"),
		quality:   95,
		flights:   make(map[string]*flight),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetCropper swaps the crop strategy for subsequent requests.
func (s *Setter) SetCropper(c crop.Cropper) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cropper = c
}

func (s *Setter) currentCropper() crop.Cropper {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cropper
}

// Backend returns the name of the platform backend.
func (s *Setter) Backend() string {
	return s.os.name()
}

// Set applies req. Failures wrap one of ErrInvalidArgument, ErrFileNotFound,
// ErrInvalidImage, ErrSetWallpaper or ErrNotImplemented.
// Concurrent calls for the same image and target share one execution. The
// shared work is canceled only once every caller waiting on it has gone.
func (s *Setter) Set(ctx context.Context, req Request) (*Result, error) {
	if !req.Target.Valid() {
		return nil, fmt.Errorf("%w: invalid wallpaper target %d", ErrInvalidArgument, int(req.Target))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%d|%s", req.Target, req.ImagePath)
	f := s.join(ctx, key)
	defer s.leave(key, f)

	ch := s.group.DoChan(key, func() (interface{}, error) {
		return s.set(f.ctx, req)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Shared {
			log.Debugf("shared wallpaper request for %s", req.ImagePath)
		}
		if r.Err != nil {
			return nil, r.Err
		}
		res := *r.Val.(*Result)
		return &res, nil
	}
}

// flight is the context of one shared execution and the callers waiting on it.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

func (s *Setter) join(ctx context.Context, key string) *flight {
	s.flightsMu.Lock()
	defer s.flightsMu.Unlock()

	f, ok := s.flights[key]
	if !ok {
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{ctx: fctx, cancel: cancel}
		s.flights[key] = f
	}
	f.waiters++
	return f
}

func (s *Setter) leave(key string, f *flight) {
	s.flightsMu.Lock()
	defer s.flightsMu.Unlock()

	f.waiters--
	if f.waiters > 0 {
		return
	}
	f.cancel()
	delete(s.flights, key)
	// an abandoned call must not be joined by later requests
	s.group.Forget(key)
}

func (s *Setter) waiting(key string) int {
	s.flightsMu.Lock()
	defer s.flightsMu.Unlock()
	if f, ok := s.flights[key]; ok {
		return f.waiters
	}
	return 0
}

func (s *Setter) set(ctx context.Context, req Request) (*Result, error) {
	// Unreadable paths count as missing, like a failed existence check.
	info, err := os.Stat(req.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileNotFound, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidImage, req.ImagePath)
	}

	img, err := decodeFile(req.ImagePath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		Path:   req.ImagePath,
		Target: req.Target,
		Source: crop.DimensionsOf(img),
	}

	if cropper := s.currentCropper(); cropper != nil {
		if err := s.fit(ctx, cropper, img, res); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.os.setWallpaper(res.Path, req.Target); err != nil {
		if errors.Is(err, ErrNotImplemented) || errors.Is(err, ErrSetWallpaper) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSetWallpaper, err)
	}

	log.Printf("Wallpaper set on %s (%s): %s", s.os.name(), req.Target, res.Path)
	return res, nil
}

// fit crops img to the display and points res at the derivative.
// An unavailable display leaves the image uncropped.
func (s *Setter) fit(ctx context.Context, cropper crop.Cropper, img image.Image, res *Result) error {
	display, err := s.display()
	if err != nil || !display.Valid() {
		log.Printf("Display size unavailable, applying %s uncropped: %v", res.Path, err)
		return nil
	}
	res.Display = display

	rect, err := cropper.Crop(ctx, img, display)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: computing crop: %v", ErrSetWallpaper, err)
	}
	if rect.IsFull(res.Source) {
		log.Debugf("%s already matches %s, no crop needed", res.Path, display)
		return nil
	}

	path, err := saveDerivative(s.fittedDir, display, crop.Apply(img, rect), s.quality)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSetWallpaper, err)
	}
	log.Debugf("Cropped %s to %s for %s", res.Source, rect, display)

	res.Crop = &rect
	res.Path = path
	return nil
}

// Prune removes old fitted derivatives, keeping the newest keep per resolution.
// At least one is always kept so the current wallpaper survives.
func (s *Setter) Prune(keep int) (int, error) {
	return pruneFitted(s.fittedDir, max(keep, 1))
}
