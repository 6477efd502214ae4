package bridge

import (
	"context"
	"sync"

	"github.com/dixieflatline76/setwallpaper/pkg/wallpaper"
	"github.com/dixieflatline76/setwallpaper/util/log"
)

// Setter applies wallpapers. *wallpaper.Setter implements it.
type Setter interface {
	Set(ctx context.Context, req wallpaper.Request) (*wallpaper.Result, error)
}

// PlatformFunc reports the OS name and version.
type PlatformFunc func(ctx context.Context) (string, error)

// Handler dispatches requests to the wallpaper setter.
type Handler struct {
	setter   Setter
	platform PlatformFunc

	mu       sync.RWMutex
	opts     Options
	onChange []func(wallpaper.Result)
}

// NewHandler returns a Handler.
func NewHandler(setter Setter, platform PlatformFunc, opts Options) *Handler {
	return &Handler{setter: setter, platform: platform, opts: opts}
}

// SetOptions replaces the boundary defaults for subsequent requests.
func (h *Handler) SetOptions(opts Options) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.opts = opts
}

// OnChange registers fn to run after every applied wallpaper.
func (h *Handler) OnChange(fn func(wallpaper.Result)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

// Handle runs req and returns its tagged result.
func (h *Handler) Handle(ctx context.Context, req Request) Result {
	switch req.Method {
	case MethodGetPlatformVersion:
		return h.getPlatformVersion(ctx)
	case MethodSetWallpaper:
		var args SetWallpaperArgs
		if err := req.DecodeArgs(&args); err != nil {
			return Fail(err)
		}
		return h.SetWallpaper(ctx, args)
	default:
		return Fail(Errorf(CodeNotImplemented, "method %s is not implemented", req.Method))
	}
}

func (h *Handler) getPlatformVersion(ctx context.Context) Result {
	if h.platform == nil {
		return Fail(Errorf(CodeNotImplemented, "platform version is not available"))
	}
	version, err := h.platform(ctx)
	if err != nil {
		log.Printf("Failed to read platform version: %v", err)
		return Fail(Errorf(CodeNotImplemented, "platform version is not available: %v", err))
	}
	return OK(version)
}

// SetWallpaper validates args and applies the wallpaper. The success value is true.
func (h *Handler) SetWallpaper(ctx context.Context, args SetWallpaperArgs) Result {
	h.mu.RLock()
	opts := h.opts
	h.mu.RUnlock()

	req, verr := args.Validate(opts)
	if verr != nil {
		return Fail(verr)
	}

	res, err := h.setter.Set(ctx, req)
	if err != nil {
		be := FromError(err)
		log.Printf("setWallpaper %s failed: %v", req.ImagePath, be)
		return Fail(be)
	}

	h.mu.RLock()
	listeners := h.onChange
	h.mu.RUnlock()
	for _, fn := range listeners {
		fn(*res)
	}
	return OK(true)
}
