package main

import (
	"fmt"
	"sync/atomic"

	"github.com/dixieflatline76/setwallpaper/config"
	"github.com/dixieflatline76/setwallpaper/pkg/bridge"
	"github.com/dixieflatline76/setwallpaper/pkg/crop"
	"github.com/dixieflatline76/setwallpaper/pkg/sysinfo"
	"github.com/dixieflatline76/setwallpaper/pkg/wallpaper"
	"github.com/dixieflatline76/setwallpaper/util/log"
)

// app wires the setter and the bridge handler from a config.
type app struct {
	cfg     atomic.Pointer[config.Config]
	setter  *wallpaper.Setter
	handler *bridge.Handler
}

// loadConfig reads the config at path, or the default location when path is empty.
func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return nil, "", fmt.Errorf("locating config: %w", err)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func newCropper(cfg *config.Config) (crop.Cropper, error) {
	opts := crop.DefaultOptions()
	opts.FaceModelPath = cfg.FaceModelPath
	return crop.NewCropper(cfg.CropMode, opts)
}

func handlerOptions(cfg *config.Config) bridge.Options {
	return bridge.Options{DefaultTarget: wallpaper.Target(cfg.DefaultTarget)}
}

func newApp(cfg *config.Config, opts ...wallpaper.Option) (*app, error) {
	cropper, err := newCropper(cfg)
	if err != nil {
		return nil, err
	}
	fittedDir, err := cfg.ResolveFittedDir()
	if err != nil {
		return nil, fmt.Errorf("resolving fitted dir: %w", err)
	}

	setterOpts := append([]wallpaper.Option{
		wallpaper.WithCropper(cropper),
		wallpaper.WithFittedDir(fittedDir),
		wallpaper.WithQuality(cfg.JPEGQuality),
	}, opts...)
	setter := wallpaper.NewSetter(setterOpts...)

	a := &app{
		setter:  setter,
		handler: bridge.NewHandler(setter, sysinfo.PlatformVersion, handlerOptions(cfg)),
	}
	a.cfg.Store(cfg)
	a.handler.OnChange(func(wallpaper.Result) {
		if n, err := a.setter.Prune(a.cfg.Load().KeepFitted); err != nil {
			log.Printf("Failed to prune fitted wallpapers: %v", err)
		} else if n > 0 {
			log.Debugf("Pruned %d fitted wallpapers", n)
		}
	})
	return a, nil
}

// reload applies a changed config to a running app. The listen address and
// allowed origins are fixed at startup.
func (a *app) reload(cfg *config.Config) error {
	cropper, err := newCropper(cfg)
	if err != nil {
		return err
	}
	a.setter.SetCropper(cropper)
	a.handler.SetOptions(handlerOptions(cfg))
	a.cfg.Store(cfg)
	return nil
}
