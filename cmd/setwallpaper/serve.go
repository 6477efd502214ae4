package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dixieflatline76/setwallpaper/config"
	"github.com/dixieflatline76/setwallpaper/pkg/api"
	"github.com/dixieflatline76/setwallpaper/pkg/wallpaper"
	"github.com/dixieflatline76/setwallpaper/util/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func runServe(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("serve", stderr)
	addrFlag := fs.String("addr", "", "listen address (default from config)")
	configFlag := fs.String("config", "", "config file path")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	locked, err := acquireLock()
	if err != nil {
		return fmt.Errorf("acquiring instance lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another instance of %s is already running", config.AppName)
	}
	defer releaseLock()

	cfg, cfgPath, err := loadConfig(*configFlag)
	if err != nil {
		return err
	}
	addr := cfg.ListenAddr
	if *addrFlag != "" {
		addr = *addrFlag
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	server := api.NewServer(a.handler, api.Options{
		Addr:           addr,
		RateLimit:      cfg.RateLimit,
		RateBurst:      cfg.RateBurst,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	a.handler.OnChange(func(r wallpaper.Result) {
		server.Broadcast(api.Event{Type: api.EventWallpaperChanged, Payload: r})
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(server.Start)

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Stop(shutdownCtx)
	})

	watcher, err := config.NewWatcher(cfgPath, func(next *config.Config) {
		if err := a.reload(next); err != nil {
			log.Printf("Ignoring config change: %v", err)
			return
		}
		server.SetRateLimit(next.RateLimit, next.RateBurst)
		log.Printf("Config reloaded from %s", cfgPath)
	}, func(err error) {
		log.Printf("Config reload failed: %v", err)
	})
	if err != nil {
		// The server still runs with the startup config.
		log.Printf("Config hot reload disabled: %v", err)
	} else {
		g.Go(func() error {
			if err := watcher.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	fmt.Fprintf(stdout, "%s %s serving on %s (backend %s)\n", config.AppName, config.AppVersion, addr, a.setter.Backend())
	if err := g.Wait(); err != nil {
		return err
	}
	log.Println("Server stopped")
	return nil
}
