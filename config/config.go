// Package config provides configuration management for the wallpaper bridge.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dixieflatline76/setwallpaper/pkg/crop"
	"gopkg.in/yaml.v3"
)

// Wallpaper target flags, matching the values mobile platforms use.
const (
	TargetSystem = 1
	TargetLock   = 2
	TargetBoth   = TargetSystem | TargetLock
)

// Config holds the user configuration.
type Config struct {
	// CropMode controls whether and how a crop hint is applied.
	CropMode crop.Mode `json:"crop_mode" yaml:"crop_mode"`
	// DefaultTarget is used when a request omits the wallpaper type.
	DefaultTarget int `json:"default_target" yaml:"default_target"`
	// FaceModelPath is an optional pigo cascade used by the smart crop mode.
	FaceModelPath string `json:"face_model_path,omitempty" yaml:"face_model_path,omitempty"`
	// FittedDir holds cropped derivatives. Empty means the user cache dir.
	FittedDir string `json:"fitted_dir,omitempty" yaml:"fitted_dir,omitempty"`
	// JPEGQuality is the encoding quality of fitted derivatives.
	JPEGQuality int `json:"jpeg_quality" yaml:"jpeg_quality"`
	// KeepFitted is how many derivatives are kept per resolution.
	KeepFitted int `json:"keep_fitted" yaml:"keep_fitted"`

	ListenAddr string  `json:"listen_addr" yaml:"listen_addr"`
	RateLimit  float64 `json:"rate_limit" yaml:"rate_limit"` // invocations per second
	RateBurst  int     `json:"rate_burst" yaml:"rate_burst"`
	// AllowedOrigins lists browser origins, beyond loopback pages, that may use the method channel.
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		CropMode:      crop.DefaultMode,
		DefaultTarget: TargetSystem,
		JPEGQuality:   95,
		KeepFitted:    5,
		ListenAddr:    DefaultListenAddr,
		RateLimit:     2,
		RateBurst:     4,
	}
}

// Load reads config from path, or returns defaults if the file is missing.
// The format is chosen by extension: .json uses JSON, anything else YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	c := Default()
	if isJSON(path) {
		err = json.Unmarshal(data, c)
	} else {
		err = yaml.Unmarshal(data, c)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	c.setDefaultValues()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes c to path, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var data []byte
	var err error
	if isJSON(path) {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.DefaultTarget < TargetSystem || c.DefaultTarget > TargetBoth {
		return fmt.Errorf("default_target must be 1 (system), 2 (lock) or 3 (both), got %d", c.DefaultTarget)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be between 1 and 100, got %d", c.JPEGQuality)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative")
	}
	return nil
}

// setDefaultValues back-fills zero fields left out of the file.
func (c *Config) setDefaultValues() {
	d := Default()
	if c.DefaultTarget == 0 {
		c.DefaultTarget = d.DefaultTarget
	}
	if c.JPEGQuality == 0 {
		c.JPEGQuality = d.JPEGQuality
	}
	if c.KeepFitted == 0 {
		c.KeepFitted = d.KeepFitted
	}
	if c.ListenAddr == "" {
		c.ListenAddr = d.ListenAddr
	}
	if c.RateBurst == 0 {
		c.RateBurst = d.RateBurst
	}
}

// ResolveFittedDir returns FittedDir or the default location under the cache dir.
func (c *Config) ResolveFittedDir() (string, error) {
	if c.FittedDir != "" {
		return c.FittedDir, nil
	}
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FittedSubDir), nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
