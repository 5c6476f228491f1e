package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/ddraw"
)

// Profile describes one ddprobe run.
type Profile struct {
	Backend  string          `yaml:"backend"`
	Log      LogConfig       `yaml:"log"`
	Language string          `yaml:"language"`
	Mode     *ModeConfig     `yaml:"mode,omitempty"`
	Window   uintptr         `yaml:"window"`
	Stages   StageConfig     `yaml:"stages"`
	Surfaces []SurfaceConfig `yaml:"surfaces"`
}

// LogConfig configures the ddprobe logger.
type LogConfig struct {
	Level string `yaml:"level"`
	// File enables a rotating log file instead of stderr.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// ModeConfig requests a full-screen display mode.
type ModeConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	BPP    int `yaml:"bpp"`
}

// StageConfig sets the texture stages of bump maps and light maps.
type StageConfig struct {
	Bump  int `yaml:"bump"`
	Light int `yaml:"light"`
}

// SurfaceConfig is one surface to create.
type SurfaceConfig struct {
	Kind      string `yaml:"kind"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	BPP       int    `yaml:"bpp"`
	Alpha     bool   `yaml:"alpha,omitempty"`
	Chain     int    `yaml:"chain,omitempty"`
	Luminance bool   `yaml:"luminance,omitempty"`
}

// Options returns the surface options for s.
func (s SurfaceConfig) Options() []ddraw.SurfaceOption {
	opts := []ddraw.SurfaceOption{ddraw.WithSize(s.Width, s.Height, s.BPP)}
	if s.Alpha {
		opts = append(opts, ddraw.WithAlpha(true))
	}
	if s.Chain > 0 {
		opts = append(opts, ddraw.WithChainCount(s.Chain))
	}
	if s.Luminance {
		opts = append(opts, ddraw.WithLuminance(true))
	}
	return opts
}

// defaultProfile creates one surface of every kind that does not need a
// display mode.
func defaultProfile() Profile {
	return Profile{
		Log:      LogConfig{Level: "info", MaxSizeMB: 8, MaxBackups: 2},
		Language: "en",
		Stages:   StageConfig{Bump: 1, Light: 2},
		Surfaces: []SurfaceConfig{
			{Kind: "plain", Width: 320, Height: 240, BPP: 16},
			{Kind: "chain", Width: 320, Height: 240, BPP: 16, Chain: 2},
			{Kind: "texture", Width: 256, Height: 256, BPP: 32, Alpha: true},
			{Kind: "overlay", Width: 160, Height: 120, BPP: 16},
			{Kind: "zbuffer", Width: 320, Height: 240, BPP: 16},
			{Kind: "alpha", Width: 64, Height: 64, BPP: 8},
			{Kind: "bumpmap", Width: 64, Height: 64, BPP: 16, Luminance: true},
			{Kind: "lightmap", Width: 64, Height: 64, BPP: 16},
		},
	}
}

// loadProfile reads a YAML profile. Missing fields keep their defaults. An
// empty path returns the default profile.
func loadProfile(path string) (Profile, error) {
	p := defaultProfile()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if err := p.validate(); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

func (p *Profile) validate() error {
	var errs []error
	if p.Mode != nil && (p.Mode.Width <= 0 || p.Mode.Height <= 0 || p.Mode.BPP <= 0) {
		errs = append(errs, fmt.Errorf("mode %dx%dx%d: all fields are required", p.Mode.Width, p.Mode.Height, p.Mode.BPP))
	}
	if _, err := parseLevel(p.Log.Level); err != nil {
		errs = append(errs, err)
	}
	for i, s := range p.Surfaces {
		if _, err := ddraw.ParseKind(s.Kind); err != nil {
			errs = append(errs, fmt.Errorf("surfaces[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
