package software

import (
	"runtime"

	"github.com/gogpu/ddraw/backend"
)

// Option configures a Device during creation.
type Option func(*options)

type options struct {
	modes      []backend.DisplayMode
	desktop    backend.DisplayMode
	caps       backend.Caps
	caps2      backend.Caps2
	pitchAlign int
	vidMem     int
	workers    int
}

// AllCaps is every primary capability the device can emulate.
const AllCaps = backend.CapsAlpha | backend.CapsBackBuffer | backend.CapsComplex |
	backend.CapsFlip | backend.CapsFrontBuffer | backend.CapsOffscreenPlain |
	backend.CapsOverlay | backend.CapsPrimarySurface | backend.CapsSystemMemory |
	backend.CapsTexture | backend.Caps3DDevice | backend.CapsVideoMemory |
	backend.CapsZBuffer | backend.CapsLiveVideo | backend.CapsMipMap

// DefaultModes returns the display modes of a default device: 640x480,
// 800x600 and 1024x768, each at 8, 16, 24 and 32 bits per pixel.
func DefaultModes() []backend.DisplayMode {
	var modes []backend.DisplayMode
	for _, size := range [][2]int{{640, 480}, {800, 600}, {1024, 768}} {
		for _, bpp := range []int{8, 16, 24, 32} {
			modes = append(modes, backend.DisplayMode{
				Width: size[0], Height: size[1], BitsPerPixel: bpp, RefreshRate: 60,
			})
		}
	}
	return modes
}

func defaultOptions() options {
	return options{
		modes:      DefaultModes(),
		desktop:    backend.DisplayMode{Width: 1024, Height: 768, BitsPerPixel: 32, RefreshRate: 60},
		caps:       AllCaps,
		caps2:      backend.Caps2TextureManage,
		pitchAlign: 8,
		workers:    runtime.GOMAXPROCS(0),
	}
}

// WithModes replaces the list of supported display modes.
func WithModes(modes ...backend.DisplayMode) Option {
	return func(o *options) {
		o.modes = append([]backend.DisplayMode(nil), modes...)
	}
}

// WithDesktopMode sets the mode the display is in before SetDisplayMode and
// after RestoreDisplayMode.
func WithDesktopMode(m backend.DisplayMode) Option {
	return func(o *options) {
		o.desktop = m
	}
}

// WithCaps limits the capabilities the device supports.
// Surfaces requesting anything else fail to create.
func WithCaps(caps backend.Caps, caps2 backend.Caps2) Option {
	return func(o *options) {
		o.caps = caps
		o.caps2 = caps2
	}
}

// WithPitchAlign rounds surface pitches up to a multiple of n bytes.
// Values below 2 give packed rows.
func WithPitchAlign(n int) Option {
	return func(o *options) {
		o.pitchAlign = n
	}
}

// WithVideoMemory sets the video-memory budget in bytes. 0 means unlimited.
func WithVideoMemory(bytes int) Option {
	return func(o *options) {
		o.vidMem = bytes
	}
}

// WithWorkers sets how many goroutines share large fills and blits.
// Values below 2 keep all pixel work on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
