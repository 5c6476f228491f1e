package ddraw

import "github.com/gogpu/ddraw/backend"

// Option configures a Manager during creation.
//
// Example:
//
//	// Registry default: ddraw7 on Windows, software elsewhere
//	m, err := ddraw.New()
//
//	// Explicit backend
//	m, err := ddraw.New(ddraw.WithBackend(backend.BackendSoftware))
type Option func(*managerOptions)

type managerOptions struct {
	backendName string
	factory     backend.BackendFactory
	reporter    Reporter
	bumpStage   int
	lightStage  int
}

func defaultOptions() managerOptions {
	return managerOptions{
		reporter:   LogReporter,
		bumpStage:  1,
		lightStage: 1,
	}
}

// WithBackend selects a registered backend by name. The empty name selects
// the registry default.
func WithBackend(name string) Option {
	return func(o *managerOptions) {
		o.backendName = name
	}
}

// WithBackendFactory connects through f instead of the registry. It takes
// precedence over WithBackend.
func WithBackendFactory(f backend.BackendFactory) Option {
	return func(o *managerOptions) {
		o.factory = f
	}
}

// WithReporter sets the hook that receives diagnostics for failed backend
// calls. A nil Reporter disables diagnostics.
func WithReporter(r Reporter) Option {
	return func(o *managerOptions) {
		o.reporter = r
	}
}

// WithTextureStages sets the texture blend stages used by bump maps and
// light maps. Both default to stage 1, which makes the two kinds mutually
// exclusive on one Manager.
func WithTextureStages(bump, light int) Option {
	return func(o *managerOptions) {
		o.bumpStage = bump
		o.lightStage = light
	}
}

// SurfaceOption configures the descriptor of a Surface created with
// [Manager.NewSurface].
type SurfaceOption func(*Descriptor)

// WithSize sets the width, height and bit depth.
func WithSize(width, height, bitsPerPixel int) SurfaceOption {
	return func(d *Descriptor) {
		d.Width = width
		d.Height = height
		d.BitsPerPixel = bitsPerPixel
	}
}

// WithAlpha enables an alpha channel in color formats.
func WithAlpha(enabled bool) SurfaceOption {
	return func(d *Descriptor) {
		d.Alpha = enabled
	}
}

// WithChainCount sets the number of back buffers of a Chain surface.
func WithChainCount(n int) SurfaceOption {
	return func(d *Descriptor) {
		d.ChainCount = n
	}
}

// WithLuminance adds a luminance channel to bump map formats.
func WithLuminance(enabled bool) SurfaceOption {
	return func(d *Descriptor) {
		d.Luminance = enabled
	}
}
