package ddraw

import (
	"errors"
	"fmt"

	"github.com/gogpu/ddraw/backend"
	"github.com/gogpu/ddraw/pixfmt"
)

// Manager owns the connection to a display device, negotiates the display
// mode and creates surfaces.
//
// A Manager is not safe for concurrent use. It and the surfaces it creates
// must be driven from one goroutine, or serialized by the caller.
type Manager struct {
	opts managerOptions
	dev  backend.Backend

	pending    backend.DisplayMode
	fullScreen bool
	engaged    bool
	closed     bool

	// Live bump map and light map surfaces per texture stage.
	stages map[stageSlot]int
}

type stageSlot struct {
	stage int
	kind  Kind
}

// New creates a Manager and connects it to a backend.
//
// Example:
//
//	m, err := ddraw.New(ddraw.WithBackend(backend.BackendSoftware))
//	if err != nil {
//	    return err
//	}
//	defer m.Close()
func New(opts ...Option) (*Manager, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	m := &Manager{
		opts:   o,
		stages: make(map[stageSlot]int),
	}
	if err := m.Connect(); err != nil {
		return nil, err
	}
	return m, nil
}

// Connect opens the backend connection. It fails with a *ConnectionError if
// the Manager is already connected or the backend cannot be opened. It does
// not retry.
func (m *Manager) Connect() error {
	if m.closed {
		return &ConnectionError{Backend: m.opts.backendName, Err: ErrClosed}
	}
	if m.dev != nil {
		return &ConnectionError{Backend: m.dev.Name(), Err: ErrAlreadyConnected}
	}

	var (
		dev backend.Backend
		err error
	)
	if m.opts.factory != nil {
		dev, err = m.opts.factory()
	} else {
		dev, err = backend.Open(m.opts.backendName)
	}
	if err != nil {
		m.report("connect", err)
		return &ConnectionError{Backend: m.opts.backendName, Err: err}
	}
	if dev == nil {
		return &ConnectionError{Backend: m.opts.backendName, Err: backend.ErrBackendNotAvailable}
	}

	m.dev = dev
	trackBackend(dev)
	Logger().Info("ddraw: connected", "backend", dev.Name())
	return nil
}

// Connected reports whether the Manager holds a backend connection.
func (m *Manager) Connected() bool {
	return m.dev != nil
}

// Backend returns the connected backend, or nil.
func (m *Manager) Backend() backend.Backend {
	return m.dev
}

func (m *Manager) check(op string) error {
	if m.closed {
		return precondition(op, ErrClosed)
	}
	if m.dev == nil {
		return precondition(op, ErrNotConnected)
	}
	return nil
}

func (m *Manager) report(op string, err error) {
	if m.opts.reporter != nil {
		m.opts.reporter(op, err)
	}
}

// NegotiateDisplayMode records the requested mode and looks for it among the
// modes the device supports. The first matching mode wins. The result decides
// whether Initialize switches to exclusive full-screen mode.
func (m *Manager) NegotiateDisplayMode(width, height, bitsPerPixel int) (bool, error) {
	const op = "negotiate display mode"
	if err := m.check(op); err != nil {
		return false, err
	}

	want := backend.DisplayMode{Width: width, Height: height, BitsPerPixel: bitsPerPixel}
	m.pending = want
	m.fullScreen = false

	found := false
	err := m.dev.EnumDisplayModes(want, func(dm backend.DisplayMode) bool {
		if dm.Width == width && dm.Height == height && dm.BitsPerPixel == bitsPerPixel {
			found = true
			return false
		}
		return true
	})
	if err != nil {
		m.report(op, err)
		return false, &BackendError{Op: op, Err: err}
	}
	m.fullScreen = found
	Logger().Debug("ddraw: display mode negotiated", "mode", want.String(), "fullscreen", found)
	return found, nil
}

// Initialize sets the cooperative level for window. When a display mode was
// negotiated it takes exclusive full-screen access and switches to that
// mode; otherwise it shares the desktop.
func (m *Manager) Initialize(window uintptr) error {
	const op = "initialize"
	if err := m.check(op); err != nil {
		return err
	}

	if !m.fullScreen {
		if err := m.dev.SetCooperativeLevel(window, backend.CoopNormal|backend.CoopAllowReboot); err != nil {
			m.report(op, err)
			return &ModeSetError{Op: "set cooperative level", Err: err}
		}
		Logger().Info("ddraw: windowed mode")
		return nil
	}

	level := backend.CoopExclusive | backend.CoopFullScreen | backend.CoopAllowReboot
	if err := m.dev.SetCooperativeLevel(window, level); err != nil {
		m.report(op, err)
		return &ModeSetError{Op: "set cooperative level", Mode: m.pending, FullScreen: true, Err: err}
	}
	if err := m.dev.SetDisplayMode(m.pending); err != nil {
		m.report(op, err)
		return &ModeSetError{Op: "set display mode", Mode: m.pending, FullScreen: true, Err: err}
	}
	m.engaged = true
	Logger().Info("ddraw: full-screen mode", "mode", m.pending.String())
	return nil
}

// Uninitialize restores the display mode if Initialize switched it. It does
// nothing otherwise.
func (m *Manager) Uninitialize() error {
	const op = "uninitialize"
	if !m.engaged || m.dev == nil {
		return nil
	}
	if err := m.dev.RestoreDisplayMode(); err != nil {
		m.report(op, err)
		return &ModeSetError{Op: "restore display mode", Mode: m.pending, FullScreen: true, Err: err}
	}
	m.engaged = false
	return nil
}

// FullScreen reports whether the last NegotiateDisplayMode found its mode.
func (m *Manager) FullScreen() bool {
	return m.fullScreen
}

// Mode returns the mode recorded by the last NegotiateDisplayMode.
func (m *Manager) Mode() backend.DisplayMode {
	return m.pending
}

// NewSurface configures a surface of the given kind and creates it.
func (m *Manager) NewSurface(kind Kind, opts ...SurfaceOption) (*Surface, error) {
	d := Descriptor{Kind: kind}
	for _, opt := range opts {
		opt(&d)
	}
	s := &Surface{}
	if err := s.SetSurfaceType(kind); err != nil {
		return nil, err
	}
	s.desc = d
	if err := m.CreateSurface(s); err != nil {
		return nil, err
	}
	return s, nil
}

// CreateSurface allocates the device resource of s.
//
// The capability request of the surface kind is tried with its desired
// capabilities first. When the device refuses, the desired primary caps are
// dropped, then the desired extended caps, then both. If all four attempts
// fail, CreateSurface returns a *NegotiationError wrapping the last device
// error. On success the realized geometry is stored on s.
//
// Precondition failures return a *PreconditionError without calling the
// device or changing s.
func (m *Manager) CreateSurface(s *Surface) error {
	const op = "create surface"
	if s == nil {
		return precondition(op, ErrNilSurface)
	}
	if err := m.check(op); err != nil {
		return err
	}
	switch {
	case s.closed:
		return precondition(op, ErrClosed)
	case s.created:
		return precondition(op, ErrAlreadyCreated)
	case !s.desc.Kind.Valid():
		return precondition(op, ErrTypeNotSet)
	}

	kind := s.desc.Kind
	desc, err := m.describe(s.desc)
	if err != nil {
		return precondition(op, err)
	}
	slot, staged := m.stageOf(kind)
	if staged {
		other := KindLightMap
		if kind == KindLightMap {
			other = KindBumpMap
		}
		if m.stages[stageSlot{slot.stage, other}] > 0 {
			return precondition(op, fmt.Errorf("%w: %v at stage %d", ErrTextureStageConflict, kind, slot.stage))
		}
	}

	req := capTable[kind]
	var last error
	for i, a := range req.Attempts() {
		d := desc
		d.Caps = a.Caps
		d.Caps2 = a.Caps2
		h, err := m.dev.CreateSurface(&d)
		if err != nil {
			Logger().Debug("ddraw: surface attempt failed",
				"kind", kind.String(), "attempt", i+1, "caps", a.Caps.String(), "caps2", a.Caps2.String(), "err", err)
			last = err
			continue
		}

		realized, err := h.Desc()
		if err != nil {
			h.Release()
			m.report(op, err)
			return &BackendError{Op: "query surface", Err: err}
		}
		if i > 0 {
			Logger().Warn("ddraw: surface created without desired caps",
				"kind", kind.String(), "attempt", i+1,
				"dropped", realized.Caps.Missing(req.Essential|req.Desired).String())
		}

		s.bind(m, h, realized, i+1)
		if staged {
			m.stages[slot]++
			s.onClose = func() { m.stages[slot]-- }
		}
		Logger().Debug("ddraw: surface created", "kind", kind.String(),
			"width", realized.Width, "height", realized.Height, "pitch", realized.Pitch,
			"caps", realized.Caps.String(),
			"gpu_format", realized.Format.GPUFormat().String(),
			"gpu_usage", backend.UsageString(realized.Caps.TextureUsage()))
		return nil
	}

	m.report(op, last)
	return &NegotiationError{Kind: kind, Attempts: MaxAttempts, Err: last}
}

// stageOf returns the texture stage slot of bump maps and light maps.
func (m *Manager) stageOf(kind Kind) (stageSlot, bool) {
	switch kind {
	case KindBumpMap:
		return stageSlot{m.opts.bumpStage, kind}, true
	case KindLightMap:
		return stageSlot{m.opts.lightStage, kind}, true
	}
	return stageSlot{}, false
}

// describe builds the device descriptor of d without capabilities.
func (m *Manager) describe(d Descriptor) (backend.SurfaceDesc, error) {
	sd := backend.SurfaceDesc{Flags: backend.DescCaps}
	if d.Kind == KindPrimary {
		sd.Flags |= backend.DescBackBufferCount
		sd.BackBufferCount = 1
		return sd, nil
	}

	if d.Width <= 0 || d.Height <= 0 {
		return sd, fmt.Errorf("%w: %dx%d", ErrIncompleteDescriptor, d.Width, d.Height)
	}
	sd.Flags |= backend.DescWidth | backend.DescHeight | backend.DescPixelFormat
	sd.Width = d.Width
	sd.Height = d.Height

	switch d.Kind {
	case KindChain:
		if d.ChainCount < 1 {
			return sd, fmt.Errorf("%w: chain count %d", ErrIncompleteDescriptor, d.ChainCount)
		}
		sd.Flags |= backend.DescBackBufferCount
		sd.BackBufferCount = d.ChainCount
		sd.Format = pixfmt.DeriveColor(d.BitsPerPixel, d.Alpha)
	case KindPlain, KindOverlay:
		sd.Format = pixfmt.DeriveColor(d.BitsPerPixel, d.Alpha)
	case KindTexture:
		sd.Flags |= backend.DescTextureStage
		sd.TextureStage = 0
		sd.Format = pixfmt.DeriveColor(d.BitsPerPixel, d.Alpha)
	case KindZBuffer:
		sd.Format = pixfmt.DeriveZBuffer(d.BitsPerPixel)
	case KindAlpha:
		sd.Flags |= backend.DescAlphaBitDepth
		sd.AlphaBitDepth = d.BitsPerPixel
		sd.Format = pixfmt.DeriveAlpha(d.BitsPerPixel)
	case KindBumpMap:
		sd.Flags |= backend.DescTextureStage
		sd.TextureStage = m.opts.bumpStage
		sd.Format = pixfmt.DeriveBumpMap(d.BitsPerPixel, d.Luminance)
	case KindLightMap:
		sd.Flags |= backend.DescTextureStage
		sd.TextureStage = m.opts.lightStage
		sd.Format = pixfmt.DeriveColor(d.BitsPerPixel, false)
	}
	if !sd.Format.Valid() {
		return sd, fmt.Errorf("%w: %d bits for %v", ErrUnsupportedDepth, d.BitsPerPixel, d.Kind)
	}
	return sd, nil
}

// Interface returns a shared reference to the device interface.
func (m *Manager) Interface() (*Handle, error) {
	if err := m.check("interface"); err != nil {
		return nil, err
	}
	m.dev.AddRef()
	return newHandle(m.dev), nil
}

// BaseInterface returns a shared reference to the base (version 1) device
// interface. Backends without one return the device interface.
func (m *Manager) BaseInterface() (*Handle, error) {
	const op = "base interface"
	if err := m.check(op); err != nil {
		return nil, err
	}
	return baseHandle(m.dev, op)
}

func baseHandle(obj backend.Object, op string) (*Handle, error) {
	q, ok := obj.(backend.BaseQuerier)
	if !ok {
		obj.AddRef()
		return newHandle(obj), nil
	}
	base, err := q.BaseInterface()
	if err != nil {
		return nil, &BackendError{Op: op, Err: err}
	}
	return newHandle(base), nil
}

// Close leaves full-screen mode if needed and releases the connection.
// Surfaces created by the Manager must be closed separately. Close is
// idempotent.
func (m *Manager) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	if m.dev == nil {
		return nil
	}
	err := m.Uninitialize()
	untrackBackend(m.dev)
	m.dev.Release()
	m.dev = nil
	m.engaged = false
	if err != nil && !errors.Is(err, backend.ErrReleased) {
		return err
	}
	return nil
}
