package software

import (
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/ddraw/backend"
	"github.com/gogpu/ddraw/hresult"
	"github.com/gogpu/ddraw/internal/parallel"
	"github.com/gogpu/ddraw/internal/pixbuf"
	"github.com/gogpu/ddraw/pixfmt"
)

// init registers the software backend on package import.
func init() {
	backend.Register(backend.BackendSoftware, func() (backend.Backend, error) {
		return New(), nil
	})
}

// Device is an in-memory display device.
//
// Device is safe for concurrent use; a single mutex guards the device and
// all of its surfaces.
type Device struct {
	mu sync.Mutex

	opts options
	refs uint32
	id   uintptr
	next uintptr

	logger atomic.Pointer[slog.Logger]

	current backend.DisplayMode
	modeSet bool
	coop    backend.CoopLevel
	window  uintptr

	vidUsed  int
	surfaces map[*surface]struct{}
	primary  *surface

	pool    *pixbuf.Pool
	workers *parallel.WorkerPool
}

// Compile-time interface checks.
var (
	_ backend.Backend     = (*Device)(nil)
	_ backend.BaseQuerier = (*Device)(nil)
)

// New creates a device holding one reference.
func New(opts ...Option) *Device {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d := &Device{
		opts:     o,
		refs:     1,
		id:       1 << 16,
		next:     1<<16 + 1,
		current:  o.desktop,
		surfaces: make(map[*surface]struct{}),
		pool:     pixbuf.NewPool(4),
	}
	d.logger.Store(slog.New(slog.DiscardHandler))
	return d
}

// SetLogger sets the logger used for device diagnostics. Nil disables logging.
func (d *Device) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	d.logger.Store(l)
}

func (d *Device) log() *slog.Logger {
	return d.logger.Load()
}

// Name returns the backend identifier.
func (d *Device) Name() string {
	return backend.BackendSoftware
}

// AddRef adds a reference.
func (d *Device) AddRef() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.refs == 0 {
		return 0
	}
	d.refs++
	return d.refs
}

// Release drops a reference. The last release destroys every surface and
// restores the desktop mode.
func (d *Device) Release() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.refs == 0 {
		return 0
	}
	d.refs--
	if d.refs == 0 {
		for s := range d.surfaces {
			d.destroyLocked(s)
		}
		d.current = d.opts.desktop
		d.modeSet = false
		if d.workers != nil {
			d.workers.Close()
			d.workers = nil
		}
		d.log().Debug("software: device released")
	}
	return d.refs
}

// Raw returns an opaque device identifier.
func (d *Device) Raw() uintptr {
	return d.id
}

// BaseInterface returns the version 1 interface of the device, with an
// added reference.
func (d *Device) BaseInterface() (backend.Object, error) {
	if d.AddRef() == 0 {
		return nil, backend.ErrReleased
	}
	return &baseRef{obj: d, raw: d.id | 1}, nil
}

// EnumDisplayModes calls fn for each supported mode matching filter.
func (d *Device) EnumDisplayModes(filter backend.DisplayMode, fn func(backend.DisplayMode) bool) error {
	d.mu.Lock()
	if d.refs == 0 {
		d.mu.Unlock()
		return backend.ErrReleased
	}
	modes := append([]backend.DisplayMode(nil), d.opts.modes...)
	d.mu.Unlock()

	for _, m := range modes {
		if !m.Matches(filter) {
			continue
		}
		if !fn(m) {
			break
		}
	}
	return nil
}

// SetCooperativeLevel records how the application shares the display.
//
// Exactly one of CoopNormal and CoopExclusive must be set. Exclusive mode
// requires CoopFullScreen and a window.
func (d *Device) SetCooperativeLevel(window uintptr, level backend.CoopLevel) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.refs == 0 {
		return backend.ErrReleased
	}

	normal := level&backend.CoopNormal != 0
	exclusive := level.Exclusive()
	switch {
	case normal == exclusive:
		return hresult.InvalidParams
	case exclusive && level&backend.CoopFullScreen == 0:
		return hresult.InvalidParams
	case exclusive && window == 0:
		return hresult.NoHWND
	}

	d.coop = level
	d.window = window
	d.log().Debug("software: cooperative level set", "level", uint32(level), "window", window)
	return nil
}

// SetDisplayMode switches to m, which must be a supported mode. A zero
// RefreshRate matches any rate. Every video-memory surface is lost.
func (d *Device) SetDisplayMode(m backend.DisplayMode) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.refs == 0 {
		return backend.ErrReleased
	}
	if !d.coop.Exclusive() {
		return hresult.NoExclusiveMode
	}

	found := false
	for _, cand := range d.opts.modes {
		if cand.Matches(m) && m.Width != 0 && m.Height != 0 && m.BitsPerPixel != 0 {
			m = cand
			found = true
			break
		}
	}
	if !found {
		return hresult.UnsupportedMode
	}

	d.current = m
	d.modeSet = true
	n := d.loseLocked()
	d.log().Info("software: display mode set", "mode", m.String(), "lost", n)
	return nil
}

// RestoreDisplayMode returns to the desktop mode. It does nothing if the
// mode was never changed.
func (d *Device) RestoreDisplayMode() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.refs == 0 {
		return backend.ErrReleased
	}
	if !d.modeSet {
		return nil
	}
	d.current = d.opts.desktop
	d.modeSet = false
	n := d.loseLocked()
	d.log().Info("software: display mode restored", "mode", d.current.String(), "lost", n)
	return nil
}

// Mode returns the current display mode.
func (d *Device) Mode() backend.DisplayMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// CooperativeLevel returns the level set by SetCooperativeLevel.
func (d *Device) CooperativeLevel() backend.CoopLevel {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.coop
}

// Surfaces returns the number of live surfaces, attached buffers included.
func (d *Device) Surfaces() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.surfaces)
}

// VideoMemoryUsed returns the bytes allocated to video-memory surfaces.
func (d *Device) VideoMemoryUsed() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.vidUsed
}

// LoseSurfaces marks every video-memory surface lost, as happens when
// another application takes the display. It returns the number of surfaces
// affected.
func (d *Device) LoseSurfaces() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loseLocked()
}

func (d *Device) loseLocked() int {
	n := 0
	for s := range d.surfaces {
		if s.desc.Caps&backend.CapsVideoMemory != 0 && !s.lost {
			s.lost = true
			n++
		}
	}
	return n
}

// missingCapErrors maps unsupported capabilities to the error a real driver
// reports for them, most specific first.
var missingCapErrors = []struct {
	caps backend.Caps
	err  hresult.Code
}{
	{backend.CapsOverlay, hresult.NoOverlayHW},
	{backend.CapsZBuffer, hresult.NoZBufferHW},
	{backend.CapsAlpha, hresult.NoAlphaHW},
	{backend.CapsMipMap, hresult.NoMipMapHW},
	{backend.CapsTexture, hresult.NoTextureHW},
	{backend.Caps3DDevice, hresult.No3D},
	{backend.CapsFlip, hresult.NoFlipHW},
	{backend.CapsVideoMemory, hresult.NoDirectDrawHW},
	{backend.CapsLiveVideo, hresult.Unsupported},
}

func missingCapError(missing backend.Caps) hresult.Code {
	for _, e := range missingCapErrors {
		if missing&e.caps != 0 {
			return e.err
		}
	}
	return hresult.InvalidCaps
}

// CreateSurface allocates a surface, and its back buffers for a flipping
// chain.
func (d *Device) CreateSurface(desc *backend.SurfaceDesc) (backend.Surface, error) {
	if desc == nil {
		return nil, hresult.InvalidParams
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.refs == 0 {
		return nil, backend.ErrReleased
	}

	req := *desc
	if req.Flags&backend.DescCaps == 0 {
		req.Caps = 0
		req.Caps2 = 0
	}
	if missing := d.opts.caps.Missing(req.Caps); missing != 0 {
		return nil, missingCapError(missing)
	}
	if req.Caps2&^d.opts.caps2 != 0 {
		return nil, hresult.InvalidCaps
	}
	if req.Caps&backend.CapsVideoMemory != 0 && req.Caps&backend.CapsSystemMemory != 0 {
		return nil, hresult.InvalidCaps
	}

	geom, err := d.geometryLocked(&req)
	if err != nil {
		return nil, err
	}

	chain := 0
	if req.Caps&backend.CapsFlip != 0 {
		if req.Caps&backend.CapsComplex == 0 {
			return nil, hresult.DDSCapsComplexRequired
		}
		if req.Flags&backend.DescBackBufferCount == 0 || req.BackBufferCount < 1 {
			return nil, hresult.InvalidParams
		}
		chain = req.BackBufferCount
	}

	bpp := geom.Format.BytesPerPixel()
	pitch := pixbuf.AlignedStride(geom.Width, bpp, d.opts.pitchAlign)
	total := pitch * geom.Height * (1 + chain)

	// Memory placement: explicit video memory must fit the budget; without a
	// placement, video memory is preferred and system memory is the fallback.
	fits := d.opts.vidMem == 0 || d.vidUsed+total <= d.opts.vidMem
	placement := req.Caps & (backend.CapsVideoMemory | backend.CapsSystemMemory)
	switch {
	case placement == backend.CapsVideoMemory && !fits:
		d.log().Debug("software: video memory exhausted", "need", total, "used", d.vidUsed, "budget", d.opts.vidMem)
		return nil, hresult.OutOfVideoMemory
	case placement == 0 && fits:
		placement = backend.CapsVideoMemory
	case placement == 0:
		placement = backend.CapsSystemMemory
	}

	realized := backend.SurfaceDesc{
		Flags: backend.DescCaps | backend.DescWidth | backend.DescHeight |
			backend.DescPitch | backend.DescPixelFormat,
		Width:         geom.Width,
		Height:        geom.Height,
		Pitch:         pitch,
		AlphaBitDepth: req.AlphaBitDepth,
		TextureStage:  req.TextureStage,
		Format:        geom.Format,
		Caps:          req.Caps&^(backend.CapsVideoMemory|backend.CapsSystemMemory) | placement,
		Caps2:         req.Caps2,
	}
	if req.Flags&backend.DescAlphaBitDepth != 0 {
		realized.Flags |= backend.DescAlphaBitDepth
	}
	if req.Flags&backend.DescTextureStage != 0 {
		realized.Flags |= backend.DescTextureStage
	}
	if chain > 0 {
		realized.Flags |= backend.DescBackBufferCount
		realized.BackBufferCount = chain
		realized.Caps |= backend.CapsFrontBuffer
	}

	front, err := d.allocLocked(realized)
	if err != nil {
		return nil, err
	}
	for i := 0; i < chain; i++ {
		bd := realized
		bd.Flags &^= backend.DescBackBufferCount
		bd.BackBufferCount = 0
		bd.Caps &^= backend.CapsFrontBuffer | backend.CapsPrimarySurface
		if i == 0 {
			bd.Caps |= backend.CapsBackBuffer
		}
		back, err := d.allocLocked(bd)
		if err != nil {
			d.destroyLocked(front)
			return nil, err
		}
		back.front = front
		front.chain = append(front.chain, back)
	}

	if req.Caps&backend.CapsPrimarySurface != 0 {
		d.primary = front
		front.mode = d.current
	}

	d.log().Debug("software: surface created",
		"id", front.id,
		"width", geom.Width, "height", geom.Height, "pitch", pitch,
		"format", geom.Format.String(),
		"caps", realized.Caps.String(),
		"backbuffers", chain)
	return front, nil
}

// geometryLocked resolves the size and pixel format of a surface request.
func (d *Device) geometryLocked(req *backend.SurfaceDesc) (backend.SurfaceDesc, error) {
	var g backend.SurfaceDesc

	if req.Caps&backend.CapsPrimarySurface != 0 {
		if d.coop == 0 {
			return g, hresult.NoCooperativeLevelSet
		}
		if d.primary != nil {
			return g, hresult.PrimarySurfaceAlreadyExists
		}
		if req.Flags&(backend.DescWidth|backend.DescHeight|backend.DescPixelFormat) != 0 {
			return g, hresult.InvalidParams
		}
		g.Width, g.Height = d.current.Width, d.current.Height
		g.Format = pixfmt.DeriveColor(d.current.BitsPerPixel, false)
		return g, nil
	}

	if req.Flags&backend.DescWidth == 0 || req.Flags&backend.DescHeight == 0 {
		return g, hresult.InvalidParams
	}
	if req.Width <= 0 || req.Height <= 0 {
		return g, hresult.InvalidParams
	}
	if req.Width > 16384 || req.Height > 16384 {
		return g, hresult.TooBigSize
	}
	g.Width, g.Height = req.Width, req.Height

	switch {
	case req.Flags&backend.DescPixelFormat != 0:
		g.Format = req.Format
	case req.Caps&backend.CapsZBuffer != 0:
		return g, hresult.InvalidPixelFormat
	default:
		g.Format = pixfmt.DeriveColor(d.current.BitsPerPixel, false)
	}
	if !g.Format.Valid() {
		return g, hresult.InvalidPixelFormat
	}
	if req.Caps&backend.CapsZBuffer != 0 && g.Format.Flags&pixfmt.FlagZBuffer == 0 {
		return g, hresult.InvalidPixelFormat
	}
	if g.Format.Flags&pixfmt.FlagZBuffer != 0 && req.Caps&backend.CapsZBuffer == 0 {
		return g, hresult.InvalidPixelFormat
	}
	return g, nil
}

func (d *Device) allocLocked(desc backend.SurfaceDesc) (*surface, error) {
	buf, err := d.pool.Get(desc.Width, desc.Height, desc.Format.BytesPerPixel(), desc.Pitch)
	if err != nil {
		return nil, hresult.OutOfMemory
	}
	s := &surface{
		dev:  d,
		id:   d.next,
		refs: 1,
		desc: desc,
		buf:  buf,
	}
	d.next++
	d.surfaces[s] = struct{}{}
	if desc.Caps&backend.CapsVideoMemory != 0 {
		d.vidUsed += buf.Size()
	}
	return s, nil
}

// destroyLocked frees s and the back buffers it owns.
func (d *Device) destroyLocked(s *surface) {
	if _, ok := d.surfaces[s]; !ok {
		return
	}
	delete(d.surfaces, s)
	s.refs = 0
	if s.desc.Caps&backend.CapsVideoMemory != 0 {
		d.vidUsed -= s.buf.Size()
	}
	d.pool.Put(s.buf)
	s.buf = nil
	if d.primary == s {
		d.primary = nil
	}
	for _, b := range s.chain {
		if b.refs > 0 {
			b.refs--
		}
		if b.refs == 0 {
			d.destroyLocked(b)
		} else {
			b.front = nil
		}
	}
	s.chain = nil
}

// baseRef is a base-interface view sharing the reference count of obj.
type baseRef struct {
	obj backend.Object
	raw uintptr
}

func (b *baseRef) AddRef() uint32  { return b.obj.AddRef() }
func (b *baseRef) Release() uint32 { return b.obj.Release() }
func (b *baseRef) Raw() uintptr    { return b.raw }

// Fills and copies of at least parallelMinPixels destination pixels are
// split into bands of at least parallelMinRows rows.
const (
	parallelMinPixels = 256 * 256
	parallelMinRows   = 32
)

// rowsLocked runs fn over r, in parallel bands when r is large and the
// device has workers.
func (d *Device) rowsLocked(r image.Rectangle, fn func(band image.Rectangle)) {
	if d.opts.workers < 2 || r.Dx()*r.Dy() < parallelMinPixels {
		fn(r)
		return
	}
	if d.workers == nil {
		d.workers = parallel.NewWorkerPool(d.opts.workers)
	}
	d.workers.Rows(r, parallelMinRows, fn)
}
