package ddraw

import (
	"image"
	"log/slog"
	"testing"

	"github.com/gogpu/ddraw/backend"
	"github.com/gogpu/ddraw/hresult"
)

// fakeBackend records calls and fails on demand.
type fakeBackend struct {
	refs   uint32
	modes  []backend.DisplayMode
	logger *slog.Logger

	// createErrs[i] is returned by the i-th CreateSurface call, if set.
	createErrs []error
	descErr    error
	enumErr    error
	coopErr    error
	modeErr    error
	restoreErr error
	pitchPad   int

	calls    []string
	visited  int
	creates  []backend.SurfaceDesc
	coop     []backend.CoopLevel
	modeSets []backend.DisplayMode
	surfaces []*fakeSurface
}

var (
	_ backend.Backend     = (*fakeBackend)(nil)
	_ backend.BaseQuerier = (*fakeBackend)(nil)
)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		refs: 1,
		modes: []backend.DisplayMode{
			{Width: 640, Height: 480, BitsPerPixel: 8},
			{Width: 640, Height: 480, BitsPerPixel: 16},
			{Width: 800, Height: 600, BitsPerPixel: 32},
		},
	}
}

func (b *fakeBackend) factory() backend.BackendFactory {
	return func() (backend.Backend, error) { return b, nil }
}

func (b *fakeBackend) AddRef() uint32  { b.refs++; return b.refs }
func (b *fakeBackend) Release() uint32 { b.refs--; return b.refs }
func (b *fakeBackend) Raw() uintptr    { return 0xD0 }
func (b *fakeBackend) Name() string    { return "fake" }

func (b *fakeBackend) SetLogger(l *slog.Logger) { b.logger = l }

func (b *fakeBackend) BaseInterface() (backend.Object, error) {
	b.refs++
	return &fakeBase{parent: b}, nil
}

func (b *fakeBackend) EnumDisplayModes(filter backend.DisplayMode, fn func(backend.DisplayMode) bool) error {
	b.calls = append(b.calls, "enum")
	if b.enumErr != nil {
		return b.enumErr
	}
	for _, m := range b.modes {
		if !m.Matches(filter) {
			continue
		}
		b.visited++
		if !fn(m) {
			return nil
		}
	}
	return nil
}

func (b *fakeBackend) SetCooperativeLevel(_ uintptr, level backend.CoopLevel) error {
	b.calls = append(b.calls, "coop")
	b.coop = append(b.coop, level)
	return b.coopErr
}

func (b *fakeBackend) SetDisplayMode(m backend.DisplayMode) error {
	b.calls = append(b.calls, "mode")
	b.modeSets = append(b.modeSets, m)
	return b.modeErr
}

func (b *fakeBackend) RestoreDisplayMode() error {
	b.calls = append(b.calls, "restore")
	return b.restoreErr
}

func (b *fakeBackend) CreateSurface(d *backend.SurfaceDesc) (backend.Surface, error) {
	i := len(b.creates)
	b.calls = append(b.calls, "create")
	b.creates = append(b.creates, *d)
	if i < len(b.createErrs) && b.createErrs[i] != nil {
		return nil, b.createErrs[i]
	}

	realized := *d
	if realized.Caps&backend.CapsPrimarySurface != 0 {
		realized.Width, realized.Height = 640, 480
	}
	realized.Pitch = realized.Width*max(realized.Format.BytesPerPixel(), 1) + b.pitchPad
	s := &fakeSurface{dev: b, refs: 1, desc: realized, descErr: b.descErr}
	if d.BackBufferCount > 0 {
		bd := realized
		bd.Caps = realized.Caps&^(backend.CapsPrimarySurface|backend.CapsFrontBuffer) | backend.CapsBackBuffer
		s.back = &fakeSurface{dev: b, refs: 1, desc: bd}
	}
	b.surfaces = append(b.surfaces, s)
	return s, nil
}

type fakeBase struct {
	parent *fakeBackend
}

func (f *fakeBase) AddRef() uint32  { return f.parent.AddRef() }
func (f *fakeBase) Release() uint32 { return f.parent.Release() }
func (f *fakeBase) Raw() uintptr    { return 0xD1 }

type bltCall struct {
	dst, src *image.Rectangle
	from     backend.Surface
	flags    backend.BltFlags
	fx       backend.BltFX
}

type keyCall struct {
	flags backend.ColorKeyFlags
	key   backend.ColorKey
}

// fakeSurface records calls made on one surface.
type fakeSurface struct {
	dev     *fakeBackend
	refs    uint32
	desc    backend.SurfaceDesc
	back    *fakeSurface
	descErr error

	lost       bool
	restoreErr error
	restores   int
	locked     bool
	lockFlags  backend.LockFlags
	flips      int
	flipErr    error
	bltErr     error
	keyErr     error
	blts       []bltCall
	keys       []keyCall
	attachRefs int
}

var _ backend.Surface = (*fakeSurface)(nil)

func (s *fakeSurface) AddRef() uint32  { s.refs++; return s.refs }
func (s *fakeSurface) Release() uint32 { s.refs--; return s.refs }
func (s *fakeSurface) Raw() uintptr    { return 0x5F }

func (s *fakeSurface) Desc() (backend.SurfaceDesc, error) {
	if s.descErr != nil {
		return backend.SurfaceDesc{}, s.descErr
	}
	return s.desc, nil
}

func (s *fakeSurface) IsLost() bool { return s.lost }

func (s *fakeSurface) Restore() error {
	s.restores++
	if s.restoreErr != nil {
		return s.restoreErr
	}
	s.lost = false
	return nil
}

func (s *fakeSurface) AttachedSurface(caps backend.Caps) (backend.Surface, error) {
	if s.back == nil || s.back.desc.Caps&caps != caps {
		return nil, hresult.NotFound
	}
	s.back.refs++
	s.attachRefs++
	return s.back, nil
}

func (s *fakeSurface) Lock(r *image.Rectangle, flags backend.LockFlags) (backend.LockedRect, error) {
	if s.locked {
		return backend.LockedRect{}, hresult.SurfaceBusy
	}
	rect := s.desc.Bounds()
	if r != nil {
		rect = *r
	}
	s.locked = true
	s.lockFlags = flags
	return backend.LockedRect{
		Pix:   make([]byte, s.desc.Pitch*rect.Dy()),
		Pitch: s.desc.Pitch,
		Rect:  rect,
	}, nil
}

func (s *fakeSurface) Unlock(*image.Rectangle) error {
	if !s.locked {
		return hresult.NotLocked
	}
	s.locked = false
	return nil
}

func (s *fakeSurface) Flip(backend.FlipFlags) error {
	if s.flipErr != nil {
		return s.flipErr
	}
	s.flips++
	return nil
}

func (s *fakeSurface) Blt(dst *image.Rectangle, src backend.Surface, srcRect *image.Rectangle, flags backend.BltFlags, fx *backend.BltFX) error {
	if s.bltErr != nil {
		return s.bltErr
	}
	c := bltCall{dst: dst, src: srcRect, from: src, flags: flags}
	if fx != nil {
		c.fx = *fx
	}
	s.blts = append(s.blts, c)
	return nil
}

func (s *fakeSurface) SetColorKey(flags backend.ColorKeyFlags, key backend.ColorKey) error {
	if s.keyErr != nil {
		return s.keyErr
	}
	s.keys = append(s.keys, keyCall{flags, key})
	return nil
}

// newFakeManager connects a Manager to a fresh fake backend.
func newFakeManager(t *testing.T, opts ...Option) (*Manager, *fakeBackend) {
	t.Helper()
	b := newFakeBackend()
	m, err := New(append([]Option{WithBackendFactory(b.factory()), WithReporter(nil)}, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m, b
}

// plainSurface returns a configured, uncreated Plain surface.
func plainSurface(w, h, bpp int) *Surface {
	s := &Surface{}
	_ = s.SetSurfaceType(KindPlain)
	_ = s.SetGeneralOptions(w, h, bpp)
	return s
}
