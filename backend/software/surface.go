package software

import (
	"image"
	"sync"

	"github.com/gogpu/ddraw/backend"
	"github.com/gogpu/ddraw/hresult"
	"github.com/gogpu/ddraw/internal/pixbuf"
)

// surface is a software surface. All fields are guarded by dev.mu.
type surface struct {
	dev  *Device
	id   uintptr
	refs uint32
	desc backend.SurfaceDesc
	buf  *pixbuf.Buf

	lost   bool
	locked bool
	keys   map[backend.ColorKeyFlags]backend.ColorKey

	// Flipping chain: the front buffer owns its back buffers.
	front *surface
	chain []*surface

	// Display mode a primary surface was created in.
	mode backend.DisplayMode
}

var (
	_ backend.Surface     = (*surface)(nil)
	_ backend.BaseQuerier = (*surface)(nil)
)

func (s *surface) AddRef() uint32 {
	s.dev.mu.Lock()
	defer s.dev.mu.Unlock()
	if s.refs == 0 {
		return 0
	}
	s.refs++
	return s.refs
}

func (s *surface) Release() uint32 {
	s.dev.mu.Lock()
	defer s.dev.mu.Unlock()
	if s.refs == 0 {
		return 0
	}
	s.refs--
	if s.refs == 0 {
		if f := s.front; f != nil {
			for i, b := range f.chain {
				if b == s {
					f.chain = append(f.chain[:i], f.chain[i+1:]...)
					break
				}
			}
		}
		s.dev.destroyLocked(s)
		s.dev.log().Debug("software: surface released", "id", s.id)
	}
	return s.refs
}

func (s *surface) Raw() uintptr {
	return s.id
}

// BaseInterface returns the version 1 interface of the surface, with an
// added reference.
func (s *surface) BaseInterface() (backend.Object, error) {
	if s.AddRef() == 0 {
		return nil, backend.ErrReleased
	}
	return &baseRef{obj: s, raw: s.id | 1<<31}, nil
}

// check returns the error for using a released surface.
func (s *surface) check() error {
	if s.refs == 0 {
		return hresult.InvalidObject
	}
	return nil
}

func (s *surface) Desc() (backend.SurfaceDesc, error) {
	s.dev.mu.Lock()
	defer s.dev.mu.Unlock()
	if err := s.check(); err != nil {
		return backend.SurfaceDesc{}, err
	}
	return s.desc, nil
}

func (s *surface) IsLost() bool {
	s.dev.mu.Lock()
	defer s.dev.mu.Unlock()
	return s.lost
}

// Restore reallocates a lost surface and the back buffers it owns. The
// memory is cleared. A primary surface can only be restored in the display
// mode it was created in.
func (s *surface) Restore() error {
	s.dev.mu.Lock()
	defer s.dev.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}
	if s.desc.Caps&backend.CapsPrimarySurface != 0 && s.mode != s.dev.current {
		return hresult.WrongMode
	}
	if s.locked {
		return hresult.SurfaceBusy
	}
	n := 0
	for _, t := range append([]*surface{s}, s.chain...) {
		if t.lost {
			t.buf.Clear()
			t.lost = false
			n++
		}
	}
	if n > 0 {
		s.dev.log().Warn("software: surface restored", "id", s.id, "buffers", n)
	}
	return nil
}

// AttachedSurface returns the first surface of the flipping chain whose caps
// include caps.
func (s *surface) AttachedSurface(caps backend.Caps) (backend.Surface, error) {
	s.dev.mu.Lock()
	defer s.dev.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	for _, b := range s.chain {
		if b.desc.Caps&caps == caps {
			b.refs++
			return b, nil
		}
	}
	return nil, hresult.NotFound
}

// usable reports why s cannot take part in an operation right now.
func (s *surface) usable() error {
	if err := s.check(); err != nil {
		return err
	}
	if s.lost {
		return hresult.SurfaceLost
	}
	if s.locked {
		return hresult.SurfaceBusy
	}
	return nil
}

func (s *surface) Lock(r *image.Rectangle, flags backend.LockFlags) (backend.LockedRect, error) {
	s.dev.mu.Lock()
	defer s.dev.mu.Unlock()
	if err := s.usable(); err != nil {
		return backend.LockedRect{}, err
	}

	rect := s.buf.Bounds()
	if r != nil {
		if r.Empty() || !r.In(rect) {
			return backend.LockedRect{}, hresult.InvalidRect
		}
		rect = *r
	}
	pix, rect := s.buf.Window(rect)
	s.locked = true
	return backend.LockedRect{Pix: pix, Pitch: s.buf.Stride(), Rect: rect}, nil
}

func (s *surface) Unlock(*image.Rectangle) error {
	s.dev.mu.Lock()
	defer s.dev.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}
	if !s.locked {
		return hresult.NotLocked
	}
	s.locked = false
	return nil
}

// Flip rotates the memory of the chain: the front buffer takes the contents
// of the first back buffer, each back buffer takes the next one, and the
// last takes the old front.
func (s *surface) Flip(backend.FlipFlags) error {
	s.dev.mu.Lock()
	defer s.dev.mu.Unlock()
	if err := s.usable(); err != nil {
		return err
	}
	if s.desc.Caps&backend.CapsFlip == 0 || len(s.chain) == 0 {
		return hresult.NotFlippable
	}
	for _, b := range s.chain {
		if err := b.usable(); err != nil {
			return err
		}
	}

	prev := s
	for _, b := range s.chain {
		prev.buf.Swap(b.buf)
		prev = b
	}
	return nil
}

// Blt fills or copies into s.
//
// Keyed copies use the source blit key, or the source overlay key when only
// that one is set. Rectangles must lie inside their surfaces; copies between
// rectangles of different sizes are stretched.
func (s *surface) Blt(dst *image.Rectangle, src backend.Surface, srcRect *image.Rectangle, flags backend.BltFlags, fx *backend.BltFX) error {
	s.dev.mu.Lock()
	defer s.dev.mu.Unlock()
	if err := s.usable(); err != nil {
		return err
	}

	dr := s.buf.Bounds()
	if dst != nil {
		if !dst.In(dr) {
			return hresult.InvalidRect
		}
		dr = *dst
	}

	switch {
	case flags&backend.BltColorFill != 0:
		if fx == nil {
			return hresult.InvalidParams
		}
		s.fillLocked(dr, fx.Fill)
		return nil
	case flags&backend.BltDepthFill != 0:
		if fx == nil || s.desc.Caps&backend.CapsZBuffer == 0 {
			return hresult.InvalidParams
		}
		s.fillLocked(dr, fx.Fill)
		return nil
	}

	from, ok := src.(*surface)
	if !ok || from == nil || from.dev != s.dev {
		return hresult.InvalidParams
	}
	if err := from.usable(); err != nil {
		return err
	}
	sr := from.buf.Bounds()
	if srcRect != nil {
		if !srcRect.In(sr) {
			return hresult.InvalidRect
		}
		sr = *srcRect
	}
	if from.buf.BytesPerPixel() != s.buf.BytesPerPixel() {
		return hresult.InvalidPixelFormat
	}

	var key *pixbuf.Key
	if flags&backend.BltKeySrc != 0 {
		k, ok := from.keys[backend.KeySrcBlt]
		if !ok {
			k, ok = from.keys[backend.KeySrcOverlay]
		}
		if !ok {
			return hresult.ColorKeyNotSet
		}
		key = &pixbuf.Key{Low: k.Low, High: k.High}
	}

	srcBuf := from.buf
	if srcBuf == s.buf {
		srcBuf = srcBuf.Clone()
	}
	var err error
	var once sync.Once
	s.dev.rowsLocked(dr, func(band image.Rectangle) {
		if e := pixbuf.CopyBand(s.buf, dr, srcBuf, sr, key, band); e != nil {
			once.Do(func() { err = e })
		}
	})
	if err != nil {
		return hresult.InvalidPixelFormat
	}
	return nil
}

func (s *surface) fillLocked(r image.Rectangle, v uint32) {
	s.dev.rowsLocked(r, func(band image.Rectangle) {
		s.buf.Fill(band, v)
	})
}

// SetColorKey stores a key. Without KeyColorSpace the key is the single
// value Low.
func (s *surface) SetColorKey(flags backend.ColorKeyFlags, key backend.ColorKey) error {
	s.dev.mu.Lock()
	defer s.dev.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}
	if !flags.Single() {
		return hresult.InvalidParams
	}
	if flags&backend.KeyColorSpace == 0 {
		key.High = key.Low
	}
	if key.High < key.Low {
		return hresult.InvalidParams
	}
	if flags.Target() == backend.KeySrcOverlay && s.desc.Caps&backend.CapsOverlay == 0 {
		return hresult.NotAOverlaySurface
	}
	if s.keys == nil {
		s.keys = make(map[backend.ColorKeyFlags]backend.ColorKey)
	}
	s.keys[flags.Target()] = key
	return nil
}

// ColorKey returns the key set for the given slot.
func (s *surface) ColorKey(flags backend.ColorKeyFlags) (backend.ColorKey, bool) {
	s.dev.mu.Lock()
	defer s.dev.mu.Unlock()
	k, ok := s.keys[flags.Target()]
	return k, ok
}
