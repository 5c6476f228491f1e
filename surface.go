package ddraw

import (
	"fmt"
	"image"

	"github.com/gogpu/ddraw/backend"
	"github.com/gogpu/ddraw/pixfmt"
)

// Descriptor is the configuration of a surface before creation.
type Descriptor struct {
	Kind         Kind
	Width        int
	Height       int
	BitsPerPixel int

	// Alpha adds an alpha channel to color formats.
	Alpha bool

	// ChainCount is the number of back buffers of a Chain surface.
	ChainCount int

	// Luminance adds a luminance channel to bump map formats.
	Luminance bool
}

// Surface is a drawing target or resource on a display device.
//
// The zero value is an unconfigured surface. Configure it with the Set
// methods and pass it to [Manager.CreateSurface]. Once created, the
// configuration can no longer change and Created stays true, even after
// Close.
type Surface struct {
	desc Descriptor

	mgr    *Manager
	handle backend.Surface

	created bool
	closed  bool

	width  int
	height int
	pitch  int
	format pixfmt.Format
	caps   backend.Caps
	caps2  backend.Caps2

	attempt int
	repaint bool
	keyed   bool

	onClose func()
}

func (s *Surface) bind(m *Manager, h backend.Surface, realized backend.SurfaceDesc, attempt int) {
	s.mgr = m
	s.handle = h
	s.width = realized.Width
	s.height = realized.Height
	s.pitch = realized.Pitch
	s.format = realized.Format
	s.caps = realized.Caps
	s.caps2 = realized.Caps2
	s.attempt = attempt
	s.created = true
}

func (s *Surface) configure(op string, fn func(d *Descriptor)) error {
	if s.created {
		return precondition(op, ErrAlreadyCreated)
	}
	fn(&s.desc)
	return nil
}

// SetSurfaceType sets the surface kind.
func (s *Surface) SetSurfaceType(kind Kind) error {
	if !kind.Valid() {
		return precondition("set surface type", fmt.Errorf("%w: %v", ErrUnknownKind, kind))
	}
	return s.configure("set surface type", func(d *Descriptor) { d.Kind = kind })
}

// SetGeneralOptions sets the requested size and bit depth.
func (s *Surface) SetGeneralOptions(width, height, bitsPerPixel int) error {
	return s.configure("set general options", func(d *Descriptor) {
		d.Width = width
		d.Height = height
		d.BitsPerPixel = bitsPerPixel
	})
}

// SetChainOptions sets the number of back buffers of a Chain surface.
func (s *Surface) SetChainOptions(count int) error {
	return s.configure("set chain options", func(d *Descriptor) { d.ChainCount = count })
}

// SetTextureOptions enables an alpha channel in color formats.
func (s *Surface) SetTextureOptions(alpha bool) error {
	return s.configure("set texture options", func(d *Descriptor) { d.Alpha = alpha })
}

// SetBumpMapOptions enables a luminance channel in bump map formats.
func (s *Surface) SetBumpMapOptions(luminance bool) error {
	return s.configure("set bump map options", func(d *Descriptor) { d.Luminance = luminance })
}

// Descriptor returns the configuration of s.
func (s *Surface) Descriptor() Descriptor { return s.desc }

// Kind returns the surface kind.
func (s *Surface) Kind() Kind { return s.desc.Kind }

// Created reports whether s holds a device resource or did before Close.
func (s *Surface) Created() bool { return s.created }

// Width returns the realized width. It may differ from the requested one.
func (s *Surface) Width() int { return s.width }

// Height returns the realized height.
func (s *Surface) Height() int { return s.height }

// Pitch returns the realized row stride in bytes. It is at least
// Width times the bytes per pixel.
func (s *Surface) Pitch() int { return s.pitch }

// Format returns the realized pixel format. Primary surfaces report the
// format of the display mode.
func (s *Surface) Format() pixfmt.Format { return s.format }

// Caps returns the capabilities the device granted.
func (s *Surface) Caps() (backend.Caps, backend.Caps2) { return s.caps, s.caps2 }

// Attempt returns which capability combination succeeded, from 1 to
// MaxAttempts, or 0 before creation.
func (s *Surface) Attempt() int { return s.attempt }

// Bounds returns the surface rectangle.
func (s *Surface) Bounds() image.Rectangle { return image.Rect(0, 0, s.width, s.height) }

// NeedsRepainting reports whether the surface was restored since the last
// call. The contents of a restored surface are undefined and must be drawn
// again.
func (s *Surface) NeedsRepainting() bool {
	if s.repaint {
		s.repaint = false
		return true
	}
	return false
}

// ready checks that s can talk to the device and restores it if it was lost.
func (s *Surface) ready(op string) error {
	if s.closed {
		return precondition(op, ErrClosed)
	}
	if !s.created {
		return precondition(op, ErrNotCreated)
	}
	return s.restore(op)
}

// restore brings back lost memory. A failed restore is returned without a
// diagnostic.
func (s *Surface) restore(op string) error {
	if !s.handle.IsLost() {
		return nil
	}
	if err := s.handle.Restore(); err != nil {
		return &BackendError{Op: op + ": restore", Err: err}
	}
	s.repaint = true
	Logger().Warn("ddraw: surface restored", "kind", s.desc.Kind.String())
	return nil
}

func (s *Surface) fail(op string, err error) error {
	if s.mgr != nil {
		s.mgr.report(op, err)
	}
	return &BackendError{Op: op, Err: err}
}

// target returns the surface that StartAccess and EndAccess operate on. For a
// Primary surface that is the attached back buffer; done releases it.
func (s *Surface) target() (t backend.Surface, done func(), err error) {
	if s.desc.Kind != KindPrimary {
		return s.handle, func() {}, nil
	}
	back, err := s.handle.AttachedSurface(backend.CapsBackBuffer)
	if err != nil {
		return nil, nil, err
	}
	return back, func() { back.Release() }, nil
}

// Access is the memory of a locked surface region. Pix starts at Rect.Min
// and rows are Pitch bytes apart. Writes must stay within Rect.
type Access struct {
	Pix    []byte
	Pitch  int
	Rect   image.Rectangle
	Format pixfmt.Format
}

// Image returns a draw.Image over the locked memory. It is valid until
// EndAccess.
func (a Access) Image() *pixfmt.Image {
	img := pixfmt.NewImage(a.Pix, a.Pitch, a.Rect.Dx(), a.Rect.Dy(), a.Format)
	img.Rect = a.Rect
	return img
}

// StartAccess locks r, or the whole surface when r is nil, and returns its
// memory. A Primary surface gives access to its back buffer. The call waits
// while the device is busy.
func (s *Surface) StartAccess(r *image.Rectangle) (Access, error) {
	const op = "start access"
	if err := s.ready(op); err != nil {
		return Access{}, err
	}
	t, done, err := s.target()
	if err != nil {
		return Access{}, s.fail(op, err)
	}
	defer done()

	lr, err := t.Lock(r, backend.LockWait|backend.LockNoSysLock)
	if err != nil {
		return Access{}, s.fail(op, err)
	}
	return Access{Pix: lr.Pix, Pitch: lr.Pitch, Rect: lr.Rect, Format: s.format}, nil
}

// EndAccess unlocks the region locked by StartAccess.
func (s *Surface) EndAccess(r *image.Rectangle) error {
	const op = "end access"
	if s.closed {
		return precondition(op, ErrClosed)
	}
	if !s.created {
		return precondition(op, ErrNotCreated)
	}
	t, done, err := s.target()
	if err != nil {
		return s.fail(op, err)
	}
	defer done()

	if err := t.Unlock(r); err != nil {
		return s.fail(op, err)
	}
	return nil
}

// Show presents the back buffer of a Primary surface. It waits until the
// flip can be queued.
func (s *Surface) Show() error {
	const op = "show"
	if s.created && s.desc.Kind != KindPrimary {
		return precondition(op, fmt.Errorf("%w: %v", ErrWrongKind, s.desc.Kind))
	}
	if err := s.ready(op); err != nil {
		return err
	}
	if err := s.handle.Flip(backend.FlipWait); err != nil {
		return s.fail(op, err)
	}
	return nil
}

// BlitTo copies the whole surface into dst at rect, stretching if the sizes
// differ.
func (s *Surface) BlitTo(dst *Surface, rect image.Rectangle) error {
	return s.BlitPortionTo(s.Bounds(), dst, rect)
}

// BlitToPoint copies the whole surface into dst with its top-left corner at
// (x, y).
func (s *Surface) BlitToPoint(dst *Surface, x, y int) error {
	return s.BlitPortionTo(s.Bounds(), dst, image.Rect(x, y, x+s.width, y+s.height))
}

// BlitPortionToPoint copies portion into dst with its top-left corner at
// (x, y).
func (s *Surface) BlitPortionToPoint(portion image.Rectangle, dst *Surface, x, y int) error {
	return s.BlitPortionTo(portion, dst, image.Rect(x, y, x+portion.Dx(), y+portion.Dy()))
}

// BlitPortionTo copies portion of s into dst at rect. When a transparent
// color range is set, pixels in the range are skipped. The call waits while
// the device is busy.
func (s *Surface) BlitPortionTo(portion image.Rectangle, dst *Surface, rect image.Rectangle) error {
	const op = "blit"
	if dst == nil {
		return precondition(op, ErrNilSurface)
	}
	if err := s.ready(op); err != nil {
		return err
	}
	if err := dst.ready(op); err != nil {
		return err
	}

	flags := backend.BltWait
	if s.keyed {
		flags |= backend.BltKeySrc
	}
	if err := dst.handle.Blt(&rect, s.handle, &portion, flags, &backend.BltFX{}); err != nil {
		return s.fail(op, err)
	}
	return nil
}

// ClearToDepth fills a ZBuffer surface with depth.
func (s *Surface) ClearToDepth(depth uint32) error {
	const op = "clear to depth"
	if s.created && s.desc.Kind != KindZBuffer {
		return precondition(op, fmt.Errorf("%w: %v", ErrWrongKind, s.desc.Kind))
	}
	if err := s.ready(op); err != nil {
		return err
	}
	fx := &backend.BltFX{Fill: depth}
	if err := s.handle.Blt(nil, nil, nil, backend.BltDepthFill|backend.BltWait, fx); err != nil {
		return s.fail(op, err)
	}
	return nil
}

// ClearToColor fills the surface with color. On surfaces with alpha, color
// is a packed pixel; otherwise it is the fill color of the format.
func (s *Surface) ClearToColor(color uint32) error {
	const op = "clear to color"
	if err := s.ready(op); err != nil {
		return err
	}
	fx := &backend.BltFX{Fill: color, PixelFill: s.desc.Alpha}
	if err := s.handle.Blt(nil, nil, nil, backend.BltColorFill|backend.BltWait, fx); err != nil {
		return s.fail(op, err)
	}
	return nil
}

// SetTransparentColorRange sets the source color key to the inclusive range
// [low, high] and enables keyed blits from s. Overlays use the overlay key.
func (s *Surface) SetTransparentColorRange(low, high uint32) error {
	const op = "set transparent color range"
	if s.closed {
		return precondition(op, ErrClosed)
	}
	if !s.created {
		return precondition(op, ErrNotCreated)
	}
	flags := backend.KeyColorSpace | backend.KeySrcBlt
	if s.desc.Kind == KindOverlay {
		flags = backend.KeyColorSpace | backend.KeySrcOverlay
	}
	if err := s.handle.SetColorKey(flags, backend.ColorKey{Low: low, High: high}); err != nil {
		return s.fail(op, err)
	}
	s.keyed = true
	return nil
}

// ColorKeyed reports whether blits from s use the transparent color range.
func (s *Surface) ColorKeyed() bool { return s.keyed }

// Interface returns a shared reference to the surface interface.
func (s *Surface) Interface() (*Handle, error) {
	const op = "interface"
	if s.closed {
		return nil, precondition(op, ErrClosed)
	}
	if !s.created {
		return nil, precondition(op, ErrNotCreated)
	}
	s.handle.AddRef()
	return newHandle(s.handle), nil
}

// BaseInterface returns a shared reference to the base (version 1) surface
// interface.
func (s *Surface) BaseInterface() (*Handle, error) {
	const op = "base interface"
	if s.closed {
		return nil, precondition(op, ErrClosed)
	}
	if !s.created {
		return nil, precondition(op, ErrNotCreated)
	}
	return baseHandle(s.handle, op)
}

// Close releases the device resource. It is safe to call more than once and
// on surfaces that were never created.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if !s.created {
		return nil
	}
	s.handle.Release()
	s.handle = nil
	if s.onClose != nil {
		s.onClose()
		s.onClose = nil
	}
	return nil
}
