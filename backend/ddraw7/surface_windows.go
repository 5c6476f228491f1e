//go:build windows

package ddraw7

import (
	"image"
	"unsafe"

	"github.com/gogpu/ddraw/backend"
)

// surface is an IDirectDrawSurface7.
type surface struct {
	*comObject
}

var (
	_ backend.Surface     = (*surface)(nil)
	_ backend.BaseQuerier = (*surface)(nil)
)

// BaseInterface returns the IDirectDrawSurface interface of the surface.
func (s *surface) BaseInterface() (backend.Object, error) {
	return s.query(&iidIDirectDrawSurface)
}

func (s *surface) Desc() (backend.SurfaceDesc, error) {
	sd := surfaceDesc2{Size: surfaceDescSize}
	if err := s.call(surfGetSurfaceDesc, uintptr(unsafe.Pointer(&sd))); err != nil {
		return backend.SurfaceDesc{}, err
	}
	return fromSurfaceDesc(&sd), nil
}

func (s *surface) IsLost() bool {
	return s.call(surfIsLost) != nil
}

func (s *surface) Restore() error {
	return s.call(surfRestore)
}

func (s *surface) AttachedSurface(caps backend.Caps) (backend.Surface, error) {
	c := caps2{Caps: uint32(caps)}
	var ptr uintptr
	if err := s.call(surfGetAttachedSurface,
		uintptr(unsafe.Pointer(&c)),
		uintptr(unsafe.Pointer(&ptr)),
	); err != nil {
		return nil, err
	}
	return &surface{comObject: newCOMObject(ptr)}, nil
}

func (s *surface) Lock(r *image.Rectangle, flags backend.LockFlags) (backend.LockedRect, error) {
	sd := surfaceDesc2{Size: surfaceDescSize}
	if err := s.call(surfLock,
		uintptr(unsafe.Pointer(toRect(r))),
		uintptr(unsafe.Pointer(&sd)),
		uintptr(flags),
		0,
	); err != nil {
		return backend.LockedRect{}, err
	}

	bounds := image.Rect(0, 0, int(sd.Width), int(sd.Height))
	if r != nil {
		bounds = r.Intersect(bounds)
	}
	pitch := int(sd.Pitch)
	n := 0
	if !bounds.Empty() {
		bpp := fromPixelFormat(sd.PixelFormat).BytesPerPixel()
		n = (bounds.Dy()-1)*pitch + bounds.Dx()*bpp
	}
	return backend.LockedRect{Pix: bytesAt(sd.Surface, n), Pitch: pitch, Rect: bounds}, nil
}

func (s *surface) Unlock(r *image.Rectangle) error {
	return s.call(surfUnlock, uintptr(unsafe.Pointer(toRect(r))))
}

func (s *surface) Flip(flags backend.FlipFlags) error {
	return s.call(surfFlip, 0, uintptr(flags))
}

func (s *surface) Blt(dst *image.Rectangle, src backend.Surface, srcRect *image.Rectangle, flags backend.BltFlags, fx *backend.BltFX) error {
	var from uintptr
	if src != nil {
		from = src.Raw()
	}
	var native *bltFX
	if fx != nil {
		native = &bltFX{Size: bltFXSize, Fill: uintptr(fx.Fill)}
	}
	return s.call(surfBlt,
		uintptr(unsafe.Pointer(toRect(dst))),
		from,
		uintptr(unsafe.Pointer(toRect(srcRect))),
		uintptr(flags),
		uintptr(unsafe.Pointer(native)),
	)
}

func (s *surface) SetColorKey(flags backend.ColorKeyFlags, key backend.ColorKey) error {
	k := colorKey{Low: key.Low, High: key.High}
	return s.call(surfSetColorKey, uintptr(flags), uintptr(unsafe.Pointer(&k)))
}
