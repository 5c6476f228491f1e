package backend

import (
	"errors"
	"image"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the in-memory device.
	BackendSoftware = "software"
	// BackendDDraw7 is the name of the IDirectDraw7 COM device.
	BackendDDraw7 = "ddraw7"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered
	// or no registered backend could be opened.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrReleased is returned by operations on an object whose last reference
	// has been released.
	ErrReleased = errors.New("backend: object released")
)

// Object is a reference-counted device object.
//
// AddRef and Release return the new reference count. The object is destroyed
// when the count reaches zero and must not be used afterwards.
type Object interface {
	AddRef() uint32
	Release() uint32

	// Raw returns the native interface pointer, or an opaque identifier for
	// backends that have none.
	Raw() uintptr
}

// BaseQuerier is implemented by objects that can expose their base
// (version 1) interface, for interop with legacy code.
type BaseQuerier interface {
	BaseInterface() (Object, error)
}

// Backend is a connection to a display device.
//
// Failures are reported as hresult.Code values (possibly wrapped), so callers
// can classify them with hresult.From and hresult.IsClass.
type Backend interface {
	Object

	// Name returns the backend identifier (e.g., "software", "ddraw7").
	Name() string

	// EnumDisplayModes calls fn for each display mode matching filter. Zero
	// fields in filter match anything. Enumeration stops when fn returns
	// false.
	EnumDisplayModes(filter DisplayMode, fn func(DisplayMode) bool) error

	// SetCooperativeLevel sets how the application shares the display.
	SetCooperativeLevel(window uintptr, level CoopLevel) error

	// SetDisplayMode switches the display. It requires exclusive mode.
	SetDisplayMode(m DisplayMode) error

	// RestoreDisplayMode returns the display to the mode it had before
	// SetDisplayMode.
	RestoreDisplayMode() error

	// CreateSurface allocates a surface matching desc. The caller owns the
	// returned reference.
	CreateSurface(desc *SurfaceDesc) (Surface, error)
}

// Surface is a device surface.
type Surface interface {
	Object

	// Desc returns the realized descriptor. Width, Height and Pitch may
	// differ from the requested values.
	Desc() (SurfaceDesc, error)

	// IsLost reports whether the surface memory was reclaimed and needs
	// Restore before use.
	IsLost() bool

	// Restore reallocates the memory of a lost surface. Contents are not
	// preserved.
	Restore() error

	// AttachedSurface returns the attached surface matching caps, with an
	// added reference.
	AttachedSurface(caps Caps) (Surface, error)

	// Lock maps r (or the whole surface if r is nil) for CPU access.
	Lock(r *image.Rectangle, flags LockFlags) (LockedRect, error)

	// Unlock ends the access started by Lock.
	Unlock(r *image.Rectangle) error

	// Flip presents the next buffer of a flipping chain.
	Flip(flags FlipFlags) error

	// Blt copies srcRect of src into dst of this surface, or fills dst when
	// flags request a fill. Nil rectangles mean the whole surface.
	Blt(dst *image.Rectangle, src Surface, srcRect *image.Rectangle, flags BltFlags, fx *BltFX) error

	// SetColorKey sets one of the surface color keys.
	SetColorKey(flags ColorKeyFlags, key ColorKey) error
}
