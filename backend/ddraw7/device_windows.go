//go:build windows

package ddraw7

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"syscall"
	"unsafe"

	"github.com/gogpu/ddraw/backend"
)

// init registers the DirectDraw 7 backend on package import.
func init() {
	backend.Register(backend.BackendDDraw7, func() (backend.Backend, error) {
		return Open()
	})
}

// Device is an IDirectDraw7 connection to the primary display driver.
type Device struct {
	obj    *comObject
	logger atomic.Pointer[slog.Logger]
}

// Compile-time interface checks.
var (
	_ backend.Backend     = (*Device)(nil)
	_ backend.BaseQuerier = (*Device)(nil)
)

// Open connects to the primary display driver.
func Open() (*Device, error) {
	if err := procDirectDrawCreateEx.Find(); err != nil {
		return nil, fmt.Errorf("ddraw7: %w: %v", backend.ErrBackendNotAvailable, err)
	}
	var ptr uintptr
	hr, _, _ := syscall.SyscallN(procDirectDrawCreateEx.Addr(),
		0,
		uintptr(unsafe.Pointer(&ptr)),
		uintptr(unsafe.Pointer(&iidIDirectDraw7)),
		0,
	)
	if err := check(hr); err != nil {
		return nil, err
	}
	d := &Device{obj: newCOMObject(ptr)}
	d.logger.Store(slog.New(slog.DiscardHandler))
	return d, nil
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

func (d *Device) AddRef() uint32  { return d.obj.AddRef() }
func (d *Device) Release() uint32 { return d.obj.Release() }
func (d *Device) Raw() uintptr    { return d.obj.Raw() }

// Name returns "ddraw7".
func (d *Device) Name() string { return backend.BackendDDraw7 }

// BaseInterface returns the IDirectDraw interface of the device.
func (d *Device) BaseInterface() (backend.Object, error) {
	return d.obj.query(&iidIDirectDraw)
}

// EnumDisplayModes implements backend.Backend.
func (d *Device) EnumDisplayModes(filter backend.DisplayMode, fn func(backend.DisplayMode) bool) error {
	ctx, done := registerEnum(func(sd *surfaceDesc2) bool {
		m := fromModeDesc(sd)
		if !m.Matches(filter) {
			return true
		}
		return fn(m)
	})
	defer done()
	return d.obj.call(ddEnumDisplayModes,
		0,
		uintptr(unsafe.Pointer(modeFilter(filter))),
		ctx,
		modeCallback(),
	)
}

// SetCooperativeLevel implements backend.Backend.
func (d *Device) SetCooperativeLevel(window uintptr, level backend.CoopLevel) error {
	d.log().Debug("ddraw7: set cooperative level", "window", window, "level", uint32(level))
	return d.obj.call(ddSetCooperativeLevel, window, uintptr(level))
}

// SetDisplayMode implements backend.Backend.
func (d *Device) SetDisplayMode(m backend.DisplayMode) error {
	d.log().Debug("ddraw7: set display mode", "mode", m)
	return d.obj.call(ddSetDisplayMode,
		uintptr(m.Width), uintptr(m.Height), uintptr(m.BitsPerPixel), uintptr(m.RefreshRate), 0)
}

// RestoreDisplayMode implements backend.Backend.
func (d *Device) RestoreDisplayMode() error {
	return d.obj.call(ddRestoreDisplayMode)
}

// CreateSurface implements backend.Backend.
func (d *Device) CreateSurface(desc *backend.SurfaceDesc) (backend.Surface, error) {
	sd := toSurfaceDesc(desc)
	var ptr uintptr
	if err := d.obj.call(ddCreateSurface,
		uintptr(unsafe.Pointer(&sd)),
		uintptr(unsafe.Pointer(&ptr)),
		0,
	); err != nil {
		d.log().Debug("ddraw7: create surface failed",
			"caps", desc.Caps, "caps2", desc.Caps2, "err", err)
		return nil, err
	}
	return &surface{comObject: newCOMObject(ptr)}, nil
}
