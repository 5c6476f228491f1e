//go:build windows

package ddraw7

import (
	"sync"
	"sync/atomic"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/gogpu/ddraw/backend"
	"github.com/gogpu/ddraw/hresult"
)

var (
	ddrawDLL               = windows.NewLazySystemDLL("ddraw.dll")
	procDirectDrawCreateEx = ddrawDLL.NewProc("DirectDrawCreateEx")
)

var (
	iidIDirectDraw7       = windows.GUID{Data1: 0x15e65ec0, Data2: 0x3b9c, Data3: 0x11d2, Data4: [8]byte{0xb9, 0x2f, 0x00, 0x60, 0x97, 0x97, 0xea, 0x5b}}
	iidIDirectDraw        = windows.GUID{Data1: 0x6c14db80, Data2: 0xa733, Data3: 0x11ce, Data4: [8]byte{0xa5, 0x21, 0x00, 0x20, 0xaf, 0x0b, 0xe5, 0x60}}
	iidIDirectDrawSurface = windows.GUID{Data1: 0x6c14db81, Data2: 0xa733, Data3: 0x11ce, Data4: [8]byte{0xa5, 0x21, 0x00, 0x20, 0xaf, 0x0b, 0xe5, 0x60}}
)

// IUnknown vtable indices.
const (
	vtblQueryInterface = 0
	vtblAddRef         = 1
	vtblRelease        = 2
)

// IDirectDraw7 vtable indices.
const (
	ddCreateSurface       = 6
	ddEnumDisplayModes    = 8
	ddRestoreDisplayMode  = 19
	ddSetCooperativeLevel = 20
	ddSetDisplayMode      = 21
)

// IDirectDrawSurface7 vtable indices.
const (
	surfBlt                = 5
	surfFlip               = 11
	surfGetAttachedSurface = 12
	surfGetSurfaceDesc     = 22
	surfIsLost             = 24
	surfLock               = 25
	surfRestore            = 27
	surfSetColorKey        = 29
	surfUnlock             = 32
)

const (
	enumRetCancel = 0 // DDENUMRET_CANCEL
	enumRetOK     = 1 // DDENUMRET_OK
)

// comCall invokes method idx on obj and converts a failed HRESULT into an
// hresult.Code.
//
//go:uintptrescapes
func comCall(obj uintptr, idx int, args ...uintptr) error {
	hr, _, _ := syscall.SyscallN(comVtblFn(obj, idx), append([]uintptr{obj}, args...)...)
	return check(hr)
}

func check(hr uintptr) error {
	if code := hresult.Code(uint32(hr)); code.Failed() {
		return code
	}
	return nil
}

// comObject is a COM interface pointer with its reference count tracked on
// the Go side, so use after the final Release fails instead of crashing.
type comObject struct {
	ptr  uintptr
	refs atomic.Int32
}

func newCOMObject(ptr uintptr) *comObject {
	o := &comObject{ptr: ptr}
	o.refs.Store(1)
	return o
}

func (o *comObject) AddRef() uint32 {
	if o.refs.Load() <= 0 {
		return 0
	}
	o.refs.Add(1)
	n, _, _ := syscall.SyscallN(comVtblFn(o.ptr, vtblAddRef), o.ptr)
	return uint32(n)
}

func (o *comObject) Release() uint32 {
	if o.refs.Add(-1) < 0 {
		o.refs.Store(0)
		return 0
	}
	n, _, _ := syscall.SyscallN(comVtblFn(o.ptr, vtblRelease), o.ptr)
	return uint32(n)
}

func (o *comObject) Raw() uintptr {
	if o.refs.Load() <= 0 {
		return 0
	}
	return o.ptr
}

//go:uintptrescapes
func (o *comObject) call(idx int, args ...uintptr) error {
	if o.refs.Load() <= 0 {
		return backend.ErrReleased
	}
	return comCall(o.ptr, idx, args...)
}

// query returns the interface iid of o with one new reference.
func (o *comObject) query(iid *windows.GUID) (*comObject, error) {
	var out uintptr
	if err := o.call(vtblQueryInterface, uintptr(unsafe.Pointer(iid)), uintptr(unsafe.Pointer(&out))); err != nil {
		return nil, err
	}
	return newCOMObject(out), nil
}

// Display mode enumeration shares one callback; the context argument picks
// the Go function to call.
var (
	enumOnce     sync.Once
	enumCallback uintptr

	enumMu   sync.Mutex
	enumNext uintptr
	enumFns  = make(map[uintptr]func(*surfaceDesc2) bool)
)

func modeCallback() uintptr {
	enumOnce.Do(func() {
		enumCallback = windows.NewCallback(func(desc, ctx uintptr) uintptr {
			enumMu.Lock()
			fn := enumFns[ctx]
			enumMu.Unlock()
			if fn == nil || !fn(descAt(desc)) {
				return enumRetCancel
			}
			return enumRetOK
		})
	})
	return enumCallback
}

func registerEnum(fn func(*surfaceDesc2) bool) (ctx uintptr, done func()) {
	enumMu.Lock()
	enumNext++
	ctx = enumNext
	enumFns[ctx] = fn
	enumMu.Unlock()
	return ctx, func() {
		enumMu.Lock()
		delete(enumFns, ctx)
		enumMu.Unlock()
	}
}
