package ddraw

import (
	"sync/atomic"

	"github.com/gogpu/ddraw/backend"
)

// Handle is a shared reference to a backend interface, for interop with code
// that calls the device directly. The holder must call Release exactly once;
// later calls do nothing. Releasing a Handle never affects the Manager or
// Surface it came from.
type Handle struct {
	obj      backend.Object
	released atomic.Bool
}

func newHandle(obj backend.Object) *Handle {
	return &Handle{obj: obj}
}

// Raw returns the native interface pointer, or 0 after Release.
func (h *Handle) Raw() uintptr {
	if h.released.Load() {
		return 0
	}
	return h.obj.Raw()
}

// Object returns the backend object, or nil after Release. The returned value
// is only valid until Release.
func (h *Handle) Object() backend.Object {
	if h.released.Load() {
		return nil
	}
	return h.obj
}

// Release drops the reference. It reports whether this call released it.
func (h *Handle) Release() bool {
	if !h.released.CompareAndSwap(false, true) {
		return false
	}
	h.obj.Release()
	return true
}
