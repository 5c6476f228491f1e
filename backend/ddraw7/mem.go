package ddraw7

import "unsafe"

// Addresses handed back by DirectDraw point at memory the Go collector does
// not manage. These helpers are the only places such an address becomes a Go
// pointer.

// foreign returns addr as an unsafe.Pointer without a uintptr conversion.
func foreign(addr uintptr) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&addr))
}

// loadUintptr reads the pointer-sized word at addr.
func loadUintptr(addr uintptr) uintptr {
	return *(*uintptr)(foreign(addr))
}

// comVtblFn resolves a COM vtable function pointer by index.
func comVtblFn(obj uintptr, idx int) uintptr {
	return loadUintptr(loadUintptr(obj) + uintptr(idx)*unsafe.Sizeof(uintptr(0)))
}

// descAt returns the DDSURFACEDESC2 at addr.
func descAt(addr uintptr) *surfaceDesc2 {
	return (*surfaceDesc2)(foreign(addr))
}

// bytesAt returns the n bytes at addr, or nil for a null address.
func bytesAt(addr uintptr, n int) []byte {
	if addr == 0 || n <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(foreign(addr)), n)
}
