package ddraw7

import (
	"runtime"
	"testing"
	"unsafe"
)

func TestComVtblFn(t *testing.T) {
	vtbl := [3]uintptr{0x10, 0x20, 0x30}
	obj := [1]uintptr{uintptr(unsafe.Pointer(&vtbl[0]))}
	addr := uintptr(unsafe.Pointer(&obj[0]))

	for idx, want := range vtbl {
		if got := comVtblFn(addr, idx); got != want {
			t.Errorf("comVtblFn(obj, %d) = %#x, want %#x", idx, got, want)
		}
	}
	runtime.KeepAlive(&vtbl)
	runtime.KeepAlive(&obj)
}

func TestDescAt(t *testing.T) {
	sd := &surfaceDesc2{Size: surfaceDescSize, Width: 640, Height: 480}
	got := descAt(uintptr(unsafe.Pointer(sd)))
	if got != sd {
		t.Fatalf("descAt() = %p, want %p", got, sd)
	}
	if got.Width != 640 || got.Height != 480 {
		t.Errorf("descAt() geometry = %dx%d", got.Width, got.Height)
	}
}

func TestBytesAt(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6}
	addr := uintptr(unsafe.Pointer(&buf[0]))

	got := bytesAt(addr, 4)
	if len(got) != 4 || got[0] != 1 || got[3] != 4 {
		t.Fatalf("bytesAt(addr, 4) = %v", got)
	}
	got[1] = 9
	if buf[1] != 9 {
		t.Error("bytesAt should alias the memory at addr")
	}
	runtime.KeepAlive(buf)

	tests := []struct {
		name string
		addr uintptr
		n    int
	}{
		{"null", 0, 4},
		{"empty", addr, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bytesAt(tt.addr, tt.n); got != nil {
				t.Errorf("bytesAt() = %v, want nil", got)
			}
		})
	}
}
