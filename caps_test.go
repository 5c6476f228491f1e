package ddraw

import (
	"testing"

	"github.com/gogpu/ddraw/backend"
)

func TestCapabilitiesTable(t *testing.T) {
	tests := []struct {
		kind       Kind
		essential  backend.Caps
		desired    backend.Caps
		essential2 backend.Caps2
	}{
		{KindPrimary,
			backend.CapsComplex | backend.CapsFlip | backend.CapsPrimarySurface | backend.Caps3DDevice | backend.CapsVideoMemory,
			backend.CapsLiveVideo | backend.CapsTexture, 0},
		{KindChain,
			backend.CapsComplex | backend.CapsFlip | backend.CapsVideoMemory,
			backend.CapsLiveVideo | backend.CapsTexture | backend.Caps3DDevice, 0},
		{KindPlain,
			backend.CapsLiveVideo | backend.CapsOffscreenPlain,
			backend.CapsVideoMemory | backend.CapsTexture, 0},
		{KindTexture,
			backend.CapsTexture | backend.CapsComplex | backend.CapsMipMap,
			backend.CapsLiveVideo | backend.Caps3DDevice, backend.Caps2TextureManage},
		{KindZBuffer, backend.CapsZBuffer, 0, 0},
		{KindAlpha, backend.CapsAlpha, backend.CapsVideoMemory, 0},
		{KindOverlay, backend.CapsOverlay,
			backend.CapsVideoMemory | backend.CapsLiveVideo | backend.Caps3DDevice | backend.CapsTexture, 0},
		{KindBumpMap, backend.CapsTexture, backend.CapsLiveVideo | backend.Caps3DDevice, 0},
		{KindLightMap, backend.CapsTexture, 0, backend.Caps2TextureManage},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			r, ok := Capabilities(tt.kind)
			if !ok {
				t.Fatal("no capability request")
			}
			if r.Essential != tt.essential || r.Desired != tt.desired ||
				r.Essential2 != tt.essential2 || r.Desired2 != 0 {
				t.Errorf("Capabilities() = %+v", r)
			}
		})
	}

	if _, ok := Capabilities(KindUnset); ok {
		t.Error("KindUnset should have no capability request")
	}
}

func TestAttemptsOrder(t *testing.T) {
	r := CapRequest{
		Essential:  backend.CapsTexture,
		Desired:    backend.Caps3DDevice,
		Essential2: backend.Caps2TextureManage,
		Desired2:   0x100,
	}
	want := [MaxAttempts]Attempt{
		{backend.CapsTexture | backend.Caps3DDevice, backend.Caps2TextureManage | 0x100},
		{backend.CapsTexture, backend.Caps2TextureManage | 0x100},
		{backend.CapsTexture | backend.Caps3DDevice, backend.Caps2TextureManage},
		{backend.CapsTexture, backend.Caps2TextureManage},
	}
	if got := r.Attempts(); got != want {
		t.Errorf("Attempts() = %v, want %v", got, want)
	}
}

func TestAttemptsAlwaysKeepEssential(t *testing.T) {
	for k := KindPrimary; k <= KindLightMap; k++ {
		r, _ := Capabilities(k)
		for i, a := range r.Attempts() {
			if a.Caps&r.Essential != r.Essential || a.Caps2&r.Essential2 != r.Essential2 {
				t.Errorf("%v attempt %d drops essential caps: %+v", k, i+1, a)
			}
		}
	}
}
