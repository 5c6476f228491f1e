package ddraw

import "github.com/gogpu/ddraw/backend"

// CapRequest is the capability request of one surface kind. Caps is the
// primary dimension and Caps2 the extended one. Essential capabilities must be
// granted; desired ones are dropped first when the device refuses.
type CapRequest struct {
	Essential  backend.Caps
	Desired    backend.Caps
	Essential2 backend.Caps2
	Desired2   backend.Caps2
}

// Attempt is one capability combination tried by CreateSurface.
type Attempt struct {
	Caps  backend.Caps
	Caps2 backend.Caps2
}

// MaxAttempts is the number of combinations tried before creation fails.
const MaxAttempts = 4

var capTable = map[Kind]CapRequest{
	KindPrimary: {
		Essential: backend.CapsComplex | backend.CapsFlip | backend.CapsPrimarySurface |
			backend.Caps3DDevice | backend.CapsVideoMemory,
		Desired: backend.CapsLiveVideo | backend.CapsTexture,
	},
	KindChain: {
		Essential: backend.CapsComplex | backend.CapsFlip | backend.CapsVideoMemory,
		Desired:   backend.CapsLiveVideo | backend.CapsTexture | backend.Caps3DDevice,
	},
	KindPlain: {
		Essential: backend.CapsLiveVideo | backend.CapsOffscreenPlain,
		Desired:   backend.CapsVideoMemory | backend.CapsTexture,
	},
	KindTexture: {
		Essential:  backend.CapsTexture | backend.CapsComplex | backend.CapsMipMap,
		Desired:    backend.CapsLiveVideo | backend.Caps3DDevice,
		Essential2: backend.Caps2TextureManage,
	},
	KindZBuffer: {
		Essential: backend.CapsZBuffer,
	},
	KindAlpha: {
		Essential: backend.CapsAlpha,
		Desired:   backend.CapsVideoMemory,
	},
	KindOverlay: {
		Essential: backend.CapsOverlay,
		Desired: backend.CapsVideoMemory | backend.CapsLiveVideo |
			backend.Caps3DDevice | backend.CapsTexture,
	},
	KindBumpMap: {
		Essential: backend.CapsTexture,
		Desired:   backend.CapsLiveVideo | backend.Caps3DDevice,
	},
	KindLightMap: {
		Essential:  backend.CapsTexture,
		Essential2: backend.Caps2TextureManage,
	},
}

// Capabilities returns the capability request for kind.
func Capabilities(kind Kind) (CapRequest, bool) {
	r, ok := capTable[kind]
	return r, ok
}

// Attempts returns the combinations in the order they are tried: primary
// desired caps are dropped before extended desired caps, then both.
func (r CapRequest) Attempts() [MaxAttempts]Attempt {
	return [MaxAttempts]Attempt{
		{r.Essential | r.Desired, r.Essential2 | r.Desired2},
		{r.Essential, r.Essential2 | r.Desired2},
		{r.Essential | r.Desired, r.Essential2},
		{r.Essential, r.Essential2},
	}
}
