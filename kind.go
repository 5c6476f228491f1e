package ddraw

import "fmt"

// Kind is the variant of a surface.
type Kind int

const (
	// KindUnset is the zero Kind of an unconfigured surface.
	KindUnset Kind = iota
	// KindPrimary is the visible surface with one attached back buffer.
	KindPrimary
	// KindChain is a flipping chain of ChainCount back buffers.
	KindChain
	// KindPlain is an off-screen surface.
	KindPlain
	// KindTexture is a managed, mipmapped texture bound at stage 0.
	KindTexture
	// KindZBuffer is a depth buffer.
	KindZBuffer
	// KindAlpha is an alpha-only surface.
	KindAlpha
	// KindOverlay is a hardware overlay.
	KindOverlay
	// KindBumpMap is a du/dv bump map texture.
	KindBumpMap
	// KindLightMap is an RGB light map texture.
	KindLightMap
)

var kindNames = [...]string{
	KindUnset:    "Unset",
	KindPrimary:  "Primary",
	KindChain:    "Chain",
	KindPlain:    "Plain",
	KindTexture:  "Texture",
	KindZBuffer:  "ZBuffer",
	KindAlpha:    "Alpha",
	KindOverlay:  "Overlay",
	KindBumpMap:  "BumpMap",
	KindLightMap: "LightMap",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is a configured surface kind.
func (k Kind) Valid() bool {
	return k > KindUnset && k <= KindLightMap
}

// ParseKind returns the Kind with the given name, ignoring case.
func ParseKind(s string) (Kind, error) {
	for k := KindPrimary; k <= KindLightMap; k++ {
		if equalFold(kindNames[k], s) {
			return k, nil
		}
	}
	return KindUnset, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
