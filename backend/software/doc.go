// Package software provides an in-memory display device.
//
// The device implements backend.Backend without any hardware. Surfaces live
// in ordinary byte slices and every operation is synchronous. It reproduces
// the runtime behavior that callers of a real device must handle:
//
//   - a capability set: requesting a missing capability fails with the
//     matching hresult (NoOverlayHW, NoTextureHW, ...);
//   - a video-memory budget: exhausting it fails with OutOfVideoMemory;
//   - pitch alignment: rows may be padded beyond width*bpp;
//   - lost surfaces: a display mode change, or LoseSurfaces, reclaims the
//     memory of every video-memory surface until Restore is called;
//   - busy surfaces: a locked surface refuses a second lock, blits and flips.
//
// The package registers itself as the "software" backend on import:
//
//	import _ "github.com/gogpu/ddraw/backend/software"
package software
