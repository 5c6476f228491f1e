// Package backend defines the device interface that ddraw drives, plus the
// vocabulary shared by every device implementation: surface descriptors,
// capability bits, lock, flip, blit and color-key flags.
//
// The flag values match the DirectDraw 7 constants so that a COM backend can
// pass them through unchanged.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// Import a backend package for its side effect:
//
//	import _ "github.com/gogpu/ddraw/backend/software"
//
// # Backend Selection
//
// Use Default to open the best available backend, or Get to request one by
// name:
//
//	// Open the default (best available) backend
//	b, err := backend.Default()
//
//	// Or request a specific backend
//	b, err := backend.Get("software")
//
// # Available Backends
//
//   - "ddraw7": IDirectDraw7 through COM (Windows only)
//   - "software": in-memory device emulation (always available)
package backend
