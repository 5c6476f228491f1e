// Package ddraw is a DirectDraw-style surface layer.
//
// # Overview
//
// A [Manager] owns the connection to a display device. It negotiates a
// display mode and creates [Surface] values. The device itself is a
// [backend.Backend]: the real IDirectDraw7 interface on Windows, or an
// in-memory software device everywhere else.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/ddraw"
//	    _ "github.com/gogpu/ddraw/backend/software"
//	)
//
//	m, err := ddraw.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Close()
//
//	if _, err := m.NegotiateDisplayMode(640, 480, 16); err != nil {
//	    log.Fatal(err)
//	}
//	if err := m.Initialize(hwnd); err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Uninitialize()
//
//	back, err := m.NewSurface(ddraw.KindChain,
//	    ddraw.WithSize(640, 480, 16), ddraw.WithChainCount(2))
//
// # Capability negotiation
//
// Every surface kind has essential and desired capabilities, in a primary
// and an extended dimension (see [Capabilities]). CreateSurface asks for
// everything first. When the device refuses, it drops the desired primary
// capabilities, then the desired extended ones, then both. The first
// combination the device accepts wins; [Surface.Attempt] reports which one.
//
// # Lost surfaces
//
// A display mode change can reclaim surface memory. StartAccess, Show, the
// blits and the clears restore lost surfaces before use and raise the flag
// returned by [Surface.NeedsRepainting]. Poll it once per frame and redraw
// when it is set.
//
// # Errors
//
// Precondition failures return a [*PreconditionError] and never reach the
// device. Device failures are wrapped in [*BackendError], [*ModeSetError],
// [*ConnectionError] or [*NegotiationError]; the device code inside can be
// decoded with the hresult package. Device failures are also passed to the
// [Reporter] configured with [WithReporter].
//
// # Logging
//
// ddraw is silent by default. Call [SetLogger] to enable structured logging
// through log/slog.
package ddraw
