// Package ddraw7 implements the backend interfaces on the DirectDraw 7 COM
// interface (IDirectDraw7 and IDirectDrawSurface7) from ddraw.dll.
//
// The device is only available on Windows. On other platforms the package
// builds but registers nothing, so the registry falls back to the software
// backend.
//
// Importing the package registers it under the name "ddraw7":
//
//	import _ "github.com/gogpu/ddraw/backend/ddraw7"
//
// Failed COM calls return their HRESULT as an hresult.Code.
package ddraw7
