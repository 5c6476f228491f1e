package ddraw

import (
	"errors"
	"fmt"

	"github.com/gogpu/ddraw/backend"
	"github.com/gogpu/ddraw/hresult"
)

// Sentinel errors for ddraw.
var (
	// ErrNotConnected is returned when an operation needs a backend connection
	// and the Manager has none.
	ErrNotConnected = errors.New("ddraw: not connected")

	// ErrAlreadyConnected is returned by Connect on a connected Manager.
	ErrAlreadyConnected = errors.New("ddraw: already connected")

	// ErrTypeNotSet is returned when creating a surface whose kind was never set.
	ErrTypeNotSet = errors.New("ddraw: surface type not set")

	// ErrIncompleteDescriptor is returned when a surface descriptor lacks a
	// size or back buffer count its kind requires.
	ErrIncompleteDescriptor = errors.New("ddraw: incomplete surface descriptor")

	// ErrUnknownKind is returned by SetSurfaceType for a kind outside the enum.
	ErrUnknownKind = errors.New("ddraw: unknown surface kind")

	// ErrAlreadyCreated is returned when configuring or creating a surface
	// that already holds a device resource.
	ErrAlreadyCreated = errors.New("ddraw: surface already created")

	// ErrNotCreated is returned by surface operations before creation.
	ErrNotCreated = errors.New("ddraw: surface not created")

	// ErrWrongKind is returned when an operation does not apply to the
	// surface kind, e.g. Show on a non-primary surface.
	ErrWrongKind = errors.New("ddraw: operation not valid for surface kind")

	// ErrUnsupportedDepth is returned when no pixel format exists for the
	// requested bit depth and surface kind.
	ErrUnsupportedDepth = errors.New("ddraw: unsupported bit depth")

	// ErrTextureStageConflict is returned when a bump map and a light map
	// would share one texture blend stage.
	ErrTextureStageConflict = errors.New("ddraw: texture stage in use by another surface kind")

	// ErrClosed is returned by operations on a closed Manager or Surface.
	ErrClosed = errors.New("ddraw: closed")

	// ErrNilSurface is returned when a nil *Surface is passed.
	ErrNilSurface = errors.New("ddraw: nil surface")
)

// ConnectionError is returned when the backend connection cannot be opened.
type ConnectionError struct {
	Backend string
	Err     error
}

func (e *ConnectionError) Error() string {
	name := e.Backend
	if name == "" {
		name = "default"
	}
	return fmt.Sprintf("ddraw: connect %s backend: %s", name, hresult.Label(e.Err))
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ModeSetError is returned when the device rejects a cooperative level or
// display mode.
type ModeSetError struct {
	Op         string
	Mode       backend.DisplayMode
	FullScreen bool
	Err        error
}

func (e *ModeSetError) Error() string {
	if e.FullScreen {
		return fmt.Sprintf("ddraw: %s %v full-screen: %s", e.Op, e.Mode, hresult.Label(e.Err))
	}
	return fmt.Sprintf("ddraw: %s windowed: %s", e.Op, hresult.Label(e.Err))
}

func (e *ModeSetError) Unwrap() error { return e.Err }

// PreconditionError is returned when an operation is called in a state that
// does not allow it. Nothing is changed and the backend is not called.
type PreconditionError struct {
	Op  string
	Err error
}

func (e *PreconditionError) Error() string {
	return "ddraw: " + e.Op + ": " + e.Err.Error()
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// NegotiationError is returned by CreateSurface when every capability
// combination was rejected. Err is the error of the last attempt.
type NegotiationError struct {
	Kind     Kind
	Attempts int
	Err      error
}

func (e *NegotiationError) Error() string {
	return fmt.Sprintf("ddraw: create %v surface: %d attempts failed, last: %s",
		e.Kind, e.Attempts, hresult.Label(e.Err))
}

func (e *NegotiationError) Unwrap() error { return e.Err }

// BackendError wraps a failure reported by the device.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return "ddraw: " + e.Op + ": " + hresult.Label(e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

func precondition(op string, err error) error {
	return &PreconditionError{Op: op, Err: err}
}
