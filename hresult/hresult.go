// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package hresult decodes the result codes reported by DirectDraw-style
// backends.
//
// A Code is a 32-bit HRESULT. It implements error, so backends return it
// directly and callers compare with errors.Is:
//
//	if errors.Is(err, hresult.SurfaceLost) {
//	    // restore and redraw
//	}
//
// Every code maps to a name, a short description and a Class. Codes missing
// from the table still decode: Label falls back to "unknown result 0x...".
package hresult

import (
	"errors"
	"fmt"
)

// Code is a backend result code.
type Code uint32

// facility is the DirectDraw HRESULT facility (MAKE_DDHRESULT).
const facility = 0x88760000

// Class groups codes by how a caller should react to them.
type Class uint8

const (
	// ClassGeneric covers codes with no better classification.
	ClassGeneric Class = iota

	// ClassConnection covers failures to reach or create the device.
	ClassConnection

	// ClassMode covers unsupported display modes and pixel formats.
	ClassMode

	// ClassLost means surface memory was reclaimed and must be restored.
	ClassLost

	// ClassBusy means the resource is in use; retry on a later frame.
	ClassBusy

	// ClassUnsupported means the hardware lacks a requested capability.
	ClassUnsupported

	// ClassParam means the caller passed invalid arguments.
	ClassParam

	// ClassMemory covers system and video memory exhaustion.
	ClassMemory
)

var classNames = [...]string{
	ClassGeneric:     "generic",
	ClassConnection:  "connection",
	ClassMode:        "mode",
	ClassLost:        "lost",
	ClassBusy:        "busy",
	ClassUnsupported: "unsupported",
	ClassParam:       "param",
	ClassMemory:      "memory",
}

// String returns the class name.
func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("Class(%d)", uint8(c))
}

// Info describes a known code.
type Info struct {
	Name        string
	Description string
	Class       Class
}

// Error implements error. The message is the label.
func (c Code) Error() string {
	return "hresult: " + c.Label()
}

// Failed reports whether the severity bit is set.
func (c Code) Failed() bool {
	return c&0x80000000 != 0
}

// Lookup returns the table entry for c.
func (c Code) Lookup() (Info, bool) {
	info, ok := table[c]
	return info, ok
}

// Name returns the symbolic name of c, or the unknown fallback.
func (c Code) Name() string {
	if info, ok := table[c]; ok {
		return info.Name
	}
	return c.unknown()
}

// Label returns "NAME: description" for known codes and the unknown
// fallback otherwise. It never returns an empty string.
func (c Code) Label() string {
	info, ok := table[c]
	if !ok {
		return c.unknown()
	}
	if info.Description == "" {
		return info.Name
	}
	return info.Name + ": " + info.Description
}

// Class returns the classification of c. Unknown codes are ClassGeneric.
func (c Code) Class() Class {
	return table[c].Class
}

func (c Code) unknown() string {
	return fmt.Sprintf("unknown result 0x%08X", uint32(c))
}

// Known reports whether c is in the table.
func Known(c Code) bool {
	_, ok := table[c]
	return ok
}

// From extracts a Code from err. It reports false if err does not wrap one.
func From(err error) (Code, bool) {
	var c Code
	if errors.As(err, &c) {
		return c, true
	}
	return 0, false
}

// Label decodes err for a diagnostic. Errors that do not carry a Code are
// described by their own message.
func Label(err error) string {
	if err == nil {
		return OK.Label()
	}
	if c, ok := From(err); ok {
		return c.Label()
	}
	return err.Error()
}

// IsClass reports whether err wraps a Code of the given class.
func IsClass(err error, class Class) bool {
	c, ok := From(err)
	return ok && c.Class() == class
}
