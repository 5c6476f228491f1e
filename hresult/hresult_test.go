// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package hresult

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCodeValues(t *testing.T) {
	tests := []struct {
		code Code
		want uint32
	}{
		{OK, 0},
		{SurfaceLost, 0x887601C2},
		{SurfaceBusy, 0x887601AE},
		{WasStillDrawing, 0x8876021C},
		{InvalidCaps, 0x88760064},
		{UnsupportedMode, 0x8876024E},
		{InvalidParams, 0x80070057},
	}
	for _, tt := range tests {
		t.Run(tt.code.Name(), func(t *testing.T) {
			if uint32(tt.code) != tt.want {
				t.Errorf("%s = %#x, want %#x", tt.code.Name(), uint32(tt.code), tt.want)
			}
		})
	}
}

func TestLabelKnown(t *testing.T) {
	got := SurfaceLost.Label()
	if !strings.HasPrefix(got, "DDERR_SURFACELOST: ") {
		t.Errorf("Label() = %q, want DDERR_SURFACELOST prefix", got)
	}
	if SurfaceLost.Name() != "DDERR_SURFACELOST" {
		t.Errorf("Name() = %q", SurfaceLost.Name())
	}
}

func TestLabelUnknownFallback(t *testing.T) {
	c := Code(0x88760FFF)
	if Known(c) {
		t.Fatalf("%#x should not be in the table", uint32(c))
	}
	if got, want := c.Label(), "unknown result 0x88760FFF"; got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
	if got := c.Name(); got == "" {
		t.Error("Name() of unknown code is empty")
	}
	if c.Class() != ClassGeneric {
		t.Errorf("Class() = %v, want generic", c.Class())
	}
}

func TestTableComplete(t *testing.T) {
	if len(table) < 100 {
		t.Errorf("table has %d entries, want the full DirectDraw set", len(table))
	}
	seen := make(map[string]Code)
	for code, info := range table {
		if info.Name == "" {
			t.Errorf("%#x has no name", uint32(code))
		}
		if prev, ok := seen[info.Name]; ok {
			t.Errorf("name %s used by %#x and %#x", info.Name, uint32(prev), uint32(code))
		}
		seen[info.Name] = code
		if code != OK && !code.Failed() {
			t.Errorf("%s does not have the failure bit set", info.Name)
		}
	}
}

func TestClass(t *testing.T) {
	tests := []struct {
		code Code
		want Class
	}{
		{SurfaceLost, ClassLost},
		{SurfaceBusy, ClassBusy},
		{WasStillDrawing, ClassBusy},
		{OutOfVideoMemory, ClassMemory},
		{NoTextureHW, ClassUnsupported},
		{InvalidParams, ClassParam},
		{UnsupportedMode, ClassMode},
		{DirectDrawAlreadyCreated, ClassConnection},
	}
	for _, tt := range tests {
		t.Run(tt.code.Name(), func(t *testing.T) {
			if got := tt.code.Class(); got != tt.want {
				t.Errorf("Class() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorsIntegration(t *testing.T) {
	err := fmt.Errorf("lock: %w", SurfaceLost)

	if !errors.Is(err, SurfaceLost) {
		t.Error("errors.Is should find the wrapped code")
	}
	if errors.Is(err, SurfaceBusy) {
		t.Error("errors.Is matched the wrong code")
	}
	c, ok := From(err)
	if !ok || c != SurfaceLost {
		t.Errorf("From() = %v, %v", c, ok)
	}
	if !IsClass(err, ClassLost) {
		t.Error("IsClass(ClassLost) = false")
	}
	if got := Label(err); got != SurfaceLost.Label() {
		t.Errorf("Label(err) = %q", got)
	}
	if got := Label(errors.New("plain")); got != "plain" {
		t.Errorf("Label(plain) = %q", got)
	}
	if _, ok := From(errors.New("plain")); ok {
		t.Error("From(plain) reported a code")
	}
}

func TestClassString(t *testing.T) {
	if ClassLost.String() != "lost" {
		t.Errorf("ClassLost.String() = %q", ClassLost.String())
	}
	if got := Class(200).String(); got != "Class(200)" {
		t.Errorf("Class(200).String() = %q", got)
	}
}
