// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixfmt

import (
	"image"
	"image/color"
)

// Image is an image.Image over raw surface memory in layout Format.
// Pixels are little-endian, BytesPerPixel wide, Stride bytes apart per row.
//
// It implements draw.Image, so locked surfaces can be drawn into with the
// image/draw and golang.org/x/image/draw packages.
type Image struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
	Format Format

	// Palette resolves indices of palette formats. If nil, indices are
	// shown as gray levels.
	Palette color.Palette
}

// NewImage wraps pix as a width x height image.
func NewImage(pix []byte, stride, width, height int, f Format) *Image {
	return &Image{
		Pix:    pix,
		Stride: stride,
		Rect:   image.Rect(0, 0, width, height),
		Format: f,
	}
}

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle { return m.Rect }

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model {
	if m.Palette != nil && m.Format.Flags&FlagPaletteIndexed8 != 0 {
		return m.Palette
	}
	return m.Format.Model()
}

// At implements image.Image.
func (m *Image) At(x, y int) color.Color {
	if !image.Pt(x, y).In(m.Rect) {
		return color.Transparent
	}
	v := m.PixelAt(x, y)
	if m.Palette != nil && m.Format.Flags&FlagPaletteIndexed8 != 0 {
		if int(v) < len(m.Palette) {
			return m.Palette[v]
		}
		return color.Transparent
	}
	return m.Format.Unpack(v)
}

// Set implements draw.Image.
func (m *Image) Set(x, y int, c color.Color) {
	if m.Palette != nil && m.Format.Flags&FlagPaletteIndexed8 != 0 {
		m.SetPixel(x, y, uint32(m.Palette.Index(c)))
		return
	}
	m.SetPixel(x, y, m.Format.Pack(c))
}

// PixOffset returns the index of the first byte of pixel (x, y).
func (m *Image) PixOffset(x, y int) int {
	return (y-m.Rect.Min.Y)*m.Stride + (x-m.Rect.Min.X)*m.Format.BytesPerPixel()
}

// PixelAt returns the raw value at (x, y), or 0 outside the bounds.
func (m *Image) PixelAt(x, y int) uint32 {
	if !image.Pt(x, y).In(m.Rect) {
		return 0
	}
	return Load(m.Pix[m.PixOffset(x, y):], m.Format.BytesPerPixel())
}

// SetPixel stores a raw value at (x, y). Points outside the bounds are ignored.
func (m *Image) SetPixel(x, y int, v uint32) {
	if !image.Pt(x, y).In(m.Rect) {
		return
	}
	Store(m.Pix[m.PixOffset(x, y):], m.Format.BytesPerPixel(), v)
}

// Load reads an n-byte little-endian pixel from p.
func Load(p []byte, n int) uint32 {
	switch n {
	case 1:
		return uint32(p[0])
	case 2:
		return uint32(p[0]) | uint32(p[1])<<8
	case 3:
		return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16
	case 4:
		return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16 | uint32(p[3])<<24
	}
	return 0
}

// Store writes v as an n-byte little-endian pixel into p.
func Store(p []byte, n int, v uint32) {
	switch n {
	case 4:
		p[3] = byte(v >> 24)
		fallthrough
	case 3:
		p[2] = byte(v >> 16)
		fallthrough
	case 2:
		p[1] = byte(v >> 8)
		fallthrough
	case 1:
		p[0] = byte(v)
	}
}
