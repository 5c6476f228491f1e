// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixfmt

import (
	"image/color"
	"math/bits"
)

// Pack converts c to a raw pixel value in layout f.
//
// RGB formats scale each channel to its mask width. Palette formats use the
// luma of c as the index. Alpha-only formats keep alpha and z-buffer formats
// keep luma, scaled to the mask. Bump formats take du, dv and luminance from
// the red, green and blue channels.
func (f Format) Pack(c color.Color) uint32 {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	switch {
	case f.Flags&FlagPaletteIndexed8 != 0:
		return uint32(color.GrayModel.Convert(c).(color.Gray).Y)
	case f.Flags&FlagRGB != 0:
		v := put(n.R, f.R) | put(n.G, f.G) | put(n.B, f.B)
		if f.HasAlpha() {
			v |= put(n.A, f.A)
		}
		return v
	case f.Flags&FlagBumpDuDv != 0:
		return put(n.R, f.Du) | put(n.G, f.Dv) | put(n.B, f.Lum)
	case f.Flags&FlagZBuffer != 0:
		return put(color.Gray16Model.Convert(c).(color.Gray16).Y, f.Z)
	case f.Flags&FlagAlpha != 0:
		return put(n.A, f.A)
	}
	return 0
}

// Unpack converts a raw pixel value in layout f to a color.
func (f Format) Unpack(v uint32) color.Color {
	switch {
	case f.Flags&FlagPaletteIndexed8 != 0:
		return color.Gray{Y: uint8(v)}
	case f.Flags&FlagRGB != 0:
		a := uint16(0xFFFF)
		if f.HasAlpha() {
			a = get(v, f.A)
		}
		return color.NRGBA64{R: get(v, f.R), G: get(v, f.G), B: get(v, f.B), A: a}
	case f.Flags&FlagBumpDuDv != 0:
		lum := uint16(0xFFFF)
		if f.Lum != 0 {
			lum = get(v, f.Lum)
		}
		return color.NRGBA64{R: get(v, f.Du), G: get(v, f.Dv), B: lum, A: 0xFFFF}
	case f.Flags&FlagZBuffer != 0:
		return color.Gray16{Y: get(v, f.Z)}
	case f.Flags&FlagAlpha != 0:
		return color.Alpha16{A: get(v, f.A)}
	}
	return color.Transparent
}

// Model returns a color.Model that quantizes colors to f.
func (f Format) Model() color.Model {
	return color.ModelFunc(func(c color.Color) color.Color {
		return f.Unpack(f.Pack(c))
	})
}

// put scales a 16-bit channel value into mask m.
func put(v uint16, m uint32) uint32 {
	if m == 0 {
		return 0
	}
	shift := bits.TrailingZeros32(m)
	maxv := uint64(m >> uint(shift))
	x := (uint64(v)*maxv + 0x7FFF) / 0xFFFF
	return uint32(x<<uint(shift)) & m
}

// get expands the channel under mask m to 16 bits.
func get(v uint32, m uint32) uint16 {
	if m == 0 {
		return 0
	}
	shift := bits.TrailingZeros32(m)
	maxv := uint64(m >> uint(shift))
	x := uint64((v & m) >> uint(shift))
	return uint16((x*0xFFFF + maxv/2) / maxv)
}
