// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pixfmt derives the bit-mask pixel formats used by DirectDraw-style
// surfaces.
//
// The Derive functions are pure: the same depth and options always give the
// same Format. They never fail. A depth they do not support yields the zero
// Format, which reports Valid() == false, and callers that must not proceed
// with such a format check Valid themselves.
//
// Supported depths:
//
//	DeriveColor    8 (palette), 15, 16, 24, 32
//	DeriveBumpMap  16, 24, 32
//	DeriveAlpha    1..32
//	DeriveZBuffer  8, 15, 16, 24, 32
package pixfmt

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/gogpu/gputypes"
)

// Flags describes which fields of a Format are meaningful.
// Values match the DDPF_* constants.
type Flags uint32

const (
	FlagAlphaPixels     Flags = 0x00000001
	FlagAlpha           Flags = 0x00000002
	FlagFourCC          Flags = 0x00000004
	FlagPaletteIndexed8 Flags = 0x00000020
	FlagRGB             Flags = 0x00000040
	FlagZBuffer         Flags = 0x00000400
	FlagBumpLuminance   Flags = 0x00040000
	FlagBumpDuDv        Flags = 0x00080000
)

// Format is a pixel layout.
//
// BitCount is the container depth for color formats (16 for the 15-bit
// layout) and the channel depth for alpha, z-buffer and bump formats.
type Format struct {
	Flags    Flags
	BitCount int

	// Color masks. A is only set together with FlagAlphaPixels or FlagAlpha.
	R, G, B, A uint32

	// Bump-map masks.
	Du, Dv, Lum uint32

	// Depth mask.
	Z uint32
}

// DeriveColor returns the RGB layout for a color surface.
//
// 8 is palette-indexed. 15 is 5:5:5 in a 16-bit container. 16 is 5:6:5, or
// 1:5:5:5 with alpha. 24 is 8:8:8. 32 is 8:8:8, or 8:8:8:8 with alpha.
// Alpha is ignored for 8, 15 and 24.
func DeriveColor(depth int, alpha bool) Format {
	switch depth {
	case 8:
		return Format{Flags: FlagPaletteIndexed8, BitCount: 8}
	case 15:
		return Format{
			Flags: FlagRGB, BitCount: 16,
			R: 0x1F << 10, G: 0x1F << 5, B: 0x1F,
		}
	case 16:
		if alpha {
			return Format{
				Flags: FlagRGB | FlagAlphaPixels, BitCount: 16,
				R: 0x1F << 10, G: 0x1F << 5, B: 0x1F, A: 0x1 << 15,
			}
		}
		return Format{
			Flags: FlagRGB, BitCount: 16,
			R: 0x1F << 11, G: 0x3F << 5, B: 0x1F,
		}
	case 24:
		return Format{
			Flags: FlagRGB, BitCount: 24,
			R: 0xFF << 16, G: 0xFF << 8, B: 0xFF,
		}
	case 32:
		f := Format{
			Flags: FlagRGB, BitCount: 32,
			R: 0xFF << 16, G: 0xFF << 8, B: 0xFF,
		}
		if alpha {
			f.Flags |= FlagAlphaPixels
			f.A = 0xFF << 24
		}
		return f
	}
	return Format{}
}

// DeriveBumpMap returns the du/dv layout for a bump map, with an optional
// luminance channel.
//
// At 16 bits luminance takes 6 bits above 5:5 du/dv; without it du/dv are
// 8:8. At 24 and 32 bits du/dv are 8:8 with an optional 8-bit luminance.
// 8 and 15 bits are not supported.
func DeriveBumpMap(depth int, luminance bool) Format {
	switch depth {
	case 16:
		if luminance {
			return Format{
				Flags: FlagBumpDuDv | FlagBumpLuminance, BitCount: 16,
				Du: 0x1F, Dv: 0x1F << 5, Lum: 0x3F << 10,
			}
		}
		return Format{
			Flags: FlagBumpDuDv, BitCount: 16,
			Du: 0xFF, Dv: 0xFF << 8,
		}
	case 24, 32:
		f := Format{
			Flags: FlagBumpDuDv, BitCount: depth,
			Du: 0xFF, Dv: 0xFF << 8,
		}
		if luminance {
			f.Flags |= FlagBumpLuminance
			f.Lum = 0xFF << 16
		}
		return f
	}
	return Format{}
}

// DeriveAlpha returns an alpha-only layout of the given depth.
func DeriveAlpha(depth int) Format {
	if depth < 1 || depth > 32 {
		return Format{}
	}
	return Format{Flags: FlagAlpha, BitCount: depth, A: mask(depth)}
}

// DeriveZBuffer returns a depth-only layout whose mask is all ones in depth
// bits. The 15-bit case keeps a 15-bit tag and mask; it is not widened to 16.
func DeriveZBuffer(depth int) Format {
	switch depth {
	case 8, 15, 16, 24, 32:
		return Format{Flags: FlagZBuffer, BitCount: depth, Z: mask(depth)}
	}
	return Format{}
}

func mask(n int) uint32 {
	if n >= 32 {
		return 0xFFFFFFFF
	}
	return 1<<uint(n) - 1
}

// Valid reports whether f describes a usable layout.
func (f Format) Valid() bool {
	switch {
	case f.Flags&FlagPaletteIndexed8 != 0:
		return f.BitCount == 8
	case f.Flags&FlagRGB != 0:
		return f.BitCount > 0 && f.R|f.G|f.B != 0
	case f.Flags&FlagBumpDuDv != 0:
		return f.BitCount > 0 && f.Du|f.Dv != 0
	case f.Flags&FlagZBuffer != 0:
		return f.BitCount > 0 && f.Z != 0
	case f.Flags&FlagAlpha != 0:
		return f.BitCount > 0 && f.BitCount <= 32
	}
	return false
}

// IsZero reports whether f is the zero Format.
func (f Format) IsZero() bool {
	return f == Format{}
}

// HasAlpha reports whether f carries an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Flags&(FlagAlphaPixels|FlagAlpha) != 0 && f.A != 0
}

// BytesPerPixel returns the container size of one pixel.
func (f Format) BytesPerPixel() int {
	return (f.BitCount + 7) / 8
}

// RowBytes returns the unpadded size of a row of width pixels.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// Masks returns the non-zero channel masks of f.
func (f Format) Masks() []uint32 {
	var out []uint32
	for _, m := range [...]uint32{f.R, f.G, f.B, f.A, f.Du, f.Dv, f.Lum, f.Z} {
		if m != 0 {
			out = append(out, m)
		}
	}
	return out
}

// GPUFormat returns the matching gogpu texture format, or
// TextureFormatUndefined when no modern format has the same layout.
func (f Format) GPUFormat() gputypes.TextureFormat {
	switch {
	case f.Flags&FlagRGB != 0 && f.BitCount == 32:
		if f.R == 0xFF<<16 && f.G == 0xFF<<8 && f.B == 0xFF {
			return gputypes.TextureFormatBGRA8Unorm
		}
		if f.R == 0xFF && f.G == 0xFF<<8 && f.B == 0xFF<<16 {
			return gputypes.TextureFormatRGBA8Unorm
		}
	case f.Flags&FlagAlpha != 0 && f.Flags&FlagRGB == 0 && f.BitCount == 8:
		return gputypes.TextureFormatR8Unorm
	case f.Flags&FlagZBuffer != 0 && f.BitCount >= 24:
		return gputypes.TextureFormatDepth24PlusStencil8
	}
	return gputypes.TextureFormatUndefined
}

// String returns a compact description such as "RGB16(5:6:5)" or "Z15".
func (f Format) String() string {
	switch {
	case f.IsZero():
		return "Unknown"
	case f.Flags&FlagPaletteIndexed8 != 0:
		return "P8"
	case f.Flags&FlagRGB != 0:
		name := "RGB"
		parts := []string{widths(f.R), widths(f.G), widths(f.B)}
		if f.HasAlpha() {
			name = "ARGB"
			parts = append([]string{widths(f.A)}, parts...)
		}
		return fmt.Sprintf("%s%d(%s)", name, f.BitCount, strings.Join(parts, ":"))
	case f.Flags&FlagBumpDuDv != 0:
		if f.Flags&FlagBumpLuminance != 0 {
			return fmt.Sprintf("DuDvL%d(%s:%s:%s)", f.BitCount, widths(f.Du), widths(f.Dv), widths(f.Lum))
		}
		return fmt.Sprintf("DuDv%d(%s:%s)", f.BitCount, widths(f.Du), widths(f.Dv))
	case f.Flags&FlagZBuffer != 0:
		return fmt.Sprintf("Z%d", f.BitCount)
	case f.Flags&FlagAlpha != 0:
		return fmt.Sprintf("A%d", f.BitCount)
	}
	return fmt.Sprintf("Format(%#x, %d)", uint32(f.Flags), f.BitCount)
}

func widths(m uint32) string {
	return fmt.Sprint(bits.OnesCount32(m))
}
