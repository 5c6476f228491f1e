package backend

import (
	"fmt"
	"image"
	"math/bits"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/ddraw/pixfmt"
)

// Caps is the primary surface capability set (DDSCAPS_*).
type Caps uint32

const (
	CapsAlpha          Caps = 0x00000002
	CapsBackBuffer     Caps = 0x00000004
	CapsComplex        Caps = 0x00000008
	CapsFlip           Caps = 0x00000010
	CapsFrontBuffer    Caps = 0x00000020
	CapsOffscreenPlain Caps = 0x00000040
	CapsOverlay        Caps = 0x00000080
	CapsPrimarySurface Caps = 0x00000200
	CapsSystemMemory   Caps = 0x00000800
	CapsTexture        Caps = 0x00001000
	Caps3DDevice       Caps = 0x00002000
	CapsVideoMemory    Caps = 0x00004000
	CapsZBuffer        Caps = 0x00020000
	CapsLiveVideo      Caps = 0x00080000
	CapsMipMap         Caps = 0x00400000
)

var capsNames = []struct {
	c    Caps
	name string
}{
	{CapsAlpha, "Alpha"},
	{CapsBackBuffer, "BackBuffer"},
	{CapsComplex, "Complex"},
	{CapsFlip, "Flip"},
	{CapsFrontBuffer, "FrontBuffer"},
	{CapsOffscreenPlain, "OffscreenPlain"},
	{CapsOverlay, "Overlay"},
	{CapsPrimarySurface, "PrimarySurface"},
	{CapsSystemMemory, "SystemMemory"},
	{CapsTexture, "Texture"},
	{Caps3DDevice, "3DDevice"},
	{CapsVideoMemory, "VideoMemory"},
	{CapsZBuffer, "ZBuffer"},
	{CapsLiveVideo, "LiveVideo"},
	{CapsMipMap, "MipMap"},
}

// String returns the set bits joined by "|", e.g. "Complex|Flip".
func (c Caps) String() string {
	if c == 0 {
		return "0"
	}
	var parts []string
	rest := c
	for _, n := range capsNames {
		if c&n.c != 0 {
			parts = append(parts, n.name)
			rest &^= n.c
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// Missing returns the bits of want that c lacks.
func (c Caps) Missing(want Caps) Caps {
	return want &^ c
}

// TextureUsage maps the capability set to the closest gogpu texture usage.
func (c Caps) TextureUsage() gputypes.TextureUsage {
	var u gputypes.TextureUsage
	if c&CapsTexture != 0 {
		u |= gputypes.TextureUsageTextureBinding
	}
	if c&(Caps3DDevice|CapsPrimarySurface|CapsBackBuffer|CapsZBuffer) != 0 {
		u |= gputypes.TextureUsageRenderAttachment
	}
	if c&(CapsOffscreenPlain|CapsVideoMemory|CapsSystemMemory) != 0 {
		u |= gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst
	}
	return u
}

// UsageString returns the set gogpu usage bits joined by "|", or "-" when
// none are set.
func UsageString(u gputypes.TextureUsage) string {
	if u == gputypes.TextureUsageNone {
		return "-"
	}
	var parts []string
	for _, b := range [...]struct {
		bit  gputypes.TextureUsage
		name string
	}{
		{gputypes.TextureUsageCopySrc, "CopySrc"},
		{gputypes.TextureUsageCopyDst, "CopyDst"},
		{gputypes.TextureUsageTextureBinding, "TextureBinding"},
		{gputypes.TextureUsageStorageBinding, "StorageBinding"},
		{gputypes.TextureUsageRenderAttachment, "RenderAttachment"},
	} {
		if u&b.bit != 0 {
			parts = append(parts, b.name)
		}
	}
	return strings.Join(parts, "|")
}

// Caps2 is the extended capability set (DDSCAPS2_*).
type Caps2 uint32

const (
	Caps2TextureManage Caps2 = 0x00000010
)

// String returns the set bits joined by "|".
func (c Caps2) String() string {
	switch c {
	case 0:
		return "0"
	case Caps2TextureManage:
		return "TextureManage"
	}
	if c&Caps2TextureManage != 0 {
		return fmt.Sprintf("TextureManage|%#x", uint32(c&^Caps2TextureManage))
	}
	return fmt.Sprintf("%#x", uint32(c))
}

// DescFlags marks the valid fields of a SurfaceDesc (DDSD_*).
type DescFlags uint32

const (
	DescCaps            DescFlags = 0x00000001
	DescHeight          DescFlags = 0x00000002
	DescWidth           DescFlags = 0x00000004
	DescPitch           DescFlags = 0x00000008
	DescBackBufferCount DescFlags = 0x00000020
	DescZBufferBitDepth DescFlags = 0x00000040
	DescAlphaBitDepth   DescFlags = 0x00000080
	DescLPSurface       DescFlags = 0x00000800
	DescPixelFormat     DescFlags = 0x00001000
	DescTextureStage    DescFlags = 0x00100000
)

// SurfaceDesc describes a surface to create, or a realized one.
type SurfaceDesc struct {
	Flags           DescFlags
	Width           int
	Height          int
	Pitch           int
	BackBufferCount int
	AlphaBitDepth   int
	TextureStage    int
	Format          pixfmt.Format
	Caps            Caps
	Caps2           Caps2
}

// Bounds returns the surface rectangle.
func (d *SurfaceDesc) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.Width, d.Height)
}

// DisplayMode is a display resolution and depth.
type DisplayMode struct {
	Width        int
	Height       int
	BitsPerPixel int
	RefreshRate  int
}

// Matches reports whether m satisfies filter. Zero filter fields match any value.
func (m DisplayMode) Matches(filter DisplayMode) bool {
	return (filter.Width == 0 || filter.Width == m.Width) &&
		(filter.Height == 0 || filter.Height == m.Height) &&
		(filter.BitsPerPixel == 0 || filter.BitsPerPixel == m.BitsPerPixel) &&
		(filter.RefreshRate == 0 || filter.RefreshRate == m.RefreshRate)
}

// String returns e.g. "640x480x16" or "640x480x16@60".
func (m DisplayMode) String() string {
	if m.RefreshRate != 0 {
		return fmt.Sprintf("%dx%dx%d@%d", m.Width, m.Height, m.BitsPerPixel, m.RefreshRate)
	}
	return fmt.Sprintf("%dx%dx%d", m.Width, m.Height, m.BitsPerPixel)
}

// CoopLevel is a cooperative level (DDSCL_*).
type CoopLevel uint32

const (
	CoopFullScreen  CoopLevel = 0x00000001
	CoopAllowReboot CoopLevel = 0x00000002
	CoopNormal      CoopLevel = 0x00000008
	CoopExclusive   CoopLevel = 0x00000010
)

// Exclusive reports whether l requests exclusive full-screen access.
func (l CoopLevel) Exclusive() bool {
	return l&CoopExclusive != 0
}

// LockFlags control Lock (DDLOCK_*).
type LockFlags uint32

const (
	LockWait      LockFlags = 0x00000001
	LockNoSysLock LockFlags = 0x00000800
)

// FlipFlags control Flip (DDFLIP_*).
type FlipFlags uint32

const (
	FlipWait FlipFlags = 0x00000001
)

// BltFlags control Blt (DDBLT_*).
type BltFlags uint32

const (
	BltColorFill BltFlags = 0x00000400
	BltKeySrc    BltFlags = 0x00008000
	BltWait      BltFlags = 0x01000000
	BltDepthFill BltFlags = 0x02000000
)

// BltFX carries the fill value of a color or depth fill.
type BltFX struct {
	// Fill is the fill color, depth or pixel; the three share storage.
	Fill uint32

	// PixelFill marks Fill as an already packed pixel rather than a color.
	PixelFill bool
}

// ColorKeyFlags select which color key SetColorKey sets (DDCKEY_*).
type ColorKeyFlags uint32

const (
	KeyColorSpace  ColorKeyFlags = 0x00000001
	KeyDestBlt     ColorKeyFlags = 0x00000002
	KeyDestOverlay ColorKeyFlags = 0x00000004
	KeySrcBlt      ColorKeyFlags = 0x00000008
	KeySrcOverlay  ColorKeyFlags = 0x00000010
)

// Target returns the key slot without the KeyColorSpace modifier.
func (f ColorKeyFlags) Target() ColorKeyFlags {
	return f &^ KeyColorSpace
}

// Single reports whether f names exactly one key slot.
func (f ColorKeyFlags) Single() bool {
	return bits.OnesCount32(uint32(f.Target())) == 1
}

// ColorKey is an inclusive range of raw pixel values treated as transparent.
type ColorKey struct {
	Low  uint32
	High uint32
}

// Contains reports whether v lies in the key range.
func (k ColorKey) Contains(v uint32) bool {
	return v >= k.Low && v <= k.High
}

// LockedRect is the memory returned by Lock.
//
// Pix starts at the first byte of Rect.Min. Rows are Pitch bytes apart.
type LockedRect struct {
	Pix   []byte
	Pitch int
	Rect  image.Rectangle
}
