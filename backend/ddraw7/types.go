package ddraw7

import (
	"image"
	"unsafe"

	"github.com/gogpu/ddraw/backend"
	"github.com/gogpu/ddraw/pixfmt"
)

// Native DirectDraw structures. Field order and widths follow ddraw.h; Go
// applies the same alignment as the C compiler on the target architecture.

// pixelFormat is DDPIXELFORMAT. The four masks are unions whose meaning
// depends on Flags.
type pixelFormat struct {
	Size     uint32
	Flags    uint32
	FourCC   uint32
	BitCount uint32 // RGB, z-buffer, alpha or bump bit count
	Mask1    uint32 // R, stencil depth or du
	Mask2    uint32 // G, z mask or dv
	Mask3    uint32 // B, stencil mask or luminance
	Mask4    uint32 // RGB alpha
}

// caps2 is DDSCAPS2.
type caps2 struct {
	Caps  uint32
	Caps2 uint32
	Caps3 uint32
	Caps4 uint32
}

// colorKey is DDCOLORKEY.
type colorKey struct {
	Low  uint32
	High uint32
}

// surfaceDesc2 is DDSURFACEDESC2.
type surfaceDesc2 struct {
	Size            uint32
	Flags           uint32
	Height          uint32
	Width           uint32
	Pitch           int32
	BackBufferCount uint32
	RefreshRate     uint32
	AlphaBitDepth   uint32
	Reserved        uint32
	Surface         uintptr
	CKDestOverlay   colorKey
	CKDestBlt       colorKey
	CKSrcOverlay    colorKey
	CKSrcBlt        colorKey
	PixelFormat     pixelFormat
	Caps            caps2
	TextureStage    uint32
}

// bltFX is DDBLTFX. Members that share storage with a surface pointer are
// pointer sized.
type bltFX struct {
	Size                   uint32
	DDFX                   uint32
	ROP                    uint32
	DDROP                  uint32
	RotationAngle          uint32
	ZBufferOpCode          uint32
	ZBufferLow             uint32
	ZBufferHigh            uint32
	ZBufferBaseDest        uint32
	ZDestConstBitDepth     uint32
	ZDestConst             uintptr
	ZSrcConstBitDepth      uint32
	ZSrcConst              uintptr
	AlphaEdgeBlendBitDepth uint32
	AlphaEdgeBlend         uint32
	Reserved               uint32
	AlphaDestConstBitDepth uint32
	AlphaDestConst         uintptr
	AlphaSrcConstBitDepth  uint32
	AlphaSrcConst          uintptr
	Fill                   uintptr // fill color, depth or pixel
	CKDest                 colorKey
	CKSrc                  colorKey
}

// rect is RECT.
type rect struct {
	Left, Top, Right, Bottom int32
}

func toRect(r *image.Rectangle) *rect {
	if r == nil {
		return nil
	}
	return &rect{
		Left: int32(r.Min.X), Top: int32(r.Min.Y),
		Right: int32(r.Max.X), Bottom: int32(r.Max.Y),
	}
}

func toPixelFormat(f pixfmt.Format) pixelFormat {
	pf := pixelFormat{
		Flags:    uint32(f.Flags),
		BitCount: uint32(f.BitCount),
	}
	pf.Size = pixelFormatSize
	switch {
	case f.Flags&pixfmt.FlagZBuffer != 0:
		pf.Mask2 = f.Z
	case f.Flags&pixfmt.FlagBumpDuDv != 0:
		pf.Mask1, pf.Mask2, pf.Mask3 = f.Du, f.Dv, f.Lum
	case f.Flags&pixfmt.FlagAlpha != 0:
		pf.Mask4 = f.A
	default:
		pf.Mask1, pf.Mask2, pf.Mask3, pf.Mask4 = f.R, f.G, f.B, f.A
	}
	return pf
}

func fromPixelFormat(pf pixelFormat) pixfmt.Format {
	f := pixfmt.Format{
		Flags:    pixfmt.Flags(pf.Flags),
		BitCount: int(pf.BitCount),
	}
	switch {
	case f.Flags&pixfmt.FlagZBuffer != 0:
		f.Z = pf.Mask2
	case f.Flags&pixfmt.FlagBumpDuDv != 0:
		f.Du, f.Dv, f.Lum = pf.Mask1, pf.Mask2, pf.Mask3
	case f.Flags&pixfmt.FlagAlpha != 0:
		f.A = pf.Mask4
	default:
		f.R, f.G, f.B = pf.Mask1, pf.Mask2, pf.Mask3
		if f.Flags&pixfmt.FlagAlphaPixels != 0 {
			f.A = pf.Mask4
		}
	}
	return f
}

func toSurfaceDesc(d *backend.SurfaceDesc) surfaceDesc2 {
	sd := surfaceDesc2{
		Flags:           uint32(d.Flags),
		Height:          uint32(d.Height),
		Width:           uint32(d.Width),
		Pitch:           int32(d.Pitch),
		BackBufferCount: uint32(d.BackBufferCount),
		AlphaBitDepth:   uint32(d.AlphaBitDepth),
		Caps:            caps2{Caps: uint32(d.Caps), Caps2: uint32(d.Caps2)},
		TextureStage:    uint32(d.TextureStage),
	}
	sd.Size = surfaceDescSize
	if d.Flags&backend.DescPixelFormat != 0 {
		sd.PixelFormat = toPixelFormat(d.Format)
	}
	return sd
}

func fromSurfaceDesc(sd *surfaceDesc2) backend.SurfaceDesc {
	return backend.SurfaceDesc{
		Flags:           backend.DescFlags(sd.Flags),
		Width:           int(sd.Width),
		Height:          int(sd.Height),
		Pitch:           int(sd.Pitch),
		BackBufferCount: int(sd.BackBufferCount),
		AlphaBitDepth:   int(sd.AlphaBitDepth),
		TextureStage:    int(sd.TextureStage),
		Format:          fromPixelFormat(sd.PixelFormat),
		Caps:            backend.Caps(sd.Caps.Caps),
		Caps2:           backend.Caps2(sd.Caps.Caps2),
	}
}

func fromModeDesc(sd *surfaceDesc2) backend.DisplayMode {
	return backend.DisplayMode{
		Width:        int(sd.Width),
		Height:       int(sd.Height),
		BitsPerPixel: int(sd.PixelFormat.BitCount),
		RefreshRate:  int(sd.RefreshRate),
	}
}

// modeFilter builds the descriptor EnumDisplayModes filters with.
func modeFilter(m backend.DisplayMode) *surfaceDesc2 {
	sd := &surfaceDesc2{}
	sd.Size = surfaceDescSize
	if m.Width != 0 {
		sd.Flags |= uint32(backend.DescWidth)
		sd.Width = uint32(m.Width)
	}
	if m.Height != 0 {
		sd.Flags |= uint32(backend.DescHeight)
		sd.Height = uint32(m.Height)
	}
	if m.BitsPerPixel != 0 {
		sd.Flags |= uint32(backend.DescPixelFormat)
		sd.PixelFormat.Size = pixelFormatSize
		sd.PixelFormat.Flags = uint32(pixfmt.FlagRGB)
		sd.PixelFormat.BitCount = uint32(m.BitsPerPixel)
	}
	if m.RefreshRate != 0 {
		sd.Flags |= descRefreshRate
		sd.RefreshRate = uint32(m.RefreshRate)
	}
	if sd.Flags == 0 {
		return nil
	}
	return sd
}

const descRefreshRate = 0x00040000 // DDSD_REFRESHRATE

var (
	pixelFormatSize = uint32(unsafe.Sizeof(pixelFormat{}))
	surfaceDescSize = uint32(unsafe.Sizeof(surfaceDesc2{}))
	bltFXSize       = uint32(unsafe.Sizeof(bltFX{}))
)
