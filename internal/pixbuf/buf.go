// Package pixbuf provides stride-aware raw pixel buffers for the software
// device.
//
// A Buf stores pixels as little-endian values of 1 to 4 bytes with an
// optional row stride for pitch alignment. Buffers know nothing about color
// channels: fills and copies move raw pixel values.
package pixbuf

import (
	"errors"
	"image"

	"github.com/gogpu/ddraw/pixfmt"
)

// Common errors for buffer operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("pixbuf: invalid dimensions")

	// ErrInvalidDepth is returned when bytes per pixel is not 1..4.
	ErrInvalidDepth = errors.New("pixbuf: invalid bytes per pixel")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("pixbuf: stride too small for width")

	// ErrDepthMismatch is returned when copying between buffers of different depths.
	ErrDepthMismatch = errors.New("pixbuf: depth mismatch")
)

// Buf is a raw pixel buffer.
//
// Thread safety: Buf is not safe for concurrent writes.
type Buf struct {
	data   []byte
	width  int
	height int
	stride int
	bpp    int
}

// Key is an inclusive range of raw values skipped by Copy.
type Key struct {
	Low, High uint32
}

// New creates a zeroed buffer. A stride of 0 selects width*bpp.
func New(width, height, bpp, stride int) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if bpp < 1 || bpp > 4 {
		return nil, ErrInvalidDepth
	}
	if stride == 0 {
		stride = width * bpp
	}
	if stride < width*bpp {
		return nil, ErrInvalidStride
	}
	return &Buf{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		bpp:    bpp,
	}, nil
}

// AlignedStride returns width*bpp rounded up to a multiple of align.
// An align below 2 disables rounding.
func AlignedStride(width, bpp, align int) int {
	row := width * bpp
	if align < 2 {
		return row
	}
	return (row + align - 1) / align * align
}

// Width returns the buffer width in pixels.
func (b *Buf) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buf) Height() int { return b.height }

// Stride returns the number of bytes per row (including padding).
func (b *Buf) Stride() int { return b.stride }

// BytesPerPixel returns the pixel size.
func (b *Buf) BytesPerPixel() int { return b.bpp }

// Size returns the allocation size in bytes.
func (b *Buf) Size() int { return len(b.data) }

// Bounds returns the buffer rectangle.
func (b *Buf) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// Data returns the raw pixel data slice.
func (b *Buf) Data() []byte { return b.data }

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *Buf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*b.bpp
}

// Pixel returns the raw value at (x, y), or 0 outside the buffer.
func (b *Buf) Pixel(x, y int) uint32 {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return 0
	}
	return pixfmt.Load(b.data[off:], b.bpp)
}

// SetPixel stores a raw value at (x, y). Points outside the buffer are ignored.
func (b *Buf) SetPixel(x, y int, v uint32) {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return
	}
	pixfmt.Store(b.data[off:], b.bpp, v)
}

// Window returns the memory starting at the first pixel of r, which is
// clipped to the buffer. The slice ends after the last pixel of r so that
// rows stay Stride bytes apart. It also returns the clipped rectangle.
func (b *Buf) Window(r image.Rectangle) ([]byte, image.Rectangle) {
	r = r.Intersect(b.Bounds())
	if r.Empty() {
		return nil, r
	}
	start := r.Min.Y*b.stride + r.Min.X*b.bpp
	end := (r.Max.Y-1)*b.stride + r.Max.X*b.bpp
	return b.data[start:end:end], r
}

// Clear zeroes every byte, padding included.
func (b *Buf) Clear() {
	clear(b.data)
}

// Fill sets every pixel of r (clipped to the buffer) to v.
func (b *Buf) Fill(r image.Rectangle, v uint32) {
	r = r.Intersect(b.Bounds())
	if r.Empty() {
		return
	}
	// Build one row, then replicate it.
	row := make([]byte, r.Dx()*b.bpp)
	for i := 0; i < len(row); i += b.bpp {
		pixfmt.Store(row[i:], b.bpp, v)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := y*b.stride + r.Min.X*b.bpp
		copy(b.data[off:off+len(row)], row)
	}
}

// Swap exchanges the memory of b and o. Both must have the same geometry.
func (b *Buf) Swap(o *Buf) {
	b.data, o.data = o.data, b.data
}

// Clone creates a deep copy of the buffer.
func (b *Buf) Clone() *Buf {
	c := *b
	c.data = make([]byte, len(b.data))
	copy(c.data, b.data)
	return &c
}

// Copy copies sr of src into dr of dst.
//
// When the rectangles differ in size the copy is a nearest-neighbor stretch.
// Destination pixels outside dst and source pixels outside src are skipped.
// If key is not nil, source values inside the key range are not copied.
// src and dst may be the same buffer.
func Copy(dst *Buf, dr image.Rectangle, src *Buf, sr image.Rectangle, key *Key) error {
	if src == dst {
		src = src.Clone()
	}
	return CopyBand(dst, dr, src, sr, key, dr)
}

// CopyBand performs the part of Copy that lands in band. Bands of one copy
// may run concurrently as long as src and dst are distinct buffers.
func CopyBand(dst *Buf, dr image.Rectangle, src *Buf, sr image.Rectangle, key *Key, band image.Rectangle) error {
	if dst.bpp != src.bpp {
		return ErrDepthMismatch
	}
	if dr.Empty() || sr.Empty() {
		return nil
	}

	clip := dr.Intersect(dst.Bounds()).Intersect(band)
	sw, sh := sr.Dx(), sr.Dy()
	dw, dh := dr.Dx(), dr.Dy()
	same := sw == dw && sh == dh && key == nil

	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		sy := sr.Min.Y + (y-dr.Min.Y)*sh/dh
		if sy < 0 || sy >= src.height {
			continue
		}
		if same {
			copyRow(dst, clip.Min.X, clip.Max.X, y, src, sr.Min.X-dr.Min.X, sy)
			continue
		}
		for x := clip.Min.X; x < clip.Max.X; x++ {
			sx := sr.Min.X + (x-dr.Min.X)*sw/dw
			if sx < 0 || sx >= src.width {
				continue
			}
			v := src.Pixel(sx, sy)
			if key != nil && v >= key.Low && v <= key.High {
				continue
			}
			dst.SetPixel(x, y, v)
		}
	}
	return nil
}

// copyRow copies the unscaled span [x0, x1) of row y, reading source column
// x+dx of row sy. Source columns outside src are skipped.
func copyRow(dst *Buf, x0, x1, y int, src *Buf, dx, sy int) {
	if x0+dx < 0 {
		x0 = -dx
	}
	if x1+dx > src.width {
		x1 = src.width - dx
	}
	if x0 >= x1 {
		return
	}
	n := (x1 - x0) * dst.bpp
	d := y*dst.stride + x0*dst.bpp
	s := sy*src.stride + (x0+dx)*src.bpp
	copy(dst.data[d:d+n], src.data[s:s+n])
}
