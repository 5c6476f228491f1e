package main

import (
	"image"
	"image/color"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
)

// barColors are the vertical bars of the test pattern.
var barColors = []color.RGBA{
	colornames.White,
	colornames.Yellow,
	colornames.Cyan,
	colornames.Lime,
	colornames.Magenta,
	colornames.Red,
	colornames.Blue,
	colornames.Black,
}

// drawPattern paints color bars across dst, shifted right by offset bars,
// and a scaled checkerboard into the lower right quarter.
func drawPattern(dst draw.Image, offset int) {
	b := dst.Bounds()
	if b.Empty() {
		return
	}
	n := len(barColors)
	for i := range n {
		x0 := b.Min.X + b.Dx()*i/n
		x1 := b.Min.X + b.Dx()*(i+1)/n
		c := barColors[(i+offset)%n]
		draw.Draw(dst, image.Rect(x0, b.Min.Y, x1, b.Max.Y), image.NewUniform(c), image.Point{}, draw.Src)
	}

	q := image.Rect(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2, b.Max.X, b.Max.Y)
	if q.Empty() {
		return
	}
	draw.NearestNeighbor.Scale(dst, q, checker(), checker().Bounds(), draw.Src, nil)
}

// checker returns a 4x4 two-color checkerboard.
func checker() *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			c := colornames.Darkslategray
			if (x+y)%2 == 0 {
				c = colornames.Orange
			}
			m.SetRGBA(x, y, c)
		}
	}
	return m
}
