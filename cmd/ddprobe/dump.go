package main

import (
	"fmt"
	"os"

	"golang.org/x/image/bmp"

	"github.com/gogpu/ddraw"
	"github.com/gogpu/ddraw/pixfmt"
)

// dumpBMP writes the contents of s to path as a BMP file.
func dumpBMP(path string, s *ddraw.Surface) (err error) {
	a, err := s.StartAccess(nil)
	if err != nil {
		return err
	}
	defer func() {
		if endErr := s.EndAccess(nil); err == nil {
			err = endErr
		}
	}()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bmp.Encode(f, a.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// paintable reports whether s holds colors the test pattern can be drawn
// into.
func paintable(s *ddraw.Surface) bool {
	return s != nil && s.Format().Flags&pixfmt.FlagRGB != 0
}

// paint draws the test pattern into s.
func paint(s *ddraw.Surface, offset int) error {
	a, err := s.StartAccess(nil)
	if err != nil {
		return err
	}
	drawPattern(a.Image(), offset)
	return s.EndAccess(nil)
}
