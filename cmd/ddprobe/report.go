package main

import (
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/ddraw"
	"github.com/gogpu/ddraw/backend"
	"github.com/gogpu/ddraw/hresult"
)

// result is one row of the ddprobe report.
type result struct {
	Config  SurfaceConfig
	Surface *ddraw.Surface
	Err     error
}

// Bytes returns the locked size of the surface memory.
func (r result) Bytes() int {
	if r.Surface == nil {
		return 0
	}
	return r.Surface.Pitch() * r.Surface.Height()
}

// writeReport prints a table of realized surfaces. Numbers are grouped for
// lang.
func writeReport(w io.Writer, lang string, mode backend.DisplayMode, fullScreen bool, rows []result) error {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if fullScreen {
		p.Fprintf(tw, "mode\t%v full-screen\n", mode)
	} else {
		p.Fprintf(tw, "mode\twindowed\n")
	}
	p.Fprintf(tw, "KIND\tSIZE\tPITCH\tBYTES\tFORMAT\tGPU\tATTEMPT\tCAPS\n")

	total := 0
	for _, r := range rows {
		if r.Err != nil {
			p.Fprintf(tw, "%s\t%dx%dx%d\t-\t-\t-\t-\tfailed\t%s\n",
				r.Config.Kind, r.Config.Width, r.Config.Height, r.Config.BPP, hresult.Label(r.Err))
			continue
		}
		s := r.Surface
		caps, caps2 := s.Caps()
		total += r.Bytes()
		p.Fprintf(tw, "%v\t%dx%d\t%d\t%d\t%v\t%v %s\t%d\t%v %v\n",
			s.Kind(), s.Width(), s.Height(), s.Pitch(), r.Bytes(), s.Format(),
			s.Format().GPUFormat(), backend.UsageString(caps.TextureUsage()), s.Attempt(), caps, caps2)
	}
	p.Fprintf(tw, "total\t\t\t%d\n", total)
	return tw.Flush()
}
