// Command ddprobe connects to a display backend, creates the surfaces listed
// in a profile and reports how the device realized each of them.
//
// Usage:
//
//	ddprobe [-profile profile.yaml] [-backend software] [-level debug]
//	        [-logfile ddprobe.log] [-dump out.bmp] [-frames 600]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/gogpu/ddraw"
	"github.com/gogpu/ddraw/backend"
	_ "github.com/gogpu/ddraw/backend/ddraw7"
	_ "github.com/gogpu/ddraw/backend/software"
)

type flags struct {
	profile string
	backend string
	level   string
	logFile string
	dump    string
	frames  int
	list    bool
}

func main() {
	var f flags
	flag.StringVar(&f.profile, "profile", "", "YAML profile (default: one surface of each kind)")
	flag.StringVar(&f.backend, "backend", "", "backend name, overrides the profile")
	flag.StringVar(&f.level, "level", "", "log level: debug, info, warn or error")
	flag.StringVar(&f.logFile, "logfile", "", "write logs to a rotating file")
	flag.StringVar(&f.dump, "dump", "", "write the first color surface as BMP")
	flag.IntVar(&f.frames, "frames", 0, "repaint and present the test pattern N times")
	flag.BoolVar(&f.list, "list", false, "list registered backends and exit")
	flag.Parse()

	if f.list {
		for _, name := range backend.Available() {
			fmt.Println(name)
		}
		return
	}
	if err := run(f, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("ddprobe: %v", err)
	}
}

// errNoWindow is returned when a profile asks for a display mode without
// the window that exclusive mode is bound to.
var errNoWindow = errors.New("full-screen mode needs a window handle")

func run(f flags, stdout, stderr io.Writer) error {
	p, err := loadProfile(f.profile)
	if err != nil {
		return err
	}
	if f.backend != "" {
		p.Backend = f.backend
	}
	if f.level != "" {
		p.Log.Level = f.level
	}
	if f.logFile != "" {
		p.Log.File = f.logFile
	}

	logger, closer, err := newLogger(p.Log, stderr)
	if err != nil {
		return err
	}
	defer closer.Close()
	ddraw.SetLogger(logger)

	m, err := ddraw.New(
		ddraw.WithBackend(p.Backend),
		ddraw.WithTextureStages(p.Stages.Bump, p.Stages.Light),
	)
	if err != nil {
		return err
	}
	defer m.Close()

	if p.Mode != nil {
		ok, err := m.NegotiateDisplayMode(p.Mode.Width, p.Mode.Height, p.Mode.BPP)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("display mode %dx%dx%d is not available", p.Mode.Width, p.Mode.Height, p.Mode.BPP)
		}
		if p.Window == 0 {
			return fmt.Errorf("display mode %dx%dx%d: %w", p.Mode.Width, p.Mode.Height, p.Mode.BPP, errNoWindow)
		}
	}
	if err := m.Initialize(p.Window); err != nil {
		return err
	}

	rows := make([]result, 0, len(p.Surfaces))
	for _, cfg := range p.Surfaces {
		kind, err := ddraw.ParseKind(cfg.Kind)
		if err != nil {
			return fmt.Errorf("surface %q: %w", cfg.Kind, err)
		}
		s, err := m.NewSurface(kind, cfg.Options()...)
		if err != nil {
			logger.Warn("ddprobe: surface failed", "kind", kind, "err", err)
			rows = append(rows, result{Config: cfg, Err: err})
			continue
		}
		defer s.Close()
		rows = append(rows, result{Config: cfg, Surface: s})
	}

	var target *ddraw.Surface
	for _, r := range rows {
		if paintable(r.Surface) {
			target = r.Surface
			break
		}
	}
	if target != nil {
		if err := paint(target, 0); err != nil {
			return fmt.Errorf("paint %v: %w", target.Kind(), err)
		}
	}

	if f.dump != "" {
		if target == nil {
			return fmt.Errorf("dump: no color surface to write")
		}
		if err := dumpBMP(f.dump, target); err != nil {
			return fmt.Errorf("dump: %w", err)
		}
		logger.Info("ddprobe: surface written", "kind", target.Kind(), "path", f.dump)
	}

	if err := writeReport(stdout, p.Language, m.Mode(), m.FullScreen(), rows); err != nil {
		return err
	}

	if f.frames > 0 && target != nil {
		return runFrames(target, f.frames, stderr, stdout)
	}
	return nil
}

// runFrames repaints target n times, presenting it when it is a primary
// surface, and prints the achieved rate.
func runFrames(target *ddraw.Surface, n int, progress, stdout io.Writer) error {
	bar := progressbar.NewOptions(n,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("frames"),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
	defer bar.Close()

	start := time.Now()
	for i := range n {
		if target.NeedsRepainting() {
			ddraw.Logger().Info("ddprobe: surface restored", "kind", target.Kind())
		}
		if err := paint(target, i); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if target.Kind() == ddraw.KindPrimary {
			if err := target.Show(); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
		}
		_ = bar.Add(1)
	}
	elapsed := time.Since(start)
	_ = bar.Finish()
	fmt.Fprintf(stdout, "%d frames in %v (%.1f fps)\n", n, elapsed.Round(time.Millisecond), float64(n)/elapsed.Seconds())
	return nil
}
