package parallel

import "image"

// Bands splits r into at most n horizontal bands of at least minRows rows
// each. The bands cover r exactly, top to bottom.
func Bands(r image.Rectangle, n, minRows int) []image.Rectangle {
	if r.Empty() {
		return nil
	}
	minRows = max(minRows, 1)
	n = max(min(n, r.Dy()/minRows), 1)

	bands := make([]image.Rectangle, 0, n)
	for i := range n {
		y0 := r.Min.Y + r.Dy()*i/n
		y1 := r.Min.Y + r.Dy()*(i+1)/n
		bands = append(bands, image.Rect(r.Min.X, y0, r.Max.X, y1))
	}
	return bands
}

// Rows calls fn for each band of r and waits for all calls to return. A
// nil pool, or a rectangle too short for two bands, runs fn(r) inline.
// fn must only touch the rows of its band.
func (p *WorkerPool) Rows(r image.Rectangle, minRows int, fn func(band image.Rectangle)) {
	if r.Empty() {
		return
	}
	if p == nil || !p.IsRunning() || p.workers < 2 {
		fn(r)
		return
	}
	bands := Bands(r, p.workers, minRows)
	if len(bands) < 2 {
		fn(r)
		return
	}
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b) }
	}
	p.ExecuteAll(work)
}
