package parallel

import (
	"image"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefault(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if want := runtime.GOMAXPROCS(0); pool.Workers() != want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", n, pool.Workers(), want)
		}
		pool.Close()
	}
}

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}
	pool.ExecuteAll(work)

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
	pool.ExecuteAll(nil)
}

func TestWorkerPool_ExecuteAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("IsRunning() after Close")
	}
	ran := 0
	pool.ExecuteAll([]func(){func() { ran++ }, func() { ran++ }})
	if ran != 2 {
		t.Errorf("ran %d items on a closed pool, want 2 inline", ran)
	}
}

func TestWorkerPool_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			work := make([]func(), 50)
			for i := range work {
				work[i] = func() { counter.Add(1) }
			}
			pool.ExecuteAll(work)
		}()
	}
	wg.Wait()

	if counter.Load() != 400 {
		t.Errorf("counter = %d, want 400", counter.Load())
	}
}

func TestBands(t *testing.T) {
	tests := []struct {
		name    string
		r       image.Rectangle
		n, min  int
		wantLen int
	}{
		{"even", image.Rect(0, 0, 10, 100), 4, 1, 4},
		{"min rows caps count", image.Rect(0, 0, 10, 100), 8, 40, 2},
		{"too short", image.Rect(0, 0, 10, 3), 4, 16, 1},
		{"offset", image.Rect(5, 7, 9, 70), 3, 1, 3},
		{"empty", image.Rectangle{}, 4, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bands := Bands(tt.r, tt.n, tt.min)
			if len(bands) != tt.wantLen {
				t.Fatalf("len(Bands()) = %d, want %d", len(bands), tt.wantLen)
			}
			y := tt.r.Min.Y
			for _, b := range bands {
				if b.Min.Y != y || b.Min.X != tt.r.Min.X || b.Max.X != tt.r.Max.X {
					t.Errorf("band %v does not continue at y=%d", b, y)
				}
				y = b.Max.Y
			}
			if len(bands) > 0 && y != tt.r.Max.Y {
				t.Errorf("bands end at %d, want %d", y, tt.r.Max.Y)
			}
		})
	}
}

func TestRows(t *testing.T) {
	r := image.Rect(0, 0, 4, 256)
	var rows [256]atomic.Int32

	pool := NewWorkerPool(4)
	defer pool.Close()
	var calls atomic.Int32
	pool.Rows(r, 16, func(b image.Rectangle) {
		calls.Add(1)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			rows[y].Add(1)
		}
	})
	if calls.Load() != 4 {
		t.Errorf("fn called %d times, want 4 bands", calls.Load())
	}
	for y := range rows {
		if rows[y].Load() != 1 {
			t.Fatalf("row %d visited %d times", y, rows[y].Load())
		}
	}

	var nilPool *WorkerPool
	var got image.Rectangle
	nilPool.Rows(r, 16, func(b image.Rectangle) { got = b })
	if got != r {
		t.Errorf("nil pool band = %v, want the whole rectangle", got)
	}
}
