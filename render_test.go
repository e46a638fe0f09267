package mandel

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strconv"
	"sync"
	"testing"
)

func TestSplitRows(t *testing.T) {
	tests := []struct {
		rows, n int
		want    []rowSpan
	}{
		{10, 1, []rowSpan{{0, 10}}},
		{10, 2, []rowSpan{{0, 5}, {5, 10}}},
		{10, 3, []rowSpan{{0, 4}, {4, 7}, {7, 10}}},
		{3, 5, []rowSpan{{0, 1}, {1, 2}, {2, 3}, {3, 3}, {3, 3}}},
		{0, 2, []rowSpan{{0, 0}, {0, 0}}},
	}
	for _, tt := range tests {
		got := splitRows(tt.rows, tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("splitRows(%d, %d) = %v, want %v", tt.rows, tt.n, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitRows(%d, %d)[%d] = %v, want %v", tt.rows, tt.n, i, got[i], tt.want[i])
			}
		}
	}
}

func TestSplitRowsCoversEveryRowOnce(t *testing.T) {
	for rows := 0; rows < 50; rows++ {
		for n := 1; n < 20; n++ {
			seen := make([]int, rows)
			for _, s := range splitRows(rows, n) {
				for j := s.from; j < s.to; j++ {
					seen[j]++
				}
			}
			for j, c := range seen {
				if c != 1 {
					t.Fatalf("splitRows(%d, %d): row %d covered %d times", rows, n, j, c)
				}
			}
		}
	}
}

func mustViewport(t testing.TB, r Region, xres int) Viewport {
	t.Helper()
	vp, err := NewViewport(r, xres)
	if err != nil {
		t.Fatalf("NewViewport(%+v, %d): %v", r, xres, err)
	}
	return vp
}

func TestRenderMatchesEscape(t *testing.T) {
	vp := mustViewport(t, FullSet, 60)
	const maxIter = 200

	raster, err := NewRenderer(WithWorkers(4)).Render(context.Background(), vp, maxIter)
	if err != nil {
		t.Fatal(err)
	}
	defer raster.Release()

	var escaped, interior int
	for j := range vp.YRes {
		for i := range vp.XRes {
			x, y := vp.Point(j, i)
			want := Escape(x, y, maxIter)
			if got := raster.Sample(j, i); got != want {
				t.Fatalf("pixel (%d, %d) = %d, want %d", j, i, got, want)
			}
			if want == Interior {
				interior++
			} else {
				escaped++
			}
		}
	}
	if escaped == 0 || interior == 0 {
		t.Errorf("full set render has %d escaped and %d interior pixels", escaped, interior)
	}
}

func TestRenderCapOneIsAllZero(t *testing.T) {
	vp := mustViewport(t, FullSet, 120)
	raster, err := NewRenderer().Render(context.Background(), vp, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(raster.Bytes(), make([]byte, len(raster.Bytes()))) {
		t.Error("maxiter 1 produced non-zero pixels")
	}
}

func TestRenderInteriorRegionIsAllZero(t *testing.T) {
	vp := mustViewport(t, Cardioid, 200)
	raster, err := NewRenderer().Render(context.Background(), vp, 50)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(raster.Bytes(), make([]byte, len(raster.Bytes()))) {
		t.Error("region inside the cardioid produced non-zero pixels")
	}
}

func TestRenderWorkerCountIndependent(t *testing.T) {
	for _, lm := range Landmarks {
		t.Run(lm.Name, func(t *testing.T) {
			vp := mustViewport(t, lm.Region, 64)
			ref, err := NewRenderer(WithWorkers(1)).Render(context.Background(), vp, 500)
			if err != nil {
				t.Fatal(err)
			}
			for _, n := range []int{2, 3, 7, 8, 16, vp.YRes + 5} {
				got, err := NewRenderer(WithWorkers(n)).Render(context.Background(), vp, 500)
				if err != nil {
					t.Fatalf("workers=%d: %v", n, err)
				}
				if !bytes.Equal(got.Bytes(), ref.Bytes()) {
					t.Errorf("workers=%d: raster differs from single worker", n)
				}
			}
		})
	}
}

func TestRenderMoreWorkersThanRows(t *testing.T) {
	vp := mustViewport(t, Region{Xmin: -2, Xmax: 1, Ymin: 0, Ymax: 0.1}, 40)
	if vp.YRes != 1 {
		t.Fatalf("yres = %d, want 1", vp.YRes)
	}
	raster, err := NewRenderer(WithWorkers(32)).Render(context.Background(), vp, 100)
	if err != nil {
		t.Fatal(err)
	}
	if raster.Height() != 1 || raster.Width() != 40 {
		t.Errorf("raster %dx%d, want 40x1", raster.Width(), raster.Height())
	}
}

func TestRenderProgress(t *testing.T) {
	vp := mustViewport(t, SeahorseValley, 50)

	var (
		mu    sync.Mutex
		calls int
		peak  int
	)
	r := NewRenderer(WithWorkers(3), WithProgress(func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		peak = max(peak, done)
		if total != vp.YRes {
			t.Errorf("progress total = %d, want %d", total, vp.YRes)
		}
	}))
	if _, err := r.Render(context.Background(), vp, 100); err != nil {
		t.Fatal(err)
	}
	if calls != vp.YRes || peak != vp.YRes {
		t.Errorf("progress calls = %d peak = %d, want %d", calls, peak, vp.YRes)
	}
}

func TestRenderCancelled(t *testing.T) {
	vp := mustViewport(t, FullSet, 100)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	raster, err := NewRenderer(WithWorkers(2)).Render(ctx, vp, 100)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Render() err = %v, want context.Canceled", err)
	}
	if raster != nil {
		t.Error("Render() returned a raster after cancellation")
	}
}

func TestRenderCancelledMidway(t *testing.T) {
	vp := mustViewport(t, FullSet, 100)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRenderer(WithWorkers(1), WithProgress(func(done, _ int) {
		if done == 10 {
			cancel()
		}
	}))
	if _, err := r.Render(ctx, vp, 100); !errors.Is(err, context.Canceled) {
		t.Fatalf("Render() err = %v, want context.Canceled", err)
	}
}

func TestRenderRejectsZeroCap(t *testing.T) {
	vp := mustViewport(t, FullSet, 10)
	if _, err := NewRenderer().Render(context.Background(), vp, 0); !errors.Is(err, ErrInvalidMaxIter) {
		t.Errorf("Render() err = %v, want ErrInvalidMaxIter", err)
	}
	if _, err := NewRenderer().Render(context.Background(), Viewport{Region: FullSet}, 10); !errors.Is(err, ErrInvalidResolution) {
		t.Errorf("Render() err = %v, want ErrInvalidResolution", err)
	}
}

func TestRenderRejectsUnvalidatedViewport(t *testing.T) {
	tests := []struct {
		name      string
		vp        Viewport
		wantErrIs error
	}{
		{"nan bound", Viewport{Region: Region{Xmin: math.NaN(), Xmax: 1, Ymin: -1, Ymax: 1}, XRes: 4, YRes: 4}, ErrInvalidRegion},
		{"reversed x", Viewport{Region: Region{Xmin: 1, Xmax: -2, Ymin: -1, Ymax: 1}, XRes: 4, YRes: 4}, ErrInvalidRegion},
		{"empty y", Viewport{Region: Region{Xmin: -2, Xmax: 1, Ymin: 1, Ymax: 1}, XRes: 4, YRes: 4}, ErrInvalidRegion},
		{"overflowing size", Viewport{Region: FullSet, XRes: 2_000_000_000, YRes: 2_000_000_000}, ErrImageTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raster, err := NewRenderer().Render(context.Background(), tt.vp, 10)
			if !errors.Is(err, tt.wantErrIs) {
				t.Fatalf("Render() err = %v, want %v", err, tt.wantErrIs)
			}
			if raster != nil {
				t.Error("Render() returned a raster for an invalid viewport")
			}
		})
	}
}

func TestNewRendererDefaultsWorkers(t *testing.T) {
	if NewRenderer().Workers() < 1 {
		t.Error("default worker count < 1")
	}
	if got := NewRenderer(WithWorkers(5)).Workers(); got != 5 {
		t.Errorf("Workers() = %d, want 5", got)
	}
}

func BenchmarkRender(b *testing.B) {
	vp := mustViewport(b, SeahorseValley, 256)
	for _, n := range []int{1, 2, 4, 8} {
		r := NewRenderer(WithWorkers(n))
		b.Run("workers="+strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				raster, err := r.Render(context.Background(), vp, 1000)
				if err != nil {
					b.Fatal(err)
				}
				raster.Release()
			}
		})
	}
}
