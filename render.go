package mandel

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithWorkers sets the number of parallel workers.
// If n is 0 or negative, GOMAXPROCS is used.
func WithWorkers(n int) Option {
	return func(r *Renderer) {
		r.workers = n
	}
}

// WithProgress registers fn to be called after every finished row with the
// number of rows done so far and the total. fn is called from worker goroutines.
func WithProgress(fn func(done, total int)) Option {
	return func(r *Renderer) {
		r.onRow = fn
	}
}

// Renderer evaluates a viewport row by row on a fixed number of workers.
// Each worker owns one contiguous span of rows, so the raster needs no locking.
type Renderer struct {
	workers int
	onRow   func(done, total int)
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, o := range opts {
		o(r)
	}
	if r.workers <= 0 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	return r
}

// Workers returns the number of workers Render fans out to.
func (r *Renderer) Workers() int {
	return r.workers
}

// Render allocates a raster for vp and fills it.
// Render returns only after every worker has finished. If ctx is cancelled,
// workers stop between rows and the partial raster is released.
func (r *Renderer) Render(ctx context.Context, vp Viewport, maxIter uint16) (*Raster, error) {
	if err := vp.Region.Validate(); err != nil {
		return nil, err
	}
	if vp.XRes <= 0 || vp.YRes <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidResolution, vp.XRes, vp.YRes)
	}
	if vp.XRes > maxPixels/vp.YRes {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, vp.XRes, vp.YRes)
	}
	if maxIter == 0 {
		return nil, fmt.Errorf("%w: 0", ErrInvalidMaxIter)
	}

	log := Logger()
	raster := NewRaster(vp.XRes, vp.YRes)
	spans := splitRows(vp.YRes, r.workers)

	log.Info("computation beginning",
		slog.Int("xres", vp.XRes), slog.Int("yres", vp.YRes),
		slog.Int("maxiter", int(maxIter)), slog.Int("workers", r.workers))
	start := time.Now()

	var finished atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	for w, span := range spans {
		if span.empty() {
			continue
		}
		g.Go(func() error {
			for j := span.from; j < span.to; j++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				renderRow(raster.Row(j), vp, j, maxIter)
				done := int(finished.Add(1))
				if r.onRow != nil {
					r.onRow(done, vp.YRes)
				}
			}
			log.Debug("span finished",
				slog.Int("worker", w), slog.Int("from", span.from), slog.Int("to", span.to),
				slog.Float64("finished", float64(finished.Load())/float64(vp.YRes)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		raster.Release()
		return nil, fmt.Errorf("render cancelled after %d of %d rows: %w", finished.Load(), vp.YRes, err)
	}

	log.Info("calculations completed",
		slog.Duration("elapsed", time.Since(start)), slog.Int("workers", r.workers))
	return raster, nil
}

// renderRow fills dst with the encoded samples of row j.
func renderRow(dst []byte, vp Viewport, j int, maxIter uint16) {
	dx := vp.Dx()
	y := vp.Ymax - float64(j)*vp.Dy()
	for i := range vp.XRes {
		x := vp.Xmin + float64(i)*dx
		off := i * PixelSize
		EncodePixel(dst[off:off+PixelSize], Escape(x, y, maxIter))
	}
}

// rowSpan is the half-open row range [from, to).
type rowSpan struct {
	from, to int
}

func (s rowSpan) empty() bool { return s.to <= s.from }

// splitRows divides rows into n contiguous spans of near-equal length.
// The first rows%n spans get one extra row. When n exceeds rows the
// trailing spans are empty.
func splitRows(rows, n int) []rowSpan {
	if n <= 0 {
		panic("worker count must be positive")
	}

	spans := make([]rowSpan, n)
	base, extra := rows/n, rows%n
	from := 0
	for i := range spans {
		size := base
		if i < extra {
			size++
		}
		spans[i] = rowSpan{from: from, to: from + size}
		from += size
	}
	return spans
}
