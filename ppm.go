package mandel

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ErrDimensionMismatch reports a raster whose size differs from the viewport being encoded.
var ErrDimensionMismatch = errors.New("raster does not match viewport")

// MaxVal is the channel maximum declared in the header.
// It never drops below 256 so readers always treat channels as 16-bit.
func MaxVal(maxIter uint16) int {
	return max(int(maxIter), 256)
}

// Encode writes r as a binary PPM (P6) whose comment line records the region and cap.
func Encode(w io.Writer, vp Viewport, maxIter uint16, r *Raster) error {
	if r.Width() != vp.XRes || r.Height() != vp.YRes {
		return fmt.Errorf("%w: raster %dx%d, viewport %dx%d",
			ErrDimensionMismatch, r.Width(), r.Height(), vp.XRes, vp.YRes)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw,
		"P6\n# Mandelbrot, xmin=%f, xmax=%f, ymin=%f, ymax=%f, maxiter=%d\n%d\n%d\n%d\n",
		vp.Xmin, vp.Xmax, vp.Ymin, vp.Ymax, maxIter, vp.XRes, vp.YRes, MaxVal(maxIter),
	); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for j := range r.Height() {
		if _, err := bw.Write(r.Row(j)); err != nil {
			return fmt.Errorf("write row %d: %w", j, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}
