// Package mandel rasterizes escape-time images of the Mandelbrot set and
// encodes them as 16-bit binary PPM files.
package mandel

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidRegion reports non-finite or empty plane bounds.
	ErrInvalidRegion = errors.New("invalid region")
	// ErrInvalidResolution reports a pixel width or derived height below 1.
	ErrInvalidResolution = errors.New("invalid resolution")
	// ErrInvalidMaxIter reports an iteration cap outside 1..MaxIterLimit.
	ErrInvalidMaxIter = errors.New("invalid maxiter")
	// ErrImageTooLarge reports dimensions whose raster size overflows int.
	ErrImageTooLarge = errors.New("image too large")
)

// MaxIterLimit is the largest iteration cap a 16-bit channel can carry.
const MaxIterLimit = math.MaxUint16

// maxPixels is the largest pixel count whose encoded size fits in an int.
const maxPixels = math.MaxInt / PixelSize

// Region within the complex plane
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Validate reports whether r has finite bounds and a non-empty extent on both axes.
func (r Region) Validate() error {
	for _, f := range [...]float64{r.Xmin, r.Xmax, r.Ymin, r.Ymax} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: non-finite bound in %+v", ErrInvalidRegion, r)
		}
	}
	if r.Xmax <= r.Xmin {
		return fmt.Errorf("%w: xmax %g must be greater than xmin %g", ErrInvalidRegion, r.Xmax, r.Xmin)
	}
	if r.Ymax <= r.Ymin {
		return fmt.Errorf("%w: ymax %g must be greater than ymin %g", ErrInvalidRegion, r.Ymax, r.Ymin)
	}
	return nil
}

// Viewport is a region sampled at a fixed pixel resolution.
// The height is derived from the width so that pixels are square.
type Viewport struct {
	Region
	XRes, YRes int
}

// NewViewport validates r and derives the image height from xres.
// The height is truncated toward zero, matching the integer conversion
// every existing renderer of this format performs.
func NewViewport(r Region, xres int) (Viewport, error) {
	if err := r.Validate(); err != nil {
		return Viewport{}, err
	}
	if xres <= 0 {
		return Viewport{}, fmt.Errorf("%w: xres %d must be positive", ErrInvalidResolution, xres)
	}

	h := float64(xres) * (r.Ymax - r.Ymin) / (r.Xmax - r.Xmin)
	if math.IsInf(h, 0) || math.IsNaN(h) || h >= maxPixels {
		return Viewport{}, fmt.Errorf("%w: derived yres %g", ErrImageTooLarge, h)
	}
	yres := int(h)
	if yres <= 0 {
		return Viewport{}, fmt.Errorf("%w: derived yres %d must be positive (xres %d too small for aspect ratio)", ErrInvalidResolution, yres, xres)
	}
	if xres > maxPixels/yres {
		return Viewport{}, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, xres, yres)
	}

	return Viewport{Region: r, XRes: xres, YRes: yres}, nil
}

// Dx is the plane width of one pixel.
func (vp Viewport) Dx() float64 {
	return (vp.Xmax - vp.Xmin) / float64(vp.XRes)
}

// Dy is the plane height of one pixel.
func (vp Viewport) Dy() float64 {
	return (vp.Ymax - vp.Ymin) / float64(vp.YRes)
}

// Point maps a pixel to its plane coordinate.
// Row 0 is the top (Ymax) edge, column 0 the left (Xmin) edge.
func (vp Viewport) Point(row, col int) (x, y float64) {
	return vp.Xmin + float64(col)*vp.Dx(), vp.Ymax - float64(row)*vp.Dy()
}

// ValidateMaxIter narrows n to an iteration cap in 1..MaxIterLimit.
func ValidateMaxIter(n uint64) (uint16, error) {
	if n < 1 || n > MaxIterLimit {
		return 0, fmt.Errorf("%w: %d not in 1..%d", ErrInvalidMaxIter, n, MaxIterLimit)
	}
	return uint16(n), nil
}
