package mandel

import (
	"image"
	"image/color"
)

// PixelSize is the number of bytes one pixel occupies: three 16-bit
// big-endian channels, all holding the same iteration count.
const PixelSize = 6

// EncodePixel writes s into dst[:PixelSize].
func EncodePixel(dst []byte, s Sample) {
	hi, lo := byte(s>>8), byte(s)
	_ = dst[5]
	dst[0], dst[1] = hi, lo
	dst[2], dst[3] = hi, lo
	dst[4], dst[5] = hi, lo
}

// DecodePixel reads a pixel written by EncodePixel.
// ok is false if the three channels disagree.
func DecodePixel(src []byte) (s Sample, ok bool) {
	_ = src[5]
	r := Sample(src[0])<<8 | Sample(src[1])
	g := Sample(src[2])<<8 | Sample(src[3])
	b := Sample(src[4])<<8 | Sample(src[5])
	return r, r == g && g == b
}

// Raster is a row-major grid of encoded pixels backed by a single allocation.
//
// Rows may be written concurrently as long as no two goroutines touch the same row.
type Raster struct {
	width, height int
	pix           []byte
}

// NewRaster allocates a zeroed (all Interior) raster.
func NewRaster(width, height int) *Raster {
	if width <= 0 || height <= 0 {
		panic("raster dimensions must be positive")
	}
	return &Raster{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*PixelSize),
	}
}

// Width is the number of pixel columns.
func (r *Raster) Width() int { return r.width }

// Height is the number of pixel rows.
func (r *Raster) Height() int { return r.height }

// Offset returns the index of the first byte of pixel (row, col).
func (r *Raster) Offset(row, col int) int {
	return (row*r.width + col) * PixelSize
}

// Set encodes s into pixel (row, col).
func (r *Raster) Set(row, col int, s Sample) {
	off := r.Offset(row, col)
	EncodePixel(r.pix[off:off+PixelSize], s)
}

// Sample decodes pixel (row, col).
func (r *Raster) Sample(row, col int) Sample {
	off := r.Offset(row, col)
	s, _ := DecodePixel(r.pix[off : off+PixelSize])
	return s
}

// Row returns the encoded bytes of one row. The slice aliases the raster.
func (r *Raster) Row(row int) []byte {
	off := r.Offset(row, 0)
	return r.pix[off : off+r.width*PixelSize : off+r.width*PixelSize]
}

// Bytes returns the whole encoded grid, top row first.
func (r *Raster) Bytes() []byte {
	return r.pix
}

// Release drops the pixel storage. The raster must not be used afterwards.
// Release is safe to call more than once.
func (r *Raster) Release() {
	if r == nil {
		return
	}
	r.pix = nil
	r.width, r.height = 0, 0
}

// ColorModel implements image.Image.
func (r *Raster) ColorModel() color.Model { return color.Gray16Model }

// Bounds implements image.Image.
func (r *Raster) Bounds() image.Rectangle { return image.Rect(0, 0, r.width, r.height) }

// At implements image.Image, exposing the raw iteration count as a gray level.
func (r *Raster) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(r.Bounds())) {
		return color.Gray16{}
	}
	return color.Gray16{Y: uint16(r.Sample(y, x))}
}

var _ image.Image = (*Raster)(nil)
