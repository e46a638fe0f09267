package mandel

import "context"

// RasterRenderer computes the escape-time raster of a viewport.
type RasterRenderer interface {
	Render(ctx context.Context, vp Viewport, maxIter uint16) (*Raster, error)
}

var _ RasterRenderer = (*Renderer)(nil)
