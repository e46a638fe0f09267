// Command mandelbrot renders an escape-time image of the Mandelbrot set
// into a 16-bit binary PPM file.
//
// Usage:
//
//	mandelbrot <xmin> <xmax> <ymin> <ymax> <maxiter> <xres> <out.ppm>
//
// The image height is derived from xres and the aspect ratio of the region.
// Interior points are black; every other pixel holds its raw iteration count
// in all three channels, so the picture is gray and usually dark. Post-process
// it to taste, for instance with ImageMagick:
//
//	convert -normalize pic.ppm pic.png
//
// MANDEL_WORKERS sets the number of parallel workers (default: all CPUs) and
// MANDEL_LOG_LEVEL the log verbosity on stderr (default: info).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	mandel "github.com/marben/mandelppm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stderr)
	stop()

	if errors.Is(err, errUsage) {
		printUsage(os.Stdout, filepath.Base(os.Args[0]))
		os.Exit(1)
	}
	if err != nil {
		slog.Error("run failed", slog.Any("err", err))
		os.Exit(1)
	}
}

// run parses argv, renders the image and writes it. Logs go to logOut.
func run(ctx context.Context, argv []string, logOut io.Writer) error {
	a, err := parseArgs(argv)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	level, err := cfg.level()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
	mandel.SetLogger(logger)
	defer mandel.SetLogger(nil)

	var renderer mandel.RasterRenderer = mandel.NewRenderer(mandel.WithWorkers(cfg.workers()))
	raster, err := renderer.Render(ctx, a.viewport, a.maxIter)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer raster.Release()

	logger.Info("writing to file", slog.String("file", a.outFile))
	start := time.Now()
	n, err := writeImage(a.outFile, a.viewport, a.maxIter, raster)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	logger.Info("image written",
		slog.String("file", a.outFile),
		slog.String("size", p.Sprintf("%d x %d", a.viewport.XRes, a.viewport.YRes)),
		slog.String("pixels", p.Sprintf("%d", a.viewport.XRes*a.viewport.YRes)),
		slog.String("bytes", p.Sprintf("%d", n)),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// writeImage encodes raster into path and returns the file size.
// A partially written file is removed.
func writeImage(path string, vp mandel.Viewport, maxIter uint16, raster *mandel.Raster) (n int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	cw := &countingWriter{w: f}
	if err := mandel.Encode(cw, vp, maxIter, raster); err != nil {
		return 0, fmt.Errorf("encode %q: %w", path, err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
