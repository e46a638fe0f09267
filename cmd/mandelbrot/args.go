package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	mandel "github.com/marben/mandelppm"
)

var errUsage = errors.New("usage")

// args are the seven positional command line values.
type args struct {
	viewport mandel.Viewport
	maxIter  uint16
	outFile  string
}

func printUsage(w io.Writer, prog string) {
	fmt.Fprintf(w, "Usage:   %s <xmin> <xmax> <ymin> <ymax> <maxiter> <xres> <out.ppm>\n", prog)
	fmt.Fprintf(w, "Example: %s 0.27085 0.27100 0.004640 0.004810 1000 1024 pic.ppm\n", prog)
}

// parseArgs parses the arguments following the program name.
func parseArgs(argv []string) (args, error) {
	if len(argv) != 7 {
		return args{}, fmt.Errorf("%w: got %d arguments, want 7", errUsage, len(argv))
	}

	var bounds [4]float64
	for i, name := range [...]string{"xmin", "xmax", "ymin", "ymax"} {
		f, err := strconv.ParseFloat(argv[i], 64)
		if err != nil {
			return args{}, fmt.Errorf("%s: %w", name, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return args{}, fmt.Errorf("%s: %q is not finite", name, argv[i])
		}
		bounds[i] = f
	}

	n, err := strconv.ParseUint(argv[4], 10, 64)
	if err != nil {
		return args{}, fmt.Errorf("maxiter: %w", err)
	}
	maxIter, err := mandel.ValidateMaxIter(n)
	if err != nil {
		return args{}, err
	}

	xres, err := strconv.Atoi(argv[5])
	if err != nil {
		return args{}, fmt.Errorf("xres: %w", err)
	}

	region := mandel.Region{Xmin: bounds[0], Xmax: bounds[1], Ymin: bounds[2], Ymax: bounds[3]}
	vp, err := mandel.NewViewport(region, xres)
	if err != nil {
		return args{}, err
	}

	if argv[6] == "" {
		return args{}, errors.New("out-file: empty path")
	}

	return args{viewport: vp, maxIter: maxIter, outFile: argv[6]}, nil
}
