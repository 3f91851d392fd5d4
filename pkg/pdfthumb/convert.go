package pdfthumb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Request describes one PDF to convert. Immutable once built, one per file.
// An empty OutputDir places the output alongside the source file.
type Request struct {
	InputPath string
	OutputDir string
	Options   Options
}

// Result is the outcome of converting one file. Exactly one Result is
// produced per Request; OutputPath is set only on success, Err only on
// failure.
type Result struct {
	InputPath  string
	OutputPath string
	Err        error
	Elapsed    time.Duration
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Convert renders the first page of the request's PDF, scales it by the
// configured factor and writes it to <OutputDir>/<stem>.jpg, overwriting any
// existing file of that name. Re-running a batch reproduces the same output
// paths.
//
// Every failure, including a panic out of the rendering stack, is converted
// into a failed Result; Convert never raises past its own boundary.
func Convert(req Request) (res Result) {
	start := time.Now()
	res.InputPath = req.InputPath
	defer func() {
		if r := recover(); r != nil {
			res.OutputPath = ""
			res.Err = fmt.Errorf("conversion panic: %v", r)
		}
		res.Elapsed = time.Since(start)
	}()

	img, err := renderFirstPage(req.InputPath, req.Options.DPI)
	if err != nil {
		res.Err = err
		return res
	}

	outDir := req.OutputDir
	if outDir == "" {
		outDir = filepath.Dir(req.InputPath)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		res.Err = fmt.Errorf("failed to create output directory: %w", err)
		return res
	}

	outPath := filepath.Join(outDir, Stem(req.InputPath)+".jpg")
	scaled := resizeImage(img, req.Options.ScaleFactor)
	if err := writeJPEG(scaled, outPath, req.Options.Quality); err != nil {
		res.Err = err
		return res
	}

	res.OutputPath = outPath
	return res
}

// Stem returns the file name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
