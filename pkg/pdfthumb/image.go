package pdfthumb

import (
	"fmt"
	"image"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// resizeImage scales src by factor using Catmull-Rom resampling. Output
// dimensions are round(width*factor) x round(height*factor), floored at one
// pixel. A factor of 1 returns src unchanged.
func resizeImage(src image.Image, factor float64) image.Image {
	bounds := src.Bounds()
	w := int(math.Round(float64(bounds.Dx()) * factor))
	h := int(math.Round(float64(bounds.Dy()) * factor))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == bounds.Dx() && h == bounds.Dy() {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	return dst
}

// writeJPEG encodes img to outFile at the given quality, replacing any
// existing file. The encode goes to a temp file in the target directory which
// is renamed into place, so a failed conversion leaves no partial output.
func writeJPEG(img image.Image, outFile string, quality int) error {
	tmp, err := os.CreateTemp(filepath.Dir(outFile), ".pdfthumb_*.jpg")
	if err != nil {
		return fmt.Errorf("failed to create temp output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := jpeg.Encode(tmp, img, &jpeg.Options{Quality: quality}); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode JPEG: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp output: %w", err)
	}

	// CreateTemp makes the file 0600; the finished image should be readable
	// like any other written file.
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set output permissions: %w", err)
	}

	if err := os.Rename(tmp.Name(), outFile); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
