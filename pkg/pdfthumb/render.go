package pdfthumb

import (
	"errors"
	"fmt"
	"image"

	fitz "github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ErrNoPages is returned when a PDF contains no pages.
var ErrNoPages = errors.New("no pages found in PDF")

// Document is the subset of the rasterizer used by the converter.
type Document interface {
	NumPage() int
	ImageDPI(pageNumber int, dpi float64) (image.Image, error)
	Close() error
}

// fitzDocument adapts *fitz.Document to the Document interface: go-fitz's
// ImageDPI returns the concrete *image.RGBA, which satisfies image.Image.
type fitzDocument struct{ *fitz.Document }

func (d fitzDocument) ImageDPI(pageNumber int, dpi float64) (image.Image, error) {
	return d.Document.ImageDPI(pageNumber, dpi)
}

// Swappable in tests so conversion can run without MuPDF.
var (
	openDocument = func(path string) (Document, error) {
		doc, err := fitz.New(path)
		if err != nil {
			return nil, err
		}
		return fitzDocument{doc}, nil
	}
	pageCount = func(path string) (int, error) {
		return api.PageCountFile(path)
	}
)

// renderFirstPage rasterizes the first page of the PDF at path at the given
// DPI. The page count is checked through pdfcpu up front, so a zero-page or
// structurally broken document fails with a precise message before the
// rasterizer touches it.
func renderFirstPage(path string, dpi int) (image.Image, error) {
	pages, err := pageCount(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	if pages == 0 {
		return nil, ErrNoPages
	}

	doc, err := openDocument(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, ErrNoPages
	}

	img, err := doc.ImageDPI(0, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("failed to render first page: %w", err)
	}
	return img, nil
}
