package pdfthumb

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Conversion defaults, shared by the CLI flags and the web form.
const (
	DefaultDPI         = 200
	DefaultQuality     = 95
	DefaultScaleFactor = 0.6
	DefaultWorkers     = 4
)

var validate = validator.New()

// Options control how a rendered page is produced and encoded. Invalid
// options would silently ruin every file in a batch, so they are rejected
// before any work is dispatched.
type Options struct {
	// DPI is the resolution requested from the rasterizer.
	DPI int `validate:"gt=0"`
	// Quality is the JPEG quality, 1-100.
	Quality int `validate:"gte=1,lte=100"`
	// ScaleFactor multiplies the rendered page dimensions, (0, 1].
	ScaleFactor float64 `validate:"gt=0,lte=1"`
}

func NewDefaultOptions() Options {
	return Options{
		DPI:         DefaultDPI,
		Quality:     DefaultQuality,
		ScaleFactor: DefaultScaleFactor,
	}
}

// Validate checks the option bounds and returns a user-facing message for the
// first violation.
func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		switch ve[0].Field() {
		case "DPI":
			return fmt.Errorf("dpi must be greater than 0, got %d", o.DPI)
		case "Quality":
			return fmt.Errorf("quality must be between 1 and 100, got %d", o.Quality)
		case "ScaleFactor":
			return fmt.Errorf("scale factor must be greater than 0 and at most 1, got %g", o.ScaleFactor)
		}
	}
	return err
}
