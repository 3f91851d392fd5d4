package pdfthumb

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Reporter folds a stream of Results into per-file status lines and a final
// summary. No side effects beyond writing to w.
type Reporter struct {
	w     io.Writer
	total int
	done  int
}

func NewReporter(w io.Writer, total int) *Reporter {
	return &Reporter{w: w, total: total}
}

// Report prints one status line for res. Lines are numbered in completion
// order, which is not submission order.
func (r *Reporter) Report(res Result) {
	r.done++
	if res.OK() {
		fmt.Fprintf(r.w, "✓ [%d/%d] %s -> %s\n", r.done, r.total, filepath.Base(res.InputPath), filepath.Base(res.OutputPath))
	} else {
		fmt.Fprintf(r.w, "✗ [%d/%d] %s - Error: %v\n", r.done, r.total, filepath.Base(res.InputPath), res.Err)
	}
}

// Summarize prints the end-of-run totals.
func (r *Reporter) Summarize(s Summary) {
	fmt.Fprintln(r.w, strings.Repeat("-", 50))
	fmt.Fprintf(r.w, "Processing completed in %.2f seconds\n", s.Elapsed.Seconds())
	fmt.Fprintf(r.w, "Total files: %d\n", s.Total)
	fmt.Fprintf(r.w, "Successful: %d\n", s.Succeeded)
	fmt.Fprintf(r.w, "Failed: %d\n", s.Failed)

	if s.Total > 0 && s.Succeeded > 0 {
		fmt.Fprintf(r.w, "Average time per file: %.2f seconds\n", s.Elapsed.Seconds()/float64(s.Total))
	}
}
