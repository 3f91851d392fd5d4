// Package main is the entry point for the pdfthumb CLI, a bulk first-page
// PDF to JPEG converter.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pann/pdfthumb/pkg/pdfthumb"
)

var errBatchFailures = fmt.Errorf("some files failed to convert")

var rootCmd = &cobra.Command{
	Use:   "pdfthumb [inputs...]",
	Short: "Convert the first page of PDF files to resized JPEG images",
	Long: `pdfthumb extracts the first page of each input PDF, renders it at the
requested DPI, scales it down and writes it as <name>.jpg, either next to the
source file or into --output.

Inputs may be a mix of files, directories (searched recursively) and glob
patterns, including recursive ** patterns. Existing outputs are overwritten
without warning, so re-running a batch reproduces the same files; note that
two inputs sharing a file name write to the same output, last one wins.

Examples:
  pdfthumb document.pdf
  pdfthumb /path/to/pdfs/ -o thumbnails
  pdfthumb '**/*.pdf' --dpi 300 --quality 90 -w 8`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringP("output", "o", "", "output directory (default: alongside each source file)")
	rootCmd.Flags().Int("dpi", pdfthumb.DefaultDPI, "render resolution in dots per inch")
	rootCmd.Flags().Int("quality", pdfthumb.DefaultQuality, "JPEG quality, 1-100")
	rootCmd.Flags().Float64("scale", pdfthumb.DefaultScaleFactor, "scale factor applied to the rendered page, (0, 1]")
	rootCmd.Flags().IntP("workers", "w", pdfthumb.DefaultWorkers, "number of concurrent conversions")
}

func run(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	dpi, _ := cmd.Flags().GetInt("dpi")
	quality, _ := cmd.Flags().GetInt("quality")
	scale, _ := cmd.Flags().GetFloat64("scale")
	workers, _ := cmd.Flags().GetInt("workers")

	opts := pdfthumb.Options{DPI: dpi, Quality: quality, ScaleFactor: scale}
	if err := opts.Validate(); err != nil {
		return err
	}

	files, err := pdfthumb.ResolveInputs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No PDF files found!")
		return nil
	}

	fmt.Printf("Found %d PDF files to process...\n", len(files))
	fmt.Printf("Using %d workers for parallel processing\n", workers)
	if output != "" {
		fmt.Printf("Output directory: %s\n", output)
	}
	fmt.Println(strings.Repeat("-", 50))

	reporter := pdfthumb.NewReporter(os.Stdout, len(files))
	batch := pdfthumb.NewBatchConverter(output, opts, workers)

	summary, err := batch.Run(files, reporter.Report)
	if err != nil {
		return err
	}
	reporter.Summarize(summary)

	if summary.Succeeded > 0 {
		fmt.Printf("\n✓ Successfully processed %d files!\n", summary.Succeeded)
	}
	if summary.Failed > 0 {
		fmt.Printf("✗ Failed to process %d files!\n", summary.Failed)
		return errBatchFailures
	}
	return nil
}

func main() {
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		if err != errBatchFailures {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
