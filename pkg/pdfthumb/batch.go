package pdfthumb

import (
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Summary aggregates the outcome of one batch. Derived from the result
// stream, never persisted.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Elapsed   time.Duration
}

// BatchConverter fans conversions out over a bounded worker pool.
//
// Workers share nothing beyond the job and result channels, so one file's
// failure never affects its siblings. Output names derive from input stems:
// two inputs with the same stem from different directories end up in the same
// output file and the last one to finish wins. Documented behavior, not a
// defect.
type BatchConverter struct {
	// ID tags the batch in logs and web responses.
	ID        string
	OutputDir string
	Options   Options
	// Workers caps concurrent conversions; values <= 0 fall back to a
	// GOMAXPROCS-based default.
	Workers int
}

func NewBatchConverter(outputDir string, opts Options, workers int) *BatchConverter {
	return &BatchConverter{
		ID:        uuid.NewString(),
		OutputDir: outputDir,
		Options:   opts,
		Workers:   workers,
	}
}

// calculateWorkerCount picks a pool size when the caller does not, mirroring
// the machine's parallelism and never exceeding the job count.
func calculateWorkerCount(jobCount int) int {
	return min(max(runtime.GOMAXPROCS(0), 1), jobCount)
}

// Run converts every file with at most Workers conversions in flight and
// streams each Result to onResult as it completes. Completion order is not
// submission order; the fold only counts and sums, so it does not care.
// Exactly one Result is produced per input file before Run returns.
func (bc *BatchConverter) Run(files []string, onResult func(Result)) (Summary, error) {
	if err := bc.Options.Validate(); err != nil {
		return Summary{}, err
	}

	start := time.Now()
	summary := Summary{Total: len(files)}
	if len(files) == 0 {
		return summary, nil
	}

	workers := bc.Workers
	if workers <= 0 {
		workers = calculateWorkerCount(len(files))
	}
	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan string, len(files))
	results := make(chan Result, len(files))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go bc.processJobs(jobs, results, &wg)
	}

	for _, f := range files {
		jobs <- f
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		if res.OK() {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		if onResult != nil {
			onResult(res)
		}
	}

	summary.Elapsed = time.Since(start)
	return summary, nil
}

func (bc *BatchConverter) processJobs(jobs <-chan string, results chan<- Result, wg *sync.WaitGroup) {
	defer wg.Done()

	for path := range jobs {
		results <- Convert(Request{
			InputPath: path,
			OutputDir: bc.OutputDir,
			Options:   bc.Options,
		})
	}
}
