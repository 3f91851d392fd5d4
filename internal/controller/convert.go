package controller

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/pann/pdfthumb/internal/util"
	"github.com/pann/pdfthumb/pkg/pdfthumb"
)

type ConvertController struct {
	*baseController
}

// The web form is stricter about DPI than the library: extreme values are a
// typo far more often than intent.
const (
	webMinDPI = 72
	webMaxDPI = 600
)

// Swappable in tests so the handler can run without MuPDF.
var runBatch = func(bc *pdfthumb.BatchConverter, files []string, onResult func(pdfthumb.Result)) (pdfthumb.Summary, error) {
	return bc.Run(files, onResult)
}

type fileResult struct {
	Filename    string `json:"filename"`
	Status      string `json:"status"`
	Output      string `json:"output,omitempty"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	Error       string `json:"error,omitempty"`
	ElapsedMs   int64  `json:"elapsedMs,omitempty"`
}

// Convert accepts one or more uploaded PDFs, converts their first pages and
// returns per-file results with download links.
//
// Every request gets its own job subdirectory under the upload and output
// roots, so concurrent requests can never overwrite each other's files even
// when they upload identically named PDFs.
func (cc ConvertController) Convert(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid multipart form", util.GenerateErrorMessages(err), nil)
		return
	}

	uploads := form.File["files"]
	if len(uploads) == 0 {
		util.ResponseFailed(ctx, http.StatusBadRequest, "No files uploaded", util.GenerateErrorMessages(errors.New("no files uploaded"), "files"), nil)
		return
	}

	opts, err := cc.parseOptions(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid conversion parameters", util.GenerateErrorMessages(err), nil)
		return
	}

	jobID, err := gonanoid.New()
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create job", util.GenerateErrorMessages(err), nil)
		return
	}

	storage := cc.app.Config.Storage
	uploadDir := filepath.Join(storage.UploadDir, jobID)
	outputDir := filepath.Join(storage.OutputDir, jobID)
	for _, dir := range []string{uploadDir, outputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create job directories", util.GenerateErrorMessages(err), nil)
			return
		}
	}

	go cc.sweepExpiredJobs()

	var results []fileResult
	var saved []string
	for _, fh := range uploads {
		name := util.SanitizeFileName(fh.Filename)
		if name == "" || !strings.EqualFold(filepath.Ext(name), ".pdf") {
			results = append(results, fileResult{
				Filename: fh.Filename,
				Status:   "error",
				Error:    "not a PDF file",
			})
			continue
		}

		dest := filepath.Join(uploadDir, name)
		if _, err := os.Stat(dest); err == nil {
			// Same name uploaded twice in one request.
			dest = filepath.Join(uploadDir, util.AddUniquePrefixToFileName(name))
		}

		if err := ctx.SaveUploadedFile(fh, dest); err != nil {
			results = append(results, fileResult{
				Filename: name,
				Status:   "error",
				Error:    fmt.Sprintf("failed to store upload: %v", err),
			})
			continue
		}
		saved = append(saved, dest)
	}

	if len(saved) == 0 {
		os.RemoveAll(uploadDir)
		os.RemoveAll(outputDir)
		util.ResponseFailed(ctx, http.StatusBadRequest, "No valid PDF files uploaded", results, nil)
		return
	}
	defer os.RemoveAll(uploadDir)

	preFailed := len(results)

	bc := pdfthumb.NewBatchConverter(outputDir, opts, cc.app.Config.Convert.Workers)
	summary, err := runBatch(bc, saved, func(res pdfthumb.Result) {
		fr := fileResult{
			Filename:  filepath.Base(res.InputPath),
			ElapsedMs: res.Elapsed.Milliseconds(),
		}
		if res.OK() {
			out := filepath.Base(res.OutputPath)
			fr.Status = "success"
			fr.Output = out
			fr.DownloadURL = fmt.Sprintf("/api/v1/jobs/%s/files/%s", jobID, out)
		} else {
			fr.Status = "error"
			fr.Error = res.Err.Error()
		}
		results = append(results, fr)
	})
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Conversion failed", util.GenerateErrorMessages(err), nil)
		return
	}

	cc.app.Logger.Infof("Job %s: converted %d/%d files in %s", jobID, summary.Succeeded, summary.Total, summary.Elapsed)

	util.ResponseSuccess(ctx, gin.H{
		"jobId":          jobID,
		"results":        results,
		"convertedCount": summary.Succeeded,
		"failedCount":    summary.Failed + preFailed,
		"totalCount":     len(uploads),
		"elapsedMs":      summary.Elapsed.Milliseconds(),
		"archiveUrl":     fmt.Sprintf("/api/v1/jobs/%s/archive", jobID),
	})
}

// parseOptions builds conversion options from the server defaults overridden
// by the request's form fields. Violations are rejected before any file is
// touched.
func (cc ConvertController) parseOptions(ctx *gin.Context) (pdfthumb.Options, error) {
	opts := cc.app.Config.Convert.Options()

	if v := ctx.PostForm("dpi"); v != "" {
		dpi, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("dpi must be a number, got %q", v)
		}
		opts.DPI = dpi
	}
	if v := ctx.PostForm("quality"); v != "" {
		quality, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("quality must be a number, got %q", v)
		}
		opts.Quality = quality
	}
	if v := ctx.PostForm("scale_factor"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("scale factor must be a number, got %q", v)
		}
		opts.ScaleFactor = scale
	}

	if opts.DPI < webMinDPI || opts.DPI > webMaxDPI {
		return opts, fmt.Errorf("dpi must be between %d and %d, got %d", webMinDPI, webMaxDPI, opts.DPI)
	}
	return opts, opts.Validate()
}

// sweepExpiredJobs removes job directories older than the configured
// retention. Best effort; a job another request is still downloading from
// within the retention window is never touched.
func (cc ConvertController) sweepExpiredJobs() {
	storage := cc.app.Config.Storage

	for _, root := range []string{storage.UploadDir, storage.OutputDir} {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if time.Since(info.ModTime()) > storage.JobRetention {
				path := filepath.Join(root, entry.Name())
				if err := os.RemoveAll(path); err != nil {
					cc.app.Logger.Debugf("Failed to sweep %s: %v", path, err)
				}
			}
		}
	}
}
