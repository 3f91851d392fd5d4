package controller

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pann/pdfthumb/pkg/pdfthumb"
)

type uploadFile struct {
	name string
	data []byte
}

// stubBatchRunner replaces the batch runner with one that writes a stand-in
// JPEG per input file, so handler tests need no rasterizer.
func stubBatchRunner(t *testing.T) {
	t.Helper()
	orig := runBatch
	runBatch = func(bc *pdfthumb.BatchConverter, files []string, onResult func(pdfthumb.Result)) (pdfthumb.Summary, error) {
		summary := pdfthumb.Summary{Total: len(files)}
		for _, f := range files {
			res := pdfthumb.Result{
				InputPath:  f,
				OutputPath: filepath.Join(bc.OutputDir, pdfthumb.Stem(f)+".jpg"),
			}
			if err := os.WriteFile(res.OutputPath, []byte("jpeg data"), 0644); err != nil {
				res.Err = err
				summary.Failed++
			} else {
				summary.Succeeded++
			}
			onResult(res)
		}
		return summary, nil
	}
	t.Cleanup(func() { runBatch = orig })
}

func newConvertContext(t *testing.T, files []uploadFile, fields map[string]string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(f.data); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write form field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	ctx.Request = req
	return ctx, w
}

type convertResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []fileResult `json:"errors"`
	Data    struct {
		JobID          string       `json:"jobId"`
		Results        []fileResult `json:"results"`
		ConvertedCount int          `json:"convertedCount"`
		FailedCount    int          `json:"failedCount"`
		TotalCount     int          `json:"totalCount"`
	} `json:"data"`
}

func decodeConvertResponse(t *testing.T, w *httptest.ResponseRecorder) convertResponse {
	t.Helper()
	var resp convertResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, w.Body.String())
	}
	return resp
}

func TestConvertIsolatesConcurrentSameNamedUploads(t *testing.T) {
	c, cfg := newTestController(t)
	stubBatchRunner(t)

	ctxA, wA := newConvertContext(t, []uploadFile{{name: "report.pdf", data: []byte("%PDF-1.4 a")}}, nil)
	ctxB, wB := newConvertContext(t, []uploadFile{{name: "report.pdf", data: []byte("%PDF-1.4 b")}}, nil)

	var wg sync.WaitGroup
	for _, ctx := range []*gin.Context{ctxA, ctxB} {
		wg.Add(1)
		go func(ctx *gin.Context) {
			defer wg.Done()
			c.Convert.Convert(ctx)
		}(ctx)
	}
	wg.Wait()

	respA := decodeConvertResponse(t, wA)
	respB := decodeConvertResponse(t, wB)

	for _, resp := range []convertResponse{respA, respB} {
		if !resp.Success || resp.Data.ConvertedCount != 1 {
			t.Fatalf("expected one converted file, got %+v", resp)
		}
		if resp.Data.JobID == "" {
			t.Fatal("expected a job ID")
		}
	}
	if respA.Data.JobID == respB.Data.JobID {
		t.Fatalf("expected distinct job IDs, both got %s", respA.Data.JobID)
	}

	// Each request keeps its own output; neither clobbered the other.
	for _, resp := range []convertResponse{respA, respB} {
		out := filepath.Join(cfg.Storage.OutputDir, resp.Data.JobID, "report.jpg")
		if _, err := os.Stat(out); err != nil {
			t.Errorf("job %s: expected output %s: %v", resp.Data.JobID, out, err)
		}
		uploadDir := filepath.Join(cfg.Storage.UploadDir, resp.Data.JobID)
		if _, err := os.Stat(uploadDir); !os.IsNotExist(err) {
			t.Errorf("job %s: expected upload dir to be cleaned up", resp.Data.JobID)
		}
	}
}

func TestConvertRejectsNonPDFUploads(t *testing.T) {
	c, cfg := newTestController(t)
	stubBatchRunner(t)

	ctx, w := newConvertContext(t, []uploadFile{{name: "notes.txt", data: []byte("plain text")}}, nil)
	c.Convert.Convert(ctx)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeConvertResponse(t, w)
	if resp.Success {
		t.Error("expected a failed response")
	}
	if resp.Message != "No valid PDF files uploaded" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Error != "not a PDF file" {
		t.Errorf("expected one 'not a PDF file' entry, got %+v", resp.Errors)
	}

	// The job directories must not outlive a fully rejected request.
	for _, root := range []string{cfg.Storage.UploadDir, cfg.Storage.OutputDir} {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		if len(entries) != 0 {
			t.Errorf("expected no job dirs under %s, got %d", root, len(entries))
		}
	}
}

func TestConvertCountsRejectedFilesAsFailed(t *testing.T) {
	c, _ := newTestController(t)
	stubBatchRunner(t)

	ctx, w := newConvertContext(t, []uploadFile{
		{name: "GOOD.PDF", data: []byte("%PDF-1.4")},
		{name: "notes.txt", data: []byte("plain text")},
	}, nil)
	c.Convert.Convert(ctx)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeConvertResponse(t, w)

	if resp.Data.ConvertedCount != 1 || resp.Data.FailedCount != 1 || resp.Data.TotalCount != 2 {
		t.Errorf("expected counts 1/1/2, got %d/%d/%d",
			resp.Data.ConvertedCount, resp.Data.FailedCount, resp.Data.TotalCount)
	}
	if len(resp.Data.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Data.Results))
	}

	byStatus := make(map[string]fileResult)
	for _, fr := range resp.Data.Results {
		byStatus[fr.Status] = fr
	}
	if fr := byStatus["error"]; fr.Filename != "notes.txt" || fr.Error != "not a PDF file" {
		t.Errorf("unexpected error result: %+v", fr)
	}
	if fr := byStatus["success"]; fr.Output != "GOOD.jpg" || fr.DownloadURL == "" {
		t.Errorf("unexpected success result: %+v", fr)
	}
}

func TestConvertUniquifiesDuplicateNamesWithinRequest(t *testing.T) {
	c, cfg := newTestController(t)
	stubBatchRunner(t)

	ctx, w := newConvertContext(t, []uploadFile{
		{name: "scan.pdf", data: []byte("%PDF-1.4 first")},
		{name: "scan.pdf", data: []byte("%PDF-1.4 second")},
	}, nil)
	c.Convert.Convert(ctx)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeConvertResponse(t, w)
	if resp.Data.ConvertedCount != 2 {
		t.Fatalf("expected both duplicates converted, got %+v", resp.Data)
	}

	outDir := filepath.Join(cfg.Storage.OutputDir, resp.Data.JobID)
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 2 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected 2 outputs, got %v", names)
	}

	var plain, prefixed bool
	for _, e := range entries {
		switch {
		case e.Name() == "scan.jpg":
			plain = true
		case strings.HasSuffix(e.Name(), "_scan.jpg"):
			prefixed = true
		}
	}
	if !plain || !prefixed {
		t.Errorf("expected scan.jpg plus a uniquified sibling, got plain=%v prefixed=%v", plain, prefixed)
	}
}

func TestConvertRejectsInvalidFormOptions(t *testing.T) {
	c, _ := newTestController(t)
	stubBatchRunner(t)

	ctx, w := newConvertContext(t,
		[]uploadFile{{name: "scan.pdf", data: []byte("%PDF-1.4")}},
		map[string]string{"dpi": "1200"})
	c.Convert.Convert(ctx)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for out-of-range dpi, got %d: %s", w.Code, w.Body.String())
	}
}
