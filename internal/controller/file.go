package controller

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/pann/pdfthumb/internal/util"
)

type FileController struct {
	*baseController
}

var errInvalidJobID = errors.New("invalid job id")

func (fc FileController) jobOutputDir(ctx *gin.Context) (string, error) {
	jobID := ctx.Params.ByName("jobId")
	if !util.SafePathComponent(jobID) {
		return "", errInvalidJobID
	}

	dir := filepath.Join(fc.app.Config.Storage.OutputDir, jobID)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", os.ErrNotExist
	}
	return dir, nil
}

// DownloadFile serves one converted JPEG from a job.
func (fc FileController) DownloadFile(ctx *gin.Context) {
	dir, err := fc.jobOutputDir(ctx)
	if err != nil {
		if errors.Is(err, errInvalidJobID) {
			util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid job ID", util.GenerateErrorMessages(err, "jobId"), nil)
			return
		}
		util.ResponseFailed(ctx, http.StatusNotFound, "Job not found", util.GenerateErrorMessages(err, "jobId"), nil)
		return
	}

	filename := ctx.Params.ByName("filename")
	if !util.SafePathComponent(filename) {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid file name", util.GenerateErrorMessages(errors.New("invalid file name"), "filename"), nil)
		return
	}

	path := filepath.Join(dir, filename)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		util.ResponseFailed(ctx, http.StatusNotFound, "File not found", util.GenerateErrorMessages(err, "filename"), nil)
		return
	}

	ctx.FileAttachment(path, filename)
}

// DownloadArchive streams every converted file of a job as one ZIP.
func (fc FileController) DownloadArchive(ctx *gin.Context) {
	dir, err := fc.jobOutputDir(ctx)
	if err != nil {
		if errors.Is(err, errInvalidJobID) {
			util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid job ID", util.GenerateErrorMessages(err, "jobId"), nil)
			return
		}
		util.ResponseFailed(ctx, http.StatusNotFound, "Job not found", util.GenerateErrorMessages(err, "jobId"), nil)
		return
	}

	tmp, err := util.CreateTemp("pdfthumb_archive_*.zip")
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create archive", util.GenerateErrorMessages(err), nil)
		return
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := util.ZipDir(dir, tmp.Name()); err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to build archive", util.GenerateErrorMessages(err), nil)
		return
	}

	ctx.FileAttachment(tmp.Name(), "converted_images.zip")
}

// DeleteJob removes a job's uploaded and converted files.
func (fc FileController) DeleteJob(ctx *gin.Context) {
	jobID := ctx.Params.ByName("jobId")
	if !util.SafePathComponent(jobID) {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid job ID", util.GenerateErrorMessages(errInvalidJobID, "jobId"), nil)
		return
	}

	storage := fc.app.Config.Storage
	for _, dir := range []string{filepath.Join(storage.OutputDir, jobID), filepath.Join(storage.UploadDir, jobID)} {
		if err := os.RemoveAll(dir); err != nil {
			util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to clear job files", util.GenerateErrorMessages(err), nil)
			return
		}
	}

	util.ResponseSuccess(ctx, gin.H{
		"message": "Job files cleared",
	})
}
