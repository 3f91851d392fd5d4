package route

import (
	"github.com/gin-gonic/gin"
	"github.com/pann/pdfthumb/internal/controller"
)

func V1_Jobs(r *gin.RouterGroup, fileController *controller.FileController) {
	v1 := r.Group("/v1/jobs")
	{
		v1.GET("/:jobId/files/:filename", fileController.DownloadFile)
		v1.GET("/:jobId/archive", fileController.DownloadArchive)
		v1.DELETE("/:jobId", fileController.DeleteJob)
	}
}
