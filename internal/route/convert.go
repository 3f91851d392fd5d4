package route

import (
	"github.com/gin-gonic/gin"
	"github.com/pann/pdfthumb/internal/controller"
	"github.com/pann/pdfthumb/internal/middleware"
)

func V1_Convert(r *gin.RouterGroup, convertController *controller.ConvertController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1")
	{
		v1.POST("/convert", middleware.RateLimiterMiddleware, convertController.Convert)
	}
}
