package main

import (
	"os"

	appcontext "github.com/pann/pdfthumb/internal/app_context"
	"github.com/pann/pdfthumb/internal/config"
	"github.com/pann/pdfthumb/internal/controller"
	"github.com/pann/pdfthumb/internal/env"
	"github.com/pann/pdfthumb/internal/middleware"
	ratelimiter "github.com/pann/pdfthumb/internal/rate_limiter"
	"github.com/pann/pdfthumb/internal/route"
	"github.com/pann/pdfthumb/internal/util"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)
	logger.Debugf("Configuration: %+v \n", cfg)

	for _, dir := range []string{cfg.Storage.UploadDir, cfg.Storage.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Panicf("Error creating %s: %v", dir, err)
		}
	}

	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, logger)
	app := appcontext.Application{
		Config: &cfg,
		Logger: logger,
	}

	_middleware := middleware.NewMiddleware(&app, rateLimiter)

	if cfg.IsProduction() {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-Requested-With", "Accept"}
	r.Use(cors.New(corsConfig))

	_controller := controller.NewController(&app)

	r.GET("/", _controller.Index.Index)

	rApi := r.Group("/api")

	route.V1_Convert(rApi, _controller.Convert, _middleware)
	route.V1_Jobs(rApi, _controller.File)

	if err := r.Run("0.0.0.0:" + cfg.Port); err != nil {
		logger.Panicf("Error running server: %v \n", err)
	}
}
