package config

import (
	"strings"
	"time"

	"github.com/pann/pdfthumb/internal/env"
	"github.com/pann/pdfthumb/pkg/pdfthumb"
)

type Config struct {
	Port        string
	ENV         string
	RateLimiter RateLimiterConfig
	Storage     StorageConfig
	Convert     ConvertConfig
}

type RateLimiterConfig struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

// StorageConfig holds the shared upload/output roots. Each web request works
// in its own job subdirectory underneath these, so concurrent requests never
// collide.
type StorageConfig struct {
	UploadDir string
	OutputDir string
	// JobRetention is how long a job's files are kept before the sweep
	// removes them.
	JobRetention time.Duration
}

// ConvertConfig carries the server-side conversion defaults; per-request form
// values override them.
type ConvertConfig struct {
	DPI         int
	Quality     int
	ScaleFactor float64
	Workers     int
}

func (c ConvertConfig) Options() pdfthumb.Options {
	return pdfthumb.Options{
		DPI:         c.DPI,
		Quality:     c.Quality,
		ScaleFactor: c.ScaleFactor,
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.ENV, "production")
}

func GetConfig() Config {
	jobRetention, err := time.ParseDuration(env.GetString("JOB_RETENTION", "1h"))
	if err != nil {
		jobRetention = time.Hour
	}

	rateLimitTimeFrame, err := time.ParseDuration(env.GetString("RATE_LIMIT_TIME_FRAME", "1m"))
	if err != nil {
		rateLimitTimeFrame = 60 * time.Second
	}

	return Config{
		Port: env.GetString("PORT", "8080"),
		ENV:  env.GetString("ENV", "development"),
		// By default allow 100 conversion requests per minute per client
		RateLimiter: RateLimiterConfig{
			RequestsPerTimeFrame: env.GetInt("RATE_LIMIT_REQUESTS_PER_TIME_FRAME", 100),
			TimeFrame:            rateLimitTimeFrame,
			Enabled:              env.GetBool("RATE_LIMIT_ENABLED", true),
		},
		Storage: StorageConfig{
			UploadDir:    env.GetString("UPLOAD_DIR", "uploads"),
			OutputDir:    env.GetString("OUTPUT_DIR", "outputs"),
			JobRetention: jobRetention,
		},
		Convert: ConvertConfig{
			DPI:         env.GetInt("CONVERT_DPI", pdfthumb.DefaultDPI),
			Quality:     env.GetInt("CONVERT_QUALITY", pdfthumb.DefaultQuality),
			ScaleFactor: env.GetFloat("CONVERT_SCALE_FACTOR", pdfthumb.DefaultScaleFactor),
			Workers:     env.GetInt("CONVERT_WORKERS", pdfthumb.DefaultWorkers),
		},
	}
}
