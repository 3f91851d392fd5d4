package ratelimiter

import (
	"github.com/pann/pdfthumb/internal/config"
	"go.uber.org/zap"
)

func NewRateLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	return NewFixedWindowLimiter(cfg, logger)
}
