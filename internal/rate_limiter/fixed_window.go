package ratelimiter

import (
	"sync"
	"time"

	"github.com/pann/pdfthumb/internal/config"
	"go.uber.org/zap"
)

// FixedWindowRateLimiter counts requests per client within a fixed time
// frame. The first request from a client opens its window; the counter is
// dropped when the window elapses.
type FixedWindowRateLimiter struct {
	sync.Mutex
	clients map[string]int
	cfg     config.RateLimiterConfig
	logger  *zap.SugaredLogger
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]int),
		cfg:     cfg,
		logger:  logger,
	}
}

// Allow reports whether the client identified by ip may proceed. When the
// window budget is exhausted it returns false and how long to wait.
func (rl *FixedWindowRateLimiter) Allow(ip string) (bool, time.Duration) {
	if !rl.cfg.Enabled {
		return true, 0
	}

	rl.Lock()
	defer rl.Unlock()

	count, exists := rl.clients[ip]
	if exists && count >= rl.cfg.RequestsPerTimeFrame {
		if rl.logger != nil {
			rl.logger.Debugf("Rate limit exceeded for %s", ip)
		}
		return false, rl.cfg.TimeFrame
	}

	if !exists {
		go rl.resetCount(ip)
	}
	rl.clients[ip]++

	return true, 0
}

func (rl *FixedWindowRateLimiter) resetCount(ip string) {
	time.Sleep(rl.cfg.TimeFrame)

	rl.Lock()
	delete(rl.clients, ip)
	rl.Unlock()
}
