package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pann/pdfthumb/internal/util"
)

func (m Middleware) RateLimiterMiddleware(ctx *gin.Context) {
	if m.rateLimiter == nil {
		ctx.Next()
		return
	}

	allow, retryAfter := m.rateLimiter.Allow(ctx.ClientIP())
	if !allow {
		m.app.Logger.Debugf("Rate limited %s", ctx.ClientIP())
		ctx.Header("Retry-After", retryAfter.String())
		util.ResponseFailed(ctx, http.StatusTooManyRequests, "Rate limit exceeded, please retry later", nil, nil)
		return
	}

	ctx.Next()
}
