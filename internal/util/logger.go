package util

import "go.uber.org/zap"

// NewLogger builds the sugared logger shared by the conversion service:
// structured JSON output in production, human-readable console output for
// everything else.
func NewLogger(env string) *zap.SugaredLogger {
	if env == "production" {
		return zap.Must(zap.NewProduction()).Sugar()
	}
	return zap.Must(zap.NewDevelopment()).Sugar()
}
