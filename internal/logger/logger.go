package logger

import (
	"go.uber.org/zap"

	"derrclan.com/ayah-printer/internal/config"
)

// New returns a JSON production logger when cfg.Env is "production" and a
// console development logger, debug level included, for any other
// environment.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
