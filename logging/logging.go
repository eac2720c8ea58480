// Package logging bootstraps the process-wide zap logger for the suite.
package logging

import (
	"sync"

	"go.uber.org/zap"
)

var initOnce sync.Once

// Init installs the global logger. Debug switches to the human-readable
// development encoder with debug-level output.
func Init(debug bool) {
	initOnce.Do(func() {
		var logger *zap.Logger
		var err error
		if debug {
			logger, err = zap.NewDevelopment()
		} else {
			cfg := zap.NewProductionConfig()
			cfg.DisableStacktrace = true
			logger, err = cfg.Build()
		}
		if err != nil {
			logger = zap.NewNop()
		}
		zap.ReplaceGlobals(logger)
	})
}

// L returns the global sugared logger.
func L() *zap.SugaredLogger {
	return zap.S()
}
