package dataset

import (
	"runtime"

	"go.uber.org/zap"
)

type config struct {
	logger  *zap.Logger
	workers int
}

// Option configures a Dataset.
type Option func(*config)

func defaultConfig() config {
	return config{
		logger:  zap.NewNop(),
		workers: runtime.GOMAXPROCS(0),
	}
}

// WithLogger sets the logger used for warnings and debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithWorkers limits how many curves are processed concurrently.
// Values below one select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		c.workers = n
	}
}
