package tasks

import (
	"time"

	"github.com/mrlokans/orgauth/internal/config"
)

// Config holds configuration for the task queue.
type Config struct {
	// Workers is the number of concurrent task workers. Default: 1
	Workers int

	// ReleaseAfter is when stuck tasks are released back to the queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often completed tasks are purged. Default: 1h
	CleanupInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Workers:         1,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: time.Hour,
	}
}

// FromSettings builds a Config from application settings, keeping defaults
// for unset or invalid values.
func FromSettings(s config.Tasks) Config {
	cfg := DefaultConfig()
	if s.Workers > 0 {
		cfg.Workers = s.Workers
	}
	if s.ReleaseAfter > 0 {
		cfg.ReleaseAfter = s.ReleaseAfter
	}
	if s.CleanupInterval > 0 {
		cfg.CleanupInterval = s.CleanupInterval
	}
	return cfg
}
