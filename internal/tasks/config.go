package tasks

import "time"

// Config holds configuration for the task queue.
type Config struct {
	// Workers is the number of concurrent task workers. Default: 2
	Workers int

	// ReleaseAfter is when stuck tasks are released back to queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often backlite purges finished tasks. Default: 1h
	CleanupInterval time.Duration

	// AuditRetentionDays is passed to every queued audit cleanup. Default: 30
	AuditRetentionDays int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:            2,
		ReleaseAfter:       15 * time.Minute,
		CleanupInterval:    1 * time.Hour,
		AuditRetentionDays: 30,
	}
}
