package job

import "time"

// Config controls retries, timeouts, expiry and concurrency.
type Config struct {
	// MaxAttempts is the retry budget per job, including the first attempt.
	MaxAttempts int
	// BaseBackoff is the wait after the first transient failure. It doubles
	// after each further failure.
	BaseBackoff time.Duration
	// AttemptTimeout bounds a single strategy run.
	AttemptTimeout time.Duration
	// Expiry is how long a job remains visible after submission.
	Expiry time.Duration
	// SweepInterval is how often Start's background loop evicts expired jobs.
	SweepInterval time.Duration
	// MaxConcurrent caps how many jobs run strategies at the same time.
	MaxConcurrent int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		BaseBackoff:    1500 * time.Millisecond,
		AttemptTimeout: 60 * time.Second,
		Expiry:         time.Hour,
		SweepInterval:  time.Minute,
		MaxConcurrent:  4,
	}
}

// withDefaults fills zero or negative fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.BaseBackoff <= 0 {
		c.BaseBackoff = d.BaseBackoff
	}
	if c.AttemptTimeout <= 0 {
		c.AttemptTimeout = d.AttemptTimeout
	}
	if c.Expiry <= 0 {
		c.Expiry = d.Expiry
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = d.SweepInterval
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = d.MaxConcurrent
	}
	return c
}

// Backoff returns the wait after the given failed attempt (1-based):
// base, 2*base, 4*base, ...
func Backoff(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return base * time.Duration(1<<(attempt-1))
}
