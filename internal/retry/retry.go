package retry

import (
	"context"
	"math"
	"math/rand"
	"time"

	"LogonTriage/internal/logger"
)

// Config configures the retry behavior
type Config struct {
	// MaxAttempts is the maximum number of attempts including the first attempt
	MaxAttempts int

	// InitialBackoff is the initial backoff duration
	InitialBackoff time.Duration

	// MaxBackoff is the maximum backoff duration
	MaxBackoff time.Duration

	// BackoffFactor is the factor by which the backoff increases
	BackoffFactor float64

	// RandomizationFactor is the factor by which the backoff is randomized
	RandomizationFactor float64
}

// DefaultConfig is used for report and dashboard writes
var DefaultConfig = Config{
	MaxAttempts:         3,
	InitialBackoff:      100 * time.Millisecond,
	MaxBackoff:          2 * time.Second,
	BackoffFactor:       2.0,
	RandomizationFactor: 0.5,
}

// Do runs fn until it succeeds, the attempts are exhausted or ctx is done.
// The last error from fn is returned.
func Do(ctx context.Context, operation string, config Config, fn func() error) error {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	var err error
	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err = fn(); err == nil {
			return nil
		}

		if attempt == config.MaxAttempts {
			break
		}

		backoff := calculateBackoff(attempt, config, r)
		logger.Debug("Retrying %s (attempt %d/%d) after %v: %v",
			operation, attempt, config.MaxAttempts, backoff, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return err
}

// calculateBackoff calculates the backoff duration for a given attempt
func calculateBackoff(attempt int, config Config, r *rand.Rand) time.Duration {
	backoff := float64(config.InitialBackoff) * math.Pow(config.BackoffFactor, float64(attempt-1))

	delta := config.RandomizationFactor * backoff
	min := backoff - delta
	max := backoff + delta
	backoff = min + (max-min)*r.Float64()

	if backoff > float64(config.MaxBackoff) {
		backoff = float64(config.MaxBackoff)
	}

	return time.Duration(backoff)
}
