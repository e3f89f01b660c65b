package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

type Policy struct {
	Attempts int
	Delay    time.Duration
	MaxDelay time.Duration
	Factor   float64
	Jitter   time.Duration
}

// NewPolicy backs off from 200ms, doubling up to 5s. attempts counts the
// first call; values below one run the operation once.
func NewPolicy(attempts int) Policy {
	return Policy{
		Attempts: attempts,
		Delay:    200 * time.Millisecond,
		MaxDelay: 5 * time.Second,
		Factor:   2,
		Jitter:   50 * time.Millisecond,
	}
}

type permanentError struct{ err error }

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth another attempt.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do runs op until it succeeds, returns a Permanent error, the attempts run
// out or ctx is done. The last error is returned unwrapped.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	delay := p.Delay
	attempts := max(p.Attempts, 1)

	var err error
	for attempt := 1; ; attempt++ {
		if err = op(ctx); err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if attempt >= attempts {
			return err
		}

		wait := min(delay, p.MaxDelay)
		if p.Jitter > 0 {
			wait += rand.N(p.Jitter)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		delay = time.Duration(float64(delay) * p.Factor)
	}
}
