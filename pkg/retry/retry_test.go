package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts int) Policy {
	return Policy{Attempts: attempts, Delay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Factor: 2}
}

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(3), func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(3), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_AttemptsExhausted(t *testing.T) {
	want := errors.New("still down")
	calls := 0
	err := Do(context.Background(), fastPolicy(2), func(context.Context) error {
		calls++
		return want
	})

	assert.ErrorIs(t, err, want)
	assert.Equal(t, 2, calls)
}

func TestDo_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_ = Do(context.Background(), fastPolicy(0), func(context.Context) error {
		calls++
		return errors.New("fail")
	})
	assert.Equal(t, 1, calls)
}

func TestDo_PermanentStops(t *testing.T) {
	want := errors.New("bad api key")
	calls := 0
	err := Do(context.Background(), fastPolicy(5), func(context.Context) error {
		calls++
		return Permanent(want)
	})

	assert.Equal(t, want, err)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := fastPolicy(5)
	p.Delay = time.Second
	p.MaxDelay = time.Second

	err := Do(ctx, p, func(context.Context) error {
		cancel()
		return errors.New("fail")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPermanent_Nil(t *testing.T) {
	assert.NoError(t, Permanent(nil))
}
