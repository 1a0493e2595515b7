package retry

import (
	"context"
	"errors"
	"time"
)

var ErrContextCanceled = errors.New("context canceled during retry")

// Config controls how many times an operation runs and how long to wait between runs.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first one.
	MaxAttempts int
	// InitialInterval is multiplied by 2^attempt to get the wait after a failed attempt.
	InitialInterval time.Duration
	// MaxInterval caps the wait.
	MaxInterval time.Duration
}

// DefaultConfig waits 2s then 4s between three attempts.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:     3,
		InitialInterval: 1 * time.Second,
		MaxInterval:     8 * time.Second,
	}
}

// Operation is one attempt of the retried work.
type Operation[T any] func(ctx context.Context) (T, error)

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Classifier reports whether err is worth another attempt.
type Classifier func(err error) bool

// Callback is invoked before waiting for the next attempt.
type Callback func(attempt int, err error, next time.Duration)

// PermanentError wraps an error that must not be retried.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// Permanent marks err as not retryable.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var permErr *PermanentError
	return errors.As(err, &permErr)
}

// Result is the outcome of Do. Exactly one of Value or Err is meaningful.
type Result[T any] struct {
	Value T
	// Err is nil on success. For exhausted retries it is the last attempt's error.
	Err error
	// Attempts counts every call of the operation.
	Attempts int
	// Exhausted is true when every attempt failed with a retryable error.
	Exhausted bool
	// Waited is the total backoff time requested between attempts.
	Waited time.Duration
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}

type Retrier struct {
	config    Config
	sleep     Sleeper
	retryable Classifier
	onRetry   Callback
}

type Option func(*Retrier)

// WithSleeper replaces the real wait, mostly for tests.
func WithSleeper(s Sleeper) Option {
	return func(r *Retrier) { r.sleep = s }
}

// WithClassifier decides which errors get another attempt. Permanent errors
// and context errors are never retried regardless of the classifier.
func WithClassifier(c Classifier) Option {
	return func(r *Retrier) { r.retryable = c }
}

func WithCallback(cb Callback) Option {
	return func(r *Retrier) { r.onRetry = cb }
}

func New(config Config, opts ...Option) *Retrier {
	defaults := DefaultConfig()
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	if config.InitialInterval <= 0 {
		config.InitialInterval = defaults.InitialInterval
	}
	if config.MaxInterval < config.InitialInterval {
		config.MaxInterval = config.InitialInterval
	}

	r := &Retrier{
		config:    config,
		sleep:     SleepContext,
		retryable: func(error) bool { return true },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Retrier) Config() Config {
	return r.config
}

// Backoff returns the wait after the given failed attempt (1-based):
// min(2^attempt * InitialInterval, MaxInterval).
func (r *Retrier) Backoff(attempt int) time.Duration {
	interval := r.config.InitialInterval
	for i := 0; i < attempt; i++ {
		interval *= 2
		if interval >= r.config.MaxInterval {
			return r.config.MaxInterval
		}
	}
	return interval
}

// Do runs op until it succeeds, fails permanently, or runs out of attempts.
func Do[T any](ctx context.Context, r *Retrier, op Operation[T]) Result[T] {
	var result Result[T]

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			result.Err = errors.Join(ErrContextCanceled, err)
			return result
		}

		result.Attempts = attempt
		value, err := op(ctx)
		if err == nil {
			result.Value = value
			result.Err = nil
			return result
		}
		result.Err = err

		if IsPermanent(err) || errors.Is(err, context.Canceled) || !r.retryable(err) {
			return result
		}
		if attempt == r.config.MaxAttempts {
			break
		}

		wait := r.Backoff(attempt)
		if r.onRetry != nil {
			r.onRetry(attempt, err, wait)
		}
		result.Waited += wait
		if err := r.sleep(ctx, wait); err != nil {
			result.Err = errors.Join(ErrContextCanceled, err)
			return result
		}
	}

	result.Exhausted = true
	return result
}

// SleepContext blocks for d or until ctx is done.
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
