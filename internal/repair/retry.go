package repair

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/googleapi"

	"github.com/jonathan/resume-guard/internal/types"
)

// Retry defaults
const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = time.Second
	DefaultMaxDelay   = 30 * time.Second
)

// Policy bounds retries. MaxRetries counts retries after the first attempt.
type Policy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// DefaultPolicy returns the default retry policy
func DefaultPolicy() Policy {
	return Policy{MaxRetries: DefaultMaxRetries, BaseDelay: DefaultBaseDelay, MaxDelay: DefaultMaxDelay}
}

// Decision is the outcome of a failed attempt
type Decision struct {
	Retry bool
	Delay time.Duration
	State State
}

// Decide chooses what follows failed attempt number n (1-based). The delay before retry n+1
// is BaseDelay * 2^(n-1), capped at MaxDelay. Cancellation and client-side API errors are
// never retried.
func (p Policy) Decide(attempt int, err error) Decision {
	if attempt > p.MaxRetries || !retryable(err) {
		return Decision{State: StateExhausted}
	}

	delay := p.BaseDelay << (attempt - 1)
	if delay <= 0 || (p.MaxDelay > 0 && delay > p.MaxDelay) {
		delay = p.MaxDelay
	}
	return Decision{Retry: true, Delay: delay, State: StateRetry}
}

func retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return false
		}
	}
	return true
}

// Generator produces one raw model response per attempt
type Generator interface {
	Generate(ctx context.Context, attempt int) (string, error)
}

// GeneratorFunc adapts a function to Generator
type GeneratorFunc func(ctx context.Context, attempt int) (string, error)

// Generate calls f
func (f GeneratorFunc) Generate(ctx context.Context, attempt int) (string, error) {
	return f(ctx, attempt)
}

// Sleeper waits between attempts
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerSleeper sleeps on a timer and returns early when ctx is done
type TimerSleeper struct{}

// Sleep waits for d or until ctx is done
func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Runner drives generate, validate, decide and sleep until a response validates or the
// policy is exhausted
type Runner struct {
	Generator Generator
	Sleeper   Sleeper
	Policy    Policy
	Logger    *slog.Logger
}

// NewRunner returns a Runner with the default policy and a real sleeper
func NewRunner(gen Generator, logger *slog.Logger) *Runner {
	return &Runner{
		Generator: gen,
		Sleeper:   TimerSleeper{},
		Policy:    DefaultPolicy(),
		Logger:    logger,
	}
}

// Run returns the first valid tailored resume along with every attempt made. After the last
// allowed attempt it returns an *ExhaustedError wrapping the final failure.
func (r *Runner) Run(ctx context.Context) (types.TailoredResume, []Attempt, error) {
	logger := r.logger()
	sleeper := r.Sleeper
	if sleeper == nil {
		sleeper = TimerSleeper{}
	}
	runID := uuid.NewString()

	if r.Generator == nil {
		return types.TailoredResume{}, nil, &GenerateError{Attempt: 1, Cause: errors.New("no generator configured")}
	}

	var attempts []Attempt
	for n := 1; ; n++ {
		attempt, resume, err := r.attempt(ctx, n)
		if err == nil {
			attempts = append(attempts, attempt)
			logger.Info("tailored response accepted",
				slog.String("run_id", runID),
				slog.Int("attempt", n),
				slog.Int("coercion_steps", len(attempt.Steps)),
			)
			return resume, attempts, nil
		}

		decision := r.Policy.Decide(n, err)
		attempt.enter(decision.State)
		attempts = append(attempts, attempt)

		if !decision.Retry {
			logger.Warn("tailored response attempts exhausted",
				slog.String("run_id", runID),
				slog.Int("attempts", n),
				slog.String("error", err.Error()),
			)
			return types.TailoredResume{}, attempts, &ExhaustedError{Attempts: attempts, Last: err}
		}

		logger.Warn("tailored response rejected, retrying",
			slog.String("run_id", runID),
			slog.Int("attempt", n),
			slog.String("state", string(attempt.Transitions[len(attempt.Transitions)-2])),
			slog.Duration("delay", decision.Delay),
			slog.String("error", err.Error()),
		)
		if err := sleeper.Sleep(ctx, decision.Delay); err != nil {
			return types.TailoredResume{}, attempts, &ExhaustedError{Attempts: attempts, Last: err}
		}
	}
}

func (r *Runner) attempt(ctx context.Context, n int) (Attempt, types.TailoredResume, error) {
	raw, err := r.Generator.Generate(ctx, n)
	if err != nil {
		a := newAttempt(raw, n)
		return a, types.TailoredResume{}, a.fail(&GenerateError{Attempt: n, Cause: err})
	}

	resume, a, err := ParseAndValidate(raw, n)
	return a, resume, err
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
