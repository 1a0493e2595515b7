package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	planserrors "utsav/internal/plans/errors"
	"utsav/internal/plans/repository"
	"utsav/internal/plans/validator"
	"utsav/pkg/config"
	apperrors "utsav/pkg/errors"
	"utsav/pkg/llm"
	"utsav/pkg/model"
	"utsav/pkg/retry"
	"utsav/pkg/sanitizer"
)

const (
	MsgMissingDetails = "Missing required event details."
	MsgInvalidDetails = "Invalid event details."
	MsgUnavailable    = "Unable to generate event plan at the moment. Please try again later."
)

type PlanService interface {
	Generate(ctx context.Context, req *model.EventPlanRequest) (*model.EventPlan, error)
}

type planService struct {
	completer llm.Completer
	cache     repository.PlanCache
	validator *validator.PlanValidator
	retrier   *retry.Retrier
	cfg       *config.Config
	now       func() time.Time
}

type Option func(*planService)

// WithSleeper replaces the backoff wait, mostly for tests.
func WithSleeper(sleep retry.Sleeper) Option {
	return func(s *planService) {
		s.retrier = s.newRetrier(sleep)
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *planService) { s.now = now }
}

func NewPlanService(
	completer llm.Completer,
	cache repository.PlanCache,
	validator *validator.PlanValidator,
	cfg *config.Config,
	opts ...Option,
) PlanService {
	if cache == nil {
		cache = repository.NoopPlanCache{}
	}
	s := &planService{
		completer: completer,
		cache:     cache,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
	s.retrier = s.newRetrier(retry.SleepContext)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *planService) newRetrier(sleep retry.Sleeper) *retry.Retrier {
	return retry.New(
		retry.Config{
			MaxAttempts:     s.cfg.AIMaxAttempts,
			InitialInterval: s.cfg.AIBackoffBase,
			MaxInterval:     s.cfg.AIBackoffMax,
		},
		retry.WithSleeper(sleep),
		retry.WithClassifier(llm.IsRetryable),
		retry.WithCallback(func(attempt int, err error, next time.Duration) {
			s.cfg.Log.Warn("Plan generation attempt failed, retrying",
				"attempt", attempt,
				"max_attempts", s.cfg.AIMaxAttempts,
				"delay", next,
				"error", err,
			)
		}),
	)
}

// Generate returns a validated, cleaned plan. Completion and validation run
// under one retry policy, so an incomplete plan costs an attempt like a
// failed request does.
func (s *planService) Generate(ctx context.Context, req *model.EventPlanRequest) (*model.EventPlan, error) {
	s.sanitize(req)

	if problems := s.validator.Validate(req); len(problems) > 0 {
		msg := MsgInvalidDetails
		for _, problem := range problems {
			if problem == "is required" {
				msg = MsgMissingDetails
				break
			}
		}
		return nil, apperrors.Validation(msg, map[string]any{"fields": problems})
	}

	cached, err := s.cache.Get(ctx, req)
	switch {
	case err == nil:
		cached.Cached = true
		return cached, nil
	case !errors.Is(err, planserrors.ErrCacheMiss):
		s.cfg.Log.Warn("Plan cache lookup failed", "error", err)
	}

	prompt := BuildPrompt(req)
	result := retry.Do(ctx, s.retrier, func(ctx context.Context) (*model.EventPlan, error) {
		return s.attempt(ctx, prompt)
	})
	if !result.OK() {
		return nil, s.upstreamError(result.Err, result.Attempts)
	}

	plan := result.Value
	plan.Attempts = result.Attempts
	plan.GeneratedAt = s.now().UTC()

	if err := s.cache.Set(ctx, req, plan); err != nil {
		s.cfg.Log.Warn("Failed to cache plan", "error", err)
	}

	s.cfg.Log.Info("Event plan generated",
		"event_type", req.EventType,
		"location", req.Location,
		"attempts", result.Attempts,
		"model", plan.Model,
	)
	return plan, nil
}

func (s *planService) attempt(ctx context.Context, prompt string) (*model.EventPlan, error) {
	completion, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if err := validator.ValidatePlan(completion.Content); err != nil {
		return nil, err
	}

	text := CleanPlan(completion.Content)
	return &model.EventPlan{
		Text:     text,
		Sections: ParseSections(text),
		Model:    completion.Model,
	}, nil
}

func (s *planService) upstreamError(err error, attempts int) error {
	details := map[string]any{
		"attempts": attempts,
		"reason":   failureReason(err),
	}

	var incomplete *planserrors.IncompletePlanError
	if errors.As(err, &incomplete) {
		details["missing_sections"] = incomplete.Missing
	}

	s.cfg.Log.Error("Plan generation failed",
		"attempts", attempts,
		"reason", details["reason"],
		"error", err,
	)
	return apperrors.Upstream(MsgUnavailable, err).WithDetails(details)
}

func failureReason(err error) string {
	var providerErr *llm.ProviderError
	var incomplete *planserrors.IncompletePlanError

	switch {
	case errors.As(err, &providerErr) && providerErr.IsAuth():
		return "authorization"
	case errors.As(err, &providerErr) && providerErr.StatusCode == http.StatusTooManyRequests:
		return "rate_limited"
	case errors.As(err, &providerErr):
		return "provider_error"
	case errors.Is(err, llm.ErrMissingAPIKey):
		return "not_configured"
	case errors.Is(err, llm.ErrMalformedResponse):
		return "malformed_response"
	case errors.As(err, &incomplete):
		return "incomplete_plan"
	case errors.Is(err, planserrors.ErrPlanTooShort):
		return "too_short"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "unavailable"
	}
}

func (s *planService) sanitize(req *model.EventPlanRequest) {
	req.EventType = sanitizer.TrimAndNormalize(req.EventType)
	req.Location = sanitizer.TrimAndNormalize(req.Location)
	req.Preferences = sanitizer.TrimAndNormalize(req.Preferences)
}
