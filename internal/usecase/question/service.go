package question

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/virtualta/internal/domain"
	logpkg "github.com/kailas-cloud/virtualta/internal/logger"
	"github.com/kailas-cloud/virtualta/internal/metrics"
	"github.com/kailas-cloud/virtualta/internal/usecase/matcher"
)

const (
	// DefaultMinDelay and DefaultMaxDelay bound the artificial answer latency.
	DefaultMinDelay = 500 * time.Millisecond
	DefaultMaxDelay = 2500 * time.Millisecond

	// DefaultRecentLimit is used when Recent is called without a positive limit.
	DefaultRecentLimit = 10
	// MaxRecentLimit caps Recent.
	MaxRecentLimit = 100
)

// Service answers questions and keeps the question log.
type Service struct {
	matcher  Matcher
	log      Log
	minDelay time.Duration
	maxDelay time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
	logger   *zap.Logger
}

// New creates a Service with the default artificial delay.
func New(m Matcher, log Log, logger *zap.Logger) *Service {
	return &Service{
		matcher:  m,
		log:      log,
		minDelay: DefaultMinDelay,
		maxDelay: DefaultMaxDelay,
		sleep:    sleepCtx,
		logger:   logger,
	}
}

// WithDelay sets the artificial delay range [minDelay, maxDelay). Zero values disable it.
func (s *Service) WithDelay(minDelay, maxDelay time.Duration) *Service {
	s.minDelay = max(minDelay, 0)
	s.maxDelay = max(maxDelay, s.minDelay)
	return s
}

// Ask answers a validated question. The answer content never depends on the delay.
func (s *Service) Ask(ctx context.Context, req domain.QuestionRequest) (domain.Answer, error) {
	d := s.nextDelay()
	if d > 0 {
		if err := s.sleep(ctx, d); err != nil {
			return domain.Answer{}, fmt.Errorf("%w: wait: %w", domain.ErrInternal, err)
		}
		metrics.ResponseDelay.Observe(d.Seconds())
	}

	res, err := s.match(req.Question)
	if err != nil {
		return domain.Answer{}, err
	}

	entry := res.EntryKey
	if entry == "" {
		entry = "none"
	}
	metrics.AnswersTotal.WithLabelValues(string(res.Outcome), entry).Inc()

	rec, err := s.log.Append(ctx, req.Question, res.Answer.Answer, res.Answer.Links)
	if err != nil {
		metrics.QuestionLogAppendsTotal.WithLabelValues("error").Inc()
		return domain.Answer{}, fmt.Errorf("%w: log question: %w", domain.ErrInternal, err)
	}
	metrics.QuestionLogAppendsTotal.WithLabelValues("ok").Inc()

	logpkg.FromContext(ctx).Info("question answered",
		zap.Int64("question_id", rec.ID),
		zap.String("outcome", string(res.Outcome)),
		zap.String("entry", res.EntryKey),
		zap.String("rule", res.Rule),
		zap.Int("score", res.Score),
		zap.Bool("has_image", req.HasImage()),
		zap.Duration("delay", d),
	)

	return res.Answer, nil
}

// Recent returns the most recent questions, newest first.
// limit <= 0 falls back to DefaultRecentLimit; larger values are capped at MaxRecentLimit.
func (s *Service) Recent(ctx context.Context, limit int) ([]domain.QuestionRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	limit = min(limit, MaxRecentLimit)

	recs, err := s.log.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent questions: %w", err)
	}
	return recs, nil
}

// match runs the matcher, converting a panic into ErrInternal.
func (s *Service) match(q string) (res matcher.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("matcher panic", zap.Any("panic", r), zap.Stack("stacktrace"))
			err = fmt.Errorf("%w: matcher panic: %v", domain.ErrInternal, r)
		}
	}()
	return s.matcher.Match(q), nil
}

func (s *Service) nextDelay() time.Duration {
	span := s.maxDelay - s.minDelay
	if span <= 0 {
		return s.minDelay
	}
	return s.minDelay + rand.N(span) //nolint:gosec // cosmetic jitter
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
