package ai

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/turtacn/LexConnect/internal/config"
	"github.com/turtacn/LexConnect/internal/domain/legal"
	"github.com/turtacn/LexConnect/internal/intelligence/classifier"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	metrics "github.com/turtacn/LexConnect/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/LexConnect/pkg/errors"
)

// Classifier asks a language model for a (category, sub-specialty) pair and
// returns it in the same shape the rule engine produces.  Every failure is
// returned to the caller, who is expected to fall back to the rules.
type Classifier struct {
	backend Backend
	engine  *classifier.Engine
	breaker *gobreaker.CircuitBreaker
	timeout time.Duration
	metrics *metrics.AppMetrics
	logger  logging.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithMetrics records per-call outcomes on m.
func WithMetrics(m *metrics.AppMetrics) Option {
	return func(c *Classifier) { c.metrics = m }
}

// NewClassifier wraps backend in a circuit breaker configured by bc.  A zero
// timeout disables the per-call deadline.
func NewClassifier(backend Backend, engine *classifier.Engine, bc config.BreakerConfig, timeout time.Duration, log logging.Logger, opts ...Option) *Classifier {
	c := &Classifier{
		backend: backend,
		engine:  engine,
		timeout: timeout,
		metrics: metrics.NewNopMetrics(),
		logger:  log.Named("ai"),
	}
	for _, opt := range opts {
		opt(c)
	}

	threshold := bc.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ai-" + backend.Name(),
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state changed",
				logging.String("breaker", name),
				logging.String("from", from.String()),
				logging.String("to", to.String()))
		},
	})
	return c
}

// Provider names the backend in use.
func (c *Classifier) Provider() string { return c.backend.Name() }

// State reports the breaker state ("closed", "half-open", "open").
func (c *Classifier) State() string { return c.breaker.State().String() }

// Classify returns the model's classification of description.
func (c *Classifier) Classify(ctx context.Context, description, city string) (legal.ClassificationResult, error) {
	start := time.Now()
	res, err := c.classify(ctx, description, city)
	c.metrics.RecordAICall(c.backend.Name(), err, time.Since(start))
	if err != nil {
		c.logger.Warn("ai classification failed", logging.Err(err), logging.Duration("elapsed", time.Since(start)))
		return legal.ClassificationResult{}, err
	}
	c.logger.Debug("ai classification",
		logging.String("specialization", res.Specialization),
		logging.String("sub_specialty", res.SubSpecialty),
		logging.Int("confidence", res.Confidence))
	return res, nil
}

func (c *Classifier) classify(ctx context.Context, description, city string) (legal.ClassificationResult, error) {
	prompt, err := BuildPrompt(c.engine.KnowledgeBase(), description, city)
	if err != nil {
		return legal.ClassificationResult{}, err
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		callCtx := ctx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}
		raw, err := c.backend.Generate(callCtx, prompt)
		if err != nil {
			return nil, err
		}
		answer, err := ParseAnswer(raw)
		if err != nil {
			return nil, err
		}
		return c.resolve(answer)
	})
	if err != nil {
		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			return legal.ClassificationResult{}, errors.Wrap(err, errors.ErrCodeAICircuitOpen, "ai classifier unavailable")
		}
		if errors.GetCode(err) == errors.CodeUnknown {
			return legal.ClassificationResult{}, errors.Wrap(err, errors.ErrCodeAIInferenceFailed, "ai classification failed")
		}
		return legal.ClassificationResult{}, err
	}

	ans := out.(Answer)
	return c.result(description, ans), nil
}

// resolve maps the model's names onto canonical knowledge base names.
func (c *Classifier) resolve(a Answer) (Answer, error) {
	kb := c.engine.KnowledgeBase()
	for _, cat := range kb.Categories {
		if !strings.EqualFold(cat.Name, a.Specialization) {
			continue
		}
		for _, sub := range cat.SubSpecialties {
			if strings.EqualFold(sub.Name, a.SubSpecialty) {
				a.Specialization, a.SubSpecialty = cat.Name, sub.Name
				return a, nil
			}
		}
		return Answer{}, errors.New(errors.ErrCodeAIResponseInvalid, "unknown sub-specialty in model reply").
			WithDetail("category=" + cat.Name + " sub_specialty=" + a.SubSpecialty)
	}
	return Answer{}, errors.New(errors.ErrCodeAIResponseInvalid, "unknown specialization in model reply").
		WithDetail("specialization=" + a.Specialization)
}

// result scores the chosen profile with the rule engine.  When the rules find
// no evidence, the model's keywords that occur in the description stand in as
// keyword matches.
func (c *Classifier) result(description string, a Answer) legal.ClassificationResult {
	score, _ := c.engine.ScoreSubSpecialty(description, a.Specialization, a.SubSpecialty)
	res := c.engine.Result(score)

	if score.Total == 0 {
		lower := strings.ToLower(description)
		matched := make([]string, 0, len(a.MatchedKeywords))
		seen := make(map[string]struct{}, len(a.MatchedKeywords))
		for _, kw := range a.MatchedKeywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" || !strings.Contains(lower, kw) {
				continue
			}
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			matched = append(matched, kw)
		}
		if len(matched) > 0 {
			res.MatchedKeywords = matched
			res.Confidence = len(matched) * classifier.StandardWeights.Keyword
			res.ConfidenceLevel = legal.LevelForScore(res.Confidence)
			res.MatchType = legal.MatchKeyword
		}
	}

	res.Source = legal.SourceAI
	return res
}

//Personal.AI order the ending
