// Package consultation turns a client's free-text problem description into a
// legal classification and a ranked list of lawyers who can take the case.
package consultation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/turtacn/LexConnect/internal/domain/lawyer"
	"github.com/turtacn/LexConnect/internal/domain/legal"
	"github.com/turtacn/LexConnect/internal/intelligence/classifier"
	"github.com/turtacn/LexConnect/internal/intelligence/matcher"
	"github.com/turtacn/LexConnect/internal/infrastructure/database/redis"
	"github.com/turtacn/LexConnect/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	metrics "github.com/turtacn/LexConnect/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/LexConnect/pkg/errors"
)

// -----------------------------------------------------------------------
// Contracts
// -----------------------------------------------------------------------

// AIClassifier is the optional model-backed classifier tried before the rules.
type AIClassifier interface {
	Classify(ctx context.Context, description, city string) (legal.ClassificationResult, error)
	Provider() string
}

// Analysis is a classification together with the matching lawyers.
type Analysis struct {
	Classification legal.ClassificationResult `json:"classification"`
	// Specialization is the roster category the lawyers were filtered on.
	Specialization string         `json:"specialization"`
	Lawyers        matcher.Result `json:"lawyers"`
}

// Service classifies cases and finds lawyers for them.
type Service interface {
	Classify(ctx context.Context, description, city string) (*legal.ClassificationResult, error)
	Analyze(ctx context.Context, description, city string) (*Analysis, error)
}

// Deps wires a Service.  Engine and Lawyers are required.
type Deps struct {
	Engine   *classifier.Engine
	Lawyers  lawyer.Repository
	AI       AIClassifier
	Cache    redis.Cache
	CacheTTL time.Duration
	Events   kafka.EventPublisher
	Metrics  *metrics.AppMetrics
	Logger   logging.Logger
}

const (
	cacheName       = "classification"
	cacheKeyPrefix  = "classification:"
	defaultCacheTTL = time.Hour
)

type serviceImpl struct {
	engine   *classifier.Engine
	lawyers  lawyer.Repository
	ai       AIClassifier
	cache    redis.Cache
	cacheTTL time.Duration
	events   kafka.EventPublisher
	metrics  *metrics.AppMetrics
	logger   logging.Logger
}

// NewService validates deps and returns a Service.
func NewService(d Deps) (Service, error) {
	if d.Engine == nil {
		return nil, errors.InvalidParam("consultation: classifier engine is required")
	}
	if d.Lawyers == nil {
		return nil, errors.InvalidParam("consultation: lawyer repository is required")
	}
	s := &serviceImpl{
		engine:   d.Engine,
		lawyers:  d.Lawyers,
		ai:       d.AI,
		cache:    d.Cache,
		cacheTTL: d.CacheTTL,
		events:   d.Events,
		metrics:  d.Metrics,
		logger:   d.Logger,
	}
	if s.cacheTTL <= 0 {
		s.cacheTTL = defaultCacheTTL
	}
	if s.events == nil {
		s.events = kafka.NopPublisher{}
	}
	if s.metrics == nil {
		s.metrics = metrics.NewNopMetrics()
	}
	if s.logger == nil {
		s.logger = logging.NewNopLogger()
	}
	s.logger = s.logger.Named("consultation")
	return s, nil
}

// -----------------------------------------------------------------------
// Classify
// -----------------------------------------------------------------------

func (s *serviceImpl) Classify(ctx context.Context, description, city string) (*legal.ClassificationResult, error) {
	normalised := Normalise(description)
	if normalised == "" {
		res := legal.DefaultClassification()
		return &res, nil
	}

	key := CacheKey(normalised)
	if res, ok := s.fromCache(ctx, key); ok {
		return res, nil
	}

	start := time.Now()
	res, primary := s.classify(ctx, description, city)
	s.metrics.RecordClassification(string(res.Source), string(res.MatchType), string(res.ConfidenceLevel), time.Since(start))

	if primary {
		s.toCache(ctx, key, res)
	}
	s.publishClassified(ctx, city, res)
	return &res, nil
}

// classify tries the AI classifier and falls back to the rules.  primary is
// false when the fallback was taken because the AI failed.
func (s *serviceImpl) classify(ctx context.Context, description, city string) (legal.ClassificationResult, bool) {
	if s.ai != nil {
		res, err := s.ai.Classify(ctx, description, city)
		if err == nil {
			return res, true
		}
		s.logger.Warn("ai classification failed, using rules",
			logging.String("provider", s.ai.Provider()),
			logging.String("code", errors.GetCode(err).String()),
			logging.Err(err))
		return s.engine.Classify(description, city), false
	}
	return s.engine.Classify(description, city), true
}

func (s *serviceImpl) fromCache(ctx context.Context, key string) (*legal.ClassificationResult, bool) {
	if s.cache == nil {
		return nil, false
	}
	var res legal.ClassificationResult
	if err := s.cache.Get(ctx, key, &res); err != nil {
		if !errors.IsNotFound(err) {
			s.logger.Warn("classification cache read failed", logging.Err(err))
		}
		s.metrics.RecordCacheAccess(cacheName, false)
		return nil, false
	}
	s.metrics.RecordCacheAccess(cacheName, true)
	return &res, true
}

func (s *serviceImpl) toCache(ctx context.Context, key string, res legal.ClassificationResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, res, s.cacheTTL); err != nil {
		s.logger.Warn("classification cache write failed", logging.Err(err))
	}
}

func (s *serviceImpl) publishClassified(ctx context.Context, city string, res legal.ClassificationResult) {
	payload := kafka.CaseClassifiedPayload{
		City:            city,
		Specialization:  res.Specialization,
		SubSpecialty:    res.SubSpecialty,
		Confidence:      res.Confidence,
		ConfidenceLevel: string(res.ConfidenceLevel),
		MatchType:       string(res.MatchType),
		Source:          string(res.Source),
		MatchedKeywords: res.MatchedKeywords,
	}
	err := s.events.Publish(ctx, kafka.TopicCaseClassified, res.Specialization, payload)
	s.metrics.RecordEvent(kafka.TopicCaseClassified, err)
	if err != nil {
		s.logger.Warn("failed to publish event", logging.String("topic", kafka.TopicCaseClassified), logging.Err(err))
	}
}

// -----------------------------------------------------------------------
// Analyze
// -----------------------------------------------------------------------

func (s *serviceImpl) Analyze(ctx context.Context, description, city string) (*Analysis, error) {
	res, err := s.Classify(ctx, description, city)
	if err != nil {
		return nil, err
	}

	roster, err := s.lawyers.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRosterUnavailable, "failed to load lawyer roster")
	}
	entries := make([]lawyer.Lawyer, 0, len(roster))
	for _, l := range roster {
		entries = append(entries, *l)
	}

	target := *res
	target.Specialization = s.engine.KnowledgeBase().RosterSpecialization(res.Specialization)
	matches := matcher.Match(entries, target, city)
	s.metrics.RecordLawyerMatches(len(matches.Exact), len(matches.Related), len(matches.General))

	s.logger.Debug("case analysed",
		logging.String("specialization", res.Specialization),
		logging.String("roster", target.Specialization),
		logging.Int("lawyers", len(matches.All)))

	return &Analysis{
		Classification: *res,
		Specialization: target.Specialization,
		Lawyers:        matches,
	}, nil
}

// -----------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------

// Normalise folds case, Unicode form and whitespace so equivalent
// descriptions share a cache entry.
func Normalise(description string) string {
	return strings.Join(strings.Fields(strings.ToLower(norm.NFKC.String(description))), " ")
}

// CacheKey returns the cache key for a normalised description.
func CacheKey(normalised string) string {
	sum := sha256.Sum256([]byte(normalised))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

//Personal.AI order the ending
