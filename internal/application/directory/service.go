// Package directory lists, filters and registers roster lawyers.
package directory

import (
	"context"
	"sort"
	"strings"

	"github.com/turtacn/LexConnect/internal/domain/lawyer"
	"github.com/turtacn/LexConnect/internal/domain/legal"
	"github.com/turtacn/LexConnect/internal/intelligence/matcher"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LexConnect/pkg/errors"
)

// Filter narrows List.  Empty fields match everything.
type Filter struct {
	City           string `json:"city,omitempty"`
	Specialization string `json:"specialization,omitempty"`
}

// Service is the lawyer directory.
type Service interface {
	List(ctx context.Context, f Filter) ([]*lawyer.Lawyer, error)
	Get(ctx context.Context, id string) (*lawyer.Lawyer, error)
	Create(ctx context.Context, l *lawyer.Lawyer) (*lawyer.Lawyer, error)
	Taxonomy() []legal.TaxonomyEntry
}

type serviceImpl struct {
	lawyers lawyer.Repository
	kb      *legal.KnowledgeBase
	logger  logging.Logger
}

// NewService returns a directory over lawyers.  kb supplies the taxonomy.
func NewService(lawyers lawyer.Repository, kb *legal.KnowledgeBase, log logging.Logger) Service {
	return &serviceImpl{lawyers: lawyers, kb: kb, logger: log.Named("directory")}
}

// List returns lawyers matching f, most experienced first.  The city is
// matched the same fuzzy way the matcher does; a knowledge base category
// name is accepted in place of its roster specialization.
func (s *serviceImpl) List(ctx context.Context, f Filter) ([]*lawyer.Lawyer, error) {
	roster, err := s.lawyers.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRosterUnavailable, "failed to load lawyer roster")
	}

	spec := canonical(strings.TrimSpace(f.Specialization))
	if spec != "" && !legal.IsRosterSpecialization(spec) {
		cat, ok := s.kb.Category(spec)
		if !ok {
			return nil, errors.New(errors.ErrCodeSpecializationUnknown, "unknown specialization").
				WithDetail("specialization=" + spec)
		}
		spec = cat.RosterSpecialization
	}
	city := strings.TrimSpace(f.City)

	out := make([]*lawyer.Lawyer, 0, len(roster))
	for _, l := range roster {
		if spec != "" && l.Specialization != spec {
			continue
		}
		if city != "" && !matcher.CityMatches(l.Location, city) {
			continue
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Experience > out[j].Experience })
	return out, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (*lawyer.Lawyer, error) {
	return s.lawyers.GetByID(ctx, id)
}

// Create validates and stores a roster entry.
func (s *serviceImpl) Create(ctx context.Context, l *lawyer.Lawyer) (*lawyer.Lawyer, error) {
	l.Name = strings.TrimSpace(l.Name)
	l.Location = strings.TrimSpace(l.Location)
	l.Specialization = canonical(strings.TrimSpace(l.Specialization))
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := s.lawyers.Create(ctx, l); err != nil {
		return nil, err
	}
	s.logger.Info("lawyer registered",
		logging.String("lawyer_id", l.ID),
		logging.String("specialization", l.Specialization))
	return l, nil
}

func (s *serviceImpl) Taxonomy() []legal.TaxonomyEntry {
	return s.kb.Taxonomy()
}

// canonical maps a case-insensitive roster name to its canonical spelling.
// Other names are returned unchanged.
func canonical(name string) string {
	for _, r := range legal.RosterSpecializations {
		if strings.EqualFold(r, name) {
			return r
		}
	}
	return name
}

//Personal.AI order the ending
