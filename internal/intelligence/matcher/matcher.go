// Package matcher ranks roster lawyers against a classified case.  It filters
// by fuzzy city and exact specialization, scores sub-specialty overlap,
// experience and fee, and splits the result into exact, related and general
// tiers.  Every function is pure.
package matcher

import (
	"sort"
	"strings"

	"github.com/turtacn/LexConnect/internal/domain/lawyer"
	"github.com/turtacn/LexConnect/internal/domain/legal"
	"github.com/turtacn/LexConnect/internal/intelligence/textsim"
)

// CitySimilarityThreshold is the exclusive lower bound for a fuzzy city match.
const CitySimilarityThreshold = 0.4

const (
	baseScore = 50

	exactTier   = 100
	relatedTier = 75

	propertySpecialization = "Property"
	severityHigh           = legal.Severity("High")
	lowFeeCeiling          = 1000.0
)

// Reasons attached to scored lawyers.
const (
	ReasonExact          = "Exact sub-specialty match"
	ReasonHighlyRelevant = "Highly relevant sub-specialty"
	ReasonRelated        = "Related sub-specialty"
	ReasonPartial        = "Partial specialization match"
	ReasonSpecialization = "Specialization match"
)

// ScoredLawyer is a roster entry with its match score and reason.
type ScoredLawyer struct {
	lawyer.Lawyer
	MatchScore  int    `json:"matchScore"`
	MatchReason string `json:"matchReason"`
}

// Result groups qualifying lawyers by tier.  All holds every qualifying
// lawyer sorted by score, highest first, ties in roster order.
type Result struct {
	Exact   []ScoredLawyer `json:"exact"`
	Related []ScoredLawyer `json:"related"`
	General []ScoredLawyer `json:"general"`
	All     []ScoredLawyer `json:"all"`
}

// Match filters, scores and partitions roster for classification c in city.
func Match(roster []lawyer.Lawyer, c legal.ClassificationResult, city string) Result {
	res := Result{
		Exact:   []ScoredLawyer{},
		Related: []ScoredLawyer{},
		General: []ScoredLawyer{},
		All:     []ScoredLawyer{},
	}
	for _, l := range roster {
		if l.Specialization != c.Specialization || !CityMatches(l.Location, city) {
			continue
		}
		score := Score(l, c)
		res.All = append(res.All, ScoredLawyer{Lawyer: l, MatchScore: score, MatchReason: Reason(score)})
	}

	sort.SliceStable(res.All, func(i, j int) bool {
		return res.All[i].MatchScore > res.All[j].MatchScore
	})

	for _, s := range res.All {
		switch {
		case s.MatchScore >= exactTier:
			res.Exact = append(res.Exact, s)
		case s.MatchScore >= relatedTier:
			res.Related = append(res.Related, s)
		default:
			res.General = append(res.General, s)
		}
	}
	return res
}

// CityMatches reports whether location and city refer to the same place:
// either contains the other, case-insensitively, or they are similar enough
// to be a misspelling.
func CityMatches(location, city string) bool {
	loc := strings.ToLower(strings.TrimSpace(location))
	c := strings.ToLower(strings.TrimSpace(city))
	if strings.Contains(loc, c) || strings.Contains(c, loc) {
		return true
	}
	return textsim.Similarity(loc, c) > CitySimilarityThreshold
}

// Score computes a qualifying lawyer's match score.
func Score(l lawyer.Lawyer, c legal.ClassificationResult) int {
	score := baseScore
	sub := strings.ToLower(l.SubSpecialty)
	want := strings.TrimSpace(c.SubSpecialty)
	exact := want != "" && strings.EqualFold(strings.TrimSpace(l.SubSpecialty), want)
	isProperty := c.Specialization == propertySpecialization

	if isProperty {
		score += propertySubSpecialtyBonus(l, sub, exact, c.MatchedKeywords)
	} else {
		switch {
		case exact:
			score += 50
		case anyKeywordIn(sub, c.MatchedKeywords):
			score += 25
		}
	}

	switch {
	case isProperty && c.Severity == severityHigh:
		switch {
		case l.Experience >= 15:
			score += 15
		case l.Experience >= 10:
			score += 10
		case l.Experience >= 5:
			score += 5
		}
	case c.Severity == severityHigh && l.Experience >= 10:
		score += 10
	}

	if (c.Urgency == legal.UrgencyImmediate || c.Urgency == legal.UrgencyHigh) && l.Fee <= lowFeeCeiling {
		score += 5
	}
	return score
}

func propertySubSpecialtyBonus(l lawyer.Lawyer, sub string, exact bool, keywords []string) int {
	switch {
	case exact:
		return 50
	case containsAny(sub, "land disputes", "title issues", "partition"):
		return 40
	case containsAny(sub, "property", "real estate"):
		return 30
	case l.Specialization == "Civil" && containsAny(sub, "partition", "property"):
		return 25
	case l.Specialization == "Family" && strings.Contains(sub, "property"):
		return 20
	case anyKeywordIn(sub, keywords):
		return 15
	}
	return 0
}

// Reason maps a score to its human-readable band.
func Reason(score int) string {
	switch {
	case score >= 100:
		return ReasonExact
	case score >= 85:
		return ReasonHighlyRelevant
	case score >= 75:
		return ReasonRelated
	case score >= 65:
		return ReasonPartial
	default:
		return ReasonSpecialization
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func anyKeywordIn(sub string, keywords []string) bool {
	if sub == "" {
		return false
	}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(sub, kw) {
			return true
		}
	}
	return false
}

//Personal.AI order the ending
