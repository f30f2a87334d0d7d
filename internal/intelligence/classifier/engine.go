// Package classifier implements the rule-based legal case classifier.  It
// scores a free-text description against every sub-specialty profile of a
// legal.KnowledgeBase using five weighted signals, consults niche shortcuts,
// and finally applies priority override patterns.
package classifier

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/turtacn/LexConnect/internal/domain/legal"
	"github.com/turtacn/LexConnect/internal/intelligence/textsim"
)

// Matching thresholds.
const (
	// FuzzySimilarityThreshold is the exclusive lower bound for a token to
	// fuzzily match a keyword.
	FuzzySimilarityThreshold = 0.8

	// fuzzyMinTokenLen and partialMinTokenLen are exclusive token length gates.
	fuzzyMinTokenLen   = 3
	partialMinTokenLen = 4
)

// Weights per signal.  Criminal Law profiles weigh heavier.
type Weights struct {
	Phrase      int
	Combination int
	Keyword     int
	Fuzzy       int
	Partial     int
}

var (
	CriminalWeights = Weights{Phrase: 8, Combination: 7, Keyword: 5, Fuzzy: 4, Partial: 2}
	StandardWeights = Weights{Phrase: 5, Combination: 4, Keyword: 3, Fuzzy: 2, Partial: 1}
)

const (
	criticalBonus = 3

	nicheKeywordWeight = 3
	nicheFuzzyWeight   = 2

	minPriorityTriggers = 2
	priorityPerTrigger  = 6
	priorityBonus       = 12
)

// signal is a bit set of the signals that contributed to a score.
type signal uint8

const (
	sigKeyword signal = 1 << iota
	sigPhrase
	sigCombination
	sigFuzzy
	sigPartial
)

// matchType applies the precedence phrase > combination > fuzzy > partial > keyword.
func (s signal) matchType() legal.MatchType {
	switch {
	case s&sigPhrase != 0:
		return legal.MatchPhrase
	case s&sigCombination != 0:
		return legal.MatchCombination
	case s&sigFuzzy != 0:
		return legal.MatchFuzzy
	case s&sigPartial != 0:
		return legal.MatchPartial
	case s&sigKeyword != 0:
		return legal.MatchKeyword
	}
	return legal.MatchNone
}

// Score is the breakdown of one profile's score against a description.
type Score struct {
	Category     string
	SubSpecialty string
	Total        int
	Matched      []string
	signals      signal
	override     bool
}

// MatchType reports the strongest signal behind the score.
func (s Score) MatchType() legal.MatchType {
	if s.override {
		return legal.MatchPriorityPattern
	}
	return s.signals.matchType()
}

// Engine classifies descriptions against an immutable knowledge base.  It
// holds no mutable state and is safe for concurrent use.
type Engine struct {
	kb *legal.KnowledgeBase
}

// New returns an Engine over kb.
func New(kb *legal.KnowledgeBase) *Engine {
	return &Engine{kb: kb}
}

// KnowledgeBase returns the taxonomy the engine scores against.
func (e *Engine) KnowledgeBase() *legal.KnowledgeBase { return e.kb }

// input is a normalised description.
type input struct {
	text   string
	tokens []string
}

func prepare(description string) input {
	text := strings.ToLower(norm.NFKC.String(description))
	return input{text: text, tokens: strings.Fields(text)}
}

// Classify returns the best (category, sub-specialty) for description.  It
// never fails: an unmatched description yields legal.DefaultClassification.
// city is accepted for parity with other classifiers and does not affect
// scoring.
func (e *Engine) Classify(description, city string) legal.ClassificationResult {
	in := prepare(description)
	if len(in.tokens) == 0 {
		return legal.DefaultClassification()
	}

	var best Score
	for _, cat := range e.kb.Categories {
		for i := range cat.SubSpecialties {
			s := scoreProfile(in, cat.Name, &cat.SubSpecialties[i])
			if s.Total > best.Total {
				best = s
			}
		}
	}

	for _, niche := range e.kb.Niches {
		s := scoreNiche(in, niche)
		if s.Total > best.Total {
			best = s
		}
	}

	if p, ok := e.priorityOverride(in, best.Total); ok {
		best = p
	}

	if best.Total == 0 {
		return legal.DefaultClassification()
	}
	return e.result(best)
}

// ScoreSubSpecialty scores description against a single named profile.  The
// AI classifier uses it to attach rule evidence to a model's choice.
func (e *Engine) ScoreSubSpecialty(description, category, sub string) (Score, bool) {
	profile, ok := e.kb.Lookup(category, sub)
	if !ok {
		return Score{}, false
	}
	return scoreProfile(prepare(description), category, profile), true
}

// Result converts a score into a classification populated from the profile.
func (e *Engine) Result(s Score) legal.ClassificationResult {
	if s.Total == 0 && s.Category == "" {
		return legal.DefaultClassification()
	}
	return e.result(s)
}

func (e *Engine) result(s Score) legal.ClassificationResult {
	res, ok := e.kb.ResultFor(s.Category, s.SubSpecialty)
	if !ok {
		return legal.DefaultClassification()
	}
	res.Confidence = s.Total
	res.ConfidenceLevel = legal.LevelForScore(s.Total)
	res.MatchType = s.MatchType()
	if s.Matched != nil {
		res.MatchedKeywords = s.Matched
	}
	return res
}

// ─────────────────────────────────────────────────────────────────────────────
// Signals
// ─────────────────────────────────────────────────────────────────────────────

type collector struct {
	score Score
	seen  map[string]struct{}
}

func newCollector(category, sub string) *collector {
	return &collector{
		score: Score{Category: category, SubSpecialty: sub, Matched: []string{}},
		seen:  make(map[string]struct{}),
	}
}

func (c *collector) add(sig signal, weight int, term string) {
	if weight == 0 {
		return
	}
	c.score.Total += weight
	c.score.signals |= sig
	if _, dup := c.seen[term]; !dup {
		c.seen[term] = struct{}{}
		c.score.Matched = append(c.score.Matched, term)
	}
}

func scoreProfile(in input, category string, p *legal.SubSpecialty) Score {
	w := StandardWeights
	if category == legal.CriminalLaw {
		w = CriminalWeights
	}
	c := newCollector(category, p.Name)

	for _, phrase := range p.PhrasePatterns {
		if strings.Contains(in.text, phrase) {
			c.add(sigPhrase, w.Phrase, phrase)
		}
	}

	for _, wc := range p.WordCombinations {
		if combinationMatches(in.tokens, wc.Words) {
			weight := wc.Weight
			if weight == 0 {
				weight = w.Combination
			}
			c.add(sigCombination, weight, strings.Join(wc.Words, " "))
		}
	}

	for _, kw := range p.Keywords {
		if strings.Contains(in.text, kw) {
			c.add(sigKeyword, w.Keyword, kw)
		}
	}

	for _, kw := range p.Keywords {
		if fuzzyMatches(in.tokens, kw) {
			c.add(sigFuzzy, w.Fuzzy, kw)
		}
	}

	for _, kw := range p.Keywords {
		if partialMatches(in.tokens, kw) {
			c.add(sigPartial, w.Partial, kw)
		}
	}

	if category == legal.CriminalLaw && c.score.Total > 0 &&
		(p.Severity == legal.SeverityCritical || p.Urgency == legal.UrgencyImmediate) {
		c.score.Total += criticalBonus
	}
	return c.score
}

func scoreNiche(in input, n legal.NicheCategory) Score {
	c := newCollector(n.Target.Specialization, n.Target.SubSpecialty)
	for _, kw := range n.Keywords {
		if strings.Contains(in.text, kw) {
			c.add(sigKeyword, nicheKeywordWeight, kw)
		}
	}
	for _, kw := range n.Keywords {
		if fuzzyMatches(in.tokens, kw) {
			c.add(sigFuzzy, nicheFuzzyWeight, kw)
		}
	}
	return c.score
}

// combinationMatches requires each word to be a substring of some token
// strictly after the token that satisfied the previous word.
func combinationMatches(tokens, words []string) bool {
	if len(words) == 0 {
		return false
	}
	cursor := 0
	for _, w := range words {
		found := -1
		for i := cursor; i < len(tokens); i++ {
			if strings.Contains(tokens[i], w) {
				found = i
				break
			}
		}
		if found < 0 {
			return false
		}
		cursor = found + 1
	}
	return true
}

func fuzzyMatches(tokens []string, keyword string) bool {
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) > fuzzyMinTokenLen &&
			textsim.Similarity(tok, keyword) > FuzzySimilarityThreshold {
			return true
		}
	}
	return false
}

func partialMatches(tokens []string, keyword string) bool {
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) > partialMinTokenLen && tok != keyword && strings.Contains(keyword, tok) {
			return true
		}
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Priority overrides
// ─────────────────────────────────────────────────────────────────────────────

func (e *Engine) priorityOverride(in input, current int) (Score, bool) {
	var (
		winner Score
		fired  bool
	)
	for _, p := range e.kb.PriorityPatterns {
		matched := make([]string, 0, len(p.Triggers))
		for _, trig := range p.Triggers {
			if strings.Contains(in.text, trig) {
				matched = append(matched, trig)
			}
		}
		if len(matched) < minPriorityTriggers {
			continue
		}
		score := priorityPerTrigger * len(matched)
		if p.Priority {
			score += priorityBonus
		}
		if score > current {
			current = score
			winner = Score{
				Category:     p.Target.Specialization,
				SubSpecialty: p.Target.SubSpecialty,
				Total:        score,
				Matched:      matched,
				override:     true,
			}
			fired = true
		}
	}
	return winner, fired
}

//Personal.AI order the ending
