package legal

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/turtacn/LexConnect/pkg/errors"
)

//go:embed knowledge_base.yaml
var embeddedKnowledgeBase []byte

// WordCombination is an ordered set of words that must all appear in the
// description, each in a later token than the previous one.
type WordCombination struct {
	Words  []string `yaml:"words" json:"words"`
	Weight int      `yaml:"weight,omitempty" json:"weight,omitempty"`
}

// SubSpecialty is the matching profile of one area of practice.
type SubSpecialty struct {
	Name             string            `yaml:"name" json:"name"`
	Description      string            `yaml:"description" json:"description"`
	Severity         Severity          `yaml:"severity" json:"severity"`
	Urgency          Urgency           `yaml:"urgency" json:"urgency"`
	Keywords         []string          `yaml:"keywords" json:"keywords"`
	PhrasePatterns   []string          `yaml:"phrase_patterns" json:"phrase_patterns"`
	WordCombinations []WordCombination `yaml:"word_combinations" json:"word_combinations"`
	RelevantLaws     []string          `yaml:"relevant_laws" json:"relevant_laws"`
}

// Category is a top-level specialization with its ordered sub-specialties.
type Category struct {
	Name                 string         `yaml:"name" json:"name"`
	Description          string         `yaml:"description" json:"description"`
	RosterSpecialization string         `yaml:"roster_specialization" json:"roster_specialization"`
	SubSpecialties       []SubSpecialty `yaml:"sub_specialties" json:"sub_specialties"`
}

// Target names a (category, sub-specialty) pair.
type Target struct {
	Specialization string `yaml:"specialization" json:"specialization"`
	SubSpecialty   string `yaml:"sub_specialty" json:"sub_specialty"`
}

// NicheCategory is a keyword shortcut that resolves to a regular target.
type NicheCategory struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Target   Target   `yaml:"target" json:"target"`
}

// PriorityPattern overrides the additive result when at least two of its
// triggers appear in the description.
type PriorityPattern struct {
	Name     string   `yaml:"name" json:"name"`
	Triggers []string `yaml:"triggers" json:"triggers"`
	Target   Target   `yaml:"target" json:"target"`
	Priority bool     `yaml:"priority" json:"priority"`
}

// KnowledgeBase is the immutable legal taxonomy.  It is safe for concurrent
// reads once returned by Load.
type KnowledgeBase struct {
	Version          string            `yaml:"version" json:"version"`
	Categories       []Category        `yaml:"categories" json:"categories"`
	Niches           []NicheCategory   `yaml:"niche_categories" json:"niche_categories"`
	PriorityPatterns []PriorityPattern `yaml:"priority_patterns" json:"priority_patterns"`

	categoryIndex map[string]int
	subIndex      map[string]map[string]int
}

// Load decodes, normalises and validates a YAML knowledge base.
func Load(data []byte) (*KnowledgeBase, error) {
	var kb KnowledgeBase
	if err := yaml.Unmarshal(data, &kb); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeKnowledgeBaseLoad, "failed to decode knowledge base")
	}
	kb.normalise()
	if err := kb.validate(); err != nil {
		return nil, err
	}
	return &kb, nil
}

// LoadFile reads a knowledge base from path.
func LoadFile(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeKnowledgeBaseLoad, "failed to read knowledge base").
			WithDetail("path=" + path)
	}
	return Load(data)
}

var (
	defaultOnce sync.Once
	defaultKB   *KnowledgeBase
	defaultErr  error
)

// Default returns the knowledge base compiled into the binary.
func Default() (*KnowledgeBase, error) {
	defaultOnce.Do(func() {
		defaultKB, defaultErr = Load(embeddedKnowledgeBase)
	})
	return defaultKB, defaultErr
}

// MustDefault is Default for process start-up; it panics on an invalid
// embedded knowledge base.
func MustDefault() *KnowledgeBase {
	kb, err := Default()
	if err != nil {
		panic(err)
	}
	return kb
}

// Resolve loads the knowledge base at path, or the embedded one when path is empty.
func Resolve(path string) (*KnowledgeBase, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// normalise lowercases every matchable string so the classifier can compare
// against lowercased input without further folding.
func (kb *KnowledgeBase) normalise() {
	for ci := range kb.Categories {
		cat := &kb.Categories[ci]
		cat.Name = strings.TrimSpace(cat.Name)
		for si := range cat.SubSpecialties {
			sub := &cat.SubSpecialties[si]
			sub.Name = strings.TrimSpace(sub.Name)
			sub.Keywords = lowerAll(sub.Keywords)
			sub.PhrasePatterns = lowerAll(sub.PhrasePatterns)
			for wi := range sub.WordCombinations {
				sub.WordCombinations[wi].Words = lowerAll(sub.WordCombinations[wi].Words)
			}
			if sub.RelevantLaws == nil {
				sub.RelevantLaws = []string{}
			}
		}
	}
	for ni := range kb.Niches {
		kb.Niches[ni].Keywords = lowerAll(kb.Niches[ni].Keywords)
	}
	for pi := range kb.PriorityPatterns {
		kb.PriorityPatterns[pi].Triggers = lowerAll(kb.PriorityPatterns[pi].Triggers)
	}
}

func invalid(format string, args ...interface{}) error {
	return errors.New(errors.ErrCodeKnowledgeBaseInvalid, "knowledge base failed validation").
		WithDetail(fmt.Sprintf(format, args...))
}

func (kb *KnowledgeBase) validate() error {
	if len(kb.Categories) == 0 {
		return invalid("no categories defined")
	}
	kb.categoryIndex = make(map[string]int, len(kb.Categories))
	kb.subIndex = make(map[string]map[string]int, len(kb.Categories))

	for ci, cat := range kb.Categories {
		if cat.Name == "" {
			return invalid("category #%d has no name", ci)
		}
		if _, dup := kb.categoryIndex[cat.Name]; dup {
			return invalid("duplicate category %q", cat.Name)
		}
		if !IsRosterSpecialization(cat.RosterSpecialization) {
			return invalid("category %q has unknown roster_specialization %q", cat.Name, cat.RosterSpecialization)
		}
		if len(cat.SubSpecialties) == 0 {
			return invalid("category %q has no sub-specialties", cat.Name)
		}
		kb.categoryIndex[cat.Name] = ci
		subs := make(map[string]int, len(cat.SubSpecialties))
		for si, sub := range cat.SubSpecialties {
			if sub.Name == "" {
				return invalid("category %q: sub-specialty #%d has no name", cat.Name, si)
			}
			if _, dup := subs[sub.Name]; dup {
				return invalid("category %q: duplicate sub-specialty %q", cat.Name, sub.Name)
			}
			if !sub.Severity.Valid() {
				return invalid("%s / %s: unknown severity %q", cat.Name, sub.Name, sub.Severity)
			}
			if !sub.Urgency.Valid() {
				return invalid("%s / %s: unknown urgency %q", cat.Name, sub.Name, sub.Urgency)
			}
			for wi, wc := range sub.WordCombinations {
				if len(wc.Words) == 0 {
					return invalid("%s / %s: word combination #%d has no words", cat.Name, sub.Name, wi)
				}
				if wc.Weight < 0 {
					return invalid("%s / %s: word combination #%d has negative weight", cat.Name, sub.Name, wi)
				}
			}
			subs[sub.Name] = si
		}
		kb.subIndex[cat.Name] = subs
	}

	for _, n := range kb.Niches {
		if len(n.Keywords) == 0 {
			return invalid("niche %q has no keywords", n.Name)
		}
		if _, ok := kb.Lookup(n.Target.Specialization, n.Target.SubSpecialty); !ok {
			return invalid("niche %q targets unknown %s / %s", n.Name, n.Target.Specialization, n.Target.SubSpecialty)
		}
	}
	for _, p := range kb.PriorityPatterns {
		if len(p.Triggers) < 2 {
			return invalid("priority pattern %q needs at least two triggers", p.Name)
		}
		if _, ok := kb.Lookup(p.Target.Specialization, p.Target.SubSpecialty); !ok {
			return invalid("priority pattern %q targets unknown %s / %s", p.Name, p.Target.Specialization, p.Target.SubSpecialty)
		}
	}
	return nil
}

// Lookup returns the profile for (category, sub-specialty).
func (kb *KnowledgeBase) Lookup(category, sub string) (*SubSpecialty, bool) {
	ci, ok := kb.categoryIndex[category]
	if !ok {
		return nil, false
	}
	si, ok := kb.subIndex[category][sub]
	if !ok {
		return nil, false
	}
	return &kb.Categories[ci].SubSpecialties[si], true
}

// Category returns the named category.
func (kb *KnowledgeBase) Category(name string) (*Category, bool) {
	ci, ok := kb.categoryIndex[name]
	if !ok {
		return nil, false
	}
	return &kb.Categories[ci], true
}

// RosterSpecialization maps a category name to the coarse roster category.
// Names that already are roster categories pass through; unknown names map
// to the default specialization.
func (kb *KnowledgeBase) RosterSpecialization(name string) string {
	if IsRosterSpecialization(name) {
		return name
	}
	if cat, ok := kb.Category(name); ok {
		return cat.RosterSpecialization
	}
	return DefaultSpecialization
}

// SubSpecialtyCount returns the number of profiles across all categories.
func (kb *KnowledgeBase) SubSpecialtyCount() int {
	n := 0
	for _, c := range kb.Categories {
		n += len(c.SubSpecialties)
	}
	return n
}

// ResultFor builds a result populated from the target profile.  The caller
// fills in confidence, match type and matched keywords.
func (kb *KnowledgeBase) ResultFor(category, sub string) (ClassificationResult, bool) {
	profile, ok := kb.Lookup(category, sub)
	if !ok {
		return ClassificationResult{}, false
	}
	return ClassificationResult{
		Specialization:  category,
		SubSpecialty:    sub,
		ConfidenceLevel: ConfidenceNone,
		MatchType:       MatchNone,
		MatchedKeywords: []string{},
		Severity:        profile.Severity,
		Urgency:         profile.Urgency,
		RelevantLaws:    append([]string(nil), profile.RelevantLaws...),
		Description:     profile.Description,
		Source:          SourceRules,
	}, true
}

// ── Taxonomy summary ─────────────────────────────────────────────────────────

// TaxonomyEntry is the public summary of one category.
type TaxonomyEntry struct {
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	RosterSpecialization string   `json:"roster_specialization"`
	SubSpecialties       []string `json:"sub_specialties"`
}

// Taxonomy lists categories and sub-specialty names in declaration order.
func (kb *KnowledgeBase) Taxonomy() []TaxonomyEntry {
	out := make([]TaxonomyEntry, 0, len(kb.Categories))
	for _, c := range kb.Categories {
		names := make([]string, 0, len(c.SubSpecialties))
		for _, s := range c.SubSpecialties {
			names = append(names, s.Name)
		}
		out = append(out, TaxonomyEntry{
			Name:                 c.Name,
			Description:          c.Description,
			RosterSpecialization: c.RosterSpecialization,
			SubSpecialties:       names,
		})
	}
	return out
}

//Personal.AI order the ending
