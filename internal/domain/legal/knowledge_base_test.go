package legal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LexConnect/pkg/errors"
)

const miniKB = `
version: test
categories:
  - name: Criminal Law
    roster_specialization: Criminal
    sub_specialties:
      - name: Theft
        severity: Serious
        urgency: High
        keywords: [Theft, STOLEN]
        word_combinations:
          - words: [Phone, Stolen]
  - name: Family Law
    roster_specialization: Family
    sub_specialties:
      - name: Divorce
        severity: Moderate
        urgency: Normal
        keywords: [divorce]
niche_categories:
  - name: Divorce Lawyer
    keywords: [talaq]
    target: {specialization: Family Law, sub_specialty: Divorce}
priority_patterns:
  - name: theft
    triggers: [stole, phone]
    target: {specialization: Criminal Law, sub_specialty: Theft}
    priority: true
`

func TestDefault_LoadsEmbeddedKnowledgeBase(t *testing.T) {
	kb, err := Default()
	require.NoError(t, err)

	assert.Equal(t, CriminalLaw, kb.Categories[0].Name, "declaration order is preserved")
	assert.Equal(t, "Murder / Homicide Cases", kb.Categories[0].SubSpecialties[0].Name)
	assert.Greater(t, kb.SubSpecialtyCount(), 30)
	assert.NotEmpty(t, kb.Niches)
	assert.NotEmpty(t, kb.PriorityPatterns)

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, kb, again)
}

func TestDefault_EveryProfileIsWellFormed(t *testing.T) {
	kb := MustDefault()
	for _, c := range kb.Categories {
		assert.True(t, IsRosterSpecialization(c.RosterSpecialization), c.Name)
		for _, s := range c.SubSpecialties {
			assert.NotEmpty(t, s.Keywords, "%s / %s", c.Name, s.Name)
			assert.NotEmpty(t, s.RelevantLaws, "%s / %s", c.Name, s.Name)
			assert.NotEmpty(t, s.Description, "%s / %s", c.Name, s.Name)
		}
	}
}

func TestLoad_NormalisesCase(t *testing.T) {
	kb, err := Load([]byte(miniKB))
	require.NoError(t, err)

	theft, ok := kb.Lookup("Criminal Law", "Theft")
	require.True(t, ok)
	assert.Equal(t, []string{"theft", "stolen"}, theft.Keywords)
	assert.Equal(t, []string{"phone", "stolen"}, theft.WordCombinations[0].Words)
	assert.Equal(t, []string{}, theft.RelevantLaws)
}

func TestLoad_ValidationFailures(t *testing.T) {
	cases := map[string]string{
		"no categories": `categories: []`,
		"duplicate sub": `
categories:
  - name: A
    roster_specialization: Civil
    sub_specialties:
      - {name: X, severity: Minor, urgency: Low}
      - {name: X, severity: Minor, urgency: Low}
`,
		"bad severity": `
categories:
  - name: A
    roster_specialization: Civil
    sub_specialties:
      - {name: X, severity: Huge, urgency: Low}
`,
		"bad urgency": `
categories:
  - name: A
    roster_specialization: Civil
    sub_specialties:
      - {name: X, severity: Minor, urgency: Whenever}
`,
		"bad roster": `
categories:
  - name: A
    roster_specialization: Maritime
    sub_specialties:
      - {name: X, severity: Minor, urgency: Low}
`,
		"empty combination": `
categories:
  - name: A
    roster_specialization: Civil
    sub_specialties:
      - name: X
        severity: Minor
        urgency: Low
        word_combinations:
          - words: []
`,
		"dangling niche": `
categories:
  - name: A
    roster_specialization: Civil
    sub_specialties:
      - {name: X, severity: Minor, urgency: Low}
niche_categories:
  - name: N
    keywords: [n]
    target: {specialization: A, sub_specialty: Y}
`,
		"single trigger": `
categories:
  - name: A
    roster_specialization: Civil
    sub_specialties:
      - {name: X, severity: Minor, urgency: Low}
priority_patterns:
  - name: P
    triggers: [only]
    target: {specialization: A, sub_specialty: X}
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			kb, err := Load([]byte(doc))
			assert.Nil(t, kb)
			assert.True(t, errors.IsCode(err, errors.ErrCodeKnowledgeBaseInvalid), "got %v", err)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load([]byte("categories: [\n"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeKnowledgeBaseLoad))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(miniKB), 0o600))

	kb, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "test", kb.Version)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeKnowledgeBaseLoad))
}

func TestRosterSpecialization(t *testing.T) {
	kb := MustDefault()
	assert.Equal(t, "Criminal", kb.RosterSpecialization("Criminal Law"))
	assert.Equal(t, "Corporate", kb.RosterSpecialization("Labour & Employment Law"))
	assert.Equal(t, "Civil", kb.RosterSpecialization("Civil"))
	assert.Equal(t, "Cyber", kb.RosterSpecialization("Cyber"))
	assert.Equal(t, DefaultSpecialization, kb.RosterSpecialization("Space Law"))
}

func TestResultFor(t *testing.T) {
	kb := MustDefault()

	res, ok := kb.ResultFor("Labour & Employment Law", "Wrongful Termination")
	require.True(t, ok)
	assert.Equal(t, SeveritySerious, res.Severity)
	assert.Equal(t, UrgencyHigh, res.Urgency)
	assert.NotEmpty(t, res.RelevantLaws)

	_, ok = kb.ResultFor("Labour & Employment Law", "Nope")
	assert.False(t, ok)
}

func TestTaxonomy(t *testing.T) {
	kb, err := Load([]byte(miniKB))
	require.NoError(t, err)

	tax := kb.Taxonomy()
	require.Len(t, tax, 2)
	assert.Equal(t, "Criminal Law", tax[0].Name)
	assert.Equal(t, []string{"Theft"}, tax[0].SubSpecialties)
	assert.Equal(t, "Family", tax[1].RosterSpecialization)
}

func TestLevelForScore(t *testing.T) {
	assert.Equal(t, ConfidenceNone, LevelForScore(0))
	assert.Equal(t, ConfidenceLow, LevelForScore(1))
	assert.Equal(t, ConfidenceLow, LevelForScore(4))
	assert.Equal(t, ConfidenceMedium, LevelForScore(5))
	assert.Equal(t, ConfidenceMedium, LevelForScore(9))
	assert.Equal(t, ConfidenceHigh, LevelForScore(10))
}

func TestDefaultClassification(t *testing.T) {
	d := DefaultClassification()
	assert.Equal(t, "Civil", d.Specialization)
	assert.Equal(t, "General Practice", d.SubSpecialty)
	assert.Equal(t, 0, d.Confidence)
	assert.Equal(t, ConfidenceNone, d.ConfidenceLevel)
	assert.Equal(t, MatchNone, d.MatchType)
	assert.NotNil(t, d.MatchedKeywords)
}

//Personal.AI order the ending
