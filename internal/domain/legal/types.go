// Package legal holds the legal taxonomy used to classify client case
// descriptions: specialization categories, their sub-specialty profiles,
// niche shortcuts and priority override patterns, plus the classification
// result shared by every classifier implementation.
package legal

// Severity ranks how grave a sub-specialty's matters usually are.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeveritySerious  Severity = "Serious"
	SeverityModerate Severity = "Moderate"
	SeverityMinor    Severity = "Minor"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeveritySerious, SeverityModerate, SeverityMinor:
		return true
	}
	return false
}

// Urgency ranks how quickly a client needs counsel.
type Urgency string

const (
	UrgencyImmediate Urgency = "Immediate"
	UrgencyHigh      Urgency = "High"
	UrgencyNormal    Urgency = "Normal"
	UrgencyLow       Urgency = "Low"
)

// Valid reports whether u is a known urgency.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyImmediate, UrgencyHigh, UrgencyNormal, UrgencyLow:
		return true
	}
	return false
}

// ConfidenceLevel is the coarse band of a classification score.
type ConfidenceLevel string

const (
	ConfidenceNone   ConfidenceLevel = "None"
	ConfidenceLow    ConfidenceLevel = "Low"
	ConfidenceMedium ConfidenceLevel = "Medium"
	ConfidenceHigh   ConfidenceLevel = "High"
)

// MatchType names the strongest signal behind a classification.
type MatchType string

const (
	MatchNone            MatchType = "none"
	MatchKeyword         MatchType = "keyword"
	MatchPhrase          MatchType = "phrase"
	MatchCombination     MatchType = "combination"
	MatchFuzzy           MatchType = "fuzzy"
	MatchPartial         MatchType = "partial"
	MatchPriorityPattern MatchType = "priority-pattern"
)

// Source records which classifier produced a result.
type Source string

const (
	SourceRules Source = "rules"
	SourceAI    Source = "ai"
)

// Names used by the default result and by the criminal weighting rule.
const (
	CriminalLaw           = "Criminal Law"
	DefaultSpecialization = "Civil"
	DefaultSubSpecialty   = "General Practice"
)

// RosterSpecializations are the coarse categories lawyers are filed under.
var RosterSpecializations = []string{"Criminal", "Civil", "Family", "Property", "Corporate", "Cyber"}

// IsRosterSpecialization reports whether name is one of RosterSpecializations.
func IsRosterSpecialization(name string) bool {
	for _, s := range RosterSpecializations {
		if s == name {
			return true
		}
	}
	return false
}

// ClassificationResult is the outcome of classifying a case description.
// The rule engine and the AI classifier both produce this exact shape.
type ClassificationResult struct {
	Specialization  string          `json:"specialization"`
	SubSpecialty    string          `json:"subSpecialty"`
	Confidence      int             `json:"confidence"`
	ConfidenceLevel ConfidenceLevel `json:"confidenceLevel"`
	MatchType       MatchType       `json:"matchType"`
	MatchedKeywords []string        `json:"matchedKeywords"`
	Severity        Severity        `json:"severity"`
	Urgency         Urgency         `json:"urgency"`
	RelevantLaws    []string        `json:"relevantLaws"`
	Description     string          `json:"description"`
	Source          Source          `json:"source"`
}

// DefaultClassification is returned when nothing in the description matched.
func DefaultClassification() ClassificationResult {
	return ClassificationResult{
		Specialization:  DefaultSpecialization,
		SubSpecialty:    DefaultSubSpecialty,
		Confidence:      0,
		ConfidenceLevel: ConfidenceNone,
		MatchType:       MatchNone,
		MatchedKeywords: []string{},
		Severity:        SeverityModerate,
		Urgency:         UrgencyNormal,
		RelevantLaws:    []string{},
		Description:     "General legal consultation",
		Source:          SourceRules,
	}
}

// LevelForScore maps a confidence score to its band.
func LevelForScore(score int) ConfidenceLevel {
	switch {
	case score >= 10:
		return ConfidenceHigh
	case score >= 5:
		return ConfidenceMedium
	case score > 0:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

//Personal.AI order the ending
