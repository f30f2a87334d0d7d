package ai

import (
	"bytes"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/turtacn/LexConnect/internal/domain/legal"
	"github.com/turtacn/LexConnect/pkg/errors"
)

const classifyPromptTemplate = `You are a legal intake assistant. Classify the client's problem into exactly
one category and one sub-specialty from the taxonomy below. Use the names
exactly as written.

Taxonomy:
{{- range .Taxonomy}}
- {{.Name}}: {{join .SubSpecialties "; "}}
{{- end}}

Client location: {{if .City}}{{.City}}{{else}}unknown{{end}}
Client description:
"""
{{.Description}}
"""

Reply with a single JSON object and nothing else:
{"specialization": "<category>", "sub_specialty": "<sub-specialty>", "matched_keywords": ["<words from the description>"]}`

var classifyPrompt = template.Must(template.New("classify").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(classifyPromptTemplate))

type promptData struct {
	Taxonomy    []legal.TaxonomyEntry
	Description string
	City        string
}

// BuildPrompt renders the classification prompt for description.
func BuildPrompt(kb *legal.KnowledgeBase, description, city string) (string, error) {
	var buf bytes.Buffer
	err := classifyPrompt.Execute(&buf, promptData{
		Taxonomy:    kb.Taxonomy(),
		Description: strings.TrimSpace(description),
		City:        strings.TrimSpace(city),
	})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternal, "failed to render prompt")
	}
	return buf.String(), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Response parsing
// ─────────────────────────────────────────────────────────────────────────────

// Answer is the model's raw classification.
type Answer struct {
	Specialization  string   `json:"specialization"`
	SubSpecialty    string   `json:"sub_specialty"`
	MatchedKeywords []string `json:"matched_keywords"`
}

// ParseAnswer extracts the first JSON object from a model reply.
func ParseAnswer(raw string) (Answer, error) {
	obj, err := extractJSONObject(stripCodeFences(raw))
	if err != nil {
		return Answer{}, err
	}
	var a Answer
	if err := json.Unmarshal(obj, &a); err != nil {
		return Answer{}, errors.Wrap(err, errors.ErrCodeAIResponseInvalid, "model reply is not a classification")
	}
	a.Specialization = strings.TrimSpace(a.Specialization)
	a.SubSpecialty = strings.TrimSpace(a.SubSpecialty)
	if a.Specialization == "" || a.SubSpecialty == "" {
		return Answer{}, errors.New(errors.ErrCodeAIResponseInvalid, "model reply is missing specialization or sub_specialty")
	}
	return a, nil
}

func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// extractJSONObject decodes the first complete object in s, skipping any
// prose before it.
func extractJSONObject(s string) (json.RawMessage, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return nil, errors.New(errors.ErrCodeAIResponseInvalid, "no JSON object in model reply")
	}
	dec := json.NewDecoder(strings.NewReader(s[start:]))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAIResponseInvalid, "malformed JSON in model reply")
	}
	return raw, nil
}

//Personal.AI order the ending
