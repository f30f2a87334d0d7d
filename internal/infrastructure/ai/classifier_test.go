package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LexConnect/internal/config"
	"github.com/turtacn/LexConnect/internal/domain/legal"
	"github.com/turtacn/LexConnect/internal/intelligence/classifier"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	apperrors "github.com/turtacn/LexConnect/pkg/errors"
)

const testKB = `
categories:
  - name: Family Law
    roster_specialization: Family
    sub_specialties:
      - name: Divorce & Separation
        severity: Serious
        urgency: Normal
        description: Dissolution of marriage.
        keywords: [divorce]
        phrase_patterns: [want a divorce]
        relevant_laws: [Hindu Marriage Act 1955 Section 13]
  - name: Property Law
    roster_specialization: Property
    sub_specialties:
      - name: Landlord-Tenant Disputes
        severity: Moderate
        urgency: Normal
        keywords: [eviction]
`

type fakeBackend struct {
	reply string
	err   error
	block bool
	calls int32
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Generate(ctx context.Context, _ string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

func newTestClassifier(t *testing.T, b Backend, bc config.BreakerConfig, timeout time.Duration) *Classifier {
	kb, err := legal.Load([]byte(testKB))
	require.NoError(t, err)
	return NewClassifier(b, classifier.New(kb), bc, timeout, logging.NewNopLogger())
}

func defaultBreaker() config.BreakerConfig {
	return config.BreakerConfig{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, FailureThreshold: 5}
}

// ─────────────────────────────────────────────────────────────────────────────
// Prompt and parsing
// ─────────────────────────────────────────────────────────────────────────────

func TestBuildPrompt(t *testing.T) {
	kb, err := legal.Load([]byte(testKB))
	require.NoError(t, err)

	p, err := BuildPrompt(kb, "  I want a divorce  ", "Pune")
	require.NoError(t, err)
	assert.Contains(t, p, "- Family Law: Divorce & Separation")
	assert.Contains(t, p, "- Property Law: Landlord-Tenant Disputes")
	assert.Contains(t, p, "Client location: Pune")
	assert.Contains(t, p, "\nI want a divorce\n")

	p, err = BuildPrompt(kb, "x", "")
	require.NoError(t, err)
	assert.Contains(t, p, "Client location: unknown")
}

func TestParseAnswer(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		a, err := ParseAnswer(`{"specialization":"Family Law","sub_specialty":"Divorce & Separation","matched_keywords":["divorce"]}`)
		require.NoError(t, err)
		assert.Equal(t, "Family Law", a.Specialization)
		assert.Equal(t, []string{"divorce"}, a.MatchedKeywords)
	})

	t.Run("fenced with prose", func(t *testing.T) {
		raw := "Here you go:\n```json\n{\"specialization\": \" Family Law \", \"sub_specialty\": \"Divorce & Separation\"}\n```\nThanks"
		a, err := ParseAnswer(raw)
		require.NoError(t, err)
		assert.Equal(t, "Family Law", a.Specialization)
		assert.Equal(t, "Divorce & Separation", a.SubSpecialty)
	})

	t.Run("no object", func(t *testing.T) {
		_, err := ParseAnswer("I cannot help with that")
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAIResponseInvalid))
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseAnswer(`{"specialization": "Family Law",`)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAIResponseInvalid))
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := ParseAnswer(`{"specialization": "Family Law"}`)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAIResponseInvalid))
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// Classifier
// ─────────────────────────────────────────────────────────────────────────────

func TestClassify_CanonicalisesAndScores(t *testing.T) {
	b := &fakeBackend{reply: `{"specialization":"family law","sub_specialty":"DIVORCE & SEPARATION","matched_keywords":["divorce"]}`}
	c := newTestClassifier(t, b, defaultBreaker(), time.Second)

	res, err := c.Classify(context.Background(), "I want a divorce", "Pune")
	require.NoError(t, err)
	assert.Equal(t, "Family Law", res.Specialization)
	assert.Equal(t, "Divorce & Separation", res.SubSpecialty)
	assert.Equal(t, legal.SourceAI, res.Source)
	assert.Equal(t, legal.MatchPhrase, res.MatchType)
	assert.Greater(t, res.Confidence, 0)
	assert.Equal(t, legal.SeveritySerious, res.Severity)
	assert.Equal(t, []string{"Hindu Marriage Act 1955 Section 13"}, res.RelevantLaws)
	assert.Equal(t, "fake", c.Provider())
}

func TestClassify_ModelKeywordsWithoutRuleEvidence(t *testing.T) {
	b := &fakeBackend{reply: `{"specialization":"Property Law","sub_specialty":"Landlord-Tenant Disputes","matched_keywords":["Driveway","parking","driveway"]}`}
	c := newTestClassifier(t, b, defaultBreaker(), time.Second)

	res, err := c.Classify(context.Background(), "my neighbour blocks the shared driveway every morning", "")
	require.NoError(t, err)
	assert.Equal(t, "Landlord-Tenant Disputes", res.SubSpecialty)
	assert.Equal(t, []string{"driveway"}, res.MatchedKeywords)
	assert.Equal(t, classifier.StandardWeights.Keyword, res.Confidence)
	assert.Equal(t, legal.ConfidenceLow, res.ConfidenceLevel)
	assert.Equal(t, legal.MatchKeyword, res.MatchType)
	assert.Equal(t, legal.SourceAI, res.Source)
}

func TestClassify_UnknownNamesRejected(t *testing.T) {
	for name, reply := range map[string]string{
		"category":      `{"specialization":"Space Law","sub_specialty":"Orbits"}`,
		"sub-specialty": `{"specialization":"Family Law","sub_specialty":"Adoption"}`,
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestClassifier(t, &fakeBackend{reply: reply}, defaultBreaker(), time.Second)
			_, err := c.Classify(context.Background(), "anything", "")
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAIResponseInvalid))
		})
	}
}

func TestClassify_BackendErrorWrapped(t *testing.T) {
	c := newTestClassifier(t, &fakeBackend{err: errors.New("connection reset")}, defaultBreaker(), time.Second)
	_, err := c.Classify(context.Background(), "I want a divorce", "")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAIInferenceFailed))
}

func TestClassify_Timeout(t *testing.T) {
	b := &fakeBackend{block: true}
	c := newTestClassifier(t, b, defaultBreaker(), 10*time.Millisecond)

	start := time.Now()
	_, err := c.Classify(context.Background(), "I want a divorce", "")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestClassify_BreakerOpens(t *testing.T) {
	b := &fakeBackend{err: errors.New("boom")}
	bc := defaultBreaker()
	bc.FailureThreshold = 2
	c := newTestClassifier(t, b, bc, time.Second)

	for i := 0; i < 2; i++ {
		_, err := c.Classify(context.Background(), "x", "")
		require.Error(t, err)
	}
	assert.Equal(t, "open", c.State())

	_, err := c.Classify(context.Background(), "x", "")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAICircuitOpen))
	assert.Equal(t, int32(2), atomic.LoadInt32(&b.calls))
}

// ─────────────────────────────────────────────────────────────────────────────
// Backends
// ─────────────────────────────────────────────────────────────────────────────

func TestOpenAIBackend_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-test", req.Model)
		if assert.Len(t, req.Messages, 1) {
			assert.Equal(t, "hello", req.Messages[0].Content)
		}

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	b := NewOpenAIBackend(srv.URL+"/v1/", "sk-test", "gpt-test", srv.Client())
	assert.Equal(t, config.ProviderOpenAI, b.Name())

	out, err := b.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
}

func TestOpenAIBackend_Errors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := NewOpenAIBackend(srv.URL, "", "m", srv.Client()).Generate(context.Background(), "p")
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAIInferenceFailed))
	})

	t.Run("no choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()

		_, err := NewOpenAIBackend(srv.URL, "", "m", srv.Client()).Generate(context.Background(), "p")
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAIResponseInvalid))
	})
}

func TestNewBackend(t *testing.T) {
	b, err := NewBackend(context.Background(), config.AIConfig{Provider: config.ProviderOpenAI, Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, config.ProviderOpenAI, b.Name())

	_, err = NewBackend(context.Background(), config.AIConfig{Provider: "llama"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAIModelNotAvailable))
}

//Personal.AI order the ending
