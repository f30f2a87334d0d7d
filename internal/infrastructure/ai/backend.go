// Package ai hosts the LLM-backed case classifier.  A Backend turns a prompt
// into text; the Classifier turns that text into a legal.ClassificationResult
// validated against the knowledge base and scored by the rule engine.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/turtacn/LexConnect/internal/config"
	"github.com/turtacn/LexConnect/pkg/errors"
)

// Backend generates a completion for a single user prompt.
type Backend interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewBackend returns the backend selected by cfg.Provider.
func NewBackend(ctx context.Context, cfg config.AIConfig) (Backend, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiBackend(ctx, cfg.APIKey, cfg.Model)
	case config.ProviderOpenAI:
		return NewOpenAIBackend(cfg.BaseURL, cfg.APIKey, cfg.Model, nil), nil
	default:
		return nil, errors.New(errors.ErrCodeAIModelNotAvailable, "unknown AI provider").
			WithDetail("provider=" + cfg.Provider)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Gemini
// ─────────────────────────────────────────────────────────────────────────────

type geminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend builds a Gemini API client.  An empty key falls back to
// Application Default Credentials.
func NewGeminiBackend(ctx context.Context, apiKey, model string) (Backend, error) {
	cc := &genai.ClientConfig{}
	if apiKey != "" {
		cc.APIKey = apiKey
		cc.Backend = genai.BackendGeminiAPI
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeAIModelNotAvailable, "failed to create gemini client")
	}
	return &geminiBackend{client: client, model: model}, nil
}

func (g *geminiBackend) Name() string { return config.ProviderGemini }

func (g *geminiBackend) Generate(ctx context.Context, prompt string) (string, error) {
	content := genai.NewContentFromText(prompt, genai.RoleUser)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{content}, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeAIInferenceFailed, "gemini generate failed")
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New(errors.ErrCodeAIResponseInvalid, "no response candidates from gemini")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			out.WriteString(part.Text)
		}
	}
	return out.String(), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// OpenAI-compatible chat completions
// ─────────────────────────────────────────────────────────────────────────────

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type openAIBackend struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// NewOpenAIBackend talks to any endpoint implementing /chat/completions.
// A nil client selects http.DefaultClient.
func NewOpenAIBackend(baseURL, apiKey, model string, client *http.Client) Backend {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &openAIBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		http:    client,
	}
}

func (o *openAIBackend) Name() string { return config.ProviderOpenAI }

func (o *openAIBackend) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:          o.model,
		Messages:       []chatMessage{{Role: "user", Content: prompt}},
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeAIInferenceFailed, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	if o.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

	resp, err := o.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeAIInferenceFailed, "chat completion request failed")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeAIInferenceFailed, "failed to read response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.New(errors.ErrCodeAIInferenceFailed, "chat completion failed").
			WithDetail(fmt.Sprintf("status=%d body=%s", resp.StatusCode, truncate(string(data), 200)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeAIResponseInvalid, "failed to decode chat response")
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New(errors.ErrCodeAIResponseInvalid, "no choices in chat response")
	}
	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

//Personal.AI order the ending
