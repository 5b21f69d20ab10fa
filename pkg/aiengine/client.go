// Package aiengine talks to an OpenAI-compatible chat completions endpoint
// (OpenRouter in production) to analyze legal documents and answer questions
// about them.
package aiengine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Analysis is the structured result of a full document analysis. All three
// fields must be present in the model's reply.
type Analysis struct {
	Summary  string   `json:"summary"`
	RedFlags []string `json:"red_flags"`
	Clauses  []Clause `json:"clauses"`
}

// Clause is one titled passage the model singled out.
type Clause struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Config carries everything the client needs; no ambient environment reads.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// Timeout bounds every completion call so a stalled endpoint cannot hang
	// a request indefinitely.
	Timeout time.Duration
}

type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

func New(cfg Config) *Client {
	ocfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		ocfg.BaseURL = cfg.BaseURL
	}
	return &Client{
		api:     openai.NewClientWithConfig(ocfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

// Analyze sends the full document text for analysis and returns the parsed
// summary, red flags and clauses.
func (c *Client) Analyze(ctx context.Context, text string) (*Analysis, error) {
	content, err := c.complete(ctx, analysisPrompt(text))
	if err != nil {
		return nil, err
	}
	return parseAnalysis(content)
}

// Answer asks a question about the document, constrained to answer only from
// the provided text.
func (c *Client) Answer(ctx context.Context, text, question string) (string, error) {
	return c.complete(ctx, questionPrompt(text, question))
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrBadResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

// parseAnalysis decodes the model's JSON reply. Every field must be present;
// a missing key is a fault, not an empty result.
func parseAnalysis(content string) (*Analysis, error) {
	var raw struct {
		Summary  *string   `json:"summary"`
		RedFlags *[]string `json:"red_flags"`
		Clauses  *[]Clause `json:"clauses"`
	}
	if err := json.Unmarshal([]byte(trimCodeFence(content)), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if raw.Summary == nil || raw.RedFlags == nil || raw.Clauses == nil {
		return nil, fmt.Errorf("%w: missing summary, red_flags or clauses", ErrBadResponse)
	}
	return &Analysis{
		Summary:  *raw.Summary,
		RedFlags: *raw.RedFlags,
		Clauses:  *raw.Clauses,
	}, nil
}

// trimCodeFence strips a ```json ... ``` wrapper some models add around JSON.
func trimCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
