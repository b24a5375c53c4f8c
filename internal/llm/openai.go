// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pdiddy/wordsmith/internal/prompt"
	"github.com/pdiddy/wordsmith/pkg/types"
)

// Client talks to an OpenAI-compatible chat-completions endpoint. Ollama,
// vLLM, and the hosted OpenAI API all satisfy the same surface, so a
// single client covers every supported provider.
type Client struct {
	cfg types.ModelConfig
	api openai.Client
}

// NewClient builds a client for the configured endpoint. An empty
// BaseURL targets the hosted OpenAI API.
func NewClient(cfg types.ModelConfig) *Client {
	opts := []option.RequestOption{}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Client{cfg: cfg, api: openai.NewClient(opts...)}
}

// Generate sends one stage request and returns the completion text.
// Requests that would overflow the context budget are rejected locally
// with a ProviderError and never reach the endpoint.
func (c *Client) Generate(ctx context.Context, req prompt.Request) (string, error) {
	if err := checkBudget(req, guardLimit(c.cfg)); err != nil {
		return "", err
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.Prompt),
		},
		Temperature:      openai.Float(req.Params.Temperature),
		TopP:             openai.Float(req.Params.TopP),
		PresencePenalty:  openai.Float(req.Params.PresencePenalty),
		FrequencyPenalty: openai.Float(req.Params.FrequencyPenalty),
		Seed:             openai.Int(req.Params.Seed),
	}
	switch {
	case req.Params.MaxOutputTokens > 0:
		params.MaxTokens = openai.Int(int64(req.Params.MaxOutputTokens))
	case c.cfg.TokenLimit > 0:
		params.MaxTokens = openai.Int(int64(c.cfg.TokenLimit))
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", &ProviderError{Stage: req.Stage, Op: "chat-completion", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &ProviderError{Stage: req.Stage, Op: "chat-completion", Err: fmt.Errorf("empty choices from model %s", c.cfg.Model)}
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", &ProviderError{Stage: req.Stage, Op: "chat-completion", Err: fmt.Errorf("empty completion from model %s", c.cfg.Model)}
	}
	return text, nil
}
