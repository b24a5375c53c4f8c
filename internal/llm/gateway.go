// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm is the transport boundary to the generative model. It turns
// assembled stage requests into completions over any OpenAI-compatible
// endpoint and enforces the context budget before a request leaves the
// process.
package llm

import (
	"context"
	"fmt"

	"github.com/pdiddy/wordsmith/internal/prompt"
	"github.com/pdiddy/wordsmith/pkg/types"
)

// contextGuardPercent is the share of the token limit a request payload
// may occupy. Requests above it are rejected locally instead of being
// sent to the provider, where they would fail after a long wait or come
// back silently truncated.
const contextGuardPercent = 85

// Gateway abstracts the generative model so tests can supply a mock.
type Gateway interface {
	Generate(ctx context.Context, req prompt.Request) (string, error)
}

// ProviderError reports a fatal transport or model failure. It carries
// the stage so the pipeline can attribute the abort.
type ProviderError struct {
	Stage types.Stage
	Op    string
	Err   error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider failure in stage %s (%s): %v", e.Stage, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// EstimateTokens approximates the token count of a request payload. The
// heuristic is 4 bytes per token, which overcounts for German text and
// therefore errs toward rejecting early.
func EstimateTokens(system, user string) int {
	return (len(system) + len(user)) / 4
}

// guardLimit picks the token budget the pre-flight guard checks against.
// The prompt must fit the model's context window; the generation token
// limit is the fallback for configurations that resolve only one limit.
func guardLimit(cfg types.ModelConfig) int {
	if cfg.ContextLength > 0 {
		return cfg.ContextLength
	}
	return cfg.TokenLimit
}

// checkBudget rejects requests whose estimated size exceeds the guard
// share of the token limit. A zero limit disables the guard.
func checkBudget(req prompt.Request, tokenLimit int) error {
	if tokenLimit <= 0 {
		return nil
	}
	est := EstimateTokens(req.System, req.Prompt)
	budget := tokenLimit * contextGuardPercent / 100
	if est > budget {
		return &ProviderError{
			Stage: req.Stage,
			Op:    "context-guard",
			Err:   fmt.Errorf("estimated %d tokens exceeds %d%% of the %d token limit", est, contextGuardPercent, tokenLimit),
		}
	}
	return nil
}
