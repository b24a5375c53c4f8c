// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// GenerationParameters are the sampling controls sent with one model call.
type GenerationParameters struct {
	// Temperature controls sampling randomness.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// TopP is the nucleus-sampling threshold.
	TopP float64 `json:"top_p" yaml:"top_p"`

	// PresencePenalty discourages reuse of tokens already present.
	PresencePenalty float64 `json:"presence_penalty" yaml:"presence_penalty"`

	// FrequencyPenalty discourages token repetition proportional to count.
	FrequencyPenalty float64 `json:"frequency_penalty" yaml:"frequency_penalty"`

	// MaxOutputTokens caps the generated length. Zero means provider default.
	MaxOutputTokens int `json:"max_output_tokens" yaml:"max_output_tokens"`

	// Seed makes generation reproducible where the provider supports it.
	Seed int64 `json:"seed" yaml:"seed"`
}

// ModelConfig holds the connection settings for the generative model.
type ModelConfig struct {
	// Model is the model identifier (e.g. "llama3.1:8b").
	Model string `json:"model" yaml:"model"`

	// BaseURL is the root of an OpenAI-compatible endpoint
	// (e.g. "http://localhost:11434/v1" for Ollama).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey authenticates against the endpoint. Ollama ignores it.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// ContextLength is the resolved context window in tokens. The caller
	// must have resolved ContextLength >= max(8192, word_count*4) before
	// constructing the driver.
	ContextLength int `json:"context_length" yaml:"context_length"`

	// TokenLimit is the resolved generation budget in tokens, resolved to
	// at least max(8192, word_count*1.9).
	TokenLimit int `json:"token_limit" yaml:"token_limit"`
}

// PolicyConfig holds the quality-gate thresholds and audit policy of a run.
// The values are policy data owned by the driver at construction time, not
// process-wide state.
type PolicyConfig struct {
	// FixMinOverlap and FixMinRatio gate adoption of the rubric-fix draft.
	FixMinOverlap float64 `json:"fix_min_overlap" yaml:"fix_min_overlap"`
	FixMinRatio   float64 `json:"fix_min_ratio" yaml:"fix_min_ratio"`

	// RevisionMinOverlap and RevisionMinRatio gate each revision round.
	RevisionMinOverlap float64 `json:"revision_min_overlap" yaml:"revision_min_overlap"`
	RevisionMinRatio   float64 `json:"revision_min_ratio" yaml:"revision_min_ratio"`

	// LengthTolerance is the permitted deviation from the target word
	// count, as a fraction (0.03 allows ±3%).
	LengthTolerance float64 `json:"length_tolerance" yaml:"length_tolerance"`

	// KeepComplianceNotice retains [COMPLIANCE-HINWEIS: …] markers in the
	// final text instead of stripping them.
	KeepComplianceNotice bool `json:"keep_compliance_notice" yaml:"keep_compliance_notice"`
}

// DefaultPolicy returns the baseline gate thresholds.
func DefaultPolicy() PolicyConfig {
	return PolicyConfig{
		FixMinOverlap:      0.80,
		FixMinRatio:        0.90,
		RevisionMinOverlap: 0.75,
		RevisionMinRatio:   0.88,
		LengthTolerance:    0.03,
	}
}

// DefaultParameters returns the baseline sampling controls for drafting
// stages.
func DefaultParameters() GenerationParameters {
	return GenerationParameters{
		Temperature:      0.7,
		TopP:             1.0,
		PresencePenalty:  0.05,
		FrequencyPenalty: 0.05,
		Seed:             42,
	}
}

// PipelineConfig groups everything the driver needs for one run.
type PipelineConfig struct {
	Model  ModelConfig  `json:"model" yaml:"model"`
	Policy PolicyConfig `json:"policy" yaml:"policy"`

	// OutputDir receives the per-stage text artifacts of a run.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// LogsDir receives the run and event logs.
	LogsDir string `json:"logs_dir" yaml:"logs_dir"`
}
