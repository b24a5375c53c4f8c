// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Stage identifies one step of the writing pipeline. Stages execute in a
// fixed linear order; only the revision stage repeats.
type Stage string

const (
	StageBriefing      Stage = "briefing"
	StageIdea          Stage = "idea"
	StageOutline       Stage = "outline"
	StageOutlineRefine Stage = "outline_refine"
	StageSection       Stage = "section"
	StageRubricCheck   Stage = "rubric_check"
	StageRubricFix     Stage = "rubric_fix"
	StageRevision      Stage = "revision"
	StageReflection    Stage = "reflection"
	StageCompliance    Stage = "compliance"
	StageFinal         Stage = "final"
)

// PipelineEvent is one append-only entry of a run's audit trail. Events are
// never mutated after being appended.
type PipelineEvent struct {
	// Seq is the position of the event in the run's trail, starting at 1.
	Seq int `json:"seq" yaml:"seq"`

	// Stage names the pipeline stage the event belongs to.
	Stage Stage `json:"stage" yaml:"stage"`

	// Message is a short human-readable description.
	Message string `json:"message" yaml:"message"`

	// Payload is an optional excerpt of the stage's artifact.
	Payload string `json:"payload,omitempty" yaml:"payload,omitempty"`

	// CreatedAt is the event timestamp.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// RunMetadata is the final snapshot of a completed run, computed once from
// the final draft and the retained compliance records.
type RunMetadata struct {
	// Title is the briefing title.
	Title string `json:"title" yaml:"title"`

	// Audience, Tone, Register, and Variant echo the normalized briefing.
	Audience string `json:"audience" yaml:"audience"`
	Tone     string `json:"tone" yaml:"tone"`
	Register string `json:"register" yaml:"register"`
	Variant  string `json:"variant" yaml:"variant"`

	// Keywords lists the SEO keywords the run targeted.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// FinalWordCount is the word count of the finalized text.
	FinalWordCount int `json:"final_word_count" yaml:"final_word_count"`

	// Model is the generative model identifier used for the run.
	Model string `json:"model" yaml:"model"`

	// RubricPassed reports whether the type rubric was satisfied at the end.
	RubricPassed bool `json:"rubric_passed" yaml:"rubric_passed"`

	// RubricFixApplied reports whether a correction draft was adopted.
	RubricFixApplied bool `json:"rubric_fix_applied" yaml:"rubric_fix_applied"`

	// RubricFixRejected reports whether a correction draft failed the
	// similarity gate and was discarded.
	RubricFixRejected bool `json:"rubric_fix_rejected" yaml:"rubric_fix_rejected"`

	// Iterations is the number of completed revision rounds.
	Iterations int `json:"iterations" yaml:"iterations"`

	// SourcesAllowed is the citation policy of the run.
	SourcesAllowed bool `json:"sources_allowed" yaml:"sources_allowed"`
}
