// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent drives one writing run from briefing to finalized text.
// The pipeline is strictly sequential: every stage consumes the full
// output of the previous one, so there is no fan-out across sections or
// revision rounds. A driver instance owns all run-scoped state and must
// not be shared across runs.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pdiddy/wordsmith/internal/compliance"
	"github.com/pdiddy/wordsmith/internal/llm"
	"github.com/pdiddy/wordsmith/internal/outline"
	"github.com/pdiddy/wordsmith/internal/prompt"
	"github.com/pdiddy/wordsmith/internal/textmetrics"
	"github.com/pdiddy/wordsmith/pkg/types"
)

// ArtifactSink receives every stage product and audit-trail entry of a
// run. The driver does not care where artifacts end up, only that each
// one is retrievable by stage and iteration.
type ArtifactSink interface {
	SaveArtifact(ctx context.Context, stage types.Stage, iteration int, name, content string) error
	Event(ctx context.Context, stage types.Stage, message, payload string) error
}

// Result is the outcome of a completed run.
type Result struct {
	FinalText string
	Metadata  types.RunMetadata
	Records   []types.ComplianceRecord
}

// Agent executes the writing pipeline for a single briefing.
type Agent struct {
	briefing types.Briefing
	cfg      types.PipelineConfig
	gateway  llm.Gateway
	sink     ArtifactSink
	out      io.Writer

	records []types.ComplianceRecord
}

// New validates and normalizes the briefing and builds a driver for it.
// Normalization warnings are written to w. The caller must have resolved
// the model's context and token limits before constructing the driver.
func New(b types.Briefing, cfg types.PipelineConfig, gw llm.Gateway, sink ArtifactSink, w io.Writer) (*Agent, error) {
	if w == nil {
		w = io.Discard
	}

	normalized, warnings, err := Normalize(b)
	if err != nil {
		return nil, err
	}
	for _, warning := range warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}

	if cfg.Policy == (types.PolicyConfig{}) {
		cfg.Policy = types.DefaultPolicy()
	}

	return &Agent{
		briefing: normalized,
		cfg:      cfg,
		gateway:  gw,
		sink:     sink,
		out:      w,
	}, nil
}

// Briefing returns the normalized briefing the run will use.
func (a *Agent) Briefing() types.Briefing {
	return a.briefing
}

// Attach sets the artifact sink. A caller that keys its archive by the
// normalized briefing constructs the driver first, registers the run,
// and attaches the run-scoped sink before calling Run.
func (a *Agent) Attach(sink ArtifactSink) {
	a.sink = sink
}

// passVerdictPattern matches an explicit PASS verdict in the rubric
// check output.
var passVerdictPattern = regexp.MustCompile(`(?i)gesamturteil[:*\s]*pass\b`)

// rubricPassed scans the check output for phrases indicating no
// deviations. Absence of such phrases counts as failure, so an evasive
// or malformed answer routes the draft into the correction step.
func rubricPassed(checkOutput string) bool {
	lower := strings.ToLower(checkOutput)
	return strings.Contains(lower, "keine abweichung") || passVerdictPattern.MatchString(checkOutput)
}

// applyVariant rewrites variant-specific spellings. Austrian and Swiss
// target texts use ss in place of ß.
func applyVariant(text, variant string) string {
	if variant == "DE-AT" || variant == "DE-CH" {
		return strings.ReplaceAll(text, "ß", "ss")
	}
	return text
}

// sectionHeading renders the markdown heading of a drafted section from
// its outline entry. The model never invents headings; the outline is the
// single source for them.
func sectionHeading(sec types.OutlineSection) string {
	h := fmt.Sprintf("## %s. %s", sec.Number, sec.Title)
	if sec.Role != "" {
		h += fmt.Sprintf(" (%s)", sec.Role)
	}
	return h
}

// Run executes the full pipeline and returns the finalized text with its
// metadata and compliance trail. Fatal errors carry the stage they
// occurred in; no stage is retried.
func (a *Agent) Run(ctx context.Context) (*Result, error) {
	b := a.briefing
	pol := a.cfg.Policy
	maxWords := b.WordCount + int(float64(b.WordCount)*pol.LengthTolerance)

	// Briefing condensation. The structured doc derives goal, key terms,
	// and messages; unparseable output is tolerated because the raw text
	// still serves as prompt context.
	briefingRaw, err := a.generate(ctx, prompt.Briefing(b))
	if err != nil {
		return nil, err
	}
	if merged, ok := mergeBriefingDoc(b, briefingRaw); ok {
		b = merged
		a.briefing = merged
	} else {
		fmt.Fprintf(a.out, "warning: briefing doc not parseable as JSON, continuing with raw text\n")
		if err := a.event(ctx, types.StageBriefing, "briefing doc unparseable, kept raw", ""); err != nil {
			return nil, err
		}
	}
	if err := a.save(ctx, types.StageBriefing, 0, "briefing_doc.json", briefingRaw); err != nil {
		return nil, err
	}
	if err := a.event(ctx, types.StageBriefing, "briefing normalized", b.Goal); err != nil {
		return nil, err
	}

	// Idea improvement. No-new-facts is a prompt instruction only, so the
	// output is taken as-is.
	ideaText, err := a.generate(ctx, prompt.Idea(b.Content))
	if err != nil {
		return nil, err
	}
	if err := a.save(ctx, types.StageIdea, 0, "idea.txt", ideaText); err != nil {
		return nil, err
	}
	if err := a.event(ctx, types.StageIdea, "idea improved", ""); err != nil {
		return nil, err
	}

	// Outline construction and refinement.
	docContext := briefingRaw + "\n\nIdee:\n" + ideaText
	outlineRaw, err := a.generate(ctx, prompt.Outline(b, docContext))
	if err != nil {
		return nil, err
	}
	ol := outline.Parse(outlineRaw)

	refinedRaw, err := a.generate(ctx, prompt.OutlineRefine(b, outlineRaw))
	if err != nil {
		return nil, err
	}
	if refined := outline.Parse(refinedRaw); len(refined.Sections) > 0 {
		ol = refined
	}
	if len(ol.Sections) == 0 {
		return nil, &OutlineError{Reason: "model output parsed to zero sections"}
	}

	ol, err = outline.Balance(ol, b.WordCount)
	if err != nil {
		return nil, &OutlineError{Reason: err.Error()}
	}
	sections := ol.Sections
	outlineText := outline.Format(ol)
	if err := a.save(ctx, types.StageOutline, 0, "outline.txt", outlineText); err != nil {
		return nil, err
	}
	if err := a.event(ctx, types.StageOutline, fmt.Sprintf("outline balanced to %d sections, %d words total", len(sections), ol.TotalBudget()), outlineText); err != nil {
		return nil, err
	}

	// Section drafting, strictly in order: each prompt needs the recap of
	// the text produced so far. The model writes body text only; the
	// heading comes from the balanced outline and stays outside the
	// section's word budget.
	var parts []string
	for i, sec := range sections {
		recap := prompt.Recap(strings.Join(parts, "\n\n"))
		text, err := a.generate(ctx, prompt.Section(b, sec, briefingRaw, outlineText, recap))
		if err != nil {
			return nil, err
		}
		text = applyVariant(textmetrics.TruncateToBudget(text, sec.Budget), b.Variant)
		parts = append(parts, sectionHeading(sec)+"\n\n"+text)
		if err := a.event(ctx, types.StageSection, fmt.Sprintf("section %d/%d drafted (%d words)", i+1, len(sections), textmetrics.WordCount(text)), ""); err != nil {
			return nil, err
		}
	}
	draft := strings.Join(parts, "\n\n")

	// First material draft: audit and archive.
	draft, err = a.auditPass(ctx, types.StageSection, 0, draft)
	if err != nil {
		return nil, err
	}
	if err := a.save(ctx, types.StageSection, 0, "current_text.txt", draft); err != nil {
		return nil, err
	}

	// Rubric check with gated correction.
	checkOut, err := a.generate(ctx, prompt.RubricCheck(b.TextType, draft))
	if err != nil {
		return nil, err
	}
	if err := a.save(ctx, types.StageRubricCheck, 0, "text_type_check.txt", checkOut); err != nil {
		return nil, err
	}
	passed := rubricPassed(checkOut)
	fixApplied := false
	fixRejected := false

	if !passed {
		fixOut, err := a.generate(ctx, prompt.RubricFix(checkOut, draft))
		if err != nil {
			return nil, err
		}
		if err := a.save(ctx, types.StageRubricFix, 0, "text_type_fix.txt", fixOut); err != nil {
			return nil, err
		}
		if textmetrics.SimilarityGate(draft, fixOut, pol.FixMinOverlap, pol.FixMinRatio) {
			candidate := applyVariant(textmetrics.TruncateToBudget(fixOut, maxWords), b.Variant)
			draft, err = a.auditPass(ctx, types.StageRubricFix, 0, candidate)
			if err != nil {
				return nil, err
			}
			fixApplied = true
			if err := a.save(ctx, types.StageRubricFix, 0, "current_text.txt", draft); err != nil {
				return nil, err
			}
			if err := a.event(ctx, types.StageRubricFix, "rubric fix adopted", ""); err != nil {
				return nil, err
			}
		} else {
			// Unvetted replacements are never kept silently.
			fixRejected = true
			if err := a.event(ctx, types.StageRubricFix, "rubric fix rejected by similarity gate, keeping prior text", ""); err != nil {
				return nil, err
			}
		}
	}

	// Bounded revision loop. Zero iterations is a valid no-op count.
	for i := 1; i <= b.Iterations; i++ {
		revOut, err := a.generate(ctx, prompt.Revision(b, i, draft))
		if err != nil {
			return nil, err
		}
		if textmetrics.SimilarityGate(draft, revOut, pol.RevisionMinOverlap, pol.RevisionMinRatio) {
			candidate := applyVariant(textmetrics.TruncateToBudget(revOut, maxWords), b.Variant)
			draft, err = a.auditPass(ctx, types.StageRevision, i, candidate)
			if err != nil {
				return nil, err
			}
			if err := a.event(ctx, types.StageRevision, fmt.Sprintf("revision %d adopted", i), ""); err != nil {
				return nil, err
			}
		} else {
			if err := a.event(ctx, types.StageRevision, fmt.Sprintf("revision %d rejected by similarity gate, keeping prior text", i), ""); err != nil {
				return nil, err
			}
		}
		name := fmt.Sprintf("iteration_%02d.txt", i)
		if err := a.save(ctx, types.StageRevision, i, name, draft); err != nil {
			return nil, err
		}
		if err := a.save(ctx, types.StageRevision, i, "current_text.txt", draft); err != nil {
			return nil, err
		}

		// Reflection is logging only; a failed call degrades the trail but
		// never the text, so it does not abort the run.
		reflection, err := a.generate(ctx, prompt.Reflection(i, draft))
		if err != nil {
			fmt.Fprintf(a.out, "warning: reflection after round %d failed: %v\n", i, err)
			if err := a.event(ctx, types.StageReflection, fmt.Sprintf("reflection %d failed", i), ""); err != nil {
				return nil, err
			}
		} else {
			if err := a.save(ctx, types.StageReflection, i, fmt.Sprintf("reflection_%02d.txt", i), reflection); err != nil {
				return nil, err
			}
		}
	}

	// Finalization.
	final := strings.TrimSpace(draft)
	if err := a.save(ctx, types.StageFinal, 0, "current_text.txt", final); err != nil {
		return nil, err
	}

	meta := types.RunMetadata{
		Title:             b.Title,
		Audience:          b.Audience,
		Tone:              b.Tone,
		Register:          b.Register,
		Variant:           b.Variant,
		Keywords:          b.SEOKeywords,
		FinalWordCount:    textmetrics.WordCount(final),
		Model:             a.cfg.Model.Model,
		RubricPassed:      passed,
		RubricFixApplied:  fixApplied,
		RubricFixRejected: fixRejected,
		Iterations:        b.Iterations,
		SourcesAllowed:    b.SourcesAllowed,
	}
	if err := a.event(ctx, types.StageFinal, fmt.Sprintf("run finalized (%d words, %d compliance passes)", meta.FinalWordCount, len(a.records)), ""); err != nil {
		return nil, err
	}

	return &Result{FinalText: final, Metadata: meta, Records: a.records}, nil
}

// auditPass scans one material draft version, retains its compliance
// record, and returns the redacted text.
func (a *Agent) auditPass(ctx context.Context, stage types.Stage, iteration int, text string) (string, error) {
	redacted, rec := compliance.Scan(text, a.briefing.SourcesAllowed, a.cfg.Policy.KeepComplianceNotice)
	rec.Stage = stage
	rec.Iteration = iteration
	a.records = append(a.records, rec)

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("stage %s: marshaling compliance record: %w", types.StageCompliance, err)
	}
	name := fmt.Sprintf("compliance_%02d.json", len(a.records))
	if err := a.save(ctx, types.StageCompliance, iteration, name, string(data)+"\n"); err != nil {
		return "", err
	}
	if err := a.event(ctx, types.StageCompliance, fmt.Sprintf("compliance pass %d after %s: %d placeholders, %d redactions", len(a.records), stage, rec.TotalPlaceholders(), len(rec.Redactions)), ""); err != nil {
		return "", err
	}
	return redacted, nil
}

func (a *Agent) generate(ctx context.Context, req prompt.Request) (string, error) {
	fmt.Fprintf(a.out, "stage %s\n", req.Stage)
	text, err := a.gateway.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", req.Stage, err)
	}
	return text, nil
}

func (a *Agent) save(ctx context.Context, stage types.Stage, iteration int, name, content string) error {
	if err := a.sink.SaveArtifact(ctx, stage, iteration, name, content); err != nil {
		return fmt.Errorf("archiving %s: %w", name, err)
	}
	return nil
}

func (a *Agent) event(ctx context.Context, stage types.Stage, message, payload string) error {
	if err := a.sink.Event(ctx, stage, message, payload); err != nil {
		return fmt.Errorf("recording event for stage %s: %w", stage, err)
	}
	return nil
}
