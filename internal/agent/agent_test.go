// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/wordsmith/internal/prompt"
	"github.com/pdiddy/wordsmith/pkg/types"
)

// stubGateway returns a fixed response per stage and records the order
// of stages it was asked to generate for.
type stubGateway struct {
	responses map[types.Stage]string
	calls     []types.Stage
}

func (g *stubGateway) Generate(_ context.Context, req prompt.Request) (string, error) {
	g.calls = append(g.calls, req.Stage)
	resp, ok := g.responses[req.Stage]
	if !ok {
		return "", fmt.Errorf("no stub response for stage %s", req.Stage)
	}
	return resp, nil
}

func (g *stubGateway) called(stage types.Stage) int {
	n := 0
	for _, s := range g.calls {
		if s == stage {
			n++
		}
	}
	return n
}

// memSink collects artifacts and events in memory.
type memSink struct {
	artifacts map[string]string
	events    []string
}

func newMemSink() *memSink {
	return &memSink{artifacts: map[string]string{}}
}

func (m *memSink) SaveArtifact(_ context.Context, _ types.Stage, _ int, name, content string) error {
	m.artifacts[name] = content
	return nil
}

func (m *memSink) Event(_ context.Context, stage types.Stage, message, _ string) error {
	m.events = append(m.events, string(stage)+": "+message)
	return nil
}

// sectionText builds a section draft of exactly n distinct words ending
// in a period.
func sectionText(n int) string {
	words := make([]string, 0, n)
	for i := 0; i < n-1; i++ {
		words = append(words, fmt.Sprintf("wort%d", i))
	}
	return strings.Join(words, " ") + " ende."
}

func stubResponses(draft string) map[types.Stage]string {
	outlineText := "1. Einstieg (Rolle: Hook; Wortbudget: 50; Liefergegenstand: Einstieg liefern.)\n" +
		"2. Fazit (Rolle: Fazit; Wortbudget: 50; Liefergegenstand: Abschluss liefern.)"
	return map[types.Stage]string{
		types.StageBriefing:      `{"goal": "Plan vorstellen", "key_terms": ["Launch"], "messages": ["Der Launch kommt."]}`,
		types.StageIdea:          "Die Idee, klar verdichtet.",
		types.StageOutline:       outlineText,
		types.StageOutlineRefine: outlineText,
		types.StageSection:       draft,
		types.StageRubricCheck:   "Gesamturteil: PASS — Keine Abweichungen.",
		types.StageRevision:      "",
		types.StageReflection:    "1. Nichts weiter nötig (gesamter Text).",
	}
}

func minimalBriefing(iterations int) types.Briefing {
	return types.Briefing{
		Title:      "Launch Plan",
		Content:    "Stichpunkte zum Launch.",
		TextType:   "Blog",
		WordCount:  100,
		Iterations: iterations,
	}
}

func testConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Model:  types.ModelConfig{Model: "stub-model", TokenLimit: 8192},
		Policy: types.DefaultPolicy(),
	}
}

func TestRunMinimalBriefing(t *testing.T) {
	gw := &stubGateway{responses: stubResponses(sectionText(50))}
	sink := newMemSink()

	a, err := New(minimalBriefing(0), testConfig(), gw, sink, nil)
	require.NoError(t, err)

	res, err := a.Run(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, res.FinalText)
	assert.Equal(t, 108, res.Metadata.FinalWordCount, "two 50-word bodies plus their headings")
	assert.Contains(t, res.FinalText, "## 1. Einstieg (Hook)")
	assert.Contains(t, res.FinalText, "## 2. Fazit (Fazit)")
	assert.Len(t, res.Records, 1, "iterations=0 must produce exactly one compliance record")
	assert.Equal(t, types.StageSection, res.Records[0].Stage)

	assert.True(t, res.Metadata.RubricPassed)
	assert.False(t, res.Metadata.RubricFixApplied)
	assert.Equal(t, 0, res.Metadata.Iterations)
	assert.Equal(t, "stub-model", res.Metadata.Model)

	assert.Contains(t, sink.artifacts, "idea.txt")
	assert.Contains(t, sink.artifacts, "outline.txt")
	assert.Contains(t, sink.artifacts, "text_type_check.txt")
	assert.Contains(t, sink.artifacts, "current_text.txt")
	assert.NotContains(t, sink.artifacts, "text_type_fix.txt")

	// Two sections were drafted, strictly after the outline stages.
	assert.Equal(t, 2, gw.called(types.StageSection))
}

func TestRunRevisionRoundsProduceOneRecordEach(t *testing.T) {
	draft := sectionText(50)
	responses := stubResponses(draft)
	// The revision echoes the full two-section draft, so the gate accepts
	// it as an identical edit.
	responses[types.StageRevision] = draft + "\n\n" + draft

	gw := &stubGateway{responses: responses}
	sink := newMemSink()

	a, err := New(minimalBriefing(2), testConfig(), gw, sink, nil)
	require.NoError(t, err)

	res, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, res.Records, 3, "initial draft plus two adopted revisions")
	assert.Equal(t, types.StageSection, res.Records[0].Stage)
	assert.Equal(t, types.StageRevision, res.Records[1].Stage)
	assert.Equal(t, 1, res.Records[1].Iteration)
	assert.Equal(t, 2, res.Records[2].Iteration)

	assert.Contains(t, sink.artifacts, "iteration_01.txt")
	assert.Contains(t, sink.artifacts, "iteration_02.txt")
	assert.Contains(t, sink.artifacts, "reflection_01.txt")
	assert.Equal(t, 2, gw.called(types.StageReflection))
}

func TestRunRejectedFixKeepsPriorDraft(t *testing.T) {
	draft := sectionText(50)
	responses := stubResponses(draft)
	responses[types.StageRubricCheck] = "Gesamturteil: FAIL — die Struktur weicht ab."
	responses[types.StageRubricFix] = "Völlig anderer Text ohne jeden Bezug zum Entwurf."

	gw := &stubGateway{responses: responses}
	sink := newMemSink()

	a, err := New(minimalBriefing(0), testConfig(), gw, sink, nil)
	require.NoError(t, err)

	res, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, res.FinalText, "wort0", "pre-fix draft must be retained")
	assert.Contains(t, res.FinalText, "## 1. Einstieg", "headings survive a rejected fix")
	assert.NotContains(t, res.FinalText, "ohne jeden Bezug")
	assert.False(t, res.Metadata.RubricPassed)
	assert.False(t, res.Metadata.RubricFixApplied)
	assert.True(t, res.Metadata.RubricFixRejected)
	assert.Len(t, res.Records, 1, "a rejected fix is not a material change")
	assert.Contains(t, sink.artifacts, "text_type_fix.txt")
}

func TestRunAdoptedFixAddsComplianceRecord(t *testing.T) {
	draft := sectionText(50)
	responses := stubResponses(draft)
	responses[types.StageRubricCheck] = "Gesamturteil: FAIL — Einstieg zu schwach."
	// A light edit of the full draft: overlap and sequence stay high.
	full := draft + "\n\n" + draft
	responses[types.StageRubricFix] = strings.Replace(full, "ende.", "schluss.", 1)

	gw := &stubGateway{responses: responses}
	sink := newMemSink()

	a, err := New(minimalBriefing(0), testConfig(), gw, sink, nil)
	require.NoError(t, err)

	res, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, res.Metadata.RubricFixApplied)
	assert.False(t, res.Metadata.RubricFixRejected)
	require.Len(t, res.Records, 2)
	assert.Equal(t, types.StageRubricFix, res.Records[1].Stage)
	assert.Contains(t, res.FinalText, "schluss.")
}

func TestRunZeroSectionOutlineIsFatal(t *testing.T) {
	responses := stubResponses(sectionText(50))
	responses[types.StageOutline] = "Leider keine brauchbare Gliederung."
	responses[types.StageOutlineRefine] = "Immer noch keine Gliederung."

	gw := &stubGateway{responses: responses}

	a, err := New(minimalBriefing(0), testConfig(), gw, newMemSink(), nil)
	require.NoError(t, err)

	_, err = a.Run(context.Background())
	var oerr *OutlineError
	require.ErrorAs(t, err, &oerr)
	assert.Zero(t, gw.called(types.StageSection), "no section may be drafted without an outline")
}

func TestRunVariantRewritesSharpS(t *testing.T) {
	words := make([]string, 49)
	for i := range words {
		words[i] = fmt.Sprintf("wort%d", i)
	}
	draft := "Die Straße " + strings.Join(words[:47], " ") + " ende."
	responses := stubResponses(draft)

	b := minimalBriefing(0)
	b.Variant = "DE-CH"

	gw := &stubGateway{responses: responses}
	a, err := New(b, testConfig(), gw, newMemSink(), nil)
	require.NoError(t, err)

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, res.FinalText, "Strasse")
	assert.NotContains(t, res.FinalText, "ß")
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.Briefing)
		wantErr string
	}{
		{"missing title", func(b *types.Briefing) { b.Title = "" }, "title"},
		{"whitespace-only title", func(b *types.Briefing) { b.Title = "   " }, "title"},
		{"missing text type", func(b *types.Briefing) { b.TextType = "" }, "texttype"},
		{"whitespace-only text type", func(b *types.Briefing) { b.TextType = "\t " }, "texttype"},
		{"zero word count", func(b *types.Briefing) { b.WordCount = 0 }, "wordcount"},
		{"negative iterations", func(b *types.Briefing) { b.Iterations = -1 }, "iterations"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := minimalBriefing(0)
			tc.mutate(&b)
			_, err := New(b, testConfig(), &stubGateway{}, newMemSink(), nil)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Error(), tc.wantErr)
		})
	}
}

func TestNewNormalizesStyleFields(t *testing.T) {
	b := minimalBriefing(0)
	b.Register = "förmlich"
	b.Variant = "de-at"
	b.SEOKeywords = []string{" launch ", "Launch", "plan"}

	var buf bytes.Buffer
	a, err := New(b, testConfig(), &stubGateway{}, newMemSink(), &buf)
	require.NoError(t, err)

	got := a.Briefing()
	assert.Equal(t, types.DefaultRegister, got.Register)
	assert.Equal(t, "DE-AT", got.Variant)
	assert.Equal(t, types.DefaultAudience, got.Audience)
	assert.Equal(t, types.DefaultTone, got.Tone)
	assert.Equal(t, types.DefaultConstraints, got.Constraints)
	assert.Equal(t, []string{"launch", "plan"}, got.SEOKeywords)
	assert.Contains(t, buf.String(), "unknown register")
}

func TestMergeBriefingDoc(t *testing.T) {
	b := minimalBriefing(0)

	t.Run("fills derived fields from json", func(t *testing.T) {
		got, ok := mergeBriefingDoc(b, "Hier das Briefing:\n```json\n{\"goal\": \"Ziel\", \"key_terms\": [\"Launch\"], \"messages\": [\"M1\"]}\n```")
		require.True(t, ok)
		assert.Equal(t, "Ziel", got.Goal)
		assert.Equal(t, []string{"Launch"}, got.KeyTerms)
	})

	t.Run("never overwrites caller input", func(t *testing.T) {
		b := b
		b.Goal = "Eigenes Ziel"
		got, ok := mergeBriefingDoc(b, `{"goal": "Anderes Ziel"}`)
		require.True(t, ok)
		assert.Equal(t, "Eigenes Ziel", got.Goal)
	})

	t.Run("parse failure leaves briefing untouched", func(t *testing.T) {
		got, ok := mergeBriefingDoc(b, "kein json hier")
		assert.False(t, ok)
		assert.Equal(t, b, got)
	})
}

func TestRubricPassed(t *testing.T) {
	assert.True(t, rubricPassed("Gesamturteil: PASS mit kleinen Hinweisen."))
	assert.True(t, rubricPassed("**Gesamturteil:** PASS"))
	assert.True(t, rubricPassed("Es liegen keine Abweichungen vor."))
	assert.False(t, rubricPassed("Gesamturteil: FAIL — Einstieg fehlt."))
	assert.False(t, rubricPassed("Der Text passt so halbwegs."))
}
