// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/wordsmith/pkg/types"
)

func TestParamsFor(t *testing.T) {
	tests := []struct {
		stage    types.Stage
		wantTemp float64
	}{
		{types.StageBriefing, 0.7},
		{types.StageSection, 0.7},
		{types.StageRubricCheck, 0.2},
		{types.StageRevision, 0.6},
		{types.StageReflection, 0.7},
	}
	for _, tc := range tests {
		t.Run(string(tc.stage), func(t *testing.T) {
			p := ParamsFor(tc.stage)
			assert.InDelta(t, tc.wantTemp, p.Temperature, 1e-9)
			assert.InDelta(t, 1.0, p.TopP, 1e-9)
			assert.Equal(t, int64(42), p.Seed)
		})
	}
}

func TestRecap(t *testing.T) {
	t.Run("empty text yields first-section hint", func(t *testing.T) {
		assert.Contains(t, Recap(""), "erste Abschnitt")
	})

	t.Run("short text returned whole", func(t *testing.T) {
		assert.Equal(t, "kurzer bisheriger Text", Recap("kurzer  bisheriger\nText"))
	})

	t.Run("long text bounded to tail", func(t *testing.T) {
		var words []string
		for i := 0; i < 200; i++ {
			words = append(words, fmt.Sprintf("w%d", i))
		}
		got := Recap(strings.Join(words, " "))
		fields := strings.Fields(got)
		require.Len(t, fields, recapWords)
		assert.Equal(t, "w199", fields[len(fields)-1])
		assert.Equal(t, fmt.Sprintf("w%d", 200-recapWords), fields[0])
	})
}

func TestBriefingRequest(t *testing.T) {
	b := types.Briefing{
		Title:       "Edge-Computing im Mittelstand",
		TextType:    "Blogartikel",
		Content:     "Rohmaterial mit Stichpunkten.",
		Audience:    "IT-Leiter",
		Tone:        "sachlich-lebendig",
		Register:    "Sie",
		Variant:     "DE-DE",
		Constraints: "Keine zusätzlichen Vorgaben",
		SEOKeywords: []string{"edge computing", "latenz"},
	}
	req := Briefing(b)
	assert.Equal(t, types.StageBriefing, req.Stage)
	assert.Equal(t, SystemPrompt, req.System)
	assert.Contains(t, req.Prompt, "Edge-Computing im Mittelstand")
	assert.Contains(t, req.Prompt, "edge computing, latenz")
	assert.Contains(t, req.Prompt, "Rohmaterial mit Stichpunkten.")
}

func TestSectionRequest(t *testing.T) {
	b := types.Briefing{
		Title:    "Test",
		TextType: "Blogartikel",
		Register: "Du",
		Variant:  "DE-AT",
		KeyTerms: []string{"Latenz", "Edge-Knoten"},
	}
	sec := types.OutlineSection{
		Number:      "2",
		Title:       "Kontext",
		Role:        string(types.RoleContext),
		Budget:      180,
		Deliverable: "Status quo einordnen.",
	}
	req := Section(b, sec, "{briefing}", "1. Hook\n2. Kontext", "letzte Worte des Vorgängers")
	assert.Equal(t, types.StageSection, req.Stage)
	assert.Contains(t, req.Prompt, "Abschnitt 2 „Kontext“")
	assert.Contains(t, req.Prompt, "Zielwortzahl: 180")
	assert.Contains(t, req.Prompt, "Latenz, Edge-Knoten")
	assert.Contains(t, req.Prompt, "letzte Worte des Vorgängers")
	assert.Contains(t, req.Prompt, "Du, Variante DE-AT")
}

func TestRubricFor(t *testing.T) {
	t.Run("known type", func(t *testing.T) {
		assert.Contains(t, RubricFor("Blogartikel"), "Hook")
	})

	t.Run("alias folds onto rubric key", func(t *testing.T) {
		assert.Equal(t, RubricFor("Pressemitteilung"), RubricFor("Pressemeldung"))
	})

	t.Run("unknown type falls back to generic", func(t *testing.T) {
		got := RubricFor("Whitepaper-Sonderformat")
		assert.Contains(t, got, "Briefing genannte Ziel")
	})
}

func TestRubricCheckRunsCool(t *testing.T) {
	req := RubricCheck("Blogartikel", "Der Text.")
	assert.InDelta(t, 0.2, req.Params.Temperature, 1e-9)
	assert.Contains(t, req.Prompt, "Hook")
	assert.Contains(t, req.Prompt, "Der Text.")
}

func TestAssemblyIsDeterministic(t *testing.T) {
	b := types.Briefing{Title: "T", TextType: "Blogartikel", Content: "Inhalt", WordCount: 500}
	first := Outline(b, "doc")
	second := Outline(b, "doc")
	assert.Equal(t, first, second)
}
