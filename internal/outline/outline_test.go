// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/wordsmith/pkg/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantLen int
		check   func(t *testing.T, sections []types.OutlineSection)
	}{
		{
			name: "canonical prompt format",
			raw: "1. Kontext und Zielbild (Rolle: Hook; Wortbudget: 120; Liefergegenstand: Ausgangslage verorten.)\n" +
				"2. Strategische Leitplanken (Rolle: Argument; Wortbudget: 260; Liefergegenstand: Prioritäten bündeln.)\n" +
				"3. Fazit (Rolle: CTA; Wortbudget: 120; Liefergegenstand: Nächsten Schritt aktivieren.)",
			wantLen: 3,
			check: func(t *testing.T, sections []types.OutlineSection) {
				assert.Equal(t, "1", sections[0].Number)
				assert.Equal(t, "Kontext und Zielbild", sections[0].Title)
				assert.Equal(t, "Hook", sections[0].Role)
				assert.Equal(t, 120, sections[0].Budget)
				assert.Equal(t, "Ausgangslage verorten.", sections[0].Deliverable)
			},
		},
		{
			name:    "arrow format with comma fields",
			raw:     "1. Einstieg (Rolle: Hook, Budget: 80 Wörter) -> Leser abholen.",
			wantLen: 1,
			check: func(t *testing.T, sections []types.OutlineSection) {
				assert.Equal(t, "Einstieg", sections[0].Title)
				assert.Equal(t, 80, sections[0].Budget)
				assert.Equal(t, "Leser abholen.", sections[0].Deliverable)
			},
		},
		{
			name:    "hierarchical numbering",
			raw:     "1. Hauptteil (Wortbudget: 200)\n1.1 Detail (Wortbudget: 100)",
			wantLen: 2,
			check: func(t *testing.T, sections []types.OutlineSection) {
				assert.Equal(t, "1.1", sections[1].Number)
				assert.Equal(t, "Detail", sections[1].Title)
			},
		},
		{
			name: "missing fields default to empty, never fabricated",
			raw:  "1. Nur ein Titel",
			wantLen: 1,
			check: func(t *testing.T, sections []types.OutlineSection) {
				assert.Equal(t, "", sections[0].Role)
				assert.Equal(t, 0, sections[0].Budget)
				assert.Equal(t, "", sections[0].Deliverable)
			},
		},
		{
			name: "prose and noise lines are skipped",
			raw: "Hier ist die gewünschte Gliederung:\n\n" +
				"1. Einstieg (Wortbudget: 50)\n" +
				"Gesamt: 50 Wörter\n",
			wantLen: 1,
		},
		{
			name:    "unparsable budget falls back to zero",
			raw:     "1. Abschnitt (Rolle: Hook; Wortbudget: viele; Liefergegenstand: Test.)",
			wantLen: 1,
			check: func(t *testing.T, sections []types.OutlineSection) {
				assert.Equal(t, 0, sections[0].Budget)
			},
		},
		{
			name:    "empty input yields zero sections",
			raw:     "",
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			require.Len(t, got.Sections, tt.wantLen)
			if tt.check != nil {
				tt.check(t, got.Sections)
			}
		})
	}
}

func TestBalanceExactSum(t *testing.T) {
	tests := []struct {
		name    string
		budgets []int
		target  int
		want    []int
	}{
		{
			name:    "valid budgets, remainder to last",
			budgets: []int{100, 200, 50},
			target:  500,
			want:    []int{100, 200, 200},
		},
		{
			name:    "missing budgets floored then last absorbs",
			budgets: []int{0, 0, 0},
			target:  300,
			want:    []int{1, 1, 298},
		},
		{
			name:    "negative budget treated as missing",
			budgets: []int{-20, 150},
			target:  200,
			want:    []int{1, 199},
		},
		{
			name:    "overshooting budgets trimmed from the end",
			budgets: []int{120, 120, 120},
			target:  100,
			want:    []int{98, 1, 1},
		},
		{
			name:    "single section takes everything",
			budgets: []int{7},
			target:  400,
			want:    []int{400},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections := make([]types.OutlineSection, len(tt.budgets))
			for i, b := range tt.budgets {
				sections[i] = types.OutlineSection{Number: "1", Title: "s", Budget: b}
			}

			got, err := Balance(types.Outline{Sections: sections}, tt.target)
			require.NoError(t, err)

			for i, s := range got.Sections {
				assert.Equal(t, tt.want[i], s.Budget)
				assert.GreaterOrEqual(t, s.Budget, 1, "every budget must stay positive")
			}
			assert.Equal(t, tt.target, got.TotalBudget(), "budgets must sum to the target exactly")
		})
	}
}

func TestBalanceErrors(t *testing.T) {
	_, err := Balance(types.Outline{}, 100)
	assert.Error(t, err)

	sections := []types.OutlineSection{{Budget: 1}, {Budget: 1}, {Budget: 1}}
	_, err = Balance(types.Outline{Sections: sections}, 2)
	assert.Error(t, err, "target below one word per section is unbalanceable")
}

func TestFormatRoundTrip(t *testing.T) {
	o := types.Outline{Sections: []types.OutlineSection{
		{Number: "1", Title: "Einstieg", Role: "Hook", Budget: 80, Deliverable: "Leser abholen."},
		{Number: "2", Title: "Fazit", Role: "CTA", Budget: 40, Deliverable: "Abschluss setzen."},
	}}
	parsed := Parse(Format(o))
	require.Len(t, parsed.Sections, 2)
	assert.Equal(t, o, parsed)
}
