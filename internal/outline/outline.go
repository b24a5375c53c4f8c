// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outline parses raw model output into structured outline sections
// and repairs word budgets so they sum exactly to the target length.
package outline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/wordsmith/pkg/types"
)

// entryPattern matches a hierarchically numbered outline line, e.g.
// "1. Kontext und Zielbild (Rolle: Hook; Wortbudget: 120; Liefergegenstand: …)".
var entryPattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)*)[.)]?\s+(.*\S)\s*$`)

// fieldPatterns extract the annotated fields from an entry's parenthetical.
// Both the semicolon format from the outline prompt and the comma/arrow
// format some models produce are accepted.
var (
	rolePattern        = regexp.MustCompile(`(?i)Rolle:\s*([^;,)]+)`)
	budgetPattern      = regexp.MustCompile(`(?i)(?:Wortbudget|Budget):\s*(?:ca\.\s*)?(\d+)`)
	deliverablePattern = regexp.MustCompile(`(?i)Liefergegenstand:\s*([^;)]+)`)
	arrowPattern       = regexp.MustCompile(`->\s*(.+)$`)
	parenPattern       = regexp.MustCompile(`\s*\([^)]*\)`)
)

// Parse reads a hierarchically numbered outline from raw model output.
// Parsing is tolerant: lines that are not numbered entries are skipped,
// and missing role, budget, or deliverable fields default to their empty
// placeholder rather than fabricated content. An outline that yields zero
// sections is a fatal condition reported by the caller.
func Parse(raw string) types.Outline {
	var sections []types.OutlineSection
	for _, line := range strings.Split(raw, "\n") {
		m := entryPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rest := m[2]

		section := types.OutlineSection{Number: m[1]}
		if rm := rolePattern.FindStringSubmatch(rest); rm != nil {
			section.Role = strings.TrimSpace(rm[1])
		}
		if bm := budgetPattern.FindStringSubmatch(rest); bm != nil {
			section.Budget, _ = strconv.Atoi(bm[1])
		}
		if dm := deliverablePattern.FindStringSubmatch(rest); dm != nil {
			section.Deliverable = strings.TrimSpace(dm[1])
		} else if am := arrowPattern.FindStringSubmatch(rest); am != nil {
			section.Deliverable = strings.TrimSpace(am[1])
		}

		title := arrowPattern.ReplaceAllString(rest, "")
		title = parenPattern.ReplaceAllString(title, "")
		section.Title = strings.TrimSpace(title)

		if section.Title == "" {
			continue
		}
		sections = append(sections, section)
	}
	return types.Outline{Sections: sections}
}

// Balance repairs the word budgets of sections in place so that they sum
// exactly to target. Missing, non-positive, or unparsable budgets get a
// floor of 1; the last section absorbs the entire remainder, even when that
// produces a large imbalance — budget errors concentrate at the end, they
// never silently vanish. The exact-sum postcondition is enforced, not
// hoped for: Balance fails when target cannot cover one word per section.
func Balance(o types.Outline, target int) (types.Outline, error) {
	sections := o.Sections
	if len(sections) == 0 {
		return types.Outline{}, fmt.Errorf("balancing outline: no sections")
	}
	if target < len(sections) {
		return types.Outline{}, fmt.Errorf("balancing outline: target word count %d cannot cover %d sections", target, len(sections))
	}

	for i := range sections {
		if sections[i].Budget < 1 {
			sections[i].Budget = 1
		}
	}

	last := len(sections) - 1
	others := 0
	for _, s := range sections[:last] {
		others += s.Budget
	}

	remainder := target - others
	if remainder >= 1 {
		sections[last].Budget = remainder
	} else {
		// The preceding budgets already exceed the target. Keep the floor
		// on the last section and trim the surplus from the end backwards.
		sections[last].Budget = 1
		surplus := others - (target - 1)
		for i := last - 1; i >= 0 && surplus > 0; i-- {
			reducible := sections[i].Budget - 1
			if reducible > surplus {
				reducible = surplus
			}
			sections[i].Budget -= reducible
			surplus -= reducible
		}
	}

	o.Sections = sections
	if sum := o.TotalBudget(); sum != target {
		return types.Outline{}, fmt.Errorf("balancing outline: budgets sum to %d, want %d", sum, target)
	}
	return o, nil
}

// Format renders an outline in the canonical single-line form used for
// the outline artifact and the section prompts.
func Format(o types.Outline) string {
	var b strings.Builder
	for i, s := range o.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s. %s (Rolle: %s; Wortbudget: %d; Liefergegenstand: %s)",
			s.Number, s.Title, s.Role, s.Budget, s.Deliverable)
	}
	return b.String()
}
