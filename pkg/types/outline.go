// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SectionRole is the functional tag of an outline section.
type SectionRole string

const (
	RoleHook            SectionRole = "Hook"
	RoleContext         SectionRole = "Kontext"
	RoleArgument        SectionRole = "Argument"
	RoleCounterArgument SectionRole = "Gegenargument"
	RoleConclusion      SectionRole = "Fazit"
	RoleCTA             SectionRole = "CTA"
)

// OutlineSection describes one structural unit of the final text.
type OutlineSection struct {
	// Number is the hierarchical position label (e.g. "1", "2.1").
	Number string `json:"number" yaml:"number"`

	// Title is the section heading.
	Title string `json:"title" yaml:"title"`

	// Role is the functional tag. Empty when the model omitted it; never
	// fabricated.
	Role string `json:"role" yaml:"role"`

	// Budget is the word budget allocated to the section. After balancing
	// it is always >= 1 and all budgets sum to the target word count.
	Budget int `json:"budget" yaml:"budget"`

	// Deliverable states the question or purpose the section must satisfy.
	Deliverable string `json:"deliverable" yaml:"deliverable"`
}

// Outline holds the ordered sections of one pipeline run.
type Outline struct {
	Sections []OutlineSection `json:"sections" yaml:"sections"`
}

// TotalBudget returns the sum of all section word budgets.
func (o Outline) TotalBudget() int {
	total := 0
	for _, s := range o.Sections {
		total += s.Budget
	}
	return total
}
