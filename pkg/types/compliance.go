// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PlaceholderCategory classifies an intentional gap marker in the text.
type PlaceholderCategory string

const (
	PlaceholderClarify PlaceholderCategory = "clarify"
	PlaceholderSource  PlaceholderCategory = "source"
	PlaceholderDate    PlaceholderCategory = "date"
	PlaceholderFigure  PlaceholderCategory = "figure"
)

// Redaction records one sensitive-term match that was replaced in the text.
type Redaction struct {
	// Rule names the pattern rule that fired.
	Rule string `json:"rule" yaml:"rule"`

	// Match is the original matched text.
	Match string `json:"match" yaml:"match"`

	// Reason is the short tag carried by the redaction marker.
	Reason string `json:"reason" yaml:"reason"`
}

// ComplianceRecord is the audit result of one scan over a full draft.
// One record is produced per material draft version; records are never
// merged across passes.
type ComplianceRecord struct {
	// Stage names the pipeline stage that produced the scanned draft.
	Stage Stage `json:"stage" yaml:"stage"`

	// Iteration is the revision round the record belongs to (0 for the
	// initial draft and the rubric fix).
	Iteration int `json:"iteration" yaml:"iteration"`

	// Placeholders counts gap markers by category. Placeholders are
	// counted, never altered.
	Placeholders map[PlaceholderCategory]int `json:"placeholders" yaml:"placeholders"`

	// Redactions lists every sensitive-term replacement made by the scan.
	Redactions []Redaction `json:"redactions,omitempty" yaml:"redactions,omitempty"`

	// NoticeCount is the number of compliance-notice markers found.
	NoticeCount int `json:"notice_count" yaml:"notice_count"`

	// NoticeKept reports whether notices were retained in the text.
	NoticeKept bool `json:"notice_kept" yaml:"notice_kept"`

	// SourcesAllowed is the citation policy the scan ran under.
	SourcesAllowed bool `json:"sources_allowed" yaml:"sources_allowed"`

	// CitationFlags lists citation-like fragments found while sources
	// were disallowed. Flagged for the report, never blocking.
	CitationFlags []string `json:"citation_flags,omitempty" yaml:"citation_flags,omitempty"`
}

// TotalPlaceholders returns the number of placeholders across all categories.
func (r ComplianceRecord) TotalPlaceholders() int {
	total := 0
	for _, n := range r.Placeholders {
		total += n
	}
	return total
}
