// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compliance audits a draft for sensitive terms, gap placeholders,
// compliance notices, and citation policy violations. The auditor redacts
// and records; it never aborts the pipeline.
package compliance

import (
	"regexp"
	"strings"

	"github.com/pdiddy/wordsmith/pkg/types"
)

// placeholderPatterns maps the fixed gap-marker vocabulary to categories.
// Placeholders are intentional signals of incomplete information; they are
// counted per category and never altered.
var placeholderPatterns = map[types.PlaceholderCategory]*regexp.Regexp{
	types.PlaceholderClarify: regexp.MustCompile(`\[KLÄREN:[^\]]*\]`),
	types.PlaceholderSource:  regexp.MustCompile(`\[QUELLE\]`),
	types.PlaceholderDate:    regexp.MustCompile(`\[DATUM\]`),
	types.PlaceholderFigure:  regexp.MustCompile(`\[KENNZAHL\]`),
}

// noticePattern matches the bracketed compliance notice, including a
// trailing newline when the notice stands on its own line.
var noticePattern = regexp.MustCompile(`\[COMPLIANCE-HINWEIS:[^\]]*\]\n?`)

// sensitiveRule is one fixed redaction rule. The rule set is not
// user-configurable at run time.
type sensitiveRule struct {
	name    string
	pattern *regexp.Regexp
	reason  string
}

// sensitiveRules is the fixed redaction rule set. Reason tags must never
// themselves match a rule, otherwise a second scan would re-redact.
var sensitiveRules = []sensitiveRule{
	{
		name:    "email",
		pattern: regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`),
		reason:  "personenbezogene-daten",
	},
	{
		name:    "phone",
		pattern: regexp.MustCompile(`(?:\+|0)[0-9][0-9 /\-]{7,}[0-9]`),
		reason:  "personenbezogene-daten",
	},
	{
		name:    "internal-marker",
		pattern: regexp.MustCompile(`(?i)(?:streng vertraulich|vertraulich|nur für den internen gebrauch)`),
		reason:  "interner-vermerk",
	},
}

// citationPatterns flag citation-like fragments when sources are not
// allowed. The placeholder vocabulary ([QUELLE]) is deliberately excluded.
var citationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https?://\S+`),
	regexp.MustCompile(`\(vgl\.[^)]*\)`),
	regexp.MustCompile(`\[\d+\]`),
	regexp.MustCompile(`Quelle:\s*\S+`),
}

// Scan audits text and returns the redacted text plus the audit record.
// Sensitive terms are replaced in place with a [REDAKTION: reason] marker,
// placeholders are counted per category, and compliance notices are
// stripped unless keepNotice is set. When sourcesAllowed is false,
// citation-like fragments are flagged in the record without blocking.
func Scan(text string, sourcesAllowed, keepNotice bool) (string, types.ComplianceRecord) {
	record := types.ComplianceRecord{
		Placeholders:   make(map[types.PlaceholderCategory]int),
		SourcesAllowed: sourcesAllowed,
		NoticeKept:     keepNotice,
	}

	for category, pattern := range placeholderPatterns {
		record.Placeholders[category] = len(pattern.FindAllString(text, -1))
	}

	record.NoticeCount = len(noticePattern.FindAllString(text, -1))
	if !keepNotice && record.NoticeCount > 0 {
		text = strings.TrimSpace(noticePattern.ReplaceAllString(text, ""))
	}

	for _, rule := range sensitiveRules {
		matches := rule.pattern.FindAllString(text, -1)
		for _, m := range matches {
			record.Redactions = append(record.Redactions, types.Redaction{
				Rule:   rule.name,
				Match:  m,
				Reason: rule.reason,
			})
		}
		if len(matches) > 0 {
			text = rule.pattern.ReplaceAllString(text, "[REDAKTION: "+rule.reason+"]")
		}
	}

	if !sourcesAllowed {
		for _, pattern := range citationPatterns {
			record.CitationFlags = append(record.CitationFlags, pattern.FindAllString(text, -1)...)
		}
	}

	return text, record
}
