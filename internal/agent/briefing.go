// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pdiddy/wordsmith/pkg/types"
)

var validate = validator.New()

// Normalize validates the briefing and resolves its optional fields. It
// returns the normalized copy plus warnings for inputs that fell back to
// a default. Unknown register or variant values never abort the run.
func Normalize(b types.Briefing) (types.Briefing, []string, error) {
	b.Title = strings.TrimSpace(b.Title)
	b.TextType = strings.TrimSpace(b.TextType)
	b.Content = strings.TrimSpace(b.Content)

	if err := validate.Struct(b); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return types.Briefing{}, nil, &ValidationError{
				Field:  strings.ToLower(f.Field()),
				Reason: fmt.Sprintf("failed %q constraint", f.Tag()),
			}
		}
		return types.Briefing{}, nil, &ValidationError{Field: "briefing", Reason: err.Error()}
	}

	var warnings []string

	if strings.TrimSpace(b.Audience) == "" {
		b.Audience = types.DefaultAudience
	}
	if strings.TrimSpace(b.Tone) == "" {
		b.Tone = types.DefaultTone
	}
	if strings.TrimSpace(b.Constraints) == "" {
		b.Constraints = types.DefaultConstraints
	}

	reg := strings.ToLower(strings.TrimSpace(b.Register))
	if reg == "" {
		b.Register = types.DefaultRegister
	} else if canonical, ok := types.RegisterAliases[reg]; ok {
		b.Register = canonical
	} else {
		warnings = append(warnings, fmt.Sprintf("unknown register %q, using %s", b.Register, types.DefaultRegister))
		b.Register = types.DefaultRegister
	}

	variant := strings.ToUpper(strings.TrimSpace(b.Variant))
	if variant == "" {
		b.Variant = types.DefaultVariant
	} else if types.ValidVariants[variant] {
		b.Variant = variant
	} else {
		warnings = append(warnings, fmt.Sprintf("unknown variant %q, using %s", b.Variant, types.DefaultVariant))
		b.Variant = types.DefaultVariant
	}

	b.SEOKeywords = dedupeTrimmed(b.SEOKeywords)
	b.KeyTerms = dedupeTrimmed(b.KeyTerms)

	return b, warnings, nil
}

// dedupeTrimmed trims entries and drops duplicates, preserving first
// occurrence order. Comparison is case-insensitive.
func dedupeTrimmed(in []string) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// briefingDoc is the structured shape of the briefing-stage model output.
type briefingDoc struct {
	Goal        string   `json:"goal"`
	Audience    string   `json:"audience"`
	Tone        string   `json:"tone"`
	Register    string   `json:"register"`
	Variant     string   `json:"variant"`
	Constraints string   `json:"constraints"`
	KeyTerms    []string `json:"key_terms"`
	Messages    []string `json:"messages"`
	SEOKeywords []string `json:"seo_keywords"`
}

// mergeBriefingDoc parses the briefing-stage output and folds the derived
// fields (goal, key terms, messages) into the briefing. Model output is
// untrusted: a parse failure returns ok=false and leaves the briefing
// untouched, and the derived fields only ever fill gaps, never overwrite
// caller input.
func mergeBriefingDoc(b types.Briefing, raw string) (types.Briefing, bool) {
	jsonText := extractJSONObject(raw)
	if jsonText == "" {
		return b, false
	}

	var doc briefingDoc
	if err := json.Unmarshal([]byte(jsonText), &doc); err != nil {
		return b, false
	}

	if b.Goal == "" {
		b.Goal = strings.TrimSpace(doc.Goal)
	}
	if len(b.KeyTerms) == 0 {
		b.KeyTerms = dedupeTrimmed(doc.KeyTerms)
	}
	if len(b.Messages) == 0 {
		b.Messages = dedupeTrimmed(doc.Messages)
	}
	if len(b.SEOKeywords) == 0 {
		b.SEOKeywords = dedupeTrimmed(doc.SEOKeywords)
	}
	return b, true
}

// extractJSONObject returns the first top-level {...} block in the text,
// or "" when none is present. Models often wrap JSON in code fences or
// prose; this recovers the object without requiring clean output.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return raw[start : i+1]
				}
			}
		}
	}
	return ""
}
