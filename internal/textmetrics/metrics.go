// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textmetrics provides word counting, budget truncation, and the
// similarity gate used to vet machine-proposed edits. All functions are pure.
package textmetrics

import (
	"strings"
)

// fillerWords lists constructs that carry no meaning and are dropped first
// when a text must be compressed to fit its budget.
var fillerWords = map[string]bool{
	"eigentlich":      true,
	"gewissermaßen":   true,
	"grundsätzlich":   true,
	"letztendlich":    true,
	"quasi":           true,
	"sozusagen":       true,
	"durchaus":        true,
	"gänzlich":        true,
	"wirklich":        true,
	"natürlich":       true,
	"selbstverständlich": true,
}

// WordCount returns the number of whitespace-delimited tokens in text.
// Empty or whitespace-only text yields 0.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// TruncateToBudget returns text unchanged when it is within budget words.
// Otherwise it first compresses the text (dropping filler words and
// duplicated sentences) and, if still over budget, truncates at the word
// boundary nearest the budget, preferring the nearest preceding sentence
// boundary when that loses no more than 10% of the budget.
func TruncateToBudget(text string, budget int) string {
	if budget <= 0 {
		return text
	}
	if WordCount(text) <= budget {
		return text
	}

	compressed := Compress(text)
	if WordCount(compressed) <= budget {
		return compressed
	}

	words := strings.Fields(compressed)
	cut := strings.Join(words[:budget], " ")

	// Back up to a sentence boundary when it stays within 90% of budget.
	if idx := lastSentenceEnd(cut); idx >= 0 {
		candidate := cut[:idx+1]
		if WordCount(candidate) >= budget-budget/10 {
			return strings.TrimSpace(candidate)
		}
	}
	return cut
}

// Compress removes filler words and collapses repeated sentences without
// changing the meaning of the text.
func Compress(text string) string {
	sentences := SplitSentences(text)
	seen := make(map[string]bool, len(sentences))
	var kept []string
	for _, sentence := range sentences {
		key := strings.ToLower(strings.TrimSpace(sentence))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		words := strings.Fields(sentence)
		var out []string
		for _, w := range words {
			if fillerWords[strings.ToLower(strings.Trim(w, ",.;:!?"))] {
				continue
			}
			out = append(out, w)
		}
		if len(out) > 0 {
			kept = append(kept, strings.Join(out, " "))
		}
	}
	return strings.Join(kept, " ")
}

// SplitSentences splits text into sentences on terminal punctuation,
// keeping the punctuation attached.
func SplitSentences(text string) []string {
	var sentences []string
	var b strings.Builder
	for _, r := range strings.ReplaceAll(text, "\n", " ") {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(b.String()); s != "" {
				sentences = append(sentences, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// lastSentenceEnd returns the byte index of the last sentence-terminating
// rune in text, or -1.
func lastSentenceEnd(text string) int {
	return strings.LastIndexAny(text, ".!?")
}

// tokenSet lowercases and collects the distinct tokens of text.
func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		set[tok] = true
	}
	return set
}

// TokenOverlap returns the Jaccard ratio between the lowercased token sets
// of a and b: |A ∩ B| / |A ∪ B|. Two empty texts overlap completely.
func TokenOverlap(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}
	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}

// SequenceRatio returns a normalized similarity score in [0, 1] based on the
// longest common subsequence of the two token streams:
// 2*LCS / (len(a)+len(b)).
func SequenceRatio(a, b string) float64 {
	ta := strings.Fields(strings.ToLower(a))
	tb := strings.Fields(strings.ToLower(b))
	if len(ta) == 0 && len(tb) == 0 {
		return 1.0
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0.0
	}
	lcs := lcsLength(ta, tb)
	return 2.0 * float64(lcs) / float64(len(ta)+len(tb))
}

// lcsLength computes the longest-common-subsequence length with a rolling
// single-row table.
func lcsLength(a, b []string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// SimilarityGate accepts candidate as a valid machine edit of original only
// if both the token-overlap ratio and the sequence-similarity score meet
// their thresholds. The dual threshold keeps the model from replacing the
// text with unrelated content while still allowing substantial rewriting.
func SimilarityGate(original, candidate string, minOverlap, minRatio float64) bool {
	if strings.TrimSpace(original) == "" || strings.TrimSpace(candidate) == "" {
		return strings.TrimSpace(original) == strings.TrimSpace(candidate)
	}
	if TokenOverlap(original, candidate) < minOverlap {
		return false
	}
	return SequenceRatio(original, candidate) >= minRatio
}
