// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Default values applied to optional briefing fields during normalization.
const (
	DefaultAudience    = "Allgemeine Leserschaft mit Grundkenntnissen"
	DefaultTone        = "sachlich-lebendig"
	DefaultRegister    = "Sie"
	DefaultVariant     = "DE-DE"
	DefaultConstraints = "Keine zusätzlichen Vorgaben"
)

// RegisterAliases maps lowercased register input to its canonical form.
var RegisterAliases = map[string]string{
	"sie": "Sie",
	"du":  "Du",
}

// ValidVariants is the set of supported language variants.
var ValidVariants = map[string]bool{
	"DE-DE": true,
	"DE-AT": true,
	"DE-CH": true,
}

// Briefing is the normalized record of all inputs driving one pipeline run.
// It is created once during briefing normalization and treated as immutable
// afterwards; empty optional fields are filled with defaults at creation.
type Briefing struct {
	// Title is the working title of the text.
	Title string `json:"title" yaml:"title" validate:"required"`

	// Content holds the raw notes or briefing text supplied by the caller.
	Content string `json:"content" yaml:"content"`

	// TextType names the kind of text to produce (e.g. "Blogartikel",
	// "Pressemitteilung", "Produktbeschreibung").
	TextType string `json:"text_type" yaml:"text_type" validate:"required"`

	// WordCount is the target length of the final text in words.
	WordCount int `json:"word_count" yaml:"word_count" validate:"gt=0"`

	// Iterations is the number of revision rounds. Zero is valid.
	Iterations int `json:"iterations" yaml:"iterations" validate:"gte=0"`

	// Audience describes the addressed readership.
	Audience string `json:"audience" yaml:"audience"`

	// Tone is the desired tonality (e.g. "sachlich", "lebendig").
	Tone string `json:"tone" yaml:"tone"`

	// Register is the form of address: "Sie" or "Du".
	Register string `json:"register" yaml:"register"`

	// Variant is the language variant: DE-DE, DE-AT, or DE-CH.
	Variant string `json:"variant" yaml:"variant"`

	// Constraints holds free-text must/should requirements.
	Constraints string `json:"constraints" yaml:"constraints"`

	// SourcesAllowed controls whether citations may appear in the text.
	SourcesAllowed bool `json:"sources_allowed" yaml:"sources_allowed"`

	// SEOKeywords lists deduplicated keywords in first-occurrence order.
	SEOKeywords []string `json:"seo_keywords,omitempty" yaml:"seo_keywords,omitempty"`

	// Goal is the condensed objective sentence derived at normalization.
	Goal string `json:"goal,omitempty" yaml:"goal,omitempty"`

	// KeyTerms are terminology anchors extracted from title and content.
	KeyTerms []string `json:"key_terms,omitempty" yaml:"key_terms,omitempty"`

	// Messages are facts derived from Content, never invented.
	Messages []string `json:"messages,omitempty" yaml:"messages,omitempty"`
}
