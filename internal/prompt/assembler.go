// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"fmt"
	"strings"

	"github.com/pdiddy/wordsmith/pkg/types"
)

// recapWords bounds the continuity recap passed into section drafting.
const recapWords = 60

// Request carries everything a model call needs for one stage.
type Request struct {
	Stage  types.Stage
	System string
	Prompt string
	Params types.GenerationParameters
}

// ParamsFor returns the generation parameters for a stage. Evaluation
// stages run cooler than drafting stages so verdicts stay stable.
func ParamsFor(stage types.Stage) types.GenerationParameters {
	p := types.DefaultParameters()
	switch stage {
	case types.StageRubricCheck:
		p.Temperature = 0.2
	case types.StageRevision:
		p.Temperature = 0.6
	}
	return p
}

// Recap returns the tail of the accumulated text, bounded to the last
// few dozen words, for continuity between sections.
func Recap(text string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return "Dies ist der erste Abschnitt; es gibt noch keinen vorherigen Text."
	}
	if len(words) > recapWords {
		words = words[len(words)-recapWords:]
	}
	return strings.Join(words, " ")
}

func request(stage types.Stage, prompt string) Request {
	return Request{Stage: stage, System: SystemPrompt, Prompt: prompt, Params: ParamsFor(stage)}
}

// Briefing builds the request that condenses the raw inputs into a
// structured briefing document.
func Briefing(b types.Briefing) Request {
	p := fmt.Sprintf(briefingTmpl,
		b.Title, b.TextType, b.Audience, b.Tone, b.Register, b.Variant,
		b.Constraints, strings.Join(b.SEOKeywords, ", "), b.Content)
	return request(types.StageBriefing, p)
}

// Idea builds the request that tightens the raw content.
func Idea(content string) Request {
	return request(types.StageIdea, fmt.Sprintf(ideaTmpl, content))
}

// Outline builds the request for the initial outline.
func Outline(b types.Briefing, briefingDoc string) Request {
	p := fmt.Sprintf(outlineTmpl, b.TextType, b.Title, briefingDoc, b.WordCount)
	return request(types.StageOutline, p)
}

// OutlineRefine builds the request that tightens an existing outline.
func OutlineRefine(b types.Briefing, outlineText string) Request {
	p := fmt.Sprintf(outlineRefineTmpl, b.WordCount, b.WordCount, outlineText)
	return request(types.StageOutlineRefine, p)
}

// Section builds the drafting request for a single outline section.
func Section(b types.Briefing, sec types.OutlineSection, briefingDoc, outlineText, recap string) Request {
	p := fmt.Sprintf(sectionTmpl,
		sec.Number, sec.Title, sec.Role, sec.Deliverable,
		b.Register, b.Variant, strings.Join(b.KeyTerms, ", "),
		sec.Budget, briefingDoc, outlineText, recap)
	return request(types.StageSection, p)
}

// RubricCheck builds the request that evaluates a draft against the
// rubric of its text type.
func RubricCheck(textType, text string) Request {
	p := fmt.Sprintf(rubricCheckTmpl, textType, RubricFor(textType), text)
	return request(types.StageRubricCheck, p)
}

// RubricFix builds the request that corrects the reported deviations.
func RubricFix(report, text string) Request {
	return request(types.StageRubricFix, fmt.Sprintf(rubricFixTmpl, report, text))
}

// Revision builds the request for one targeted revision round.
func Revision(b types.Briefing, round int, text string) Request {
	p := fmt.Sprintf(revisionTmpl, b.Register, b.Variant, round, text)
	return request(types.StageRevision, p)
}

// Reflection builds the request for post-revision improvement notes.
// The answer is archived but never fed back into the text.
func Reflection(round int, text string) Request {
	return request(types.StageReflection, fmt.Sprintf(reflectionTmpl, round, text))
}
