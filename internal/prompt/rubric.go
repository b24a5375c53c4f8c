// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import "strings"

// genericRubric applies when no text-type specific rubric is registered.
const genericRubric = `- Erfüllt der Text das im Briefing genannte Ziel und die Kernbotschaften?
- Ist die Struktur logisch, mit klarem Einstieg, Mittelteil und Abschluss?
- Sind Ansprache, Tonalität und Sprachvariante durchgehend konsistent?
- Sind alle Behauptungen belegt oder als Platzhalter gekennzeichnet?
- Entspricht die Länge der Vorgabe (±3 %)?`

// rubrics maps a normalized text type to its evaluation criteria.
var rubrics = map[string]string{
	"blogartikel": `- Hat der Einstieg einen Hook, der das Kernproblem der Zielgruppe adressiert?
- Führen Zwischenüberschriften und Absätze den Leser nachvollziehbar durch das Argument?
- Ist die Ansprache direkt und das Register konsistent?
- Enthält der Schluss ein Fazit oder einen Call-to-Action?
- Sind SEO-Keywords organisch eingearbeitet, ohne Keyword-Stuffing?`,
	"pressemitteilung": `- Beantwortet der erste Absatz die W-Fragen (Wer, Was, Wann, Wo, Warum)?
- Folgt der Aufbau dem Prinzip der umgekehrten Pyramide?
- Sind Zitate als solche gekennzeichnet und mit Funktion/Name versehen (oder Platzhalter)?
- Ist die Sprache sachlich, ohne werbliche Superlative?
- Gibt es einen Abbinder mit Unternehmensinformationen oder einen Platzhalter dafür?`,
	"produktbeschreibung": `- Stehen Nutzen und Anwendungskontext vor den technischen Merkmalen?
- Sind alle Produktmerkmale konkret benannt oder als [KLÄREN: …] markiert?
- Spricht der Text die Zielgruppe direkt an und hält das Register?
- Gibt es eine klare Handlungsaufforderung am Ende?
- Sind Kennzahlen und Maße einheitlich formatiert?`,
	"kurzgeschichte": `- Trägt jede Szene zur Entwicklung von Figur oder Konflikt bei?
- Ist die Erzählperspektive durchgehend konsistent?
- Zeigt der Text statt zu behaupten (Show, don't tell)?
- Hat die Geschichte einen erkennbaren Spannungsbogen mit Auflösung?
- Passt der Sprachrhythmus zu Stimmung und Genre?`,
}

// textTypeAliases folds common synonyms onto the rubric keys.
var textTypeAliases = map[string]string{
	"blog":              "blogartikel",
	"blogpost":          "blogartikel",
	"blog-artikel":      "blogartikel",
	"artikel":           "blogartikel",
	"fachartikel":       "blogartikel",
	"presse":            "pressemitteilung",
	"pressemeldung":     "pressemitteilung",
	"press release":     "pressemitteilung",
	"produkttext":       "produktbeschreibung",
	"product page":      "produktbeschreibung",
	"story":             "kurzgeschichte",
	"erzählung":         "kurzgeschichte",
	"short story":       "kurzgeschichte",
	"fiktion":           "kurzgeschichte",
}

// RubricFor returns the evaluation criteria for the given text type,
// falling back to the generic rubric for unknown types.
func RubricFor(textType string) string {
	key := strings.ToLower(strings.TrimSpace(textType))
	if alias, ok := textTypeAliases[key]; ok {
		key = alias
	}
	if r, ok := rubrics[key]; ok {
		return r
	}
	return genericRubric
}
