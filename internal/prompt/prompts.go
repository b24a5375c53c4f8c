// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt assembles the instruction payload and generation
// parameters for every pipeline stage. The assembler is stateless and
// deterministic: identical inputs always produce identical requests, and
// it never calls the model or mutates pipeline state.
package prompt

// SystemPrompt is the shared writing persona sent with every model call.
const SystemPrompt = `Du bist ein präziser deutschsprachiger Fachtexter und Prozessbegleiter. ` +
	`Du arbeitest analytisch, strukturierst jeden Auftrag in nachvollziehbare Schritte und priorisierst fachliche Korrektheit. ` +
	`Du erfindest keine Fakten; fehlende Informationen kennzeichnest du mit Platzhaltern in eckigen Klammern. ` +
	`Du hältst Terminologie, Tonalität und Ansprache konsequent konsistent, beachtest Format- und Längenvorgaben strikt und meldest Unklarheiten explizit.`

// briefingTmpl condenses the raw inputs into a structured briefing JSON.
const briefingTmpl = `Verdichte folgende Angaben zu einem konsistenten Arbeitsbriefing als strikt valides JSON-Objekt (UTF-8, ohne Kommentare).
Erstelle genau die Schlüssel: goal, audience, tone, register, variant, constraints, key_terms, messages, seo_keywords (optional).
- Formuliere goal als prägnanten Zielsatz.
- Gib audience, tone, register, variant, constraints als getrimmte Strings zurück (fehlende Angaben -> [KLÄREN: …]).
- Liste key_terms, messages und seo_keywords als Arrays einzelner Strings (fehlende Angaben -> leeres Array; Einträge trimmen, Duplikate entfernen).
Gib ausschließlich ein JSON-Objekt ohne erläuternden Text zurück.
**Eingaben:**
title: %s
text_type: %s
audience: %s
tone: %s
register: %s
variant: %s
constraints: %s
seo_keywords: %s
notes: %s
`

// ideaTmpl tightens the raw content without adding facts.
const ideaTmpl = `Überarbeite diesen Rohinhalt **ohne neue Fakten** und in der vorhandenen Sprache.
Liefere das Ergebnis in folgender Markdown-Struktur:
1. **Überarbeitete Fassung:** optimierter Fließtext mit klarer Dramaturgie.
2. **Unklarheiten:** Bullet-Liste mit [KLÄREN: …]-Hinweisen für Informationslücken.
3. **Kernaussagen:** Bullet-Liste der wichtigsten Aussagen (ein Bullet pro Gedanke).
4. **Summary:** exakt ein Satz, der die Idee kondensiert.
**Rohinhalt:** %s
`

// outlineTmpl requests the hierarchical outline with roles and budgets.
const outlineTmpl = `Erzeuge eine hierarchische Gliederung für %s zu "%s" basierend auf dem Briefing:
%s
Nutze nummerierte Einträge im Format: {nummer}. {Titel} (Rolle: …; Wortbudget: …; Liefergegenstand: …).
Berücksichtige strategische Übergänge und stelle sicher, dass die Wortbudgets in Summe %d Wörter ergeben (Rundungen dokumentieren).
Keine Fakten erfinden; nutze bei Bedarf Platzhalter.
`

// outlineRefineTmpl tightens and re-balances an existing outline.
const outlineRefineTmpl = `Prüfe und verbessere die Outline: entferne Überschneidungen, füge fehlende Brücken, balanciere Budgets (Summe = %d).
Vorgehen:
1. Liste konkrete Probleme oder Risiken (Stichpunkte).
2. Präsentiere die optimierte Outline im Format: {nummer}. {Titel} (Rolle: …; Wortbudget: …; Liefergegenstand: …).
3. Bestätige die Gesamtsumme als "Gesamt: %d Wörter" (Rundungsabweichungen begründen).
Behalte Faktenneutralität.
**Outline:**
%s
`

// sectionTmpl drafts one outline section with recap-based continuity.
const sectionTmpl = `Schreibe Abschnitt %s „%s“ (Rolle: %s) mit Ziel: %s
Nutze Briefing, Outline und bisherige Abschnitte für Kohärenz, Terminologie und Übergänge.
Regeln:
- Liefere ausschließlich den Abschnittsfließtext ohne eigene Überschrift.
- Verwende aktive Verben, vermeide Füllphrasen und halte das Register konsistent (%s, Variante %s).
- Knüpfe an den vorherigen Abschnitt an und baue einen logischen Ausblick auf den nächsten.
- **Keine** erfundenen Fakten; fehlende Details -> Platzhalter in eckigen Klammern ([KLÄREN: …], [KENNZAHL], [QUELLE], [DATUM]).
- Terminologie-Anker: %s
Zielwortzahl: %d.
**Briefing:**
%s
**Outline:**
%s
**Bisheriger Kontext (Kurz-Recap):** %s
`

// rubricCheckTmpl evaluates the draft against the text-type rubric.
const rubricCheckTmpl = `Prüfe den Text gegen die Rubrik für %s.
**Rubrik:**
%s
Strukturiere deine Antwort so:
1. **Gesamturteil:** PASS oder FAIL mit kurzer Begründung.
2. **Abweichungen:** Markdown-Tabelle mit Spalten Kriterium | Beschreibung | Fundstelle | Dringlichkeit. Wenn keine Abweichungen vorliegen, schreibe "Keine Abweichungen".
3. **Empfehlungen:** Bullet-Liste mit umsetzbaren Korrekturschritten.
**Text:**
%s
`

// rubricFixTmpl corrects only the reported deviations, minimally invasive.
const rubricFixTmpl = `Korrigiere nur die genannten Abweichungen **minimal-invasiv**, ohne Faktenzuwachs. Erhalte Ton, Terminologie, Struktur.
Vorgehen:
1. Übernimm ausschließlich die notwendigen Änderungen direkt im Text (keine Anmerkungen).
2. Bewahre Formatierung, Abschnittsüberschriften und Wortbudgets soweit möglich.
3. Nutze vorhandene Platzhalter weiter oder markiere neue Informationslücken mit [KLÄREN: …].
Gib nur den aktualisierten Text zurück.
**Prüfbericht:**
%s
**Text:**
%s
`

// revisionTmpl runs one targeted language revision round.
const revisionTmpl = `Überarbeite zielgerichtet nach diesen Prioritäten: Klarheit, Flow, Terminologie, Wiederholungen, Rhythmus, starke Verben, Abschluss, Register (%s), Variantenspezifika (%s).
Arbeite Schritt für Schritt: plane die Eingriffe kurz, führe sie dann aus.
Behalte die Abschnittsüberschriften unverändert bei.
Liefere den überarbeiteten Text in Markdown ohne Meta-Kommentare; bei fehlenden Daten setze Platzhalter.
Falls Compliance-Hinweise nötig sind, füge sie als separate Zeile im Format [COMPLIANCE-HINWEIS: …] am Ende an.
Revisionsrunde: %d.
**Text:**
%s
`

// reflectionTmpl asks for prioritized improvement notes; the answer is
// logged only and never fed back into the text.
const reflectionTmpl = `Nenne die 3 wirksamsten nächsten Verbesserungen als priorisierte Markdown-Liste (1 = höchste Wirkung).
Jeder Punkt: maximal 15 Wörter, klar umsetzbar, mit Hinweis auf den betroffenen Abschnitt.
Abgeschlossene Revisionsrunde: %d.
**Text:**
%s
`
