package grounding

import (
	"regexp"
	"strings"

	"github.com/johnquangdev/note-cleaner/internal/domain/entities"
)

// This file is the single source of truth for the phrase and pattern
// vocabulary shared between the transcript indexer, the checkers, the
// enricher and the provider prompt builder. Keeping it in one table set
// prevents the prompt telling the model one thing while the checker
// verifies another.

// CueRule is an action-like cue phrase tagged with its language
type CueRule struct {
	Phrase string
	Lang   entities.Language
}

// actionCues mark clauses that read like a task commitment. Matched as
// normalized substrings, so trailing spaces distinguish prefix cues
// ("send ") from mid-word hits.
var actionCues = []CueRule{
	{Phrase: "we need", Lang: entities.LanguageEN},
	{Phrase: "need to", Lang: entities.LanguageEN},
	{Phrase: "let us", Lang: entities.LanguageEN},
	{Phrase: "let s", Lang: entities.LanguageEN},
	{Phrase: "lets ", Lang: entities.LanguageEN},
	{Phrase: "send ", Lang: entities.LanguageEN},
	{Phrase: "sending ", Lang: entities.LanguageEN},
	{Phrase: "we should ", Lang: entities.LanguageEN},
	{Phrase: "update ", Lang: entities.LanguageEN},
	{Phrase: "updating ", Lang: entities.LanguageEN},
	{Phrase: "draft ", Lang: entities.LanguageEN},
	{Phrase: "we will ", Lang: entities.LanguageEN},
	{Phrase: "start ", Lang: entities.LanguageEN},
	{Phrase: "prepare ", Lang: entities.LanguageEN},
	{Phrase: "il faut", Lang: entities.LanguageFR},
	{Phrase: "on doit", Lang: entities.LanguageFR},
	{Phrase: "on va ", Lang: entities.LanguageFR},
	{Phrase: "mettre ", Lang: entities.LanguageFR},
	{Phrase: "mettons ", Lang: entities.LanguageFR},
	{Phrase: "envoyer ", Lang: entities.LanguageFR},
	{Phrase: "envoyons ", Lang: entities.LanguageFR},
	{Phrase: "preparer ", Lang: entities.LanguageFR},
	{Phrase: "préparer ", Lang: entities.LanguageFR},
	{Phrase: "preparons ", Lang: entities.LanguageFR},
	{Phrase: "préparons ", Lang: entities.LanguageFR},
	{Phrase: "demarrer ", Lang: entities.LanguageFR},
	{Phrase: "démarrer ", Lang: entities.LanguageFR},
	{Phrase: "demarrons ", Lang: entities.LanguageFR},
	{Phrase: "démarrons ", Lang: entities.LanguageFR},
	{Phrase: "lance ", Lang: entities.LanguageFR},
}

// ActionCuePhrases returns the cue phrases for one language, used by
// the prompt builder to tell the model which commitments to keep.
func ActionCuePhrases(lang entities.Language) []string {
	var phrases []string
	for _, cue := range actionCues {
		if cue.Lang == lang {
			phrases = append(phrases, cue.Phrase)
		}
	}
	return phrases
}

// datePatterns are tried in order; the first match wins. Weekday forms
// with relative prefixes come before bare today/tomorrow so "by Friday"
// beats "today" inside the same clause.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:by|before|on|next)\s+(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)(?:\s+\d{1,2}(?::\d{2})?\s?(?:am|pm))?`),
	regexp.MustCompile(`(?i)\b(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)\s+\d{1,2}(?::\d{2})?\s?(?:am|pm)\b`),
	regexp.MustCompile(`(?i)\b(today|tomorrow)\b`),
	regexp.MustCompile(`(?i)\b(d['’]ici|avant|le|prochain)\s+(lundi|mardi|mercredi|jeudi|vendredi|samedi|dimanche)(?:\s+à?\s*\d{1,2}h(?:\d{2})?)?`),
	regexp.MustCompile(`(?i)\b(lundi|mardi|mercredi|jeudi|vendredi|samedi|dimanche)\s+à?\s*\d{1,2}h(?:\d{2})?\b`),
	regexp.MustCompile(`(?i)\b(aujourd['’]hui|demain)\b`),
}

// causalMarkers split a summary bullet into cause and effect parts
var causalMarkers = []string{" due to ", " because ", " caused by "}

// CoverageRule flags a topic present in the transcript but absent from
// the rendered output.
type CoverageRule struct {
	TranscriptPhrases []string
	OutputPhrases     []string
	Message           string
}

// coverageRules drive the completeness checker. One generic loop
// evaluates them so each entry is independently testable.
var coverageRules = []CoverageRule{
	{
		TranscriptPhrases: []string{"auth flow", "authentication", "authentification", "auth updates", "blocked on auth"},
		OutputPhrases:     []string{"auth flow", "authentication", "authentification", "auth"},
		Message:           "auth blocker is missing from output. Mention auth flow/authentication dependency in summary, risks, or open questions.",
	},
	{
		TranscriptPhrases: []string{"advanced analytics", "analytics avancees", "analytics avancées"},
		OutputPhrases:     []string{"advanced analytics", "analytics avancees", "analytics avancées"},
		Message:           "scope-cut decision about advanced analytics is missing. Include it in decisions or open questions.",
	},
	{
		TranscriptPhrases: []string{"internal announcement", "annonce interne"},
		OutputPhrases:     nil, // checked against action item titles only
		Message:           "missing action item for internal announcement. Add it under actionItems with assignee when inferable.",
	},
	{
		TranscriptPhrases: []string{"next check in", "prochain point"},
		OutputPhrases:     []string{"next check in", "prochain point", "10am", "10h"},
		Message:           "follow-up checkpoint timing is missing. Include next check-in as an open question or action item.",
	},
}

// announcementTitlePhrases identify action items that already cover the
// internal-announcement topic.
var announcementTitlePhrases = []string{"internal announcement", "annonce interne"}

// EnrichmentKind selects the section a trigger rule appends to
type EnrichmentKind int

const (
	EnrichRisk EnrichmentKind = iota
	EnrichOpenQuestion
)

// EnrichmentRule appends a canonical sentence when a transcript topic is
// entirely absent from the output.
type EnrichmentRule struct {
	TranscriptPhrases []string
	OutputPhrases     []string
	Kind              EnrichmentKind
	Text              string
}

var enrichmentRules = []EnrichmentRule{
	{
		TranscriptPhrases: []string{"failing in staging", "api integration"},
		OutputPhrases:     []string{"failing in staging", "api integration"},
		Kind:              EnrichRisk,
		Text:              "API integration remains unstable in staging.",
	},
	{
		TranscriptPhrases: []string{"rate limits", "vendor"},
		OutputPhrases:     []string{"rate limits", "vendor"},
		Kind:              EnrichRisk,
		Text:              "Vendor rate limits may impact launch readiness without caching/backoff.",
	},
	{
		TranscriptPhrases: []string{"blocked on the auth flow", "auth flow changes"},
		OutputPhrases:     []string{"auth flow", "auth updates"},
		Kind:              EnrichRisk,
		Text:              "Auth flow changes are blocking progress toward beta readiness.",
	},
	{
		TranscriptPhrases: []string{"sign off from product and sales", "sign-off from product and sales"},
		OutputPhrases:     []string{"sign off", "sign-off", "product and sales"},
		Kind:              EnrichOpenQuestion,
		Text:              "When will Product and Sales provide sign-off for the scope change?",
	},
	{
		TranscriptPhrases: []string{"advanced analytics"},
		OutputPhrases:     []string{"advanced analytics"},
		Kind:              EnrichOpenQuestion,
		Text:              "Should advanced analytics be removed from v1 scope?",
	},
}

// actionLikePrefixes detect open questions that are really tasks and
// should be moved into actionItems during normalization.
var actionLikePrefixes = []string{
	"send ", "update ", "draft ", "start ", "prepare ",
	"mettre ", "envoyer ", "preparer ", "préparer ", "demarrer ", "démarrer ",
}

// IsActionLikeText reports whether normalized text starts with a task
// verb from the bilingual prefix list.
func IsActionLikeText(text string) bool {
	normalized := NormalizeForMatching(text)
	for _, prefix := range actionLikePrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return true
		}
	}
	return false
}
