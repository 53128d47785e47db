package grounding

import (
	"regexp"
	"strings"
)

// stopWords are excluded from meaningful-token sets. Kept small on
// purpose: the matcher only needs to ignore glue words, not do NLP.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "to": true, "and": true,
	"or": true, "of": true, "for": true, "on": true, "in": true,
	"by": true, "with": true, "is": true, "are": true, "be": true,
	"we": true, "i": true, "you": true, "it": true, "this": true,
	"that": true, "today": true,
}

var (
	nonAlnumRe    = regexp.MustCompile(`[^a-z0-9\s]`)
	multiSpaceRe  = regexp.MustCompile(`\s+`)
	sentenceSepRe = regexp.MustCompile(`[\n.!?]+`)
	clauseSepRe   = regexp.MustCompile(`[.!?;]+`)
	boldRe        = regexp.MustCompile(`\*\*(.*?)\*\*`)
	underlineRe   = regexp.MustCompile(`__(.*?)__`)
)

// NormalizeForMatching lowercases text and reduces it to alphanumeric
// tokens separated by single spaces. All substring and equality checks
// in this package run over this normal form so they are idempotent.
func NormalizeForMatching(value string) string {
	v := strings.ToLower(value)
	v = nonAlnumRe.ReplaceAllString(v, " ")
	v = multiSpaceRe.ReplaceAllString(v, " ")
	return strings.TrimSpace(v)
}

// TokenizeMeaningful returns the normalized tokens longer than 2 chars
// that are not stopwords.
func TokenizeMeaningful(value string) []string {
	var tokens []string
	for _, tok := range strings.Fields(NormalizeForMatching(value)) {
		if len(tok) > 2 && !stopWords[tok] {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// tokenSet builds a membership set from TokenizeMeaningful
func tokenSet(value string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range TokenizeMeaningful(value) {
		set[tok] = true
	}
	return set
}

// SplitTranscriptSentences splits a transcript into trimmed, non-empty
// sentence fragments on newlines and sentence punctuation.
func SplitTranscriptSentences(transcript string) []string {
	var sentences []string
	for _, part := range sentenceSepRe.Split(transcript, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			sentences = append(sentences, part)
		}
	}
	return sentences
}

// splitClauses splits one speaker turn into task-sized clauses
func splitClauses(content string) []string {
	var clauses []string
	for _, part := range clauseSepRe.Split(content, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			clauses = append(clauses, part)
		}
	}
	return clauses
}

var htmlEntityReplacer = strings.NewReplacer(
	"&#39;", "'",
	"&#x27;", "'",
	"&#X27;", "'",
	"&quot;", `"`,
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
)

// CleanText decodes the HTML entities and strips the markdown emphasis
// artifacts providers tend to leave in field values.
func CleanText(value string) string {
	v := htmlEntityReplacer.Replace(strings.TrimSpace(value))
	v = boldRe.ReplaceAllString(v, "$1")
	v = underlineRe.ReplaceAllString(v, "$1")
	return strings.TrimSpace(v)
}

// AppearsVerbatim reports whether text, in normalized form, is a
// substring of the normalized transcript. Fragments shorter than 12
// normalized characters are too ambiguous to count as quotes.
func AppearsVerbatim(text, transcript string) bool {
	normalized := NormalizeForMatching(text)
	if len(normalized) < 12 {
		return false
	}
	return strings.Contains(NormalizeForMatching(transcript), normalized)
}

// GroundedInTranscript reports whether text's normalized form appears
// as a substring of the normalized transcript. Unlike AppearsVerbatim
// there is no minimum length, so short date phrases like "by Friday"
// count when the transcript states them.
func GroundedInTranscript(text, transcript string) bool {
	normalized := NormalizeForMatching(text)
	if normalized == "" {
		return false
	}
	return strings.Contains(NormalizeForMatching(transcript), normalized)
}

// ContainsAnyPhrase reports whether the normalized haystack contains the
// normalized form of any phrase.
func ContainsAnyPhrase(normalizedHaystack string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(normalizedHaystack, NormalizeForMatching(phrase)) {
			return true
		}
	}
	return false
}
