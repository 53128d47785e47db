// Package detect guesses the dominant transcript language with a
// frequency heuristic over common French and English function words.
// Good enough to pick the default output language; "mixed" transcripts
// are left to the caller to resolve.
package detect

import (
	"regexp"
	"strings"
)

// DetectedLanguage is "en", "fr", or "mixed"
type DetectedLanguage string

const (
	LanguageEN    DetectedLanguage = "en"
	LanguageFR    DetectedLanguage = "fr"
	LanguageMixed DetectedLanguage = "mixed"
)

// Result carries the guess plus the ratios that produced it.
// Confidence is the dominant side's share of recognized words, 0 when
// nothing was recognized.
type Result struct {
	Language   DetectedLanguage `json:"language"`
	Confidence float64          `json:"confidence"`
	FrRatio    float64          `json:"frRatio"`
	EnRatio    float64          `json:"enRatio"`
	FrCount    int              `json:"frCount"`
	EnCount    int              `json:"enCount"`
}

var frWords = wordSet(
	"je", "tu", "il", "elle", "nous", "vous", "ils", "elles",
	"est", "sont", "être", "avoir", "que", "qui", "une", "les",
	"des", "dans", "sur", "avec", "pour", "par", "mais", "donc",
	"de", "du", "le", "la", "et", "en", "un", "au", "aux",
	"très", "bien", "non", "oui", "aussi", "pas",
)

var enWords = wordSet(
	"the", "is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "do", "does", "did", "will", "would",
	"can", "could", "should", "may", "might", "shall",
	"and", "but", "or", "in", "on", "at", "to", "for",
	"this", "that", "with", "from", "not", "we", "i", "you",
	"they", "it", "an", "a",
)

var nonLetterRe = regexp.MustCompile(`[^a-zàâçéèêëîïôûùüÿæœ\s'-]`)

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// Detect classifies a transcript as French, English, or mixed. An
// empty or unrecognizable transcript defaults to English.
func Detect(transcript string) Result {
	cleaned := nonLetterRe.ReplaceAllString(strings.ToLower(transcript), " ")

	var frCount, enCount int
	for _, word := range strings.Fields(cleaned) {
		if frWords[word] {
			frCount++
		}
		if enWords[word] {
			enCount++
		}
	}

	result := Result{Language: LanguageEN, FrCount: frCount, EnCount: enCount}

	total := frCount + enCount
	if total == 0 {
		return result
	}

	result.FrRatio = float64(frCount) / float64(total)
	result.EnRatio = float64(enCount) / float64(total)
	result.Confidence = result.FrRatio
	if result.EnRatio > result.FrRatio {
		result.Confidence = result.EnRatio
	}

	switch {
	case result.FrRatio > 0.65:
		result.Language = LanguageFR
	case result.FrRatio < 0.35:
		result.Language = LanguageEN
	default:
		result.Language = LanguageMixed
	}
	return result
}
