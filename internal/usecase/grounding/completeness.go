package grounding

import (
	"strings"

	"github.com/johnquangdev/note-cleaner/internal/domain/entities"
)

// CheckCompleteness detects topics the transcript raises that the
// rendered output never mentions, plus a minimum summary length for
// transcripts of real meetings.
func CheckCompleteness(result entities.NotesResult, transcript string) []string {
	var issues []string
	normalizedTranscript := NormalizeForMatching(transcript)
	normalizedOutput := CollectOutputText(result)

	if isSubstantialTranscript(transcript) && len(result.Summary) < 2 {
		issues = append(issues,
			"summary is too short for this transcript. Provide at least 2 concise bullets covering launch status, blockers, scope decision, and key commitments.")
	}

	for _, rule := range coverageRules {
		if !ContainsAnyPhrase(normalizedTranscript, rule.TranscriptPhrases) {
			continue
		}
		covered := false
		if rule.OutputPhrases != nil {
			covered = ContainsAnyPhrase(normalizedOutput, rule.OutputPhrases)
		} else {
			// Announcement coverage counts only when an action item
			// title carries it, not a passing mention elsewhere.
			for _, item := range result.ActionItems {
				if ContainsAnyPhrase(NormalizeForMatching(item.Title), announcementTitlePhrases) {
					covered = true
					break
				}
			}
		}
		if !covered {
			issues = append(issues, rule.Message)
		}
	}

	return issues
}

// isSubstantialTranscript reports whether the transcript is long enough
// to demand a multi-bullet summary: >=6 non-empty lines or >=500 chars.
func isSubstantialTranscript(transcript string) bool {
	if len(transcript) >= 500 {
		return true
	}
	lines := 0
	for _, line := range strings.Split(transcript, "\n") {
		if strings.TrimSpace(line) != "" {
			lines++
		}
	}
	return lines >= 6
}

// CollectOutputText concatenates every user-visible field of the result
// into one normalized string for phrase-coverage checks.
func CollectOutputText(result entities.NotesResult) string {
	var chunks []string
	appendNonEmpty := func(values ...string) {
		for _, v := range values {
			if v != "" {
				chunks = append(chunks, v)
			}
		}
	}

	for _, bullet := range result.Summary {
		appendNonEmpty(bullet.Text)
	}
	for _, decision := range result.Decisions {
		appendNonEmpty(decision.Title, decision.Owner, decision.EffectiveDate, decision.EvidenceQuote)
	}
	for _, item := range result.ActionItems {
		appendNonEmpty(item.Title, item.Assignee, item.DueDate)
	}
	for _, risk := range result.Risks {
		appendNonEmpty(risk.Text)
	}
	for _, question := range result.OpenQuestions {
		appendNonEmpty(question.Text)
	}
	return NormalizeForMatching(strings.Join(chunks, " "))
}
