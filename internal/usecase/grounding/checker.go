package grounding

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/note-cleaner/internal/domain/entities"
)

// CheckGrounding cross-references a validated result against the
// transcript and returns one description per detected issue. The order
// is fixed (summary, decision quotes, action items, decision dates) so
// repeated runs over the same inputs produce identical lists.
func CheckGrounding(result entities.NotesResult, transcript string, index entities.TranscriptIndex) []string {
	var issues []string

	for i, bullet := range result.Summary {
		normalized := NormalizeForMatching(bullet.Text)
		if hasCausalMarker(normalized) && !HasSupportedCausalLink(bullet.Text, transcript) {
			issues = append(issues, fmt.Sprintf(
				"summary[%d] contains an unsupported causal link. Keep blockers separate unless transcript states direct causality.", i))
		}
	}

	for i, decision := range result.Decisions {
		if decision.EvidenceQuote == "" {
			issues = append(issues, fmt.Sprintf(
				"decisions[%d] is missing evidenceQuote. Include a direct quote from transcript.", i))
			continue
		}
		if !AppearsVerbatim(decision.EvidenceQuote, transcript) {
			issues = append(issues, fmt.Sprintf(
				"decisions[%d].evidenceQuote is not a verbatim quote from transcript.", i))
		}
	}

	for i, item := range result.ActionItems {
		if item.Assignee == "" {
			if best := BestAssignmentForTitle(item.Title, index.Assignments); best != nil {
				issues = append(issues, fmt.Sprintf(
					"actionItems[%d] is missing assignee. Transcript explicitly assigns this to %s.", i, best.Assignee))
			}
		}
		if item.DueDate != "" && !GroundedInTranscript(item.DueDate, transcript) {
			issues = append(issues, fmt.Sprintf(
				"actionItems[%d].dueDate appears ungrounded. Remove it unless transcript states it explicitly.", i))
		}
	}

	for i, decision := range result.Decisions {
		if decision.EffectiveDate != "" && !GroundedInTranscript(decision.EffectiveDate, transcript) {
			issues = append(issues, fmt.Sprintf(
				"decisions[%d].effectiveDate appears ungrounded. Remove it unless transcript states it explicitly.", i))
		}
	}

	return issues
}

func hasCausalMarker(normalizedText string) bool {
	for _, marker := range causalMarkers {
		if strings.Contains(normalizedText, strings.TrimSpace(marker)) {
			return true
		}
	}
	return false
}

// HasSupportedCausalLink checks whether a bullet's cause-effect claim is
// co-stated by a single transcript sentence. A bullet without a causal
// marker, or whose cause or effect side has no meaningful tokens, is
// treated as supported — there is nothing to verify.
func HasSupportedCausalLink(summaryText, transcript string) bool {
	normalized := NormalizeForMatching(summaryText)

	marker := ""
	for _, candidate := range causalMarkers {
		if strings.Contains(normalized, strings.TrimSpace(candidate)) {
			marker = strings.TrimSpace(candidate)
			break
		}
	}
	if marker == "" {
		return true
	}

	parts := strings.SplitN(normalized, marker, 2)
	if len(parts) < 2 {
		return true
	}

	leftTokens := tokenSet(parts[0])
	rightTokens := tokenSet(parts[1])
	if len(leftTokens) == 0 || len(rightTokens) == 0 {
		return true
	}

	for _, sentence := range SplitTranscriptSentences(transcript) {
		sentenceTokens := tokenSet(sentence)
		if intersects(sentenceTokens, leftTokens) && intersects(sentenceTokens, rightTokens) {
			return true
		}
	}
	return false
}

func intersects(a, b map[string]bool) bool {
	for tok := range b {
		if a[tok] {
			return true
		}
	}
	return false
}
