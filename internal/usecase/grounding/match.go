package grounding

import (
	"strings"

	"github.com/johnquangdev/note-cleaner/internal/domain/entities"
)

// BestAssignmentForTitle resolves an action item title to a transcript
// assignment. Preference order:
//  1. an assignment whose normalized task contains the normalized title
//     or vice versa,
//  2. the assignment sharing the most meaningful tokens with the title,
//     requiring at least 1 shared token when the title has <=3 tokens
//     and at least 2 otherwise. Ties keep the first candidate seen.
//
// Returns nil when nothing clears the threshold.
func BestAssignmentForTitle(title string, assignments []entities.Assignment) *entities.Assignment {
	normalizedTitle := NormalizeForMatching(title)
	if normalizedTitle != "" {
		for i := range assignments {
			task := assignments[i].NormalizedTask
			if strings.Contains(task, normalizedTitle) || strings.Contains(normalizedTitle, task) {
				return &assignments[i]
			}
		}
	}

	titleTokens := tokenSet(title)
	if len(titleTokens) == 0 {
		return nil
	}

	var best *entities.Assignment
	bestScore := 0
	for i := range assignments {
		overlap := 0
		for _, tok := range TokenizeMeaningful(assignments[i].NormalizedTask) {
			if titleTokens[tok] {
				overlap++
			}
		}
		if overlap > bestScore {
			best = &assignments[i]
			bestScore = overlap
		}
	}

	minRequired := 2
	if len(titleTokens) <= 3 {
		minRequired = 1
	}
	if bestScore < minRequired {
		return nil
	}
	return best
}

// InferDueDate mines a due date for an action title from the transcript
// sentence with the highest meaningful-token overlap against the title.
func InferDueDate(title, transcript string) string {
	titleTokens := tokenSet(title)
	if len(titleTokens) == 0 {
		return ""
	}

	bestSentence := ""
	bestScore := 0
	for _, sentence := range SplitTranscriptSentences(transcript) {
		overlap := 0
		for _, tok := range TokenizeMeaningful(sentence) {
			if titleTokens[tok] {
				overlap++
			}
		}
		if overlap > bestScore {
			bestScore = overlap
			bestSentence = sentence
		}
	}

	if bestScore < 1 || bestSentence == "" {
		return ""
	}
	return ExtractDateMention(bestSentence)
}
