package grounding

import (
	"regexp"
	"strings"

	"github.com/johnquangdev/note-cleaner/internal/domain/entities"
)

var (
	speakerLineRe = regexp.MustCompile(`(?m)^\s*([A-ZÀ-ÖØ-Ý][A-Za-zÀ-ÖØ-öø-ÿ'-]*)\s*:`)
	speakerTurnRe = regexp.MustCompile(`(?m)^\s*([A-ZÀ-ÖØ-Ý][A-Za-zÀ-ÖØ-öø-ÿ'-]*)\s*:\s*(.+)`)
	vocativeRe    = regexp.MustCompile(`\b([A-Z][a-z]+),\s*([^.\n!?]+)`)
)

// BuildIndex parses the transcript into reusable matching evidence:
// the set of speaker names and the task assignments inferable from
// the text. It is a pure function of the transcript and safe to
// memoize per request.
func BuildIndex(transcript string) entities.TranscriptIndex {
	names := extractSpeakerNames(transcript)
	index := entities.TranscriptIndex{SpeakerNames: names}
	index.Assignments = append(index.Assignments, extractExplicitAssignments(transcript, names)...)
	index.Assignments = append(index.Assignments, extractSpeakerTurnAssignments(transcript, names)...)
	return index
}

// extractSpeakerNames collects capitalized names from "Name:" line starts
func extractSpeakerNames(transcript string) map[string]bool {
	names := make(map[string]bool)
	for _, match := range speakerLineRe.FindAllStringSubmatch(transcript, -1) {
		if name := strings.TrimSpace(match[1]); name != "" {
			names[name] = true
		}
	}
	return names
}

// extractExplicitAssignments finds vocative task handoffs of the form
// "Priya, draft the follow-up by Friday." — the named person must be a
// known speaker, the clause becomes the task.
func extractExplicitAssignments(transcript string, validAssignees map[string]bool) []entities.Assignment {
	var assignments []entities.Assignment
	for _, match := range vocativeRe.FindAllStringSubmatch(transcript, -1) {
		assignee := strings.TrimSpace(match[1])
		task := strings.TrimSpace(match[2])
		if assignee == "" || task == "" || !validAssignees[assignee] {
			continue
		}
		assignments = append(assignments, entities.Assignment{
			Assignee:       assignee,
			Task:           task,
			NormalizedTask: NormalizeForMatching(task),
			DueDate:        ExtractDateMention(task),
		})
	}
	return assignments
}

// extractSpeakerTurnAssignments treats action-like clauses inside a
// speaker's own turn as self-assignments.
func extractSpeakerTurnAssignments(transcript string, validAssignees map[string]bool) []entities.Assignment {
	var assignments []entities.Assignment
	for _, match := range speakerTurnRe.FindAllStringSubmatch(transcript, -1) {
		speaker := strings.TrimSpace(match[1])
		content := strings.TrimSpace(match[2])
		if speaker == "" || content == "" || !validAssignees[speaker] {
			continue
		}
		for _, clause := range splitClauses(content) {
			if !looksActionLike(clause) {
				continue
			}
			assignments = append(assignments, entities.Assignment{
				Assignee:       speaker,
				Task:           clause,
				NormalizedTask: NormalizeForMatching(clause),
				DueDate:        ExtractDateMention(clause),
			})
		}
	}
	return assignments
}

// looksActionLike reports whether a clause contains a bilingual action cue
func looksActionLike(text string) bool {
	normalized := NormalizeForMatching(text)
	for _, cue := range actionCues {
		if strings.Contains(normalized, cue.Phrase) {
			return true
		}
	}
	return false
}

// ExtractDateMention returns the first date phrase found in text, or ""
// when no pattern matches. Patterns are ordered; the first hit wins.
func ExtractDateMention(text string) string {
	for _, pattern := range datePatterns {
		if match := pattern.FindString(text); match != "" {
			return CleanText(match)
		}
	}
	return ""
}
