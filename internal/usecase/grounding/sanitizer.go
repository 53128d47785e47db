package grounding

import (
	"regexp"
	"strings"

	"github.com/johnquangdev/note-cleaner/internal/domain/entities"
)

var (
	announcementSpeakerRe = regexp.MustCompile(`(?i)([A-ZÀ-ÖØ-Ý][A-Za-zÀ-ÖØ-öø-ÿ'-]*)\s*:[^\n]*internal announcement`)
	checkInMentionRe      = regexp.MustCompile(`(?i)next check-?in[^.\n]*`)

	becauseRe  = regexp.MustCompile(`(?i)\s+because\s+`)
	dueToRe    = regexp.MustCompile(`(?i)\s+due to\s+`)
	causedByRe = regexp.MustCompile(`(?i)\s+caused by\s+`)
	squeezeRe  = regexp.MustCompile(`\s{2,}`)
)

// Sanitize runs the full repair-free correction pipeline in its fixed
// order: temporal sanitation and assignee backfill, action item
// enrichment, risk/open-question enrichment, final grounding pass.
// Each step is pure; the input value is never mutated.
func Sanitize(result entities.NotesResult, transcript string, index entities.TranscriptIndex) entities.NotesResult {
	out := SanitizeTemporalFields(result, transcript, index)
	out = EnrichActionItems(out, transcript, index)
	out = EnrichRisksAndOpenQuestions(out, transcript)
	return FinalGroundingPass(out, transcript)
}

// DeriveInitial returns the uppercased first character of an assignee
// name, or "" for an empty name.
func DeriveInitial(assignee string) string {
	trimmed := strings.TrimSpace(assignee)
	if trimmed == "" {
		return ""
	}
	runes := []rune(strings.ToUpper(trimmed))
	return string(runes[0])
}

// SanitizeTemporalFields drops dates the transcript never states and
// backfills assignees and due dates from matched transcript assignments.
func SanitizeTemporalFields(result entities.NotesResult, transcript string, index entities.TranscriptIndex) entities.NotesResult {
	out := result.Clone()

	for i, decision := range out.Decisions {
		if decision.EffectiveDate != "" && !GroundedInTranscript(decision.EffectiveDate, transcript) {
			out.Decisions[i].EffectiveDate = ""
		}
	}

	for i, item := range out.ActionItems {
		matched := BestAssignmentForTitle(item.Title, index.Assignments)

		assignee := item.Assignee
		if assignee == "" && matched != nil {
			assignee = matched.Assignee
		}
		initial := item.AssigneeInitial
		if assignee != "" {
			initial = DeriveInitial(assignee)
		}

		inferredDue := ""
		if matched != nil {
			inferredDue = matched.DueDate
		}
		if inferredDue == "" {
			inferredDue = InferDueDate(item.Title, transcript)
		}

		dueDate := inferredDue
		if item.DueDate != "" && GroundedInTranscript(item.DueDate, transcript) {
			dueDate = item.DueDate
		}

		out.ActionItems[i].Assignee = assignee
		out.ActionItems[i].AssigneeInitial = initial
		out.ActionItems[i].DueDate = dueDate
	}

	return out
}

// isPlaceholderTitle matches the literal "Action item" filler the model
// emits when it could not name a task.
func isPlaceholderTitle(title string) bool {
	normalized := NormalizeForMatching(title)
	return normalized == "action item" || strings.HasPrefix(normalized, "action item ")
}

// EnrichActionItems replaces placeholder items with unused transcript
// assignments (FIFO) and synthesizes canonical items for topics the
// output missed entirely, then deduplicates.
func EnrichActionItems(result entities.NotesResult, transcript string, index entities.TranscriptIndex) entities.NotesResult {
	out := result.Clone()
	normalizedTranscript := NormalizeForMatching(transcript)

	existingTitles := make(map[string]bool)
	for _, item := range out.ActionItems {
		if !isPlaceholderTitle(item.Title) {
			existingTitles[NormalizeForMatching(item.Title)] = true
		}
	}

	var queue []entities.Assignment
	for _, assignment := range index.Assignments {
		normalizedTask := NormalizeForMatching(assignment.Task)
		if normalizedTask != "" && !existingTitles[normalizedTask] {
			queue = append(queue, assignment)
		}
	}

	for i, item := range out.ActionItems {
		if !isPlaceholderTitle(item.Title) || len(queue) == 0 {
			continue
		}
		replacement := queue[0]
		queue = queue[1:]

		out.ActionItems[i].Title = replacement.Task
		out.ActionItems[i].Assignee = replacement.Assignee
		out.ActionItems[i].AssigneeInitial = DeriveInitial(replacement.Assignee)
		out.ActionItems[i].DueDate = replacement.DueDate
		if out.ActionItems[i].Priority == "" {
			out.ActionItems[i].Priority = entities.PriorityHigh
		}
		out.ActionItems[i].Done = false
	}

	out.ActionItems = dedupeActionItems(out.ActionItems)

	addActionItem := func(title, assignee, dueDate string) {
		normalizedTitle := NormalizeForMatching(title)
		for _, item := range out.ActionItems {
			if NormalizeForMatching(item.Title) == normalizedTitle {
				return
			}
		}
		out.ActionItems = append(out.ActionItems, entities.NotesActionItem{
			Title:           title,
			Assignee:        assignee,
			AssigneeInitial: DeriveInitial(assignee),
			DueDate:         dueDate,
			Priority:        entities.PriorityHigh,
			Done:            false,
		})
	}

	if ContainsAnyPhrase(normalizedTranscript, announcementTitlePhrases) &&
		!ContainsAnyPhrase(CollectOutputText(out), announcementTitlePhrases) {
		assignee := ""
		if mention := announcementSpeakerRe.FindStringSubmatch(transcript); mention != nil {
			assignee = mention[1]
		}
		addActionItem("Send internal announcement", assignee, ExtractDateMention(transcript))
	}

	checkInPhrases := []string{"next check in", "next check-in", "prochain point"}
	checkInCovered := []string{"next check in", "next check-in", "prochain point", "10am", "10h"}
	if ContainsAnyPhrase(normalizedTranscript, checkInPhrases) &&
		!ContainsAnyPhrase(CollectOutputText(out), checkInCovered) {
		title := "Confirm next check-in timing"
		dateSource := transcript
		if mention := checkInMentionRe.FindString(transcript); mention != "" {
			title = "Confirm " + strings.TrimSpace(mention)
			dateSource = mention
		}
		addActionItem(title, "", ExtractDateMention(dateSource))
	}

	out.ActionItems = dedupeActionItems(out.ActionItems)
	return out
}

// dedupeActionItems keeps the first item per normalized
// (title, assignee, dueDate) key.
func dedupeActionItems(items []entities.NotesActionItem) []entities.NotesActionItem {
	seen := make(map[string]bool)
	kept := make([]entities.NotesActionItem, 0, len(items))
	for _, item := range items {
		key := NormalizeForMatching(item.Title + "|" + item.Assignee + "|" + item.DueDate)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, item)
	}
	return kept
}

// dedupeTextItems keeps the first entry per normalized text, dropping
// entries that normalize to nothing.
func dedupeTextItems(items []entities.TextItem) []entities.TextItem {
	seen := make(map[string]bool)
	kept := make([]entities.TextItem, 0, len(items))
	for _, item := range items {
		key := NormalizeForMatching(item.Text)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, item)
	}
	return kept
}

// EnrichRisksAndOpenQuestions appends the canonical risk or open
// question for each triggered topic rule the output left uncovered.
func EnrichRisksAndOpenQuestions(result entities.NotesResult, transcript string) entities.NotesResult {
	out := result.Clone()
	normalizedTranscript := NormalizeForMatching(transcript)

	for _, rule := range enrichmentRules {
		if !ContainsAnyPhrase(normalizedTranscript, rule.TranscriptPhrases) {
			continue
		}
		if ContainsAnyPhrase(CollectOutputText(out), rule.OutputPhrases) {
			continue
		}
		switch rule.Kind {
		case EnrichRisk:
			out.Risks = append(out.Risks, entities.TextItem{Text: rule.Text})
		case EnrichOpenQuestion:
			out.OpenQuestions = append(out.OpenQuestions, entities.TextItem{Text: rule.Text})
		}
	}

	checkInPhrases := []string{"next check in", "next check-in"}
	checkInCovered := []string{"next check in", "next check-in", "10am", "10h"}
	if ContainsAnyPhrase(normalizedTranscript, checkInPhrases) &&
		!ContainsAnyPhrase(CollectOutputText(out), checkInCovered) {
		text := "Confirm next check-in timing."
		if mention := checkInMentionRe.FindString(transcript); mention != "" {
			text = "Confirm " + strings.TrimSpace(mention) + "."
		}
		out.OpenQuestions = append(out.OpenQuestions, entities.TextItem{Text: text})
	}

	out.Risks = dedupeTextItems(out.Risks)
	out.OpenQuestions = dedupeTextItems(out.OpenQuestions)
	return out
}

// FinalGroundingPass re-checks causal claims and due dates after
// enrichment: still-unsupported causal markers are mechanically split
// into two independent clauses, still-ungrounded due dates are dropped.
func FinalGroundingPass(result entities.NotesResult, transcript string) entities.NotesResult {
	out := result.Clone()

	for i, bullet := range out.Summary {
		if !HasSupportedCausalLink(bullet.Text, transcript) {
			out.Summary[i].Text = removeCausalMarker(bullet.Text)
		}
	}

	for i, item := range out.ActionItems {
		if item.DueDate != "" && !GroundedInTranscript(item.DueDate, transcript) {
			out.ActionItems[i].DueDate = ""
		}
	}

	return out
}

// removeCausalMarker replaces the first occurrence of each causal
// marker with a sentence break and collapses leftover whitespace.
func removeCausalMarker(text string) string {
	v := replaceFirst(becauseRe, text, ". ")
	v = replaceFirst(dueToRe, v, ". ")
	v = replaceFirst(causedByRe, v, ". ")
	v = squeezeRe.ReplaceAllString(v, " ")
	return strings.TrimSpace(v)
}

func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}
