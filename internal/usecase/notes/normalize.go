package notes

import (
	"regexp"
	"strings"

	"github.com/johnquangdev/note-cleaner/internal/domain/entities"
	"github.com/johnquangdev/note-cleaner/internal/usecase/grounding"
)

var (
	leadingLetsRe = regexp.MustCompile(`(?i)(^|[.!?]\s+)let['’]s\s+`)
	multiSpaceRe  = regexp.MustCompile(`\s{2,}`)
)

func asRecord(value any) (map[string]any, bool) {
	record, ok := value.(map[string]any)
	return record, ok
}

// toSlice accepts arrays, scalars, and nil. Models sometimes emit a
// single object where the schema asks for an array.
func toSlice(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case nil:
		return nil
	default:
		return []any{v}
	}
}

func toOptionalString(value any) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return grounding.CleanText(s)
}

func toNonEmptyString(value any, fallback string) string {
	if s, ok := value.(string); ok && strings.TrimSpace(s) != "" {
		return grounding.CleanText(s)
	}
	return fallback
}

func sanitizeSummaryText(text string) string {
	out := leadingLetsRe.ReplaceAllString(text, "$1")
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(out, " "))
}

func normalizeDecisionStatus(value any) entities.DecisionStatus {
	switch value {
	case "confirmed", "tentative", "rejected":
		return entities.DecisionStatus(value.(string))
	}
	return entities.DecisionTentative
}

func normalizePriority(value any) entities.Priority {
	switch value {
	case "high", "medium", "low":
		return entities.Priority(value.(string))
	}
	return ""
}

func normalizeConfidence(value any) entities.ConfidenceLevel {
	switch value {
	case "high", "medium", "low":
		return entities.ConfidenceLevel(value.(string))
	}
	return entities.ConfidenceMedium
}

func normalizeLanguage(value any, fallback entities.Language) entities.Language {
	switch value {
	case "en", "fr":
		return entities.Language(value.(string))
	}
	return fallback
}

// normalizeCandidate coerces a loosely parsed model payload into a
// NotesResult. Missing sub-fields get safe defaults, unknown enum
// values collapse to their fallbacks, and text is cleaned of HTML
// entities and markdown emphasis. Open questions phrased as tasks are
// moved into action items so they do not linger as questions.
func normalizeCandidate(raw any, fallbackLanguage entities.Language) entities.NotesResult {
	root, _ := asRecord(raw)

	var summary []entities.SummaryBullet
	for _, item := range toSlice(root["summary"]) {
		var text string
		if record, ok := asRecord(item); ok {
			text = toNonEmptyString(record["text"], "Meeting notes summary.")
		} else {
			text = toNonEmptyString(item, "Meeting notes summary.")
		}
		text = sanitizeSummaryText(text)
		if text != "" {
			summary = append(summary, entities.SummaryBullet{Text: text})
		}
	}
	if len(summary) == 0 {
		summary = []entities.SummaryBullet{{Text: "Meeting notes summary."}}
	}

	var decisions []entities.Decision
	for _, item := range toSlice(root["decisions"]) {
		record, _ := asRecord(item)
		decisions = append(decisions, entities.Decision{
			Title:         toNonEmptyString(record["title"], "Decision"),
			Status:        normalizeDecisionStatus(record["status"]),
			Owner:         toOptionalString(record["owner"]),
			EffectiveDate: toOptionalString(record["effectiveDate"]),
			EvidenceQuote: toOptionalString(record["evidenceQuote"]),
		})
	}

	var actionItems []entities.NotesActionItem
	for _, item := range toSlice(root["actionItems"]) {
		record, _ := asRecord(item)
		assignee := toOptionalString(record["assignee"])
		initial := toOptionalString(record["assigneeInitial"])
		if initial == "" {
			initial = grounding.DeriveInitial(assignee)
		}
		actionItems = append(actionItems, entities.NotesActionItem{
			Title:           toNonEmptyString(record["title"], "Action item"),
			Assignee:        assignee,
			AssigneeInitial: initial,
			DueDate:         toOptionalString(record["dueDate"]),
			Priority:        normalizePriority(record["priority"]),
			Done:            record["done"] == true,
		})
	}

	risks := normalizeTextItems(root["risks"])

	var openQuestions []entities.TextItem
	for _, question := range normalizeTextItems(root["openQuestions"]) {
		if grounding.IsActionLikeText(question.Text) {
			actionItems = append(actionItems, entities.NotesActionItem{
				Title:    question.Text,
				Priority: entities.PriorityHigh,
			})
			continue
		}
		openQuestions = append(openQuestions, question)
	}

	return entities.NotesResult{
		Confidence:    normalizeConfidence(root["confidence"]),
		Language:      normalizeLanguage(root["language"], fallbackLanguage),
		Summary:       summary,
		Decisions:     decisions,
		ActionItems:   actionItems,
		Risks:         risks,
		OpenQuestions: openQuestions,
	}
}

func normalizeTextItems(value any) []entities.TextItem {
	var items []entities.TextItem
	for _, item := range toSlice(value) {
		var text string
		if record, ok := asRecord(item); ok {
			text = toNonEmptyString(record["text"], "")
		} else {
			text = toNonEmptyString(item, "")
		}
		if text != "" {
			items = append(items, entities.TextItem{Text: text})
		}
	}
	return items
}
