package notes

import (
	"testing"

	"github.com/johnquangdev/note-cleaner/internal/domain/entities"
)

func TestNormalizeCandidateCoercesEnumValues(t *testing.T) {
	raw, ok := parseStructured(`{
		"confidence": "very sure",
		"language": "de",
		"summary": [{"text": "One bullet."}],
		"decisions": [{"title": "Ship it", "status": "maybe"}],
		"actionItems": [{"title": "Do the thing", "priority": "urgent", "done": "yes"}]
	}`)
	if !ok {
		t.Fatal("fixture should parse")
	}

	result := normalizeCandidate(raw, entities.LanguageEN)

	if result.Confidence != entities.ConfidenceMedium {
		t.Errorf("Confidence = %q, want medium fallback", result.Confidence)
	}
	if result.Language != entities.LanguageEN {
		t.Errorf("Language = %q, want the caller fallback", result.Language)
	}
	if result.Decisions[0].Status != entities.DecisionTentative {
		t.Errorf("Status = %q, want tentative fallback", result.Decisions[0].Status)
	}
	if result.ActionItems[0].Priority != "" {
		t.Errorf("Priority = %q, want unknown value dropped", result.ActionItems[0].Priority)
	}
	if result.ActionItems[0].Done {
		t.Error("Done should only be true for a JSON true")
	}
}

func TestNormalizeCandidateFillsMissingFields(t *testing.T) {
	raw, ok := parseStructured(`{"decisions": [{}], "actionItems": [{"assignee": "sarah"}]}`)
	if !ok {
		t.Fatal("fixture should parse")
	}

	result := normalizeCandidate(raw, entities.LanguageEN)

	if len(result.Summary) != 1 || result.Summary[0].Text != "Meeting notes summary." {
		t.Errorf("Summary = %+v, want the default bullet", result.Summary)
	}
	if result.Decisions[0].Title != "Decision" {
		t.Errorf("decision title = %q, want the default", result.Decisions[0].Title)
	}
	if result.ActionItems[0].Title != "Action item" {
		t.Errorf("action title = %q, want the default", result.ActionItems[0].Title)
	}
	if result.ActionItems[0].AssigneeInitial != "S" {
		t.Errorf("AssigneeInitial = %q, want derived from assignee", result.ActionItems[0].AssigneeInitial)
	}
}

func TestNormalizeCandidateWrapsScalarSections(t *testing.T) {
	raw, ok := parseStructured(`{"summary": "Just one line.", "risks": "Budget overrun"}`)
	if !ok {
		t.Fatal("fixture should parse")
	}

	result := normalizeCandidate(raw, entities.LanguageEN)

	if len(result.Summary) != 1 || result.Summary[0].Text != "Just one line." {
		t.Errorf("Summary = %+v, want scalar wrapped into one bullet", result.Summary)
	}
	if len(result.Risks) != 1 || result.Risks[0].Text != "Budget overrun" {
		t.Errorf("Risks = %+v", result.Risks)
	}
}

func TestNormalizeCandidateMovesTaskPhrasedQuestions(t *testing.T) {
	raw, ok := parseStructured(`{
		"summary": [{"text": "Planning recap."}],
		"openQuestions": [
			{"text": "Send the summary to the team"},
			{"text": "Who owns the migration?"}
		]
	}`)
	if !ok {
		t.Fatal("fixture should parse")
	}

	result := normalizeCandidate(raw, entities.LanguageEN)

	if len(result.OpenQuestions) != 1 || result.OpenQuestions[0].Text != "Who owns the migration?" {
		t.Errorf("OpenQuestions = %+v, want only the real question kept", result.OpenQuestions)
	}
	if len(result.ActionItems) != 1 {
		t.Fatalf("ActionItems = %+v, want the task-phrased question moved here", result.ActionItems)
	}
	moved := result.ActionItems[0]
	if moved.Title != "Send the summary to the team" || moved.Priority != entities.PriorityHigh {
		t.Errorf("moved item = %+v", moved)
	}
}

func TestSanitizeSummaryTextStripsLeadingLets(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Let's move the target to November 15th.", "move the target to November 15th."},
		{"We agreed. Let's ship it.", "We agreed. ship it."},
		{"The outlets are fine.", "The outlets are fine."},
		{"Too   many   spaces.", "Too many spaces."},
	}
	for _, tc := range cases {
		if got := sanitizeSummaryText(tc.in); got != tc.want {
			t.Errorf("sanitizeSummaryText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtractJSONStripsCodeFences(t *testing.T) {
	fenced := "```json\n{\"summary\": []}\n```"
	if got := extractJSON(fenced); got != `{"summary": []}` {
		t.Errorf("extractJSON = %q", got)
	}
	plain := `{"summary": []}`
	if got := extractJSON(plain); got != plain {
		t.Errorf("extractJSON should pass unfenced text through, got %q", got)
	}
}

func TestParseStructuredRejectsNonJSON(t *testing.T) {
	if _, ok := parseStructured("I refuse to answer in JSON."); ok {
		t.Error("prose should not parse")
	}
	if _, ok := parseStructured(`{"summary": []}`); !ok {
		t.Error("valid JSON should parse")
	}
}
