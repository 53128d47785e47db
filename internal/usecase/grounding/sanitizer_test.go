package grounding

import (
	"reflect"
	"strings"
	"testing"

	"github.com/johnquangdev/note-cleaner/internal/domain/entities"
)

func TestSanitizeBackfillsAssigneeAndDueDate(t *testing.T) {
	transcript := "Priya: I'll send the rollout email by Friday.\nSam: Sounds good."
	result := minimalResult()
	result.ActionItems = []entities.NotesActionItem{
		{Title: "Send rollout email"},
	}

	out := Sanitize(result, transcript, BuildIndex(transcript))

	if len(out.ActionItems) != 1 {
		t.Fatalf("expected 1 action item, got %d", len(out.ActionItems))
	}
	item := out.ActionItems[0]
	if item.Assignee != "Priya" {
		t.Errorf("expected assignee Priya, got %q", item.Assignee)
	}
	if item.AssigneeInitial != "P" {
		t.Errorf("expected initial P, got %q", item.AssigneeInitial)
	}
	if !strings.Contains(item.DueDate, "Friday") {
		t.Errorf("expected due date containing Friday, got %q", item.DueDate)
	}
}

func TestSanitizeTemporalFieldsDropsUngroundedDates(t *testing.T) {
	transcript := "Sam: We will ship the beta soon."
	result := minimalResult()
	result.Decisions = []entities.Decision{
		{Title: "Ship beta", Status: entities.DecisionConfirmed, EffectiveDate: "December 1st"},
	}

	out := SanitizeTemporalFields(result, transcript, BuildIndex(transcript))
	if out.Decisions[0].EffectiveDate != "" {
		t.Errorf("expected ungrounded effectiveDate to be dropped, got %q", out.Decisions[0].EffectiveDate)
	}
}

func TestEnrichActionItemsReplacesPlaceholder(t *testing.T) {
	transcript := "Priya: I'll send the rollout email by Friday."
	index := BuildIndex(transcript)

	result := minimalResult()
	result.ActionItems = []entities.NotesActionItem{
		{Title: "Action item"},
	}

	out := EnrichActionItems(result, transcript, index)

	if len(out.ActionItems) != 1 {
		t.Fatalf("expected 1 action item, got %d", len(out.ActionItems))
	}
	item := out.ActionItems[0]
	if item.Title == "Action item" {
		t.Fatal("placeholder title was not replaced")
	}
	if item.Assignee != "Priya" {
		t.Errorf("expected assignee Priya, got %q", item.Assignee)
	}
	if item.Priority != entities.PriorityHigh {
		t.Errorf("expected high priority, got %q", item.Priority)
	}
}

func TestEnrichActionItemsSynthesizesAnnouncement(t *testing.T) {
	transcript := "Sam: Marco will handle the internal announcement."
	result := minimalResult()

	out := EnrichActionItems(result, transcript, BuildIndex(transcript))

	var found bool
	for _, item := range out.ActionItems {
		if strings.Contains(NormalizeForMatching(item.Title), "internal announcement") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected synthesized announcement action item, got %v", out.ActionItems)
	}
}

func TestDedupeActionItems(t *testing.T) {
	result := minimalResult()
	result.ActionItems = []entities.NotesActionItem{
		{Title: "Update the roadmap", Assignee: "Sam", DueDate: "by Friday"},
		{Title: "Update the Roadmap", Assignee: "sam", DueDate: "by friday"},
		{Title: "Update the roadmap", Assignee: "Priya"},
	}

	out := EnrichActionItems(result, "Sam: Quick sync.", entities.TranscriptIndex{})
	if len(out.ActionItems) != 2 {
		t.Errorf("expected 2 action items after dedupe, got %d: %v", len(out.ActionItems), out.ActionItems)
	}
}

func TestEnrichRisksAndOpenQuestions(t *testing.T) {
	transcript := "Sam: The API integration keeps failing in staging.\nPriya: We also need sign-off from product and sales."
	result := minimalResult()

	out := EnrichRisksAndOpenQuestions(result, transcript)

	var riskFound bool
	for _, risk := range out.Risks {
		if risk.Text == "API integration remains unstable in staging." {
			riskFound = true
		}
	}
	if !riskFound {
		t.Errorf("expected canonical staging risk, got %v", out.Risks)
	}

	var questionFound bool
	for _, q := range out.OpenQuestions {
		if q.Text == "When will Product and Sales provide sign-off for the scope change?" {
			questionFound = true
		}
	}
	if !questionFound {
		t.Errorf("expected canonical sign-off question, got %v", out.OpenQuestions)
	}

	// Running again adds nothing new
	again := EnrichRisksAndOpenQuestions(out, transcript)
	if !reflect.DeepEqual(out, again) {
		t.Error("enrichment is not idempotent")
	}
}

func TestFinalGroundingPassSplitsCausalClaim(t *testing.T) {
	transcript := "Sam: The launch is delayed.\nSam: Marketing missed the deadline."
	result := minimalResult()
	result.Summary = []entities.SummaryBullet{
		{Text: "Launch delayed because marketing missed the deadline"},
	}

	out := FinalGroundingPass(result, transcript)

	text := out.Summary[0].Text
	if strings.Contains(strings.ToLower(text), "because") {
		t.Errorf("causal marker not removed: %q", text)
	}
	if !strings.Contains(text, ". ") {
		t.Errorf("expected sentence break between clauses: %q", text)
	}
}

func TestFinalGroundingPassKeepsSupportedClaim(t *testing.T) {
	transcript := "Sam: The launch was delayed because marketing missed the deadline."
	result := minimalResult()
	result.Summary = []entities.SummaryBullet{
		{Text: "Launch delayed because marketing missed the deadline"},
	}

	out := FinalGroundingPass(result, transcript)
	if out.Summary[0].Text != result.Summary[0].Text {
		t.Errorf("supported causal claim was rewritten: %q", out.Summary[0].Text)
	}
}

func TestDeriveInitial(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Priya", "P"},
		{"  sam ", "S"},
		{"", ""},
		{"Élise", "É"},
	}
	for _, tc := range cases {
		if got := DeriveInitial(tc.in); got != tc.want {
			t.Errorf("DeriveInitial(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizePure(t *testing.T) {
	transcript := "Priya: I'll send the rollout email by Friday."
	result := minimalResult()
	result.ActionItems = []entities.NotesActionItem{{Title: "Send rollout email"}}
	snapshot := result.Clone()

	Sanitize(result, transcript, BuildIndex(transcript))

	if !reflect.DeepEqual(result, snapshot) {
		t.Error("Sanitize mutated its input")
	}
}
