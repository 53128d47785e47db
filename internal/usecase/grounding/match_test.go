package grounding

import (
	"testing"

	"github.com/johnquangdev/note-cleaner/internal/domain/entities"
)

func assignment(assignee, task, dueDate string) entities.Assignment {
	return entities.Assignment{
		Assignee:       assignee,
		Task:           task,
		NormalizedTask: NormalizeForMatching(task),
		DueDate:        dueDate,
	}
}

func TestBestAssignmentPrefersSubstringContainment(t *testing.T) {
	assignments := []entities.Assignment{
		assignment("Priya", "I'll send the rollout email by Friday", "by Friday"),
		assignment("Sam", "update the roadmap deck", ""),
	}

	best := BestAssignmentForTitle("Send the rollout email", assignments)
	if best == nil || best.Assignee != "Priya" {
		t.Fatalf("best = %+v, want the containing task", best)
	}
}

func TestBestAssignmentShortTitleNeedsOneSharedToken(t *testing.T) {
	assignments := []entities.Assignment{
		assignment("Sam", "circulate the revised roadmap to leadership", ""),
	}

	// "Share roadmap" has two meaningful tokens; one overlap suffices.
	best := BestAssignmentForTitle("Share roadmap", assignments)
	if best == nil || best.Assignee != "Sam" {
		t.Fatalf("best = %+v, want the single-token overlap accepted", best)
	}
}

func TestBestAssignmentLongTitleNeedsTwoSharedTokens(t *testing.T) {
	assignments := []entities.Assignment{
		assignment("Sam", "circulate the revised roadmap to leadership", ""),
	}

	// Four meaningful tokens but only "roadmap" is shared.
	if best := BestAssignmentForTitle("Publish quarterly roadmap review findings", assignments); best != nil {
		t.Fatalf("best = %+v, want nil below the two-token threshold", best)
	}

	// Sharing "roadmap" and "leadership" clears it.
	best := BestAssignmentForTitle("Brief leadership about roadmap concerns", assignments)
	if best == nil || best.Assignee != "Sam" {
		t.Fatalf("best = %+v, want the two-token overlap accepted", best)
	}
}

func TestBestAssignmentTieKeepsFirstCandidate(t *testing.T) {
	assignments := []entities.Assignment{
		assignment("Priya", "review the billing migration plan", ""),
		assignment("Sam", "review the billing escalation queue", ""),
	}

	best := BestAssignmentForTitle("Review billing status", assignments)
	if best == nil || best.Assignee != "Priya" {
		t.Fatalf("best = %+v, want the first of the tied candidates", best)
	}
}

func TestBestAssignmentEmptyInputs(t *testing.T) {
	if best := BestAssignmentForTitle("", []entities.Assignment{assignment("Sam", "update the deck", "")}); best != nil {
		t.Errorf("empty title matched %+v", best)
	}
	if best := BestAssignmentForTitle("Send the deck", nil); best != nil {
		t.Errorf("no assignments matched %+v", best)
	}
}

func TestInferDueDateUsesBestOverlappingSentence(t *testing.T) {
	transcript := `Sam: The rollout email needs a final pass by Friday.
Priya: The offsite is tomorrow, separate topic.`

	if got := InferDueDate("Finalize rollout email", transcript); got != "by Friday" {
		t.Errorf("InferDueDate = %q, want the date from the matching sentence", got)
	}
	if got := InferDueDate("Renew office lease", transcript); got != "" {
		t.Errorf("InferDueDate = %q, want empty for an unrelated title", got)
	}
}
