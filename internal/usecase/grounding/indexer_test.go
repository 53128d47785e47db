package grounding

import (
	"testing"
)

const sampleTranscript = `Sam: We need to update the API documentation by Friday.
Priya: I'll send the rollout email by Friday.
Sam: Priya, draft the follow-up summary before Monday.
Lee: Sounds good to me.`

func TestBuildIndexSpeakerNames(t *testing.T) {
	index := BuildIndex(sampleTranscript)

	for _, name := range []string{"Sam", "Priya", "Lee"} {
		if !index.HasSpeaker(name) {
			t.Errorf("expected speaker %q in index", name)
		}
	}
	if index.HasSpeaker("Jordan") {
		t.Error("unexpected speaker Jordan")
	}
}

func TestBuildIndexVocativeAssignment(t *testing.T) {
	index := BuildIndex(sampleTranscript)

	var found bool
	for _, a := range index.Assignments {
		if a.Assignee == "Priya" && a.NormalizedTask == "draft the follow up summary before monday" {
			found = true
			if a.DueDate != "before Monday" {
				t.Errorf("unexpected due date %q", a.DueDate)
			}
		}
	}
	if !found {
		t.Error("expected vocative assignment for Priya")
	}
}

func TestBuildIndexSpeakerTurnAssignment(t *testing.T) {
	index := BuildIndex(sampleTranscript)

	var found bool
	for _, a := range index.Assignments {
		if a.Assignee == "Priya" && a.NormalizedTask == "i ll send the rollout email by friday" {
			found = true
			if a.DueDate != "by Friday" {
				t.Errorf("unexpected due date %q", a.DueDate)
			}
		}
	}
	if !found {
		t.Error("expected self-assignment from Priya's turn")
	}

	// Lee's turn carries no action cue and must not produce one
	for _, a := range index.Assignments {
		if a.Assignee == "Lee" {
			t.Errorf("unexpected assignment for Lee: %q", a.Task)
		}
	}
}

func TestBuildIndexIgnoresUnknownVocative(t *testing.T) {
	index := BuildIndex("Sam: Jordan, update the roadmap.\nSam: Done for today.")

	for _, a := range index.Assignments {
		if a.Assignee == "Jordan" {
			t.Error("vocative naming a non-speaker must be ignored")
		}
	}
}

func TestExtractDateMention(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"send the email by Friday", "by Friday"},
		{"let's sync tomorrow", "tomorrow"},
		{"on se voit demain", "demain"},
		{"d'ici vendredi il faut finir", "d'ici vendredi"},
		{"no date here", ""},
	}
	for _, tc := range cases {
		if got := ExtractDateMention(tc.in); got != tc.want {
			t.Errorf("ExtractDateMention(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
