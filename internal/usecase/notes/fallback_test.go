package notes

import (
	"testing"

	"github.com/johnquangdev/note-cleaner/internal/domain/entities"
)

func TestShouldFallbackToMock(t *testing.T) {
	cases := []struct {
		message string
		want    bool
	}{
		{"request failed: Connection TIMEOUT", true},
		{"Your credit balance is too low", true},
		{"authentication_error: invalid x-api-key", true},
		{"socket hang up", true},
		{"model produced malformed output", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := shouldFallbackToMock(tc.message); got != tc.want {
			t.Errorf("shouldFallbackToMock(%q) = %v, want %v", tc.message, got, tc.want)
		}
	}
}

func TestMockResultIsIsolatedPerCall(t *testing.T) {
	first := MockResult(entities.LanguageEN)
	first.Summary[0].Text = "mutated"
	first.ActionItems[0].Assignee = "mutated"

	second := MockResult(entities.LanguageEN)
	if second.Summary[0].Text == "mutated" || second.ActionItems[0].Assignee == "mutated" {
		t.Error("MockResult must return an independent copy")
	}
}

func TestMockResultLanguageVariants(t *testing.T) {
	en := MockResult(entities.LanguageEN)
	if en.Language != entities.LanguageEN || len(en.Summary) != 5 {
		t.Errorf("unexpected EN mock shape: language %q, %d bullets", en.Language, len(en.Summary))
	}

	fr := MockResult(entities.LanguageFR)
	if fr.Language != entities.LanguageFR {
		t.Errorf("FR mock language = %q", fr.Language)
	}
	if fr.Decisions[0].Title != "Reporter le lancement au 15 novembre" {
		t.Errorf("FR mock decision = %q", fr.Decisions[0].Title)
	}
}
