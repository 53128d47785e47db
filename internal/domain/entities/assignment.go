package entities

// Assignment is an inferred (speaker, task, due-date?) triple mined from
// the transcript. It is matching evidence only and is never returned to
// the caller directly.
type Assignment struct {
	Assignee       string
	Task           string
	NormalizedTask string
	DueDate        string
}

// TranscriptIndex is the reusable evidence extracted from one transcript
type TranscriptIndex struct {
	SpeakerNames map[string]bool
	Assignments  []Assignment
}

// HasSpeaker reports whether name was detected as a speaker in the transcript
func (ti TranscriptIndex) HasSpeaker(name string) bool {
	return ti.SpeakerNames[name]
}
