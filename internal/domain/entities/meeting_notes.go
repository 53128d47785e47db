package entities

// ConfidenceLevel is the confidence the model assigns to its own extraction
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Priority for an action item
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// DecisionStatus is the status badge for a decision
type DecisionStatus string

const (
	DecisionConfirmed DecisionStatus = "confirmed"
	DecisionTentative DecisionStatus = "tentative"
	DecisionRejected  DecisionStatus = "rejected"
)

// Language is an output language supported by the service
type Language string

const (
	LanguageEN Language = "en"
	LanguageFR Language = "fr"
)

// SummaryBullet is a single plain-text summary sentence
type SummaryBullet struct {
	Text string `json:"text" validate:"required,min=1"`
}

// Decision represents a decision extracted from the meeting
type Decision struct {
	Title         string         `json:"title" validate:"required,min=1"`
	Status        DecisionStatus `json:"status" validate:"required,oneof=confirmed tentative rejected"`
	Owner         string         `json:"owner,omitempty"`
	EffectiveDate string         `json:"effectiveDate,omitempty"`
	EvidenceQuote string         `json:"evidenceQuote,omitempty"`
}

// NotesActionItem is a task extracted from the meeting.
// AssigneeInitial is derived from Assignee (uppercased first character,
// at most 2 chars) and is used for avatar rendering by clients.
type NotesActionItem struct {
	Title           string   `json:"title" validate:"required,min=1"`
	Assignee        string   `json:"assignee,omitempty"`
	AssigneeInitial string   `json:"assigneeInitial,omitempty" validate:"max=2"`
	DueDate         string   `json:"dueDate,omitempty"`
	Priority        Priority `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	Done            bool     `json:"done"`
}

// TextItem is a plain-text entry used for risks and open questions
type TextItem struct {
	Text string `json:"text" validate:"required,min=1"`
}

// NotesResult is the structured extraction produced from one transcript.
// A value is built fresh per request and never mutated in place: every
// pipeline stage (normalize, sanitize, enrich) returns a new value.
type NotesResult struct {
	Confidence    ConfidenceLevel   `json:"confidence" validate:"required,oneof=high medium low"`
	Language      Language          `json:"language" validate:"required,oneof=en fr"`
	Summary       []SummaryBullet   `json:"summary" validate:"required,min=1,dive"`
	Decisions     []Decision        `json:"decisions" validate:"dive"`
	ActionItems   []NotesActionItem `json:"actionItems" validate:"dive"`
	Risks         []TextItem        `json:"risks" validate:"dive"`
	OpenQuestions []TextItem        `json:"openQuestions" validate:"dive"`
}

// Clone returns a deep copy so pipeline stages can build a new value
// without aliasing the previous stage's slices.
func (r NotesResult) Clone() NotesResult {
	out := r
	out.Summary = append([]SummaryBullet(nil), r.Summary...)
	out.Decisions = append([]Decision(nil), r.Decisions...)
	out.ActionItems = append([]NotesActionItem(nil), r.ActionItems...)
	out.Risks = append([]TextItem(nil), r.Risks...)
	out.OpenQuestions = append([]TextItem(nil), r.OpenQuestions...)
	return out
}
