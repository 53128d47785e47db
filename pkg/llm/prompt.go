package llm

import (
	"fmt"
	"strings"
)

// Vocabulary is the bilingual cue-phrase set the prompt quotes to the
// model. It is supplied by the grounding rule tables so the prompt and
// the checker can never drift apart.
type Vocabulary struct {
	ActionCuesEN []string
	ActionCuesFR []string
}

const systemPromptTemplate = `You are a meeting-note extraction assistant.

TASK
Given a raw meeting transcript, extract structured notes and return **only** a single JSON object — no markdown fences, no commentary, no explanation.

OUTPUT SCHEMA (you must follow this exactly):
{
  "confidence": "high" | "medium" | "low",
  "language": "en" | "fr",
  "summary": [{ "text": "..." }, ...],
  "decisions": [
    {
      "title": "...",
      "status": "confirmed" | "tentative" | "rejected",
      "owner": "..." (optional),
      "effectiveDate": "..." (optional),
      "evidenceQuote": "..." (optional, verbatim quote from transcript)
    }
  ],
  "actionItems": [
    {
      "title": "...",
      "assignee": "..." (optional),
      "assigneeInitial": "X" (optional, 1-2 chars),
      "dueDate": "..." (optional),
      "priority": "high" | "medium" | "low" (optional),
      "done": false
    }
  ],
  "risks": [{ "text": "..." }],
  "openQuestions": [{ "text": "..." }]
}

RULES
1. Output ONLY the JSON object. No wrapping, fences, or extra text.
2. "confidence" reflects how confident you are in the extraction (high if transcript is clear, low if ambiguous).
3. "language" must match the requested output language provided in the user message.
4. "summary" must have at least 2 bullets for medium/long transcripts (6+ speaker turns), and at least 1 bullet for short transcripts.
5. "done" for action items is always false.
6. "assigneeInitial" is the first letter of the assignee name (uppercase).
7. Every decision MUST include "evidenceQuote" as a direct verbatim quote from transcript (at least 6 words).
8. If a section has no items, return an empty array [].
9. Keep summaries concise (1-2 sentences each). Use **bold** markdown for key terms in summary text.
10. Do NOT invent information not present in the transcript.
11. Do not invent due dates or effective dates. Include dueDate/effectiveDate only when explicitly present in transcript.
12. Include explicit operational commitments (e.g. announcements, check-ins, status page updates) as action items/open questions when present.
13. If transcript explicitly assigns a task to a named person (e.g. "Priya, draft..."), the matching action item must include that assignee.
14. Do not merge separate blockers into one causal claim. Use "because/due to" only when transcript directly states that exact cause-effect relation.
15. Ensure coverage completeness: include auth blockers, scope-cut decisions, internal announcements, and next check-in timing when explicitly present.
16. Treat clauses containing commitment cues as action items. English cues: %s. French cues: %s.`

// BuildSystemPrompt renders the extraction instructions with the shared
// cue vocabulary inlined.
func BuildSystemPrompt(vocab Vocabulary) string {
	return fmt.Sprintf(systemPromptTemplate,
		joinCues(vocab.ActionCuesEN),
		joinCues(vocab.ActionCuesFR),
	)
}

func joinCues(cues []string) string {
	if len(cues) == 0 {
		return "(none)"
	}
	trimmed := make([]string, 0, len(cues))
	for _, cue := range cues {
		trimmed = append(trimmed, `"`+strings.TrimSpace(cue)+`"`)
	}
	return strings.Join(trimmed, ", ")
}

// BuildUserMessage formats the initial extraction request
func BuildUserMessage(transcript, outputLanguage string) string {
	return fmt.Sprintf("Output language: %s\n\nTRANSCRIPT:\n%s", languageLabel(outputLanguage), transcript)
}

// BuildRepairMessage formats the single repair round-trip: the previous
// draft plus the itemized issue list, asking for a full regenerated
// object that fixes every issue.
func BuildRepairMessage(transcript, outputLanguage, draftJSON string, issues []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Output language: %s\n\n", languageLabel(outputLanguage))
	fmt.Fprintf(&sb, "You previously generated this JSON:\n%s\n\n", draftJSON)
	sb.WriteString("It has the following issues:\n")
	for i, issue := range issues {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, issue)
	}
	sb.WriteString("\nRegenerate the full JSON object and fix every issue while preserving correct items.\n\n")
	fmt.Fprintf(&sb, "TRANSCRIPT:\n%s", transcript)
	return sb.String()
}

func languageLabel(outputLanguage string) string {
	if outputLanguage == "fr" {
		return "French"
	}
	return "English"
}
