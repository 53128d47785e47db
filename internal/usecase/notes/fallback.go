package notes

import (
	"strings"

	"github.com/johnquangdev/note-cleaner/internal/domain/entities"
)

// fallbackErrorMarkers are provider failure categories where returning
// the deterministic placeholder result beats surfacing an error to the
// user: bad credentials, exhausted billing, and transient network
// trouble.
var fallbackErrorMarkers = []string{
	"credit balance is too low",
	"plans & billing",
	"invalid x-api-key",
	"authentication_error",
	"permission_error",
	"load failed",
	"failed to fetch",
	"network",
	"timeout",
	"socket",
}

func shouldFallbackToMock(message string) bool {
	normalized := strings.ToLower(message)
	for _, marker := range fallbackErrorMarkers {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	return false
}

// MockResult returns the deterministic placeholder result for the
// requested language. Used when no provider is configured and as the
// fallback for recoverable provider failures.
func MockResult(language entities.Language) entities.NotesResult {
	base := mockResultEN
	if language == entities.LanguageFR {
		base = mockResultFR
	}
	result := base.Clone()
	result.Language = language
	return result
}

var mockResultEN = entities.NotesResult{
	Confidence: entities.ConfidenceHigh,
	Language:   entities.LanguageEN,
	Summary: []entities.SummaryBullet{
		{Text: "Product launch has been officially delayed by 2 weeks due to critical API latency issues."},
		{Text: "The new target launch date is confirmed for **November 15th**."},
		{Text: "The engineering team identified that the data layer requires significant refactoring."},
		{Text: "Mike will lead the update of outdated API documentation by Oct 20th."},
		{Text: "Stakeholders and roadmap documentation will be updated to reflect the new timeline immediately."},
	},
	Decisions: []entities.Decision{
		{
			Title:         "Delay launch to November 15th",
			Status:        entities.DecisionConfirmed,
			Owner:         "Sarah (Speaker B)",
			EffectiveDate: "Immediate",
			EvidenceQuote: "Let's move the target to November 15th then. Sarah, can you update the stakeholders?",
		},
	},
	ActionItems: []entities.NotesActionItem{
		{
			Title:           "Update stakeholders on timeline shift",
			Assignee:        "Sarah",
			AssigneeInitial: "S",
			DueDate:         "ASAP",
			Priority:        entities.PriorityHigh,
		},
		{
			Title:           "Fix outdated API documentation",
			Assignee:        "Mike",
			AssigneeInitial: "M",
			DueDate:         "Oct 20",
			Priority:        entities.PriorityMedium,
		},
		{
			Title:           "Update roadmap documentation",
			Assignee:        "Sarah",
			AssigneeInitial: "S",
		},
	},
	Risks: []entities.TextItem{
		{Text: "API documentation is outdated (Blocker)"},
		{Text: "Data layer refactoring complexity"},
	},
	OpenQuestions: []entities.TextItem{
		{Text: "Specific scope of data layer refactor?"},
	},
}

var mockResultFR = entities.NotesResult{
	Confidence: entities.ConfidenceHigh,
	Language:   entities.LanguageFR,
	Summary: []entities.SummaryBullet{
		{Text: "Le lancement du produit a été officiellement reporté de 2 semaines en raison de problèmes critiques de latence de l'API."},
		{Text: "La nouvelle date de lancement cible est confirmée pour le **15 novembre**."},
		{Text: "L'équipe d'ingénierie a identifié que la couche de données nécessite une refactorisation importante."},
		{Text: "Mike dirigera la mise à jour de la documentation API obsolète d'ici le 20 octobre."},
		{Text: "Les parties prenantes et la documentation de la feuille de route seront mises à jour immédiatement pour refléter le nouveau calendrier."},
	},
	Decisions: []entities.Decision{
		{
			Title:         "Reporter le lancement au 15 novembre",
			Status:        entities.DecisionConfirmed,
			Owner:         "Sarah (Intervenante B)",
			EffectiveDate: "Immédiat",
			EvidenceQuote: "Let's move the target to November 15th then. Sarah, can you update the stakeholders?",
		},
	},
	ActionItems: []entities.NotesActionItem{
		{
			Title:           "Informer les parties prenantes du changement de calendrier",
			Assignee:        "Sarah",
			AssigneeInitial: "S",
			DueDate:         "Dès que possible",
			Priority:        entities.PriorityHigh,
		},
		{
			Title:           "Corriger la documentation API obsolète",
			Assignee:        "Mike",
			AssigneeInitial: "M",
			DueDate:         "20 oct.",
			Priority:        entities.PriorityMedium,
		},
		{
			Title:           "Mettre à jour la documentation de la feuille de route",
			Assignee:        "Sarah",
			AssigneeInitial: "S",
		},
	},
	Risks: []entities.TextItem{
		{Text: "La documentation API est obsolète (Bloquant)"},
		{Text: "Complexité de la refactorisation de la couche de données"},
	},
	OpenQuestions: []entities.TextItem{
		{Text: "Périmètre exact de la refactorisation de la couche de données ?"},
	},
}
