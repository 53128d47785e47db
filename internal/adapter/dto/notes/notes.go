package notes

import (
	"github.com/johnquangdev/note-cleaner/internal/domain/entities"
)

// GenerateRequest is the payload for POST /v1/notes/generate.
// OutputLanguage "auto" (or empty) lets the server pick by detecting
// the transcript language.
type GenerateRequest struct {
	Transcript     string `json:"transcript" validate:"required,min=1"`
	OutputLanguage string `json:"outputLanguage" validate:"omitempty,oneof=en fr auto"`
}

// GenerateResponse is a union over the four terminal engine states.
// ok=true carries result and source; refusal and server_error carry
// message; validation_error carries rawOutput.
type GenerateResponse struct {
	OK        bool                  `json:"ok"`
	Result    *entities.NotesResult `json:"result,omitempty"`
	Source    string                `json:"source,omitempty"`
	Reason    string                `json:"reason,omitempty"`
	Message   string                `json:"message,omitempty"`
	RawOutput string                `json:"rawOutput,omitempty"`
}

// DetectRequest is the payload for POST /v1/notes/detect
type DetectRequest struct {
	Transcript string `json:"transcript" validate:"required,min=1"`
}

// DetectResponse reports the detected language and the word ratios
// behind the guess
type DetectResponse struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
	FrRatio    float64 `json:"frRatio"`
	EnRatio    float64 `json:"enRatio"`
}
