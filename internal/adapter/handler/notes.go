package handler

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/note-cleaner/errors"
	notesdto "github.com/johnquangdev/note-cleaner/internal/adapter/dto/notes"
	"github.com/johnquangdev/note-cleaner/internal/domain/entities"
	"github.com/johnquangdev/note-cleaner/internal/usecase/detect"
	notesuse "github.com/johnquangdev/note-cleaner/internal/usecase/notes"
	"github.com/johnquangdev/note-cleaner/pkg/reqcontext"
)

// Notes handles the meeting-notes generation endpoints
type Notes struct {
	svc      *notesuse.Service
	testMode bool
	logger   *zap.Logger
}

// NewNotes creates a new notes handler. testMode enables reading the
// x-test-mode / x-test-id fault-injection headers.
func NewNotes(svc *notesuse.Service, testMode bool, logger *zap.Logger) *Notes {
	return &Notes{svc: svc, testMode: testMode, logger: logger}
}

// Generate turns a transcript into validated meeting notes
// @Summary      Generate meeting notes
// @Description  Extracts structured, transcript-grounded meeting notes from a raw transcript
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Param        request  body      notesdto.GenerateRequest  true  "Transcript and output language"
// @Success      200      {object}  map[string]interface{}    "Generation outcome"
// @Failure      400      {object}  map[string]interface{}    "Missing transcript or invalid payload"
// @Router       /notes/generate [post]
func (h *Notes) Generate(c echo.Context) error {
	var req notesdto.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if strings.TrimSpace(req.Transcript) == "" {
		return HandleError(h.logger, c, errors.ErrMissingTranscript())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	in := notesuse.GenerateInput{
		Transcript: req.Transcript,
		Language:   resolveOutputLanguage(req),
	}
	if h.testMode {
		in.TestMode = c.Request().Header.Get("x-test-mode")
		in.TestID = c.Request().Header.Get("x-test-id")
	}

	ctx := reqcontext.Begin(c.Request().Context(), uuid.New(), h.svc.ProviderName())
	outcome, err := h.svc.Generate(ctx, in)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrGenerationFailed(err))
	}

	return HandleSuccess(h.logger, c, notesdto.GenerateResponse{
		OK:        outcome.OK,
		Result:    outcome.Result,
		Source:    outcome.Source,
		Reason:    outcome.Reason,
		Message:   outcome.Message,
		RawOutput: outcome.RawOutput,
	})
}

// Detect guesses the transcript language
// @Summary      Detect transcript language
// @Description  Classifies a transcript as English, French, or mixed using a word-frequency heuristic
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Param        request  body      notesdto.DetectRequest  true  "Transcript to classify"
// @Success      200      {object}  map[string]interface{}  "Detected language and ratios"
// @Failure      400      {object}  map[string]interface{}  "Missing transcript"
// @Router       /notes/detect [post]
func (h *Notes) Detect(c echo.Context) error {
	var req notesdto.DetectRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if strings.TrimSpace(req.Transcript) == "" {
		return HandleError(h.logger, c, errors.ErrMissingTranscript())
	}

	result := detect.Detect(req.Transcript)
	return HandleSuccess(h.logger, c, notesdto.DetectResponse{
		Language:   string(result.Language),
		Confidence: result.Confidence,
		FrRatio:    result.FrRatio,
		EnRatio:    result.EnRatio,
	})
}

// resolveOutputLanguage maps the requested output language to en or fr.
// "auto" and empty run detection; a mixed transcript defaults to
// English like an unrecognizable one.
func resolveOutputLanguage(req notesdto.GenerateRequest) entities.Language {
	switch req.OutputLanguage {
	case "fr":
		return entities.LanguageFR
	case "en":
		return entities.LanguageEN
	}
	if detect.Detect(req.Transcript).Language == detect.LanguageFR {
		return entities.LanguageFR
	}
	return entities.LanguageEN
}
