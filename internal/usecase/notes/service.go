package notes

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/note-cleaner/internal/domain/entities"
	"github.com/johnquangdev/note-cleaner/internal/usecase/grounding"
	"github.com/johnquangdev/note-cleaner/pkg/config"
	"github.com/johnquangdev/note-cleaner/pkg/llm"
	"github.com/johnquangdev/note-cleaner/pkg/reqcontext"
)

// Outcome reasons for a request that produced no usable result
const (
	ReasonRefusal         = "refusal"
	ReasonValidationError = "validation_error"
	ReasonServerError     = "server_error"
)

// mockDelay simulates provider latency when no backend is configured
// so clients exercise their loading states.
const mockDelay = 600 * time.Millisecond

// SchemaValidator validates a struct against its validate tags
type SchemaValidator interface {
	Validate(i interface{}) error
}

// reachabilityProbe is implemented by providers that can be health
// checked before spending a generation call on them.
type reachabilityProbe interface {
	Reachable(ctx context.Context) error
}

// repairSkipper is implemented by providers that opt out of the
// repair round-trip.
type repairSkipper interface {
	SkipRepair() bool
}

// GenerateInput is one transcript to turn into meeting notes
type GenerateInput struct {
	Transcript string
	Language   entities.Language
	TestMode   string
	TestID     string
}

// Outcome is the terminal state of one generation request. Exactly one
// of the four shapes applies: OK carries Result and Source, refusal
// and server_error carry Message, validation_error carries RawOutput.
type Outcome struct {
	OK             bool
	Result         *entities.NotesResult
	Source         string
	Reason         string
	Message        string
	RawOutput      string
	ResidualIssues []string
}

// Service runs the generate, validate, sanitize, and repair pipeline
// against the configured provider.
type Service struct {
	provider      llm.Provider
	fallbackOnErr bool
	validate      SchemaValidator
	registry      *TestModeRegistry
	engine        config.EngineConfig
	systemPrompt  string
	logger        *zap.Logger
}

// NewService selects the provider from config and builds the pipeline.
// Selection order: explicit LLM_PROVIDER=ollama, then a configured Groq
// API key, then the deterministic mock source. Only the cloud provider
// falls back to mock output on recoverable call failures; local server
// problems always surface so the user can fix their setup.
func NewService(cfg *config.Config, validate SchemaValidator, registry *TestModeRegistry, logger *zap.Logger) (*Service, error) {
	s := &Service{
		validate: validate,
		registry: registry,
		engine:   cfg.Engine,
		systemPrompt: llm.BuildSystemPrompt(llm.Vocabulary{
			ActionCuesEN: grounding.ActionCuePhrases(entities.LanguageEN),
			ActionCuesFR: grounding.ActionCuePhrases(entities.LanguageFR),
		}),
		logger: logger,
	}

	switch {
	case cfg.LLM.Provider == "ollama":
		s.provider = llm.NewOllamaProvider(cfg.Ollama, logger)
		logger.Info("🦙 Using local Ollama provider", zap.String("base_url", cfg.Ollama.BaseURL), zap.String("model", cfg.Ollama.Model))
	case cfg.Groq.APIKey != "":
		groq, err := llm.NewGroqProvider(cfg.Groq, logger)
		if err != nil {
			return nil, err
		}
		s.provider = groq
		s.fallbackOnErr = true
		logger.Info("🚀 Using Groq cloud provider", zap.String("model", cfg.Groq.Model))
	default:
		logger.Info("📝 No provider configured, serving mock results")
	}

	return s, nil
}

// ProviderName returns the name of the active generation backend
func (s *Service) ProviderName() string {
	if s.provider == nil {
		return "mock"
	}
	return s.provider.Name()
}

// Generate runs the full pipeline for one transcript. Engine-level
// failures (refusal, invalid output, provider trouble) come back as a
// non-OK Outcome rather than an error; the error return is reserved
// for request cancellation.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (*Outcome, error) {
	language := in.Language
	if language != entities.LanguageFR {
		language = entities.LanguageEN
	}

	if s.registry.ShouldForceInvalid(in.TestID, in.TestMode, string(language), in.Transcript) {
		s.logger.Warn("🧪 Test mode forcing invalid payload", zap.String("mode", in.TestMode))
		return &Outcome{Reason: ReasonValidationError, RawOutput: `{"summary":[]}`}, nil
	}

	if s.provider == nil {
		select {
		case <-time.After(mockDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		result := MockResult(language)
		return &Outcome{OK: true, Result: &result, Source: "mock"}, nil
	}

	if probe, ok := s.provider.(reachabilityProbe); ok {
		if err := probe.Reachable(ctx); err != nil {
			s.logger.Warn("⚠️ Provider unreachable", zap.String("provider", s.provider.Name()), zap.Error(err))
			return &Outcome{
				Reason:  ReasonServerError,
				Message: err.Error() + ". Start Ollama (ollama serve) and ensure the model is pulled (ollama pull llama3.2).",
			}, nil
		}
	}

	raw, err := s.provider.Generate(ctx, s.systemPrompt, llm.BuildUserMessage(in.Transcript, string(language)))
	if err != nil {
		return s.outcomeForProviderError(err, language)
	}

	index := grounding.BuildIndex(in.Transcript)

	candidate, failure := s.buildCandidate(raw, in.Transcript, language, index)
	if failure != nil {
		if s.fallbackOnErr {
			result := MockResult(language)
			s.logger.Warn("⚠️ Invalid provider output, falling back to mock result")
			return &Outcome{OK: true, Result: &result, Source: "mock"}, nil
		}
		return failure, nil
	}

	issues := collectIssues(candidate, in.Transcript, index)

	if len(issues) > 0 && !s.skipRepair() {
		candidate, issues = s.attemptRepair(ctx, in.Transcript, language, index, candidate, issues)
	}

	if len(issues) > 0 {
		if !s.engine.AcceptResidualIssues {
			rawOut, _ := json.MarshalIndent(candidate, "", "  ")
			return &Outcome{Reason: ReasonValidationError, RawOutput: string(rawOut), ResidualIssues: issues}, nil
		}
		if s.engine.DebugGrounding {
			s.logger.Warn("⚠️ Grounding issues remained after repair", zap.Strings("issues", issues))
		}
	}

	requestID, _ := reqcontext.GetRequestID(ctx)
	s.logger.Info("✅ Meeting notes generated",
		zap.String("request_id", requestID.String()),
		zap.String("provider", reqcontext.GetProvider(ctx)),
		zap.String("language", string(language)),
		zap.Int("residual_issues", len(issues)),
		zap.Duration("elapsed", reqcontext.Elapsed(ctx)))

	return &Outcome{OK: true, Result: &candidate, Source: s.provider.Name(), ResidualIssues: issues}, nil
}

func (s *Service) outcomeForProviderError(err error, language entities.Language) (*Outcome, error) {
	if refusal, ok := err.(*llm.RefusalError); ok {
		s.logger.Warn("🚫 Provider refused the transcript")
		return &Outcome{Reason: ReasonRefusal, Message: refusal.Message}, nil
	}

	if s.fallbackOnErr && shouldFallbackToMock(err.Error()) {
		s.logger.Warn("⚠️ Provider call failed, falling back to mock result", zap.Error(err))
		result := MockResult(language)
		return &Outcome{OK: true, Result: &result, Source: "mock"}, nil
	}

	s.logger.Error("❌ Provider call failed", zap.Error(err))
	return &Outcome{Reason: ReasonServerError, Message: err.Error()}, nil
}

// buildCandidate parses, normalizes, schema-validates, and sanitizes
// one raw provider output. A nil failure means candidate is usable.
func (s *Service) buildCandidate(raw, transcript string, language entities.Language, index entities.TranscriptIndex) (entities.NotesResult, *Outcome) {
	parsed, ok := parseStructured(raw)
	if !ok {
		return entities.NotesResult{}, &Outcome{Reason: ReasonValidationError, RawOutput: raw}
	}

	candidate := normalizeCandidate(parsed, language)
	if err := s.validate.Validate(candidate); err != nil {
		rawOut, marshalErr := json.MarshalIndent(parsed, "", "  ")
		if marshalErr != nil {
			rawOut = []byte(raw)
		}
		return entities.NotesResult{}, &Outcome{Reason: ReasonValidationError, RawOutput: string(rawOut)}
	}

	return grounding.Sanitize(candidate, transcript, index), nil
}

func collectIssues(candidate entities.NotesResult, transcript string, index entities.TranscriptIndex) []string {
	issues := grounding.CheckGrounding(candidate, transcript, index)
	return append(issues, grounding.CheckCompleteness(candidate, transcript)...)
}

func (s *Service) skipRepair() bool {
	skipper, ok := s.provider.(repairSkipper)
	return ok && skipper.SkipRepair()
}

// attemptRepair runs the single allowed repair round-trip. A repair
// that errors or produces unusable output keeps the previous candidate
// so one bad second call cannot lose a valid first result.
func (s *Service) attemptRepair(ctx context.Context, transcript string, language entities.Language, index entities.TranscriptIndex, candidate entities.NotesResult, issues []string) (entities.NotesResult, []string) {
	draft, err := json.MarshalIndent(candidate, "", "  ")
	if err != nil {
		return candidate, issues
	}

	ctx = reqcontext.WithRepairAttempt(ctx, 1)
	s.logger.Info("🔧 Attempting repair call", zap.Int("issues", len(issues)))

	raw, err := s.provider.Generate(ctx, s.systemPrompt, llm.BuildRepairMessage(transcript, string(language), string(draft), issues))
	if err != nil {
		s.logger.Warn("⚠️ Repair call failed, keeping previous result", zap.Error(err))
		return candidate, issues
	}

	repaired, failure := s.buildCandidate(raw, transcript, language, index)
	if failure != nil {
		s.logger.Warn("⚠️ Repair output invalid, keeping previous result")
		return candidate, issues
	}

	return repaired, collectIssues(repaired, transcript, index)
}
