package llm

import "context"

// Provider is the contract every text-generation backend satisfies.
// Implementations return the raw assistant text; parsing and validation
// are the caller's job. A refusal and a transport/API failure are
// distinguished through the typed errors below.
type Provider interface {
	// Name tags responses so callers can report which backend produced a result
	Name() string
	// Generate sends one chat completion request and returns the raw text
	Generate(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// RefusalError means the model declined to process the content.
// Never retried; surfaced verbatim to the caller.
type RefusalError struct {
	Message string
}

func (e *RefusalError) Error() string {
	return e.Message
}

// CallError is a provider-level failure: network, timeout, auth,
// truncation, or an empty response.
type CallError struct {
	Message string
}

func (e *CallError) Error() string {
	return e.Message
}
