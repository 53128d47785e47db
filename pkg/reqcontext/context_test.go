package reqcontext

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestBeginRoundTrip(t *testing.T) {
	id := uuid.New()
	ctx := Begin(context.Background(), id, "ollama")

	got, ok := GetRequestID(ctx)
	if !ok || got != id {
		t.Errorf("GetRequestID = %v, %v; want %v, true", got, ok, id)
	}
	if provider := GetProvider(ctx); provider != "ollama" {
		t.Errorf("GetProvider = %q, want ollama", provider)
	}
	if attempt := GetRepairAttempt(ctx); attempt != 0 {
		t.Errorf("GetRepairAttempt = %d, want 0 before any repair", attempt)
	}
	if Elapsed(ctx) < 0 {
		t.Error("Elapsed went backwards")
	}
}

func TestWithRepairAttempt(t *testing.T) {
	ctx := Begin(context.Background(), uuid.New(), "groq")
	ctx = WithRepairAttempt(ctx, 1)

	if attempt := GetRepairAttempt(ctx); attempt != 1 {
		t.Errorf("GetRepairAttempt = %d, want 1", attempt)
	}
}

func TestBareContextDefaults(t *testing.T) {
	ctx := context.Background()

	if _, ok := GetRequestID(ctx); ok {
		t.Error("GetRequestID should miss on a bare context")
	}
	if provider := GetProvider(ctx); provider != "unknown" {
		t.Errorf("GetProvider = %q, want unknown", provider)
	}
	if attempt := GetRepairAttempt(ctx); attempt != 0 {
		t.Errorf("GetRepairAttempt = %d, want 0", attempt)
	}
	if Elapsed(ctx) != 0 {
		t.Error("Elapsed should be 0 without a start time")
	}
}
