package reqcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type KeyContext string

var (
	keyRequestID     KeyContext = "request_id"
	keyProvider      KeyContext = "provider"
	keyRepairAttempt KeyContext = "repair_attempt"
	keyStartTime     KeyContext = "start_time"
)

// Begin attaches request metadata used across the generation pipeline.
// The request id ties handler, service, and provider log lines to one
// incoming request.
func Begin(parentCtx context.Context, requestID uuid.UUID, provider string) context.Context {
	ctx := context.WithValue(parentCtx, keyRequestID, requestID)
	ctx = context.WithValue(ctx, keyProvider, provider)
	ctx = context.WithValue(ctx, keyRepairAttempt, 0)
	return context.WithValue(ctx, keyStartTime, time.Now())
}

// GetRequestID extracts the request id from context
func GetRequestID(ctx context.Context) (uuid.UUID, bool) {
	requestID, ok := ctx.Value(keyRequestID).(uuid.UUID)
	return requestID, ok
}

// GetProvider extracts the generation backend name from context
func GetProvider(ctx context.Context) string {
	provider, ok := ctx.Value(keyProvider).(string)
	if !ok {
		return "unknown"
	}
	return provider
}

// WithRepairAttempt marks the context as belonging to a repair call
func WithRepairAttempt(ctx context.Context, attempt int) context.Context {
	return context.WithValue(ctx, keyRepairAttempt, attempt)
}

// GetRepairAttempt extracts the repair attempt, 0 for the first call
func GetRepairAttempt(ctx context.Context) int {
	attempt, ok := ctx.Value(keyRepairAttempt).(int)
	if !ok {
		return 0
	}
	return attempt
}

// Elapsed returns time spent since Begin
func Elapsed(ctx context.Context) time.Duration {
	start, ok := ctx.Value(keyStartTime).(time.Time)
	if !ok {
		return 0
	}
	return time.Since(start)
}
