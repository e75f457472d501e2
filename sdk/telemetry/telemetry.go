// Package telemetry provides support for tagging requests with a trace id.
package telemetry

import (
	"context"

	"github.com/google/uuid"
)

type telKey int

const (
	traceIDKey telKey = iota + 1
)

// NoTrace is reported when a context carries no trace id.
const NoTrace = "00000000-0000-0000-0000-000000000000"

type Telemetry struct{}

// NewTelemetry creates a new telemetry instance.
func NewTelemetry() Telemetry {
	return Telemetry{}
}

// SetTraceID stores a fresh random trace id in the context.
func (t Telemetry) SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceIDKey, uuid.NewString())
}

// GetTraceID returns the trace id stored by SetTraceID.
func (t Telemetry) GetTraceID(ctx context.Context) string {
	v, ok := ctx.Value(traceIDKey).(string)
	if !ok {
		return NoTrace
	}

	return v
}
