package telemetry

import (
	"context"
	"testing"
)

func TestTracerWithoutSetupIsUsable(t *testing.T) {
	_, span := Tracer("test").Start(context.Background(), "test.span")
	defer span.End()

	if span.SpanContext().IsSampled() {
		t.Error("span should not be sampled before Setup")
	}
}
