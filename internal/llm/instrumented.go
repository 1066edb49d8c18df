package llm

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"jobprep/api/internal/metrics"
	"jobprep/api/internal/models"
)

type instrumented struct {
	next   Provider
	tracer trace.Tracer
}

// Instrument wraps p so every call produces a span and completion metrics.
func Instrument(p Provider, tracer trace.Tracer) Provider {
	return &instrumented{next: p, tracer: tracer}
}

func (i *instrumented) GenerateContent(ctx context.Context, prompt string, requestID string) (*models.GenerationResponse, error) {
	name := i.next.GetProviderName()
	ctx, span := i.tracer.Start(ctx, "llm.GenerateContent",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.provider", name),
			attribute.String("llm.request_id", requestID),
			attribute.Int("llm.prompt_chars", len(prompt)),
		))
	defer span.End()

	start := time.Now()
	resp, err := i.next.GenerateContent(ctx, prompt, requestID)
	metrics.ObserveCompletion(name, err, time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return nil, err
	}
	span.SetAttributes(
		attribute.String("llm.model", resp.Metadata.Model),
		attribute.Int("llm.completion_chars", len(resp.Content)),
	)
	return resp, nil
}

func (i *instrumented) GetProviderName() string {
	return i.next.GetProviderName()
}
