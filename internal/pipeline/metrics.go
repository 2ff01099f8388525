package pipeline

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/generative-ai-on-aws/summarize-me/internal/pipeline"

type metrics struct {
	duration metric.Float64Histogram
	failures metric.Int64Counter
}

func newMetrics() *metrics {
	meter := otel.Meter(meterName)
	duration, _ := meter.Float64Histogram("pipeline.stage.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Wall time of each pipeline stage"))
	failures, _ := meter.Int64Counter("pipeline.stage.failures",
		metric.WithDescription("Failed pipeline stages"))
	return &metrics{duration: duration, failures: failures}
}

func (m *metrics) record(ctx context.Context, stage Stage, start time.Time, err error) {
	attrs := metric.WithAttributes(attribute.String("stage", string(stage)))
	m.duration.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		m.failures.Add(ctx, 1, attrs)
	}
}
