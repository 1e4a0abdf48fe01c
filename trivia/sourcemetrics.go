package trivia

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// SourceWithTelemetry implements Source with FetchRandomQuestion wrapped with open telemetry
// call, error and timing metrics
type SourceWithTelemetry struct {
	base              Source
	attrs             metric.MeasurementOption
	callCounter       metric.Int64Counter
	errCounter        metric.Int64Counter
	processingTimeHst metric.Int64Histogram
}

// NewSourceWithTelemetry returns an instance of the Source decorated with open telemetry timing and count metrics
func NewSourceWithTelemetry(base Source, name string, meter metric.Meter) (s *SourceWithTelemetry, err error) {
	s = &SourceWithTelemetry{base: base, attrs: metric.WithAttributes(attribute.String("name", name))}

	if s.callCounter, err = meter.Int64Counter("triviaSource_FetchRandomQuestion_Calls"); err != nil {
		return nil, err
	}

	if s.errCounter, err = meter.Int64Counter("triviaSource_FetchRandomQuestion_Errors"); err != nil {
		return nil, err
	}

	if s.processingTimeHst, err = meter.Int64Histogram("triviaSource_FetchRandomQuestion_ProcessingTimeMillis", metric.WithUnit("ms")); err != nil {
		return nil, err
	}

	return s, nil
}

// FetchRandomQuestion implements Source
func (d *SourceWithTelemetry) FetchRandomQuestion(ctx context.Context) (q Question, err error) {
	since := time.Now()
	defer func() {
		if err != nil {
			kind := "unknown"
			var fe *FetchError
			if errors.As(err, &fe) {
				kind = fe.Kind.String()
			}

			d.errCounter.Add(ctx, 1, d.attrs, metric.WithAttributes(attribute.String("kind", kind)))
		}

		d.callCounter.Add(ctx, 1, d.attrs)
		d.processingTimeHst.Record(ctx, time.Since(since).Milliseconds(), d.attrs)
	}()

	return d.base.FetchRandomQuestion(ctx)
}
