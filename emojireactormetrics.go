package triviascot

import (
	"context"
	"time"

	"github.com/slack-go/slack"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// EmojiReactorWithTelemetry implements EmojiReactor interface with all methods wrapped
// with open telemetry metrics
type EmojiReactorWithTelemetry struct {
	base              EmojiReactor
	attrs             metric.MeasurementOption
	callCounter       metric.Int64Counter
	errCounter        metric.Int64Counter
	processingTimeHst metric.Int64Histogram
}

// NewEmojiReactorWithTelemetry returns an instance of the EmojiReactor decorated with open telemetry timing and count metrics
func NewEmojiReactorWithTelemetry(base EmojiReactor, name string, meter metric.Meter) (er *EmojiReactorWithTelemetry, err error) {
	er = &EmojiReactorWithTelemetry{base: base, attrs: metric.WithAttributes(attribute.String("name", name))}

	if er.callCounter, err = meter.Int64Counter("emojiReactor_AddReaction_Calls"); err != nil {
		return nil, err
	}

	if er.errCounter, err = meter.Int64Counter("emojiReactor_AddReaction_Errors"); err != nil {
		return nil, err
	}

	if er.processingTimeHst, err = meter.Int64Histogram("emojiReactor_AddReaction_ProcessingTimeMillis", metric.WithUnit("ms")); err != nil {
		return nil, err
	}

	return er, nil
}

// AddReaction implements EmojiReactor
func (d *EmojiReactorWithTelemetry) AddReaction(name string, item slack.ItemRef) (err error) {
	since := time.Now()
	defer func() {
		ctx := context.Background()
		if err != nil {
			d.errCounter.Add(ctx, 1, d.attrs)
		}

		d.callCounter.Add(ctx, 1, d.attrs)
		d.processingTimeHst.Record(ctx, time.Since(since).Milliseconds(), d.attrs)
	}()

	return d.base.AddReaction(name, item)
}
