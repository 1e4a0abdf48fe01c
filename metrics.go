package triviascot

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"time"
)

const (
	newMsgType     = "new"
	ignoredMsgType = "ignored"
	joinMsgType    = "join"
)

// instrumenter holds data for core instrumentation
type instrumenter struct {
	appName     string
	nameAttrs   metric.MeasurementOption
	coreMetrics coreMetrics
	meter       metric.Meter
}

// coreMetrics holds core triviascot metrics
type coreMetrics struct {
	msgsSeen                   metric.Int64Counter
	msgsProcessed              metric.Int64Counter
	msgProcessingLatencyMillis metric.Int64Histogram
	msgDispatchLatencyMillis   metric.Int64Histogram
	pluginAnswerCount          metric.Int64Counter
	pluginProcessingTimeMillis metric.Int64Histogram
}

// newInstrumenter creates a new core instrumenter
func newInstrumenter(appName string, meter metric.Meter) (ins *instrumenter, err error) {
	ins = new(instrumenter)
	ins.appName = appName
	ins.meter = meter
	ins.nameAttrs = metric.WithAttributes(attribute.String("name", appName))

	if ins.coreMetrics.msgsSeen, err = meter.Int64Counter("msgSeen"); err != nil {
		return nil, err
	}

	if ins.coreMetrics.msgsProcessed, err = meter.Int64Counter("msgProcessed"); err != nil {
		return nil, err
	}

	if ins.coreMetrics.msgProcessingLatencyMillis, err = meter.Int64Histogram("msgProcessingLatencyMillis", metric.WithUnit("ms")); err != nil {
		return nil, err
	}

	if ins.coreMetrics.msgDispatchLatencyMillis, err = meter.Int64Histogram("msgDispatchLatencyMillis", metric.WithUnit("ms")); err != nil {
		return nil, err
	}

	if ins.coreMetrics.pluginAnswerCount, err = meter.Int64Counter("answerCount"); err != nil {
		return nil, err
	}

	if ins.coreMetrics.pluginProcessingTimeMillis, err = meter.Int64Histogram("processingTimeMillis", metric.WithUnit("ms")); err != nil {
		return nil, err
	}

	return ins, nil
}

// msgTypeAttrs returns the measurement attributes for a message type
func (ins *instrumenter) msgTypeAttrs(msgType string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("name", ins.appName), attribute.String("msgType", msgType))
}

// pluginAttrs returns the measurement attributes for a plugin
func (ins *instrumenter) pluginAttrs(pluginName string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("name", ins.appName), attribute.String("plugin", pluginName))
}

type timed func()

// measure returns the execution duration of a timed function
func measure(operation timed) (d time.Duration) {
	before := time.Now()

	operation()

	return time.Since(before)
}
