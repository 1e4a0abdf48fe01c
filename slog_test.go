package triviascot

import (
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"testing"
)

func TestLogWhenDebugEnabled(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	l := NewSLogger(zap.New(core), true)
	l.Debugf("Writing a log statement for my little %s", "red bird")

	if assert.Equal(t, 1, logs.Len()) {
		entry := logs.All()[0]
		assert.Equal(t, zapcore.DebugLevel, entry.Level)
		assert.Equal(t, "Writing a log statement for my little red bird", entry.Message)
	}
}

func TestLogWhenDebugDisabled(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	l := NewSLogger(zap.New(core), false)
	l.Debugf("Writing a log statement for my little %s", "red bird")

	// Nothing should have been logged
	assert.Equal(t, 0, logs.Len())
}

func TestPrintfAlwaysLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	l := NewSLogger(zap.New(core), false)
	l.Printf("Connected as [%s]", "triviabot")

	if assert.Equal(t, 1, logs.Len()) {
		entry := logs.All()[0]
		assert.Equal(t, zapcore.InfoLevel, entry.Level)
		assert.Equal(t, "Connected as [triviabot]", entry.Message)
	}
}
