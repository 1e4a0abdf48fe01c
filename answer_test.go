package triviascot_test

import (
	"github.com/alexandre-normand/triviascot"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestApplyAnswerOptions(t *testing.T) {
	testCases := []struct {
		name           string
		options        []triviascot.AnswerOption
		expectedConfig map[string]string
	}{
		{"none", []triviascot.AnswerOption{}, make(map[string]string)},
		{"threadedReply", []triviascot.AnswerOption{triviascot.AnswerInThread()}, map[string]string{triviascot.ThreadedReplyOpt: "true"}},
		{"threadedReplyWithBroadcast", []triviascot.AnswerOption{triviascot.AnswerInThreadWithBroadcast()}, map[string]string{triviascot.ThreadedReplyOpt: "true", triviascot.BroadcastOpt: "true"}},
		{"threadedReplyWithoutBroadcast", []triviascot.AnswerOption{triviascot.AnswerInThreadWithoutBroadcast()}, map[string]string{triviascot.ThreadedReplyOpt: "true", triviascot.BroadcastOpt: "false"}},
		{"noThreading", []triviascot.AnswerOption{triviascot.AnswerWithoutThreading()}, map[string]string{triviascot.ThreadedReplyOpt: "false"}},
		{"threadReplyOnExistingThread", []triviascot.AnswerOption{triviascot.AnswerInExistingThread("1000")}, map[string]string{triviascot.ThreadedReplyOpt: "true", triviascot.ThreadTimestamp: "1000"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := triviascot.ApplyAnswerOpts(tc.options...)
			assert.Equal(t, tc.expectedConfig, c)
		})
	}
}
