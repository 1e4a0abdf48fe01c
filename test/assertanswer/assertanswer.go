// Package assertanswer provides testing functions to validate an answer produced by a plugin action
package assertanswer

import (
	"github.com/alexandre-normand/triviascot"
	"github.com/stretchr/testify/assert"
	"testing"
)

// ResolvedAnswerOption holds a Key/Value pair of a send option once an AnswerOption is applied
type ResolvedAnswerOption struct {
	Key   string
	Value string
}

// HasText asserts that the answer's text is exactly the expected text
func HasText(t *testing.T, answer *triviascot.Answer, text string) bool {
	if !assert.NotNil(t, answer, "Expected an answer with text [%s] but got none", text) {
		return false
	}

	return assert.Equalf(t, text, answer.Text, "Answer text expected to be [%s] but was [%s]", text, answer.Text)
}

// HasTextContaining asserts that the answer's text contains the expected subString
func HasTextContaining(t *testing.T, answer *triviascot.Answer, subString string) bool {
	if !assert.NotNil(t, answer, "Expected an answer containing [%s] but got none", subString) {
		return false
	}

	return assert.Containsf(t, answer.Text, subString, "Answer expected to have text containing [%s] but its text [%s] didn't", subString, answer.Text)
}

// IsThreaded asserts that the answer requests a threaded reply
func IsThreaded(t *testing.T, answer *triviascot.Answer) bool {
	if !assert.NotNil(t, answer, "Expected a threaded answer but got none") {
		return false
	}

	sendOpts := triviascot.ApplyAnswerOpts(answer.Options...)
	return assert.Equalf(t, "true", sendOpts[triviascot.ThreadedReplyOpt], "Answer [%s] expected to be threaded but options were %v", answer.Text, sendOpts)
}

// HasOptions asserts that the answer's resolved options are exactly the expected key/values
func HasOptions(t *testing.T, answer *triviascot.Answer, options ...ResolvedAnswerOption) bool {
	if !assert.NotNil(t, answer) {
		return false
	}

	resolved := resolve(triviascot.ApplyAnswerOpts(answer.Options...))
	return assert.ElementsMatchf(t, options, resolved, "Answer options expected %v but were %v", options, resolved)
}

func resolve(sendOpts map[string]string) (resolved []ResolvedAnswerOption) {
	resolved = make([]ResolvedAnswerOption, 0, len(sendOpts))

	for key, value := range sendOpts {
		resolved = append(resolved, ResolvedAnswerOption{Key: key, Value: value})
	}

	return resolved
}
