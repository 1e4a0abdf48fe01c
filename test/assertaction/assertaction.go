// Package assertaction provides testing functions to validate the behavior of a single plugin action
package assertaction

import (
	"github.com/alexandre-normand/triviascot"
	"github.com/stretchr/testify/assert"
	"testing"
)

// AnswerValidator does further validation of an action's answer. It returns true when validation
// succeeds, following the testify convention
type AnswerValidator func(t *testing.T, a *triviascot.Answer) bool

// MatchesAndAnswers asserts that the action matches the message and hands its answer to validateAnswer
func MatchesAndAnswers(t *testing.T, action triviascot.ActionDefinition, m *triviascot.IncomingMessage, validateAnswer AnswerValidator) bool {
	if !assert.Truef(t, action.Match(m), "Message [%s] expected to match but action.Match returned false", m.NormalizedText) {
		return false
	}

	return validateAnswer(t, action.Answer(m))
}

// MatchesSilently asserts that the action matches the message but has nothing to say about it
func MatchesSilently(t *testing.T, action triviascot.ActionDefinition, m *triviascot.IncomingMessage) bool {
	if !assert.Truef(t, action.Match(m), "Message [%s] expected to match but action.Match returned false", m.NormalizedText) {
		return false
	}

	return assert.Nilf(t, action.Answer(m), "Message [%s] expected to get no answer", m.NormalizedText)
}

// NotMatch asserts that the action does not match the message
func NotMatch(t *testing.T, action triviascot.ActionDefinition, m *triviascot.IncomingMessage) bool {
	return assert.Falsef(t, action.Match(m), "Message [%s] should not be a match but action.Match returned true", m.NormalizedText)
}
