/*
Package actions provides a fluent API for creating triviascot plugin actions. Typical usages
will also involve using the plugin fluent API from github.com/alexandre-normand/triviascot/plugin.

A quick example could look like:

	import (
		"github.com/alexandre-normand/triviascot"
		"github.com/alexandre-normand/triviascot/plugin"
		"github.com/alexandre-normand/triviascot/actions"
	)

	func newPlugin() (p *triviascot.Plugin) {
		p = plugin.New("quizmaster").
			WithCommand(actions.NewCommand().
				WithMatcher(func(m *triviascot.IncomingMessage) bool {
					return strings.HasPrefix(m.NormalizedText, "quiz")
				}).
				WithUsage("quiz").
				WithDescription("Ask a question").
				WithAnswerer(func(m *triviascot.IncomingMessage) *triviascot.Answer {
					return &triviascot.Answer{Text: "Question: What's the capital of France?"}
				}).
				Build()).
			Build()

		return p
	}
*/
package actions

import (
	"fmt"
	"github.com/alexandre-normand/triviascot"
)

// ActionBuilder holds the action to build
type ActionBuilder struct {
	action triviascot.ActionDefinition
}

var (
	// Default to always match. Answerers signal the absence of an answer by returning nil so
	// a matcher is only needed when matching can be decided separately from answering
	defaultMatcher = func(m *triviascot.IncomingMessage) bool {
		return true
	}

	// Default to always return nil
	defaultAnswerer = func(m *triviascot.IncomingMessage) *triviascot.Answer {
		return nil
	}
)

// newAction creates a new action and returns the ActionBuilder to set various attributes
// of the action. When done with the setup, the caller is expected to call Build() to get
// the action
func newAction() (ab *ActionBuilder) {
	ab = new(ActionBuilder)
	ab.action = triviascot.ActionDefinition{Hidden: false}

	ab.action.Match = defaultMatcher
	ab.action.Answer = defaultAnswerer

	return ab
}

// NewCommand returns a new ActionBuilder to build a new command
func NewCommand() (ab *ActionBuilder) {
	return newAction()
}

// NewHearAction returns a new ActionBuilder to build a new hear action
func NewHearAction() (ab *ActionBuilder) {
	return newAction()
}

// WithMatcher sets the action's matcher function
func (ab *ActionBuilder) WithMatcher(matcher triviascot.Matcher) *ActionBuilder {
	ab.action.Match = matcher
	return ab
}

// WithUsage sets the action usage
func (ab *ActionBuilder) WithUsage(usage string) *ActionBuilder {
	ab.action.Usage = usage
	return ab
}

// WithDescription sets the action description
func (ab *ActionBuilder) WithDescription(description string) *ActionBuilder {
	ab.action.Description = description
	return ab
}

// WithDescriptionf sets the action description delegating format and arguments to fmt.Sprintf
func (ab *ActionBuilder) WithDescriptionf(format string, a ...interface{}) *ActionBuilder {
	ab.action.Description = fmt.Sprintf(format, a...)
	return ab
}

// WithAnswerer sets the action's answerer function
func (ab *ActionBuilder) WithAnswerer(answerer triviascot.Answerer) *ActionBuilder {
	ab.action.Answer = answerer
	return ab
}

// Hidden sets the action to hidden
func (ab *ActionBuilder) Hidden() *ActionBuilder {
	ab.action.Hidden = true
	return ab
}

// Build returns the ActionDefinition
func (ab *ActionBuilder) Build() triviascot.ActionDefinition {
	return ab.action
}
