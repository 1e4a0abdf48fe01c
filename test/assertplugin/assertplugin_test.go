package assertplugin_test

import (
	"github.com/alexandre-normand/triviascot"
	"github.com/alexandre-normand/triviascot/actions"
	"github.com/alexandre-normand/triviascot/plugin"
	"github.com/alexandre-normand/triviascot/test/assertanswer"
	"github.com/alexandre-normand/triviascot/test/assertplugin"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"strings"
	"testing"
)

// newQuizTester returns a plugin asking a single question, reacting to guesses and chiming in on
// ambient conversations about quizzes
func newQuizTester() (p *triviascot.Plugin) {
	asked := false

	p = plugin.New("quizTester").
		WithCommand(actions.NewCommand().
			WithMatcher(func(m *triviascot.IncomingMessage) bool {
				return m.NormalizedText == "quiz me"
			}).
			WithAnswerer(func(m *triviascot.IncomingMessage) *triviascot.Answer {
				p.Logger.Debugf("asking a question")
				asked = true
				return &triviascot.Answer{Text: "Question: Capital of France"}
			}).
			Build()).
		WithCommand(actions.NewCommand().
			WithMatcher(func(m *triviascot.IncomingMessage) bool {
				return asked && m.NormalizedText != "quiz me"
			}).
			WithAnswerer(func(m *triviascot.IncomingMessage) *triviascot.Answer {
				if m.NormalizedText == "Paris" {
					p.EmojiReactor.AddReaction("thumbsup", slack.NewRefToMessage(m.Channel, m.Timestamp))
					return &triviascot.Answer{Text: "Correct"}
				}

				p.EmojiReactor.AddReaction("thumbsdown", slack.NewRefToMessage(m.Channel, m.Timestamp))
				return nil
			}).
			Build()).
		WithHearAction(actions.NewHearAction().
			Hidden().
			WithMatcher(func(m *triviascot.IncomingMessage) bool {
				return strings.Contains(m.NormalizedText, "quiz")
			}).
			WithAnswerer(func(m *triviascot.IncomingMessage) *triviascot.Answer {
				return &triviascot.Answer{Text: "Did someone say quiz?"}
			}).
			Build()).
		Build()

	return p
}

func TestCommandResultNonValid(t *testing.T) {
	mockT := new(testing.T)
	assertplugin := assertplugin.New("bot")

	assert.Equal(t, false, assertplugin.AnswersAndReacts(mockT, newQuizTester(), &slack.Msg{Channel: "CHGENERAL", Text: "<@bot> quiz me"}, func(t *testing.T, answers []*triviascot.Answer, emojis []string) bool {
		return assert.Len(t, answers, 10)
	}))
}

func TestCommandResultValid(t *testing.T) {
	assertplugin := assertplugin.New("bot")

	assert.Equal(t, true, assertplugin.AnswersAndReacts(t, newQuizTester(), &slack.Msg{Channel: "CHGENERAL", Text: "<@bot> quiz me"}, func(t *testing.T, answers []*triviascot.Answer, emojis []string) bool {
		return assert.Len(t, answers, 1) && assertanswer.HasText(t, answers[0], "Question: Capital of France")
	}))
}

func TestCommandWithBotName(t *testing.T) {
	assertplugin := assertplugin.New("U123", assertplugin.OptionBotName("quizzy"))

	assert.Equal(t, true, assertplugin.AnswersAndReacts(t, newQuizTester(), &slack.Msg{Channel: "CHGENERAL", Text: "quizzy: quiz me"}, func(t *testing.T, answers []*triviascot.Answer, emojis []string) bool {
		return assert.Len(t, answers, 1) && assertanswer.HasText(t, answers[0], "Question: Capital of France")
	}))
}

func TestDirectCommandResultValid(t *testing.T) {
	assertplugin := assertplugin.New("bot")

	assert.Equal(t, true, assertplugin.AnswersAndReacts(t, newQuizTester(), &slack.Msg{Channel: "DTOTHEBOT", Text: "quiz me"}, func(t *testing.T, answers []*triviascot.Answer, emojis []string) bool {
		return assert.Len(t, answers, 1) && assertanswer.HasText(t, answers[0], "Question: Capital of France")
	}))
}

func TestHearResultValid(t *testing.T) {
	assertplugin := assertplugin.New("bot")

	assert.Equal(t, true, assertplugin.AnswersAndReacts(t, newQuizTester(), &slack.Msg{Channel: "CHGENERAL", Text: "anyone up for a quiz?"}, func(t *testing.T, answers []*triviascot.Answer, emojis []string) bool {
		return assert.Len(t, answers, 1) && assertanswer.HasText(t, answers[0], "Did someone say quiz?")
	}))
}

func TestLoggerAttached(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	assertplugin := assertplugin.New("bot", assertplugin.OptionLog(zap.New(core)))

	assert.Equal(t, true, assertplugin.AnswersAndReacts(t, newQuizTester(), &slack.Msg{Channel: "DTOTHEBOT", Text: "quiz me"}, func(t *testing.T, answers []*triviascot.Answer, emojis []string) bool {
		return assert.Len(t, answers, 1) && assert.Equal(t, 1, logs.FilterMessage("asking a question").Len())
	}))
}

func TestConversationKeepsPluginState(t *testing.T) {
	assertplugin := assertplugin.New("bot")
	p := newQuizTester()

	assert.Equal(t, true, assertplugin.AnswersAndReacts(t, p, &slack.Msg{Channel: "DTOTHEBOT", Text: "quiz me"}, func(t *testing.T, answers []*triviascot.Answer, emojis []string) bool {
		return assert.Len(t, answers, 1) && assert.Empty(t, emojis)
	}))

	assert.Equal(t, true, assertplugin.AnswersAndReacts(t, p, &slack.Msg{Channel: "DTOTHEBOT", Text: "Lyon", Timestamp: "1547785950.000100"}, func(t *testing.T, answers []*triviascot.Answer, emojis []string) bool {
		return assert.Empty(t, answers) && assert.Equal(t, []string{"thumbsdown"}, emojis)
	}))

	assert.Equal(t, true, assertplugin.AnswersAndReacts(t, p, &slack.Msg{Channel: "DTOTHEBOT", Text: "Paris", Timestamp: "1547785951.000100"}, func(t *testing.T, answers []*triviascot.Answer, emojis []string) bool {
		return assert.Len(t, answers, 1) && assertanswer.HasText(t, answers[0], "Correct") && assert.Equal(t, []string{"thumbsup"}, emojis)
	}))
}
