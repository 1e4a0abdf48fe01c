package assertplugin

import (
	"github.com/alexandre-normand/triviascot"
	"github.com/alexandre-normand/triviascot/test/capture"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
	"testing"
)

const (
	defaultBotName = "bot"
)

// Asserter represents a plugin driver/asserter and holds the bot identity that tests are using when
// sending test messages for processing
type Asserter struct {
	botUserID string
	botName   string
	logger    *zap.Logger
}

// New creates a new asserter with the given botUserID
// (only include the id without the '@' prefix).
// The botUserID is used in order to detect commands formed with
// <@botUserID>
func New(botUserID string, options ...Option) (a *Asserter) {
	a = new(Asserter)
	a.botUserID = botUserID
	a.botName = defaultBotName
	a.logger = zap.NewNop()

	for _, option := range options {
		option(a)
	}

	return a
}

// Option defines an option for the Asserter
type Option func(*Asserter)

// OptionLog sets a logger for the asserter such that this logger is attached to the plugin when driven by
// the asserter
func OptionLog(logger *zap.Logger) func(*Asserter) {
	return func(a *Asserter) {
		a.logger = logger
	}
}

// OptionBotName sets the bot name used to detect commands formed with <botName>: (defaults to "bot")
func OptionBotName(name string) func(*Asserter) {
	return func(a *Asserter) {
		a.botName = name
	}
}

// ResultValidator is a function to do further validation of the answers and emoji reactions resulting from
// a plugin processing of all of its commands and hear actions. The return value is meant to be true if validation
// is successful and false otherwise (following the testify convention)
type ResultValidator func(t *testing.T, answers []*triviascot.Answer, emojis []string) bool

// AnswersAndReacts drives a plugin and collects Answers as well as emoji reactions. Once all of those have been collected,
// it passes handling to a validator to assert the expected answers and emoji reactions. It follows the style of
// github.com/stretchr/testify/assert as far as returning true/false to indicate success for further nested testing.
//
// Messages get the same mention context triviascot would give them: commands are driven for direct messages
// (channels starting with D) and messages mentioning the bot while hear actions are driven for everything else.
// Plugin state is kept across calls so a sequence of calls with the same plugin plays out a conversation
func (a *Asserter) AnswersAndReacts(t *testing.T, p *triviascot.Plugin, m *slack.Msg, validate ResultValidator) (valid bool) {
	ec := capture.NewEmojiReactionCaptor()
	p.EmojiReactor = ec
	p.Logger = triviascot.NewSLogger(a.logger, true)

	answers := a.driveActions(p, m)

	return validate(t, answers, ec.Emojis)
}

func (a *Asserter) driveActions(p *triviascot.Plugin, m *slack.Msg) (answers []*triviascot.Answer) {
	inMsg := triviascot.NewIncomingMessage(m, a.botUserID, a.botName)

	if inMsg.MentionContext.Addressed() {
		return runActions(p.Commands, inMsg)
	}

	return runActions(p.HearActions, inMsg)
}

func runActions(actions []triviascot.ActionDefinition, m *triviascot.IncomingMessage) (answers []*triviascot.Answer) {
	answers = make([]*triviascot.Answer, 0)

	for _, action := range actions {
		if action.Match(m) {
			a := action.Answer(m)

			if a != nil {
				answers = append(answers, a)
			}
		}
	}

	return answers
}
