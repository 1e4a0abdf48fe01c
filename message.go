package triviascot

import (
	"github.com/slack-go/slack"
)

// MentionContext describes how a message relates to the bot
type MentionContext int

// Mention contexts
const (
	// Ambient is a message on a channel that doesn't mention the bot
	Ambient MentionContext = iota
	// DirectMessage is a message sent in a direct conversation with the bot
	DirectMessage
	// DirectMention is a message starting with a mention of the bot (i.e. "@bot trivia")
	DirectMention
	// Mention is a message mentioning the bot anywhere but at its start
	Mention
)

var mentionContextNames = map[MentionContext]string{
	Ambient:       "ambient",
	DirectMessage: "direct_message",
	DirectMention: "direct_mention",
	Mention:       "mention",
}

// String returns the name of the mention context
func (mc MentionContext) String() string {
	if n, ok := mentionContextNames[mc]; ok {
		return n
	}

	return "unknown"
}

// Addressed returns true if the message was addressed to the bot: sent as a direct message or
// mentioning the bot
func (mc MentionContext) Addressed() bool {
	return mc == DirectMessage || mc == DirectMention || mc == Mention
}

// IncomingMessage holds data for an incoming slack message. In addition to a slack.Msg, it also has
// a normalized text that is the original text stripped from the "<@Mention>" prefix when a message
// is addressed to a bot directly and the mention context it was received in
type IncomingMessage struct {
	// The original slack.Msg text stripped from the "<@Mention>" prefix, if applicable
	NormalizedText string

	// How the message relates to the bot
	MentionContext MentionContext

	slack.Msg
}

// NewIncomingMessage returns the IncomingMessage routed to plugins for m when running as the bot user with the
// given id and name. Mostly useful to drive plugins in tests
func NewIncomingMessage(m *slack.Msg, botUserID string, botName string) *IncomingMessage {
	return newIncomingMessage(m, newSelfIdentity(botUserID, botName))
}
