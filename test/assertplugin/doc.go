// Package assertplugin provides testing functions to validate a plugin's overall functionality.
// This package is designed to play well but not require the assertanswer package for validation
// of answers
//
// Messages addressed to the bot are evaluated by all commands and other messages by all hear actions.
// This is a simplified version of how triviascot actually drives plugins (no default answer, no filtering
// of messages). Users should take special care to include <@botUserID> with the same botUserID with which the
// plugin driver has been instantiated in the message text inputs to test commands (or include a
// channel name that starts with D for direct channel testing)
//
// Example:
//
//	func TestPlugin(t *testing.T) {
//		assertplugin := assertplugin.New("bot")
//		yourPlugin := newPlugin()
//
//		assertplugin.AnswersAndReacts(t, yourPlugin, &slack.Msg{Channel: "DFAKE", Text: "hello"}, func(t *testing.T, answers []*triviascot.Answer, emojis []string) bool {
//			return assert.Len(t, answers, 1) && assertanswer.HasText(t, answers[0], "Hello!")
//		})
//	}
package assertplugin
