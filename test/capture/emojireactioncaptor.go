// Package capture provides captors of the services triviascot injects in plugins so that tests
// can validate what plugins do with them
package capture

import (
	"fmt"
	"github.com/slack-go/slack"
	"sync"
)

// EmojiReactionCaptor captures emoji reactions recorded by
// invocations of AddReaction. It only supports recording
// emojis for one given channel and timestamp
type EmojiReactionCaptor struct {
	sync.Mutex
	Channel   string
	Timestamp string
	Emojis    []string
}

// NewEmojiReactionCaptor returns a new EmojiReactionCaptor with an initialized emojis array
func NewEmojiReactionCaptor() (emojiReactionCaptor *EmojiReactionCaptor) {
	emojiReactionCaptor = new(EmojiReactionCaptor)
	emojiReactionCaptor.Emojis = make([]string, 0)

	return emojiReactionCaptor
}

// AddReaction records the emoji reaction. Reactions to a message other than the first one reacted to are rejected
func (e *EmojiReactionCaptor) AddReaction(name string, item slack.ItemRef) error {
	e.Lock()
	defer e.Unlock()

	if e.Channel == "" {
		e.Channel = item.Channel
		e.Timestamp = item.Timestamp
	} else if e.Channel != item.Channel || e.Timestamp != item.Timestamp {
		return fmt.Errorf("EmojiReactionCaptor doesn't support capturing emojis for more than one message")
	}

	e.Emojis = append(e.Emojis, name)

	return nil
}
