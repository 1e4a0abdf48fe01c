package game

import (
	"fmt"
	"github.com/alexandre-normand/triviascot/intent"
	"github.com/alexandre-normand/triviascot/trivia"
	"github.com/pkg/errors"
)

// Reactions
const (
	ThumbsUp   = "thumbsup"
	ThumbsDown = "thumbsdown"
)

const (
	networkFailureText = "Something went wrong (╯°□°）╯"
	corruptPayloadText = "Corrupted json data (╯°□°）╯"
)

// CannedReplies are the fixed replies to stateless intents
var CannedReplies = map[intent.Intent]string{
	intent.Greeting:       "Hello!",
	intent.Help:           `For trivia say trivia ¯\_(ツ)_/¯`,
	intent.Capability:     "I ask trivia questions. Say trivia to get one and then try to guess the answer",
	intent.StopRequest:    "Fine, I'll be quiet (´･_･`)",
	intent.PoliteRequest:  "You're welcome!",
	intent.Identity:       `I'm a trivia bot. Ask me for trivia ¯\_(ツ)_/¯`,
	intent.SkepticalQuery: "I'm pretty sure ಠ_ಠ",
}

// Response is what gets sent back for an outcome: a text message and/or an emoji reaction on the
// triggering message. Empty values mean nothing is sent
type Response struct {
	Text     string
	Reaction string
}

// Format returns the response for an outcome
func Format(o Outcome) (r Response) {
	switch o.Kind {
	case Asked:
		r.Text = fmt.Sprintf("Question: %s", o.Question.Question)
	case FetchFailed:
		r.Text = failureText(o.Err)
	case Revealed:
		r.Text = fmt.Sprintf("The answer is: %s", o.Question.Answer)
	case Filled:
		r.Text = o.Filler
	case Correct:
		r.Text = "Correct"
		r.Reaction = ThumbsUp
	case Incorrect:
		r.Reaction = ThumbsDown
	case Canned:
		r.Text = CannedReplies[o.Intent]
	}

	return r
}

// failureText returns the message for a fetch failure. Failures of unknown kind are reported as network failures
func failureText(err error) string {
	var fe *trivia.FetchError
	if errors.As(err, &fe) && fe.Kind == trivia.CorruptPayload {
		return corruptPayloadText
	}

	return networkFailureText
}
