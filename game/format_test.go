package game_test

import (
	"fmt"
	"github.com/alexandre-normand/triviascot/game"
	"github.com/alexandre-normand/triviascot/intent"
	"github.com/alexandre-normand/triviascot/trivia"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := map[string]struct {
		outcome  game.Outcome
		expected game.Response
	}{
		"Asked":          {game.Outcome{Kind: game.Asked, Question: capital}, game.Response{Text: "Question: Capital of France"}},
		"Revealed":       {game.Outcome{Kind: game.Revealed, Question: capital}, game.Response{Text: "The answer is: Paris"}},
		"Correct":        {game.Outcome{Kind: game.Correct, Question: capital}, game.Response{Text: "Correct", Reaction: game.ThumbsUp}},
		"Incorrect":      {game.Outcome{Kind: game.Incorrect, Question: capital}, game.Response{Reaction: game.ThumbsDown}},
		"Filled":         {game.Outcome{Kind: game.Filled, Filler: "wat?"}, game.Response{Text: "wat?"}},
		"NetworkFailure": {game.Outcome{Kind: game.FetchFailed, Err: &trivia.FetchError{Kind: trivia.NetworkFailure}}, game.Response{Text: "Something went wrong (╯°□°）╯"}},
		"CorruptPayload": {game.Outcome{Kind: game.FetchFailed, Err: &trivia.FetchError{Kind: trivia.CorruptPayload}}, game.Response{Text: "Corrupted json data (╯°□°）╯"}},
		"WrappedCorrupt": {game.Outcome{Kind: game.FetchFailed, Err: errors.Wrap(&trivia.FetchError{Kind: trivia.CorruptPayload}, "fetching")}, game.Response{Text: "Corrupted json data (╯°□°）╯"}},
		"UnknownFailure": {game.Outcome{Kind: game.FetchFailed, Err: fmt.Errorf("boom")}, game.Response{Text: "Something went wrong (╯°□°）╯"}},
		"Greeting":       {game.Outcome{Kind: game.Canned, Intent: intent.Greeting}, game.Response{Text: "Hello!"}},
		"Help":           {game.Outcome{Kind: game.Canned, Intent: intent.Help}, game.Response{Text: `For trivia say trivia ¯\_(ツ)_/¯`}},
		"Unknown":        {game.Outcome{}, game.Response{}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, game.Format(tc.outcome))
		})
	}
}

func TestEveryCannedIntentHasReply(t *testing.T) {
	for _, i := range []intent.Intent{intent.Greeting, intent.Help, intent.Capability, intent.StopRequest, intent.PoliteRequest, intent.Identity, intent.SkepticalQuery} {
		r := game.Format(game.Outcome{Kind: game.Canned, Intent: i})

		assert.NotEmpty(t, r.Text, i.String())
		assert.Empty(t, r.Reaction, i.String())
	}
}

func TestFormatIsPure(t *testing.T) {
	o := game.Outcome{Kind: game.Correct, Question: capital}

	assert.Equal(t, game.Format(o), game.Format(o))
}
