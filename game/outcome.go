package game

import (
	"fmt"
	"github.com/alexandre-normand/triviascot/intent"
	"github.com/alexandre-normand/triviascot/trivia"
)

// OutcomeKind is the kind of result of handling an intent
type OutcomeKind int

// Outcome kinds
const (
	// Asked is a new question fetched and awaiting a guess
	Asked OutcomeKind = iota + 1
	// FetchFailed is a new question that couldn't be fetched. The state is unchanged
	FetchFailed
	// Revealed is the answer of the question that was awaiting a guess
	Revealed
	// Filled is a filler phrase when no question awaits a guess
	Filled
	// Correct is a guess matching the answer, closing the question
	Correct
	// Incorrect is a guess not matching the answer
	Incorrect
	// Canned is a fixed reply to a stateless intent
	Canned
)

var outcomeKindNames = map[OutcomeKind]string{
	Asked:       "asked",
	FetchFailed: "fetchFailed",
	Revealed:    "revealed",
	Filled:      "filled",
	Correct:     "correct",
	Incorrect:   "incorrect",
	Canned:      "canned",
}

// String returns the name of the outcome kind
func (k OutcomeKind) String() string {
	if n, ok := outcomeKindNames[k]; ok {
		return n
	}

	return fmt.Sprintf("outcomeKind(%d)", int(k))
}

// Outcome is the result of handling an intent
type Outcome struct {
	Kind   OutcomeKind
	Intent intent.Intent

	// Question is the question asked, revealed or guessed, if any
	Question trivia.Question

	// Filler is the filler phrase for Filled outcomes
	Filler string

	// Err is the fetch error for FetchFailed outcomes
	Err error
}
