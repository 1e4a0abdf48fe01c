// Package trivia provides the client fetching random trivia questions from a remote trivia API
// along with the types describing those questions and the failures that can happen fetching them
package trivia

import (
	"context"
)

// Question holds a trivia question and its answer as returned by the trivia API
type Question struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Source is implemented by any value that can fetch a random trivia question
type Source interface {
	// FetchRandomQuestion fetches one random question. Failures are always returned as *FetchError
	FetchRandomQuestion(ctx context.Context) (q Question, err error)
}

// isComplete returns true if all of the question's fields are present. A zero id is considered absent
func (q Question) isComplete() bool {
	return q.ID != 0 && q.Question != "" && q.Answer != ""
}
