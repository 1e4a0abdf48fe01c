// Package session holds the state of the trivia game: the current question and whether a guess
// is awaited for it.
//
// There is one game per Session and callers decide how many sessions exist. The bot runs a single
// Session shared by every channel and user it talks to
package session

import (
	"github.com/alexandre-normand/triviascot/trivia"
	"sync"
)

// State is the state of a game
type State int

// Game states
const (
	Idle State = iota
	AwaitingGuess
)

// String returns the name of the state
func (s State) String() string {
	if s == AwaitingGuess {
		return "awaitingGuess"
	}

	return "idle"
}

// Session holds the current question and the guessing flag. The zero value is an idle session
// without a question. All methods are safe for concurrent use
type Session struct {
	mu       sync.Mutex
	current  *trivia.Question
	guessing bool
}

// New returns a new idle Session
func New() (s *Session) {
	return new(Session)
}

// Push makes q the current question. Previous questions aren't kept
func (s *Session) Push(q trivia.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &q
}

// Current returns the current question and true or a zero question and false if
// no question was ever pushed
func (s *Session) Current() (q trivia.Question, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return trivia.Question{}, false
	}

	return *s.current, true
}

// SetGuessing sets the guessing flag
func (s *Session) SetGuessing(guessing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.guessing = guessing
}

// IsGuessing returns true if a guess is awaited for the current question
func (s *Session) IsGuessing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.guessing
}

// State returns AwaitingGuess when guessing or Idle otherwise
func (s *Session) State() State {
	if s.IsGuessing() {
		return AwaitingGuess
	}

	return Idle
}

// Arm pushes q and sets the guessing flag as one transition. Any unresolved question is abandoned
func (s *Session) Arm(q trivia.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &q
	s.guessing = true
}

// Reveal closes the current question if a guess was awaited and returns it along with true. If
// the session was idle, a zero question and false are returned and nothing changes
func (s *Session) Reveal() (q trivia.Question, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.guessing || s.current == nil {
		return trivia.Question{}, false
	}

	s.guessing = false
	return *s.current, true
}

// Resolve evaluates match against the current question when a guess is awaited. If match returns
// true, the question is closed. awaiting reports whether a guess was awaited at all and resolved whether
// the question got closed by this call
func (s *Session) Resolve(match func(q trivia.Question) bool) (q trivia.Question, awaiting bool, resolved bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.guessing || s.current == nil {
		return trivia.Question{}, false, false
	}

	q = *s.current
	if match(q) {
		s.guessing = false
		return q, true, true
	}

	return q, true, false
}
