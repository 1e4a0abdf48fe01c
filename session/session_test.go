package session_test

import (
	"github.com/alexandre-normand/triviascot/session"
	"github.com/alexandre-normand/triviascot/trivia"
	"github.com/stretchr/testify/assert"
	"sync"
	"testing"
)

var (
	twoPlusTwo = trivia.Question{ID: 1, Question: "2+2?", Answer: "4"}
	capital    = trivia.Question{ID: 2, Question: "Capital of Canada", Answer: "Ottawa"}
)

func TestNewSessionIsIdle(t *testing.T) {
	s := session.New()

	_, ok := s.Current()
	assert.False(t, ok)
	assert.False(t, s.IsGuessing())
	assert.Equal(t, session.Idle, s.State())
}

func TestPushReplacesCurrent(t *testing.T) {
	s := session.New()

	s.Push(twoPlusTwo)
	q, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, twoPlusTwo, q)

	s.Push(capital)
	q, ok = s.Current()
	assert.True(t, ok)
	assert.Equal(t, capital, q)

	// Pushing doesn't arm the session
	assert.False(t, s.IsGuessing())
}

func TestSetGuessing(t *testing.T) {
	s := session.New()

	s.SetGuessing(true)
	assert.True(t, s.IsGuessing())
	assert.Equal(t, session.AwaitingGuess, s.State())

	s.SetGuessing(false)
	assert.False(t, s.IsGuessing())
	assert.Equal(t, session.Idle, s.State())
}

func TestArm(t *testing.T) {
	s := session.New()

	s.Arm(twoPlusTwo)

	q, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, twoPlusTwo, q)
	assert.Equal(t, session.AwaitingGuess, s.State())
}

func TestArmWhileAwaitingAbandonsQuestion(t *testing.T) {
	s := session.New()

	s.Arm(twoPlusTwo)
	s.Arm(capital)

	q, _ := s.Current()
	assert.Equal(t, capital, q)
	assert.Equal(t, session.AwaitingGuess, s.State())
}

func TestRevealWhenIdle(t *testing.T) {
	s := session.New()

	_, ok := s.Reveal()
	assert.False(t, ok)

	s.Push(twoPlusTwo)
	_, ok = s.Reveal()
	assert.False(t, ok)
}

func TestRevealClosesQuestionUntilNextArm(t *testing.T) {
	s := session.New()
	s.Arm(twoPlusTwo)

	q, ok := s.Reveal()
	assert.True(t, ok)
	assert.Equal(t, twoPlusTwo, q)
	assert.Equal(t, session.Idle, s.State())

	// Revealing again does nothing since the question is closed
	_, ok = s.Reveal()
	assert.False(t, ok)
	assert.Equal(t, session.Idle, s.State())

	// The question stays current even once closed
	q, ok = s.Current()
	assert.True(t, ok)
	assert.Equal(t, twoPlusTwo, q)

	s.Arm(capital)
	assert.Equal(t, session.AwaitingGuess, s.State())
}

func TestResolve(t *testing.T) {
	tests := map[string]struct {
		arm              bool
		guess            string
		expectedAwaiting bool
		expectedResolved bool
		expectedState    session.State
	}{
		"IdleSession":  {arm: false, guess: "4", expectedAwaiting: false, expectedResolved: false, expectedState: session.Idle},
		"CorrectGuess": {arm: true, guess: "4", expectedAwaiting: true, expectedResolved: true, expectedState: session.Idle},
		"WrongGuess":   {arm: true, guess: "5", expectedAwaiting: true, expectedResolved: false, expectedState: session.AwaitingGuess},
		"PaddedGuess":  {arm: true, guess: " 4", expectedAwaiting: true, expectedResolved: false, expectedState: session.AwaitingGuess},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			s := session.New()
			if tc.arm {
				s.Arm(twoPlusTwo)
			}

			_, awaiting, resolved := s.Resolve(func(q trivia.Question) bool {
				return q.Answer == tc.guess
			})

			assert.Equal(t, tc.expectedAwaiting, awaiting)
			assert.Equal(t, tc.expectedResolved, resolved)
			assert.Equal(t, tc.expectedState, s.State())
		})
	}
}

func TestConcurrentResolveClosesOnce(t *testing.T) {
	s := session.New()
	s.Arm(twoPlusTwo)

	var wg sync.WaitGroup
	var mu sync.Mutex
	resolvedCount := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if _, _, resolved := s.Resolve(func(q trivia.Question) bool { return q.Answer == "4" }); resolved {
				mu.Lock()
				resolvedCount++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, resolvedCount)
	assert.Equal(t, session.Idle, s.State())
}
