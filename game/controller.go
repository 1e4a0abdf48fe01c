// Package game drives the trivia game: the Controller turns an intent into a state transition on a
// session.Session and an Outcome that Format renders as the text and reaction to send back.
package game

import (
	"context"
	"github.com/alexandre-normand/triviascot/intent"
	"github.com/alexandre-normand/triviascot/session"
	"github.com/alexandre-normand/triviascot/trivia"
	"math/rand"
	"sync"
	"time"
)

// DefaultFillers are the phrases picked from when there's nothing to answer
var DefaultFillers = []string{"what? ಠ_ಠ", "wat?", "wut?", "huh?"}

// Controller runs the game of one session
type Controller struct {
	source  trivia.Source
	session *session.Session
	fillers []string

	randMu sync.Mutex
	rand   *rand.Rand
}

// Option defines an option for a Controller
type Option func(*Controller)

// OptionRand sets the random source used to pick filler phrases
func OptionRand(r *rand.Rand) func(*Controller) {
	return func(c *Controller) {
		c.rand = r
	}
}

// OptionFillers sets the filler phrases
func OptionFillers(fillers ...string) func(*Controller) {
	return func(c *Controller) {
		c.fillers = fillers
	}
}

// NewController returns a Controller fetching questions from source and keeping the game state in s
func NewController(source trivia.Source, s *session.Session, options ...Option) (c *Controller) {
	c = new(Controller)
	c.source = source
	c.session = s
	c.fillers = DefaultFillers
	c.rand = rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, opt := range options {
		opt(c)
	}

	return c
}

// State returns the state of the game
func (c *Controller) State() session.State {
	return c.session.State()
}

// Handle applies the transition for intent i and returns its outcome. text is the message text which is
// the guess when i is intent.Unmatched. Fetch errors don't change the state and are reported in the outcome
func (c *Controller) Handle(ctx context.Context, i intent.Intent, text string) (o Outcome) {
	o.Intent = i

	switch i {
	case intent.NewQuestion:
		// The fetch happens outside of any lock, only arming the session is atomic
		q, err := c.source.FetchRandomQuestion(ctx)
		if err != nil {
			o.Kind = FetchFailed
			o.Err = err
			return o
		}

		c.session.Arm(q)
		o.Kind = Asked
		o.Question = q

	case intent.GiveUpOrAnswerQuery:
		if q, ok := c.session.Reveal(); ok {
			o.Kind = Revealed
			o.Question = q
			return o
		}

		o.Kind = Filled
		o.Filler = c.filler()

	case intent.Unmatched:
		q, awaiting, resolved := c.session.Resolve(func(q trivia.Question) bool {
			return q.Answer == text
		})

		switch {
		case !awaiting:
			o.Kind = Filled
			o.Filler = c.filler()
		case resolved:
			o.Kind = Correct
			o.Question = q
		default:
			o.Kind = Incorrect
			o.Question = q
		}

	default:
		o.Kind = Canned
	}

	return o
}

// filler returns a filler phrase picked uniformly at random
func (c *Controller) filler() string {
	if len(c.fillers) == 0 {
		return ""
	}

	c.randMu.Lock()
	defer c.randMu.Unlock()

	return c.fillers[c.rand.Intn(len(c.fillers))]
}
