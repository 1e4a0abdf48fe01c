// Package intent classifies messages addressed to the bot into one of a closed set of intents by
// matching them against phrase tables checked in a fixed priority order
package intent

import (
	"fmt"
	"github.com/alexandre-normand/triviascot"
	"github.com/pkg/errors"
	"strings"
)

// Intent is what a message addressed to the bot asks for
type Intent int

// Intents
const (
	// Unmatched is any addressed message matching none of the phrase tables. When a question is
	// awaiting a guess, it's the guess
	Unmatched Intent = iota
	Greeting
	Capability
	StopRequest
	PoliteRequest
	Identity
	SkepticalQuery
	NewQuestion
	Help
	GiveUpOrAnswerQuery
)

var intentNames = map[Intent]string{
	Unmatched:           "unmatched",
	Greeting:            "greeting",
	Capability:          "capability",
	StopRequest:         "stopRequest",
	PoliteRequest:       "politeRequest",
	Identity:            "identity",
	SkepticalQuery:      "skepticalQuery",
	NewQuestion:         "newQuestion",
	Help:                "help",
	GiveUpOrAnswerQuery: "giveUpOrAnswerQuery",
}

// String returns the name of the intent
func (i Intent) String() string {
	if n, ok := intentNames[i]; ok {
		return n
	}

	return fmt.Sprintf("intent(%d)", int(i))
}

// ErrUnaddressed is returned when classifying a message that wasn't addressed to the bot. Those messages
// must be ignored entirely
var ErrUnaddressed = errors.New("message isn't addressed to the bot")

type matchKind int

const (
	// containsMatch matches a phrase found anywhere in the text, including inside a word
	containsMatch matchKind = iota
	// exactMatch matches text that is exactly the phrase
	exactMatch
)

// Phrase is a phrase to look for along with how to match it
type Phrase struct {
	Text string
	kind matchKind
}

// Contains returns phrases matched when found anywhere in the text
func Contains(texts ...string) (phrases []Phrase) {
	for _, t := range texts {
		phrases = append(phrases, Phrase{Text: t, kind: containsMatch})
	}

	return phrases
}

// Exact returns phrases matched only when they're the whole text
func Exact(texts ...string) (phrases []Phrase) {
	for _, t := range texts {
		phrases = append(phrases, Phrase{Text: t, kind: exactMatch})
	}

	return phrases
}

// Rule associates an intent with the phrases expressing it
type Rule struct {
	Intent  Intent
	Phrases []Phrase
}

// DefaultRules are the phrase tables in priority order. Matching is case-sensitive
var DefaultRules = []Rule{
	{Greeting, Contains("hello", "hi", "greetings", "watsup", "hey")},
	{Capability, Contains("what can you do", "what do you do")},
	{StopRequest, Contains("stop", "shut up", "be quiet")},
	{PoliteRequest, Contains("please", "thanks", "thank you")},
	{Identity, Contains("who are you", "what are you")},
	{SkepticalQuery, Contains("really?", "are you sure", "seriously")},
	{NewQuestion, Contains("trivia", "new question", "next question", "next")},
	{Help, Contains("help")},
	{GiveUpOrAnswerQuery, Contains("I give up", "I dont know", "I don't know", "answer", "what is it", "who is it", "what was it?", "who was it?")},
}

type matcher func(text string) bool

type compiledRule struct {
	intent   Intent
	matchers []matcher
}

// Classifier maps message text to an intent. It holds no mutable state and is safe for concurrent use
type Classifier struct {
	rules []compiledRule
}

// NewClassifier returns a classifier for the DefaultRules
func NewClassifier() (c *Classifier) {
	return NewClassifierWithRules(DefaultRules)
}

// NewClassifierWithRules returns a classifier checking the given rules in order
func NewClassifierWithRules(rules []Rule) (c *Classifier) {
	c = new(Classifier)
	c.rules = make([]compiledRule, 0, len(rules))

	for _, r := range rules {
		cr := compiledRule{intent: r.Intent}
		for _, p := range r.Phrases {
			cr.matchers = append(cr.matchers, newMatcher(p))
		}

		c.rules = append(c.rules, cr)
	}

	return c
}

// newMatcher returns the matcher function for a phrase
func newMatcher(p Phrase) matcher {
	if p.kind == exactMatch {
		return func(text string) bool {
			return text == p.Text
		}
	}

	return func(text string) bool {
		return strings.Contains(text, p.Text)
	}
}

// Classify returns the intent of the text of a message received in the given mention context. The first
// rule with a matching phrase wins and Unmatched is returned if none matches. Messages that aren't addressed to
// the bot get ErrUnaddressed
func (c *Classifier) Classify(text string, mc triviascot.MentionContext) (i Intent, err error) {
	if !mc.Addressed() {
		return Unmatched, ErrUnaddressed
	}

	for _, r := range c.rules {
		for _, match := range r.matchers {
			if match(text) {
				return r.intent, nil
			}
		}
	}

	return Unmatched, nil
}
