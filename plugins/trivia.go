package plugins

import (
	"context"
	"github.com/alexandre-normand/triviascot"
	"github.com/alexandre-normand/triviascot/actions"
	"github.com/alexandre-normand/triviascot/config"
	"github.com/alexandre-normand/triviascot/game"
	"github.com/alexandre-normand/triviascot/intent"
	"github.com/alexandre-normand/triviascot/plugin"
	"github.com/alexandre-normand/triviascot/session"
	"github.com/alexandre-normand/triviascot/trivia"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"
	"go.opentelemetry.io/otel/metric"
	"math/rand"
)

const (
	// TriviaPluginName holds identifying name for the trivia plugin
	TriviaPluginName = "trivia"
)

// Trivia plugin configuration keys
const (
	EndpointKey           = "endpoint"
	TimeoutKey            = "timeout"
	InsecureSkipVerifyKey = "insecureSkipVerify"
)

// Trivia holds the plugin data for the trivia plugin. The trivia plugin plays one game of trivia with
// everyone talking to the bot: it asks questions on request, judges guesses and reveals answers
type Trivia struct {
	triviascot.Plugin

	classifier *intent.Classifier
	controller *game.Controller
}

// TriviaOption defines an option for the trivia plugin
type TriviaOption func(*triviaSettings)

type triviaSettings struct {
	source trivia.Source
	meter  metric.Meter
	rand   *rand.Rand
}

// OptionTriviaSource sets the source of questions, replacing the http client built from the plugin configuration
func OptionTriviaSource(source trivia.Source) func(*triviaSettings) {
	return func(s *triviaSettings) {
		s.source = source
	}
}

// OptionTriviaMeter sets a meter to record the question source's call, error and latency metrics with
func OptionTriviaMeter(meter metric.Meter) func(*triviaSettings) {
	return func(s *triviaSettings) {
		s.meter = meter
	}
}

// OptionTriviaRand sets the random source used to pick filler phrases
func OptionTriviaRand(r *rand.Rand) func(*triviaSettings) {
	return func(s *triviaSettings) {
		s.rand = r
	}
}

// NewTrivia creates a new instance of the trivia plugin. The question source is configured from
// the plugin configuration's endpoint, timeout and insecureSkipVerify values
func NewTrivia(c *config.PluginConfig, options ...TriviaOption) (t *Trivia, err error) {
	settings := new(triviaSettings)
	for _, opt := range options {
		opt(settings)
	}

	source := settings.source
	if source == nil {
		source = newTriviaClient(c)
	}

	if settings.meter != nil {
		if source, err = trivia.NewSourceWithTelemetry(source, TriviaPluginName, settings.meter); err != nil {
			return nil, errors.Wrap(err, "failed to create trivia source metrics")
		}
	}

	controllerOpts := make([]game.Option, 0)
	if settings.rand != nil {
		controllerOpts = append(controllerOpts, game.OptionRand(settings.rand))
	}

	t = new(Trivia)
	t.classifier = intent.NewClassifier()
	t.controller = game.NewController(source, session.New(), controllerOpts...)
	t.Plugin = *plugin.New(TriviaPluginName).
		WithCommand(actions.NewCommand().
			WithMatcher(isAddressed).
			WithUsage("trivia").
			WithDescription("Ask a trivia question. Guess its answer by saying it or say `answer` to give up").
			WithAnswerer(t.play).
			Build()).
		Build()

	return t, nil
}

func newTriviaClient(c *config.PluginConfig) *trivia.Client {
	opts := make([]trivia.Option, 0)

	if c.IsSet(EndpointKey) {
		opts = append(opts, trivia.OptionEndpoint(c.GetString(EndpointKey)))
	}

	if c.IsSet(TimeoutKey) {
		opts = append(opts, trivia.OptionTimeout(c.GetDuration(TimeoutKey)))
	}

	opts = append(opts, trivia.OptionInsecureSkipVerify(c.GetBool(InsecureSkipVerifyKey)))

	return trivia.NewClient(opts...)
}

func isAddressed(m *triviascot.IncomingMessage) bool {
	return m.MentionContext.Addressed()
}

// play runs one turn of the game for the message and returns the text answer, if any. The reaction, if any,
// is added to the message directly
func (t *Trivia) play(m *triviascot.IncomingMessage) *triviascot.Answer {
	i, err := t.classifier.Classify(m.NormalizedText, m.MentionContext)
	if err != nil {
		t.Logger.Debugf("Ignoring message [%s]: %v", m.NormalizedText, err)
		return nil
	}

	o := t.controller.Handle(context.Background(), i, m.NormalizedText)
	if o.Kind == game.FetchFailed {
		t.Logger.Printf("Failed to fetch question: %v", o.Err)
	}

	r := game.Format(o)
	if r.Reaction != "" {
		if err := t.EmojiReactor.AddReaction(r.Reaction, slack.NewRefToMessage(m.Channel, m.Timestamp)); err != nil {
			t.Logger.Printf("Failed to add reaction [%s] to message [%s]: %v", r.Reaction, m.Timestamp, err)
		}
	}

	if r.Text == "" {
		return nil
	}

	return &triviascot.Answer{Text: r.Text}
}
