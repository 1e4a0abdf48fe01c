package triviascot

import (
	"context"
	"fmt"
	"github.com/alexandre-normand/triviascot/config"
	"github.com/alexandre-normand/triviascot/store"
	lru "github.com/hashicorp/golang-lru"
	"github.com/slack-go/slack"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"io"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"
)

const (
	defaultAnswererID   = "default"
	channelJoinGreeting = "I'm here!"
)

// Triviascot represents what defines a trivia bot (mostly, a name and its plugins)
type Triviascot struct {
	name          string
	config        *viper.Viper
	defaultAction Answerer
	plugins       []*Plugin
	closers       []io.Closer

	// Identifiers of messages already processed, to drop redelivered events
	processedMsgs *lru.ARCCache

	// Records channels already greeted on join
	channelJoinStorer store.StringStorer

	// Internal state as an optimization when looping through all commands/hearActions
	commandsWithID    []ActionDefinitionWithID
	hearActionsWithID []ActionDefinitionWithID

	self atomic.Pointer[selfIdentity]
	now  func() time.Time

	zapLogger *zap.Logger
	log       *sLogger
	meter     metric.Meter
	*instrumenter
}

// selfIdentity holds "our" identity as known once connected
type selfIdentity struct {
	id                  string
	name                string
	userPrefix          string
	directMentionRegexp *regexp.Regexp
}

// Plugin represents a plugin (its name and action definitions)
type Plugin struct {
	Name        string
	Commands    []ActionDefinition
	HearActions []ActionDefinition

	// EmojiReactor is the service to add emoji reactions to messages. It's injected by triviascot
	// before the plugin receives any message
	EmojiReactor EmojiReactor

	// Logger is injected by triviascot before the plugin receives any message
	Logger SLogger
}

// ActionDefinition represents how an action is triggered, published, used and described
// along with defining the function defining its behavior
type ActionDefinition struct {
	// Indicates whether the action should be omitted from the help message
	Hidden bool

	// Matcher that will determine whether or not the action should be triggered
	Match Matcher

	// Usage example
	Usage string

	// Help description for the action
	Description string

	// Function to execute if the Matcher matches
	Answer Answerer
}

// Matcher is the function that determines whether or not an action should be triggered. Note that a match doesn't guarantee that the action should
// actually respond with anything once invoked
type Matcher func(m *IncomingMessage) bool

// Answerer is what gets executed when an ActionDefinition is triggered. To signal the absence of an answer, an action
// should return nil
type Answerer func(m *IncomingMessage) *Answer

// ActionDefinitionWithID holds an action definition along with its identifier string
type ActionDefinitionWithID struct {
	ActionDefinition
	id         string
	pluginName string
}

// String returns a friendly description of an ActionDefinition
func (a ActionDefinition) String() string {
	return fmt.Sprintf("`%s` - %s", a.Usage, a.Description)
}

// SlackMessageID holds the elements that form a unique message identifier for slack. Technically, slack also uses
// the workspace id as the first part of that unique identifier but since an instance of triviascot only lives within
// a single workspace, that part is left out
type SlackMessageID struct {
	channelID string
	timestamp string
}

// String returns a friendly representation of the message id
func (id SlackMessageID) String() string {
	return fmt.Sprintf("%s/%s", id.channelID, id.timestamp)
}

// OutgoingMessage holds a plugin generated answer along with where it goes and the action it comes from
type OutgoingMessage struct {
	*Answer

	channelID string

	// Timestamp of the triggering message
	timestamp string

	// Timestamp of the thread the triggering message is in, if any
	threadTimestamp string

	// The identifier of the source of the outgoing message. The format being: pluginName.c[commandIndex] (for a command) or pluginName.h[actionIndex] (for an hear action)
	pluginIdentifier string
}

// runDependencies holds the services used while running. They are provided by Run with the live slack
// implementations or set up by tests
type runDependencies struct {
	chatDriver     messageSender
	selfInfoFinder selfInfoFinder
	emojiReactor   EmojiReactor
}

// Option defines an option for a Triviascot
type Option func(*Triviascot)

// OptionLog sets a logger for triviascot
func OptionLog(logger *zap.Logger) func(*Triviascot) {
	return func(s *Triviascot) {
		s.zapLogger = logger
	}
}

// OptionLogfile sets a logfile for triviascot to log to
func OptionLogfile(logfile *os.File) func(*Triviascot) {
	return func(s *Triviascot) {
		s.zapLogger = newLogger(zapcore.AddSync(logfile), s.config.GetBool(config.DebugKey))
	}
}

// OptionMeter sets the open telemetry meter to record metrics with. Defaults to a meter
// from the global meter provider
func OptionMeter(meter metric.Meter) func(*Triviascot) {
	return func(s *Triviascot) {
		s.meter = meter
	}
}

// OptionChannelJoinStorer sets the storer used to remember channels where triviascot already
// greeted everyone when joining. Without it, triviascot greets on every join
func OptionChannelJoinStorer(storer store.StringStorer) func(*Triviascot) {
	return func(s *Triviascot) {
		s.channelJoinStorer = storer
	}
}

// OptionClock sets the function returning the current time. Mostly useful for testing
func OptionClock(now func() time.Time) func(*Triviascot) {
	return func(s *Triviascot) {
		s.now = now
	}
}

// New creates a new triviascot from a name, a configuration and options
func New(name string, v *viper.Viper, options ...Option) (s *Triviascot, err error) {
	s = new(Triviascot)
	s.name = name
	s.config = config.LayerConfigWithDefaults(v)
	s.plugins = []*Plugin{}
	s.closers = make([]io.Closer, 0)
	s.now = time.Now
	// Only sent when no command matches. A plugin with a command matching every addressed message,
	// like the trivia plugin, leaves it unused
	s.defaultAction = func(m *IncomingMessage) *Answer {
		return &Answer{Text: "I don't understand, ask me for \"trivia\" to get a question"}
	}

	s.processedMsgs, err = lru.NewARC(s.config.GetInt(config.ProcessedMessageCacheSizeKey))
	if err != nil {
		return nil, err
	}

	for _, opt := range options {
		opt(s)
	}

	if s.zapLogger == nil {
		s.zapLogger = newLogger(zapcore.Lock(os.Stdout), s.config.GetBool(config.DebugKey))
	}
	s.log = NewSLogger(s.zapLogger.Named(name), s.config.GetBool(config.DebugKey))

	if s.meter == nil {
		s.meter = otel.GetMeterProvider().Meter(name)
	}

	if s.instrumenter, err = newInstrumenter(name, s.meter); err != nil {
		return nil, err
	}

	return s, nil
}

// newLogger returns a console zap logger writing to w at info level or debug level if debug is enabled
func newLogger(w zapcore.WriteSyncer, debug bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), w, level), zap.AddCaller())
}

// RegisterPlugin registers a plugin with the triviascot engine. This should be invoked
// prior to calling Run
func (s *Triviascot) RegisterPlugin(p *Plugin) {
	s.plugins = append(s.plugins, p)
}

// Close closes all closers of this triviascot. The first error that occurred during a Close is returned
// but regardless, all closers are attempted to be closed
func (s *Triviascot) Close() (err error) {
	for _, c := range s.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}

	return err
}

// Run starts the triviascot and loops until the process is interrupted or the slack credentials are rejected
func (s *Triviascot) Run() (err error) {
	api := slack.New(
		s.config.GetString(config.TokenKey),
		slack.OptionDebug(s.config.GetBool(config.DebugKey)),
		slack.OptionLog(zap.NewStdLog(s.zapLogger.Named("slack"))),
	)

	emojiReactor, err := NewEmojiReactorWithTelemetry(api, s.name, s.meter)
	if err != nil {
		return err
	}

	rtm := api.NewRTM()
	go rtm.ManageConnection()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = s.runInternal(ctx, rtm.IncomingEvents, &runDependencies{chatDriver: api, selfInfoFinder: rtm, emojiReactor: emojiReactor})

	if derr := rtm.Disconnect(); derr != nil {
		s.log.Debugf("Error disconnecting: %v", derr)
	}

	return err
}

// runInternal processes events until the context is done, the events channel is closed or an unrecoverable
// event is received. All routed messages are fully processed by the time it returns
func (s *Triviascot) runInternal(ctx context.Context, events <-chan slack.RTMEvent, deps *runDependencies) (err error) {
	s.attachIdentifiersToPluginActions()
	s.injectServices(deps)

	router, err := newPartitionRouter(s.config.GetInt(config.MessageProcessingPartitionCount), s.config.GetInt(config.MessageProcessingBufferedMessageCount), s.log, s.instrumenter)
	if err != nil {
		return err
	}

	router.start(func(msgEvent slack.MessageEvent) {
		s.processMessageEvent(deps.chatDriver, msgEvent)
	})
	defer router.stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Debugf("Termination requested: %v", ctx.Err())
			return nil

		case msg, ok := <-events:
			if !ok {
				return nil
			}

			if err := s.processEvent(msg, deps, router); err != nil {
				return err
			}
		}
	}
}

// processEvent handles one slack event. An error is returned only for events that should terminate processing
func (s *Triviascot) processEvent(msg slack.RTMEvent, deps *runDependencies, router *partitionRouter) (err error) {
	switch e := msg.Data.(type) {
	case *slack.ConnectedEvent:
		s.log.Printf("Connected (connection counter: %d)", e.ConnectionCount)
		s.cacheSelfIdentity(deps.selfInfoFinder)

	case *slack.MessageEvent:
		s.coreMetrics.msgsSeen.Add(context.Background(), 1, s.nameAttrs)
		router.routeMessageEvent(*e)

	case *slack.MemberJoinedChannelEvent:
		s.processChannelJoin(deps.chatDriver, e.User, e.Channel)

	case *slack.ChannelJoinedEvent:
		if self := s.self.Load(); self != nil {
			s.processChannelJoin(deps.chatDriver, self.id, e.Channel.ID)
		}

	case *slack.LatencyReport:
		s.log.Debugf("Current latency: %v", e.Value)

	case *slack.RTMError:
		s.log.Printf("Error: %s", e.Error())

	case *slack.InvalidAuthEvent:
		return fmt.Errorf("Invalid credentials")
	}

	return nil
}

// attachIdentifiersToPluginActions attaches an action identifier to every plugin action and sets them accordingly
// in the internal state of triviascot
// The identifiers are generated the following way:
//   - pluginName.c[pluginIndexOfTheCommand] for commands
//   - pluginName.h[pluginIndexOfTheHearAction] for hear actions
func (s *Triviascot) attachIdentifiersToPluginActions() {
	s.commandsWithID = make([]ActionDefinitionWithID, 0)
	s.hearActionsWithID = make([]ActionDefinitionWithID, 0)

	for _, p := range s.plugins {
		for i, c := range p.Commands {
			s.commandsWithID = append(s.commandsWithID, ActionDefinitionWithID{ActionDefinition: c, id: fmt.Sprintf("%s.c[%d]", p.Name, i), pluginName: p.Name})
		}

		for i, h := range p.HearActions {
			s.hearActionsWithID = append(s.hearActionsWithID, ActionDefinitionWithID{ActionDefinition: h, id: fmt.Sprintf("%s.h[%d]", p.Name, i), pluginName: p.Name})
		}
	}
}

// injectServices sets the services made available to plugins
func (s *Triviascot) injectServices(deps *runDependencies) {
	for _, p := range s.plugins {
		p.EmojiReactor = deps.emojiReactor
		p.Logger = NewSLogger(s.zapLogger.Named(p.Name), s.config.GetBool(config.DebugKey))
	}
}

// cacheSelfIdentity gets "our" identity and keeps it to avoid having to look it up for every message
func (s *Triviascot) cacheSelfIdentity(finder selfInfoFinder) {
	info := finder.GetInfo()
	if info == nil || info.User == nil {
		s.log.Printf("No self identity available, messages can't be matched to mentions yet")
		return
	}

	s.self.Store(newSelfIdentity(info.User.ID, info.User.Name))
	s.log.Debugf("Caching self id [%s] and self name [%s]", info.User.ID, info.User.Name)
}

func newSelfIdentity(id string, name string) (si *selfIdentity) {
	si = new(selfIdentity)
	si.id = id
	si.name = name
	si.userPrefix = fmt.Sprintf("<@%s>", id)
	si.directMentionRegexp = regexp.MustCompile(fmt.Sprintf("(?s)^(%s|@?%s):?\\s+(.+)", regexp.QuoteMeta(si.userPrefix), regexp.QuoteMeta(name)))

	return si
}

// processChannelJoin greets a channel when "we" are the user joining it. When a channel join storer is set,
// a channel is only greeted the first time
func (s *Triviascot) processChannelJoin(sender messageSender, userID string, channelID string) {
	self := s.self.Load()
	if self == nil || userID != self.id {
		return
	}

	if s.channelJoinStorer != nil {
		if joinedAt, err := s.channelJoinStorer.GetString(channelID); err == nil {
			s.log.Debugf("Already greeted channel [%s] on [%s], skipping", channelID, joinedAt)
			return
		}
	}

	if _, _, _, err := sender.SendMessage(channelID, slack.MsgOptionText(channelJoinGreeting, false)); err != nil {
		s.log.Printf("Unable to greet channel [%s]: %v", channelID, err)
		return
	}
	s.coreMetrics.msgsProcessed.Add(context.Background(), 1, s.msgTypeAttrs(joinMsgType))

	if s.channelJoinStorer != nil {
		if err := s.channelJoinStorer.PutString(channelID, s.now().UTC().Format(time.RFC3339)); err != nil {
			s.log.Printf("Unable to record join of channel [%s]: %v", channelID, err)
		}
	}
}

// processMessageEvent handles high-level processing of all slack message events. Only new messages from users
// get routed to plugins: acknowledgements, edits, deletions, bot messages, stale and already processed messages are dropped
func (s *Triviascot) processMessageEvent(sender messageSender, msgEvent slack.MessageEvent) {
	// reply_to is an field set to 1 sent by slack when a sent message has been acknowledged and should be considered
	// officially sent to others. Therefore, we ignore all of those since it's mostly for clients/UI to show status
	isReply := msgEvent.ReplyTo > 0

	s.log.Debugf("Processing event : %v", msgEvent)

	if isReply || msgEvent.Type != "message" || msgEvent.SubType != "" {
		s.log.Debugf("Ignoring message event of type [%s] and subtype [%s]", msgEvent.Type, msgEvent.SubType)
		s.coreMetrics.msgsProcessed.Add(context.Background(), 1, s.msgTypeAttrs(ignoredMsgType))
		return
	}

	msgID := SlackMessageID{channelID: msgEvent.Channel, timestamp: msgEvent.Timestamp}

	if s.isStale(msgEvent.Timestamp) {
		s.log.Debugf("Ignoring message [%s] older than [%s]", msgID, s.config.GetDuration(config.MaxAgeHandledMessages))
		s.coreMetrics.msgsProcessed.Add(context.Background(), 1, s.msgTypeAttrs(ignoredMsgType))
		return
	}

	if s.processedMsgs.Contains(msgID) {
		s.log.Debugf("Ignoring already processed message [%s]", msgID)
		s.coreMetrics.msgsProcessed.Add(context.Background(), 1, s.msgTypeAttrs(ignoredMsgType))
		return
	}
	s.processedMsgs.Add(msgID, true)

	d := measure(func() {
		outMsgs := s.routeMessage(&msgEvent.Msg)
		s.sendOutgoingMessages(sender, msgID, outMsgs)
	})

	s.coreMetrics.msgsProcessed.Add(context.Background(), 1, s.msgTypeAttrs(newMsgType))
	s.coreMetrics.msgProcessingLatencyMillis.Record(context.Background(), d.Milliseconds(), s.msgTypeAttrs(newMsgType))
}

// isStale returns true if the message timestamp is older than the maximum age of handled messages. Timestamps
// that can't be parsed are never considered stale
func (s *Triviascot) isStale(timestamp string) bool {
	ts, err := parseSlackTimestamp(timestamp)
	if err != nil {
		s.log.Debugf("Unable to parse message timestamp [%s]: %v", timestamp, err)
		return false
	}

	return s.now().Sub(ts) > s.config.GetDuration(config.MaxAgeHandledMessages)
}

// parseSlackTimestamp parses a slack timestamp (i.e. 1546833210.036900) to a time.Time
func parseSlackTimestamp(timestamp string) (t time.Time, err error) {
	seconds, err := strconv.ParseFloat(timestamp, 64)
	if err != nil {
		return time.Time{}, err
	}

	return time.Unix(0, int64(seconds*float64(time.Second))), nil
}

// sendOutgoingMessages sends out any triggered plugin answers
func (s *Triviascot) sendOutgoingMessages(sender messageSender, incomingMessageID SlackMessageID, outMsgs []*OutgoingMessage) {
	for _, o := range outMsgs {
		if err := s.sendNewMessage(sender, o); err != nil {
			s.log.Printf("Unable to send new message triggered by [%s] from [%s]: %v", incomingMessageID, o.pluginIdentifier, err)
		}
	}
}

// sendNewMessage sends a new outgoing message applying the configured reply behavior and any answer options
func (s *Triviascot) sendNewMessage(sender messageSender, o *OutgoingMessage) (err error) {
	sendOpts := ApplyAnswerOpts(o.Options...)
	options := []slack.MsgOption{slack.MsgOptionText(o.Text, false)}

	threaded := s.config.GetBool(config.ThreadedRepliesKey) || o.threadTimestamp != ""
	if v, ok := sendOpts[ThreadedReplyOpt]; ok {
		threaded = v == "true"
	}

	if threaded {
		threadTS := o.threadTimestamp
		if threadTS == "" {
			threadTS = o.timestamp
		}

		if v, ok := sendOpts[ThreadTimestamp]; ok {
			threadTS = v
		}

		options = append(options, slack.MsgOptionTS(threadTS))

		broadcast := s.config.GetBool(config.BroadcastThreadedRepliesKey)
		if v, ok := sendOpts[BroadcastOpt]; ok {
			broadcast = v == "true"
		}

		if broadcast {
			options = append(options, slack.MsgOptionBroadcast())
		}
	}

	_, _, _, err = sender.SendMessage(o.channelID, options...)
	return err
}

// routeMessage handles routing the message to commands or hear actions according to its mention context
// The rules are the following:
//  1. If the message is a direct message to us, we route to commands
//  2. If the message is on a channel with a mention of us (<@id> or name), we route to commands
//  3. If the message is on a channel without mention (regular conversation), we route to hear actions
func (s *Triviascot) routeMessage(m *slack.Msg) (responses []*OutgoingMessage) {
	self := s.self.Load()

	// Ignore messages sent by "us"
	if self != nil && (m.User == self.id || m.BotID == self.id) {
		s.log.Debugf("Ignoring message from user [%s] because that's \"us\" [%s]", m.User, self.id)

		return []*OutgoingMessage{}
	}

	inMsg := newIncomingMessage(m, self)

	if inMsg.MentionContext.Addressed() {
		return s.handleCommand(inMsg)
	}

	outMsgs, _ := s.handleMessage(s.hearActionsWithID, inMsg)
	return outMsgs
}

// newIncomingMessage creates an IncomingMessage with its mention context and normalized text
func newIncomingMessage(m *slack.Msg, self *selfIdentity) (inMsg *IncomingMessage) {
	inMsg = &IncomingMessage{NormalizedText: m.Text, MentionContext: Ambient, Msg: *m}

	var matches []string
	if self != nil {
		matches = self.directMentionRegexp.FindStringSubmatch(m.Text)
		if len(matches) == 3 {
			inMsg.NormalizedText = matches[2]
		}
	}

	switch {
	case strings.HasPrefix(m.Channel, "D"):
		inMsg.MentionContext = DirectMessage
	case len(matches) == 3:
		inMsg.MentionContext = DirectMention
	case self != nil && strings.Contains(m.Text, self.userPrefix):
		inMsg.MentionContext = Mention
	}

	return inMsg
}

// handleCommand handles a command by trying a match with all known actions. If no action matches, the default action is invoked
func (s *Triviascot) handleCommand(m *IncomingMessage) (outMsgs []*OutgoingMessage) {
	outMsgs, matched := s.handleMessage(s.commandsWithID, m)
	if !matched {
		if answer := s.defaultAction(m); answer != nil {
			return []*OutgoingMessage{newOutgoingMessage(answer, m, defaultAnswererID)}
		}
	}

	return outMsgs
}

// handleMessage loops over all action definitions and invokes its action if the incoming message matches it.
// Note that more than one action can be triggered during the processing of a single message
func (s *Triviascot) handleMessage(actions []ActionDefinitionWithID, m *IncomingMessage) (outMsgs []*OutgoingMessage, matched bool) {
	outMsgs = make([]*OutgoingMessage, 0)

	for _, action := range actions {
		if !action.Match(m) {
			continue
		}

		matched = true

		var answer *Answer
		d := measure(func() {
			answer = action.Answer(m)
		})
		s.coreMetrics.pluginProcessingTimeMillis.Record(context.Background(), d.Milliseconds(), s.pluginAttrs(action.pluginName))

		if answer != nil {
			s.coreMetrics.pluginAnswerCount.Add(context.Background(), 1, s.pluginAttrs(action.pluginName))
			outMsgs = append(outMsgs, newOutgoingMessage(answer, m, action.id))
		}
	}

	return outMsgs, matched
}

// newOutgoingMessage creates an OutgoingMessage answering m on its channel (and thread, if m is in one)
func newOutgoingMessage(answer *Answer, m *IncomingMessage, pluginIdentifier string) *OutgoingMessage {
	return &OutgoingMessage{Answer: answer, channelID: m.Channel, timestamp: m.Timestamp, threadTimestamp: m.ThreadTimestamp, pluginIdentifier: pluginIdentifier}
}
