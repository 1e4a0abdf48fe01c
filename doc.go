/*
Package triviascot provides a slack bot playing trivia with the people talking to it.

The engine connects to slack over RTM and hands messages to plugins. Messages addressed to the bot
(direct messages, messages starting with a mention of the bot and messages mentioning it) go to plugin
commands while everything else goes to hear actions. The trivia game itself lives in the trivia plugin
(see the plugins package) which classifies what was said, drives the game and formats its reply.

Plugins have access to services injected on startup by triviascot:
 - SLogger: To log debug/info statements
 - EmojiReactor: To emoji react to messages

Messages are processed by a partition router hashed on the channel. With the default of a single partition,
every message is processed to completion before the next one which keeps the game's transitions in order.

Example code (see cmd/triviascot for the complete program):

	v := config.NewViperWithDefaults()
	v.Set(config.TokenKey, token)

	bot, err := triviascot.NewBot("triviascot", v, triviascot.OptionLog(logger)).
		WithConfigurablePluginErr(plugins.TriviaPluginName, func(c *config.PluginConfig) (*triviascot.Plugin, error) {
			t, err := plugins.NewTrivia(c)
			if err != nil {
				return nil, err
			}

			return &t.Plugin, nil
		}).
		Build()
	if err != nil {
		log.Fatal(err)
	}
	defer bot.Close()

	err = bot.Run()
	if err != nil {
		log.Fatal(err)
	}
*/
package triviascot
