// Command triviascot runs the trivia bot on a slack workspace
package main

import (
	"fmt"
	"github.com/alexandre-normand/triviascot"
	"github.com/alexandre-normand/triviascot/config"
	"github.com/alexandre-normand/triviascot/plugins"
	"github.com/alexandre-normand/triviascot/store"
	"github.com/alexandre-normand/triviascot/store/datastoredb"
	"github.com/alexandre-normand/triviascot/store/inmemorydb"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/api/option"
	"os"
)

const (
	name = "triviascot"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var (
	configPath string
	debug      bool
	envPath    string
)

var rootCmd = &cobra.Command{
	Use:           name,
	Short:         "A slack bot asking trivia questions",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadConfig(configPath, envPath)
		if err != nil {
			return err
		}

		if debug {
			v.Set(config.DebugKey, true)
		}

		logger, err := newLogger(v.GetBool(config.DebugKey))
		if err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		defer logger.Sync()

		return run(v, logger)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file (yaml, json or toml)")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&envPath, "env", ".env", "Path to a .env file to load environment variables from")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		os.Exit(1)
	}
}

// loadConfig loads the configuration file at configPath, if any, on top of the defaults. The slack token
// can also come from the TOKEN or SLACK_TOKEN environment variables, which can be set in the .env file at envPath
func loadConfig(configPath string, envPath string) (v *viper.Viper, err error) {
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "failed to load environment from [%s]", envPath)
	}

	v = config.NewViperWithDefaults()
	if err := v.BindEnv(config.TokenKey, "TOKEN", "SLACK_TOKEN"); err != nil {
		return nil, err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read configuration from [%s]", configPath)
		}
	}

	if v.GetString(config.TokenKey) == "" {
		return nil, fmt.Errorf("Missing slack token: set [%s] in the configuration or the TOKEN environment variable", config.TokenKey)
	}

	return v, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	c := zap.NewProductionConfig()
	c.Encoding = "console"
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		c.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return c.Build()
}

// newChannelJoinStorer returns the storer of channels the bot greeted. It's backed by Cloud Datastore when a
// gcloud project is configured and by leveldb otherwise, with an in-memory cache in front of either
func newChannelJoinStorer(v *viper.Viper) (storer store.StringStorer, err error) {
	var backend store.StringStorer

	if projectID := v.GetString(config.GCloudProjectIDKey); projectID != "" {
		opts := make([]option.ClientOption, 0)
		if credentialsFile := v.GetString(config.GCloudCredentialsFileKey); credentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(credentialsFile))
		}

		if backend, err = datastoredb.New(channelJoinsStoreName, projectID, opts...); err != nil {
			return nil, err
		}
	} else {
		if backend, err = store.NewLevelDB(channelJoinsStoreName, v.GetString(config.StoragePathKey)); err != nil {
			return nil, err
		}
	}

	cached, err := inmemorydb.New(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return cached, nil
}

const channelJoinsStoreName = "channelJoins"

func run(v *viper.Viper, logger *zap.Logger) (err error) {
	channelJoins, err := newChannelJoinStorer(v)
	if err != nil {
		return err
	}

	bot, err := triviascot.NewBot(name, v,
		triviascot.OptionLog(logger),
		triviascot.OptionMeter(otel.GetMeterProvider().Meter(name)),
		triviascot.OptionChannelJoinStorer(channelJoins)).
		WithCloser(channelJoins).
		WithConfigurablePluginErr(plugins.TriviaPluginName, func(c *config.PluginConfig) (*triviascot.Plugin, error) {
			t, err := plugins.NewTrivia(c, plugins.OptionTriviaMeter(otel.GetMeterProvider().Meter(name)))
			if err != nil {
				return nil, err
			}

			return &t.Plugin, nil
		}).
		Build()
	if err != nil {
		channelJoins.Close()
		return err
	}
	defer bot.Close()

	logger.Info("Starting", zap.String("version", version))
	return bot.Run()
}
