// Package config provides the configuration keys, defaults and helpers used to set up a triviascot instance
// and its plugins. Configuration is backed by viper so that values can come from a file, the environment or
// be set programmatically
package config

import (
	"fmt"
	"github.com/spf13/viper"
	"time"
)

// Configuration keys
const (
	TokenKey                              = "token"                                         // Slack token, string value
	DebugKey                              = "debug"                                         // Debug mode, boolean value
	MaxAgeHandledMessages                 = "maxAgeHandledMessages"                         // Messages older than this are ignored, duration value
	ProcessedMessageCacheSizeKey          = "processedMessageCacheSize"                     // Number of processed message ids remembered to drop redeliveries, int value
	ThreadedRepliesKey                    = "replyBehavior.threadedReplies"                 // Whether answers are sent as threaded replies, boolean value
	BroadcastThreadedRepliesKey           = "replyBehavior.broadcast"                       // Whether threaded answers are also broadcast to the channel, boolean value
	MessageProcessingPartitionCount       = "advanced.messageProcessingPartitionCount"       // Number of message processing workers (must be a power of two), int value
	MessageProcessingBufferedMessageCount = "advanced.messageProcessingBufferedMessageCount" // Buffered messages per worker, int value
	StoragePathKey                        = "storagePath"                                   // Directory for the leveldb storage, string value
	GCloudProjectIDKey                    = "gcloudProjectID"                               // Enables Cloud Datastore storage when set, string value
	GCloudCredentialsFileKey              = "gcloudCredentialsFile"                         // Path to gcloud credentials for Cloud Datastore, string value
	PluginsKey                            = "plugins"                                       // Root of plugin configurations
)

const (
	defaultMaxAgeHandledMessages                 = time.Duration(24) * time.Hour
	defaultProcessedMessageCacheSize             = 5000
	defaultMessageProcessingPartitionCount       = 1
	defaultMessageProcessingBufferedMessageCount = 10
	defaultStoragePath                           = "~/.triviascot"
)

// PluginConfig is the configuration handed to a plugin. It's a sub-tree of the plugins section
type PluginConfig = viper.Viper

// NewViperWithDefaults returns a new viper instance with all triviascot defaults set
func NewViperWithDefaults() (v *viper.Viper) {
	v = viper.New()
	setDefaults(v)

	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(DebugKey, false)
	v.SetDefault(MaxAgeHandledMessages, defaultMaxAgeHandledMessages)
	v.SetDefault(ProcessedMessageCacheSizeKey, defaultProcessedMessageCacheSize)
	v.SetDefault(ThreadedRepliesKey, false)
	v.SetDefault(BroadcastThreadedRepliesKey, false)
	v.SetDefault(MessageProcessingPartitionCount, defaultMessageProcessingPartitionCount)
	v.SetDefault(MessageProcessingBufferedMessageCount, defaultMessageProcessingBufferedMessageCount)
	v.SetDefault(StoragePathKey, defaultStoragePath)
}

// LayerConfigWithDefaults sets all triviascot defaults on an existing viper instance. Values already set
// on v take precedence over the defaults
func LayerConfigWithDefaults(v *viper.Viper) (lv *viper.Viper) {
	setDefaults(v)

	return v
}

// GetPluginConfig returns the configuration sub-tree of the plugin with the given name. An error
// is returned if the plugin has no configuration
func GetPluginConfig(v *viper.Viper, name string) (pc *PluginConfig, err error) {
	pluginKey := fmt.Sprintf("%s.%s", PluginsKey, name)

	if !v.IsSet(pluginKey) {
		return nil, fmt.Errorf("Missing plugin configuration for plugin [%s]", name)
	}

	pc = v.Sub(pluginKey)
	if pc == nil {
		return nil, fmt.Errorf("Invalid plugin configuration for plugin [%s], expected a map of values", name)
	}

	return pc, nil
}

// GetPluginConfigOrEmpty returns the configuration of the plugin with the given name or an empty
// configuration if none is set. Useful for plugins that have sensible defaults for all of their keys.
// A plugin configuration that is set but isn't a map of values is still an error
func GetPluginConfigOrEmpty(v *viper.Viper, name string) (pc *PluginConfig, err error) {
	if !v.IsSet(fmt.Sprintf("%s.%s", PluginsKey, name)) {
		return viper.New(), nil
	}

	return GetPluginConfig(v, name)
}
