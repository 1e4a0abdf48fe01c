package config_test

import (
	"github.com/alexandre-normand/triviascot/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestNewWithDefault(t *testing.T) {
	v := config.NewViperWithDefaults()

	assert.Equal(t, false, v.GetBool(config.DebugKey), "%s should be %t", config.DebugKey, false)
	assert.Equal(t, 5000, v.GetInt(config.ProcessedMessageCacheSizeKey), "%s should be %d", config.ProcessedMessageCacheSizeKey, 5000)
	assert.Equal(t, false, v.GetBool(config.ThreadedRepliesKey), "%s should be %t", config.ThreadedRepliesKey, false)
	assert.Equal(t, false, v.GetBool(config.BroadcastThreadedRepliesKey), "%s should be %t", config.BroadcastThreadedRepliesKey, false)
	assert.Equal(t, time.Duration(24)*time.Hour, v.GetDuration(config.MaxAgeHandledMessages), "%s should be %s", config.MaxAgeHandledMessages, time.Duration(24)*time.Hour)
	assert.Equal(t, 1, v.GetInt(config.MessageProcessingPartitionCount), "%s should be %d", config.MessageProcessingPartitionCount, 1)
	assert.Equal(t, 10, v.GetInt(config.MessageProcessingBufferedMessageCount), "%s should be %d", config.MessageProcessingBufferedMessageCount, 10)
	assert.Equal(t, "~/.triviascot", v.GetString(config.StoragePathKey))
	assert.Equal(t, "", v.GetString(config.GCloudProjectIDKey))
}

func TestLayerConfigWithDefaults(t *testing.T) {
	v := viper.New()

	defaults := config.NewViperWithDefaults()
	for _, key := range defaults.AllKeys() {
		assert.Nil(t, v.Get(key))
	}

	v = config.LayerConfigWithDefaults(v)
	for _, key := range defaults.AllKeys() {
		assert.Equal(t, defaults.Get(key), v.Get(key), "%s should be %v", key, defaults.Get(key))
	}
}

func TestLayeredConfigWithDefaultsAndOverrides(t *testing.T) {
	v := viper.New()
	v.Set(config.MessageProcessingPartitionCount, 4)
	v.Set(config.MessageProcessingBufferedMessageCount, 20)

	v = config.LayerConfigWithDefaults(v)

	assert.Equal(t, 4, v.GetInt(config.MessageProcessingPartitionCount), "%s should be %v", config.MessageProcessingPartitionCount, 4)
	assert.Equal(t, 20, v.GetInt(config.MessageProcessingBufferedMessageCount), "%s should be %v", config.MessageProcessingBufferedMessageCount, 20)
	assert.Equal(t, 5000, v.GetInt(config.ProcessedMessageCacheSizeKey))
}

func TestGetPluginConfig(t *testing.T) {
	v := viper.New()
	configValues := map[string]interface{}{
		"endpoint": "http://localhost:8080/api/random",
		"subFeature": map[string]string{
			"name":  "John",
			"email": "test@golang.org",
		},
	}
	v.Set(config.PluginsKey, map[string]interface{}{
		"pluginName": configValues,
	})

	pc, err := config.GetPluginConfig(v, "pluginName")

	assert.Nil(t, err)
	if assert.NotNil(t, pc) {
		assert.Equal(t, "http://localhost:8080/api/random", pc.GetString("endpoint"))
		assert.Equal(t, configValues["subFeature"], pc.GetStringMapString("subFeature"))
	}
}

func TestGetPluginConfigWithMissingConfig(t *testing.T) {
	v := viper.New()

	_, err := config.GetPluginConfig(v, "pluginName")

	if assert.NotNil(t, err) {
		assert.Contains(t, err.Error(), "Missing plugin configuration for plugin [pluginName]")
	}
}

func TestGetPluginConfigOrEmptyWithMissingConfig(t *testing.T) {
	v := viper.New()

	pc, err := config.GetPluginConfigOrEmpty(v, "pluginName")

	assert.NoError(t, err)
	if assert.NotNil(t, pc) {
		assert.Empty(t, pc.AllKeys())
	}
}

func TestGetPluginConfigOrEmptyWithValidConfig(t *testing.T) {
	v := viper.New()
	v.Set("plugins.pluginName", map[string]interface{}{"endpoint": "http://localhost:8080/api/random"})

	pc, err := config.GetPluginConfigOrEmpty(v, "pluginName")

	assert.NoError(t, err)
	if assert.NotNil(t, pc) {
		assert.Equal(t, "http://localhost:8080/api/random", pc.GetString("endpoint"))
	}
}

func TestGetPluginConfigOrEmptyWithScalarConfig(t *testing.T) {
	v := viper.New()
	v.Set("plugins.pluginName", "http://localhost:8080/api/random")

	pc, err := config.GetPluginConfigOrEmpty(v, "pluginName")

	assert.Nil(t, pc)
	assert.EqualError(t, err, "Invalid plugin configuration for plugin [pluginName], expected a map of values")
}
