package triviascot

import (
	"github.com/alexandre-normand/triviascot/config"
	"github.com/spf13/viper"
	"io"
)

// Builder holds a triviascot instance to build
type Builder struct {
	bot *Triviascot
	err error
}

// NewBot returns a new Builder used to set up a new triviascot
func NewBot(name string, v *viper.Viper, options ...Option) (sb *Builder) {
	sb = new(Builder)
	sb.bot, sb.err = New(name, v, options...)

	return sb
}

// WithPlugin adds a plugin to the triviascot instance
func (sb *Builder) WithPlugin(p *Plugin) *Builder {
	return sb.WithPluginErr(p, nil)
}

// WithPluginErr adds a plugin that has a creation function returning (Plugin, error) to the triviascot instance
func (sb *Builder) WithPluginErr(p *Plugin, err error) *Builder {
	return sb.WithPluginCloserErr(nil, p, err)
}

// WithPluginCloserErr adds a plugin that has a creation function returning (io.Closer, Plugin, error) to the triviascot instance.
// The closer is closed when the triviascot instance is closed
func (sb *Builder) WithPluginCloserErr(closer io.Closer, p *Plugin, err error) *Builder {
	if sb.err == nil && err != nil {
		sb.err = err
	}

	if sb.err != nil {
		return sb
	}

	sb.bot.RegisterPlugin(p)

	if closer != nil {
		sb.bot.closers = append(sb.bot.closers, closer)
	}

	return sb
}

// WithConfigurablePluginErr adds a plugin created from its configuration found at plugins.<name>. Plugins without configuration
// get an empty one so that they can run with their defaults. A configuration that isn't a map of values fails the build
func (sb *Builder) WithConfigurablePluginErr(name string, newInstance func(c *config.PluginConfig) (p *Plugin, err error)) *Builder {
	if sb.err != nil {
		return sb
	}

	pc, err := config.GetPluginConfigOrEmpty(sb.bot.config, name)
	if err != nil {
		sb.err = err
		return sb
	}

	return sb.WithPluginErr(newInstance(pc))
}

// WithCloser adds a closer (i.e. a storer used by triviascot) closed along with the triviascot instance
func (sb *Builder) WithCloser(closer io.Closer) *Builder {
	if sb.err == nil && closer != nil {
		sb.bot.closers = append(sb.bot.closers, closer)
	}

	return sb
}

// Build returns the built triviascot instance. If there was an error during
// setup, the error is returned along with a nil triviascot
func (sb *Builder) Build() (s *Triviascot, err error) {
	if sb.err != nil {
		return nil, sb.err
	}

	return sb.bot, nil
}
