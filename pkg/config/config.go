// Package config is for app wide settings that are unmarshalled
// from Viper (see: /pkg/cli)
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/andrew-torda/seqperplex/pkg/perplex"
)

// EnvPrefix starts the names of environment variables that override
// settings, so chart.width is PERPLEX_CHART_WIDTH.
const EnvPrefix = "PERPLEX"

// ChartConfig is the size and format of plots. Format is only used
// when a plot file name does not end in .png or .svg. The web page
// always draws png.
type ChartConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Format string `mapstructure:"format"`
}

// ServeConfig is for the web front end
type ServeConfig struct {
	// address to listen on, empty for all interfaces
	Addr string `mapstructure:"addr"`

	Port int `mapstructure:"port"`

	// name shown in page titles
	Site string `mapstructure:"site"`

	// how long to wait for requests to finish on shutdown
	Shutdown time.Duration `mapstructure:"shutdown"`
}

// RandSeqConfig is for generating sample sequences
type RandSeqConfig struct {
	NSeq     int     `mapstructure:"nseq"`
	Len      int     `mapstructure:"len"`
	Seed     int64   `mapstructure:"seed"`
	Conserve float64 `mapstructure:"conserve"`
}

// Config is the root-level settings struct and is a mix
// of settings available in a config file, the environment and
// those available from the command line
type Config struct {
	// name of the analysis kind, short or full
	Kind string `mapstructure:"kind"`

	// work over the length of the first sequence, rather than fail
	// when lengths differ
	Truncate bool `mapstructure:"truncate"`

	// fold sequences to upper case before counting
	Upper bool `mapstructure:"upper"`

	Chart   ChartConfig   `mapstructure:"chart"`
	Serve   ServeConfig   `mapstructure:"serve"`
	RandSeq RandSeqConfig `mapstructure:"randseq"`
}

// SetDefaults gives every key a value, which also lets viper find the
// environment variables for them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("kind", perplex.Conditional.Short())
	v.SetDefault("truncate", false)
	v.SetDefault("upper", false)
	v.SetDefault("chart.width", perplex.DefaultWidth)
	v.SetDefault("chart.height", perplex.DefaultHeight)
	v.SetDefault("chart.format", "png")
	v.SetDefault("serve.addr", "")
	v.SetDefault("serve.port", 9019)
	v.SetDefault("serve.site", "Positional Perplexity")
	v.SetDefault("serve.shutdown", 5*time.Second)
	v.SetDefault("randseq.nseq", 6)
	v.SetDefault("randseq.len", 40)
	v.SetDefault("randseq.seed", 1)
	v.SetDefault("randseq.conserve", 0.5)
}

// New returns a Config populated by Viper from defaults, the
// environment and, if cfgFile is not empty, a config file.
// Flags bound to v beforehand win over all of these.
func New(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := c.Check(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Check looks for values we cannot use.
func (c *Config) Check() error {
	if _, err := perplex.ParseKind(c.Kind); err != nil {
		return err
	}
	if _, err := perplex.ChartFormat(c.Chart.Format); err != nil {
		return err
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart size %dx%d is not positive", c.Chart.Width, c.Chart.Height)
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Serve.Port)
	}
	return nil
}

// KindValue returns the configured kind. Check has already accepted it.
func (c *Config) KindValue() perplex.Kind {
	k, _ := perplex.ParseKind(c.Kind)
	return k
}

// Policy returns the length policy asked for.
func (c *Config) Policy() perplex.Policy {
	if c.Truncate {
		return perplex.Truncate
	}
	return perplex.Strict
}

// ChartOpts converts the chart settings.
func (c *Config) ChartOpts() perplex.ChartOpts {
	return perplex.ChartOpts{Width: c.Chart.Width, Height: c.Chart.Height, Format: c.Chart.Format}
}
