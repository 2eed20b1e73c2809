package debounce

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is a declarative form of the debounce options, suitable for loading
// from YAML:
//
//	wait: 100ms
//	leading: true
//	trailing: false
//	maxWait: 500
//
// Durations are either Go duration strings or plain numbers of milliseconds.
type Config struct {
	Wait     Duration  `yaml:"wait"`
	Leading  bool      `yaml:"leading"`
	Trailing *bool     `yaml:"trailing"`
	MaxWait  *Duration `yaml:"maxWait"`
}

// ParseConfig decodes a YAML document into a Config. Only malformed YAML is
// an error; unusable duration values decode as zero.
func ParseConfig(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("debounce: parse config: %w", err)
	}

	return c, nil
}

// WaitDuration returns the configured wait as a time.Duration.
func (c *Config) WaitDuration() time.Duration {
	if c == nil {
		return 0
	}

	return time.Duration(c.Wait)
}

// Options converts c into options for NewDebouncer. Unset fields keep their
// defaults.
func (c *Config) Options() []Option {
	if c == nil {
		return nil
	}

	opts := []Option{WithLeading(c.Leading)}
	if c.Trailing != nil {
		opts = append(opts, WithTrailing(*c.Trailing))
	}
	if c.MaxWait != nil {
		opts = append(opts, WithMaxWait(time.Duration(*c.MaxWait)))
	}

	return opts
}

// Duration is a time.Duration that decodes leniently from YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler. Numbers are milliseconds,
// strings may also be Go durations such as "1.5s". Anything else decodes as
// zero.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	*d = 0

	if value.Kind != yaml.ScalarNode {
		return nil
	}

	s := strings.TrimSpace(value.Value)
	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		*d = Duration(millis(ms))

		return nil
	}

	if dur, err := time.ParseDuration(s); err == nil {
		*d = Duration(dur)
	}

	return nil
}

func millis(ms float64) time.Duration {
	switch ns := ms * float64(time.Millisecond); {
	case math.IsNaN(ns):
		return 0
	case ns >= math.MaxInt64:
		return math.MaxInt64
	case ns <= math.MinInt64:
		return math.MinInt64
	default:
		return time.Duration(ns)
	}
}
