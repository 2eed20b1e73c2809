package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli"

	"github.com/romdo/go-debounce/v2"
)

type settings struct {
	wait  time.Duration
	opts  []debounce.Option
	paths []string
	exts  []string
}

// loadSettings reads the optional config file first, then lets flags given
// on the command line override it.
func loadSettings(c *cli.Context) (*settings, error) {
	s := &settings{
		wait:  c.Duration("wait"),
		paths: []string{"."},
	}
	if paths := c.StringSlice("path"); len(paths) > 0 {
		s.paths = paths
	}
	if exts := c.StringSlice("ext"); len(exts) > 0 {
		s.exts = exts
	}

	if file := c.String("config"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		cfg, err := debounce.ParseConfig(data)
		if err != nil {
			return nil, err
		}

		if !c.IsSet("wait") {
			s.wait = cfg.WaitDuration()
		}
		s.opts = append(s.opts, cfg.Options()...)
	}

	if c.IsSet("leading") {
		s.opts = append(s.opts, debounce.WithLeading(c.Bool("leading")))
	}
	if c.IsSet("no-trailing") {
		s.opts = append(s.opts, debounce.WithTrailing(!c.Bool("no-trailing")))
	}
	if c.IsSet("max-wait") {
		s.opts = append(s.opts, debounce.WithMaxWait(c.Duration("max-wait")))
	}

	return s, nil
}
