// Command debouncewatch runs a command whenever files under the watched
// directories change, collapsing bursts of file events into a single run.
//
//	debouncewatch --wait 300ms --path ./src -- go build ./...
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Error().Err(err).Msg("debouncewatch failed")
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "debouncewatch"
	app.HelpName = "debouncewatch"
	app.Usage = "run a command when files change, at most once per quiet period"
	app.UsageText = "debouncewatch [options] <command> [arguments...]"
	app.Flags = []cli.Flag{
		cli.DurationFlag{
			Name:  "wait, w",
			Value: 250 * time.Millisecond,
			Usage: "quiet period after the last change before running",
		},
		cli.DurationFlag{
			Name:  "max-wait, m",
			Usage: "run at least this often during a continuous burst of changes",
		},
		cli.BoolFlag{
			Name:  "leading, l",
			Usage: "also run on the first change of a burst",
		},
		cli.BoolFlag{
			Name:  "no-trailing",
			Usage: "do not run when the quiet period ends",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "YAML file with wait, leading, trailing and maxWait",
		},
		cli.StringSliceFlag{
			Name:  "path, p",
			Usage: "directory to watch recursively (default: .)",
		},
		cli.StringSliceFlag{
			Name:  "ext, e",
			Usage: "only react to files with this extension, e.g. .go",
		},
		cli.BoolFlag{
			Name:   "verbose, v",
			Usage:  "log debounce decisions",
			EnvVar: "DEBOUNCEWATCH_VERBOSE",
		},
	}
	app.Action = run

	return app
}

func run(c *cli.Context) error {
	logger := setupLogging(os.Stderr, c.Bool("verbose"))

	if c.NArg() == 0 {
		_ = cli.ShowAppHelp(c)

		return fmt.Errorf("no command given")
	}

	settings, err := loadSettings(c)
	if err != nil {
		return err
	}

	command := append([]string{c.Args().First()}, c.Args().Tail()...)

	return watch(logger, settings, command)
}
