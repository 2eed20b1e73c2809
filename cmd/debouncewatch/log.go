package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func setupLogging(w io.Writer, verbose bool) zerolog.Logger {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	writer := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05.000",
	}
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()

	log.Debug().Msg("verbose logging enabled")

	return log.Logger
}
