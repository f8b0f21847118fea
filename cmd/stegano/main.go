// Command stegano is the standalone CLI front end for the hide/unveil/
// unveil-raw operations exposed by the orchestrate package, independent of
// the HTTP server in main.go.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	root := &cobra.Command{
		Use:   "stegano",
		Short: "Hide and recover messages in image and audio cover files",
	}
	root.AddCommand(newHideCmd(), newUnveilCmd(), newUnveilRawCmd())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func fatal(err error, msg string) {
	log.Error().Err(err).Msg(msg)
	os.Exit(1)
}

func mustAbs(label, path string) {
	if path == "" {
		fatal(fmt.Errorf("%s is required", label), "missing flag")
	}
}
