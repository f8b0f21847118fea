package main

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Nerggg/multi-stegano/orchestrate"
)

type unveilRawFlags struct {
	secret   string
	output   string
	password string
}

func newUnveilRawCmd() *cobra.Command {
	flags := &unveilRawFlags{}

	cmd := &cobra.Command{
		Use:   "unveil-raw",
		Short: "Recover the raw decoded payload, bypassing message framing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnveilRaw(flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.secret, "input", "i", "", "cover file containing a hidden message")
	f.StringVarP(&flags.output, "output", "o", "", "file the raw decoded bytes are written to")
	f.StringVarP(&flags.password, "password", "p", "", "password, if the hidden message was encrypted")

	return cmd
}

func runUnveilRaw(flags *unveilRawFlags) error {
	mustAbs("--input", flags.secret)
	mustAbs("--output", flags.output)

	start := time.Now()
	log.Info().Str("cover", flags.secret).Msg("loading cover file")

	req := orchestrate.PrepareUnveilRaw().FromSecretFile(flags.secret).IntoRawFile(flags.output)
	if flags.password != "" {
		req = req.UsingPassword(flags.password)
	}

	log.Info().Msg("recovering raw payload")
	if err := req.Execute(); err != nil {
		fatal(err, "unveil-raw failed")
	}

	log.Info().Str("output", flags.output).Dur("elapsed", time.Since(start)).Msg("done")
	return nil
}
