package main

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Nerggg/multi-stegano/orchestrate"
)

type unveilFlags struct {
	secret     string
	outputDir  string
	password   string
}

func newUnveilCmd() *cobra.Command {
	flags := &unveilFlags{}

	cmd := &cobra.Command{
		Use:   "unveil",
		Short: "Recover a message previously hidden with hide",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnveil(flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.secret, "input", "i", "", "cover file containing a hidden message")
	f.StringVarP(&flags.outputDir, "output", "o", "", "folder recovered files are written into")
	f.StringVarP(&flags.password, "password", "p", "", "password, if the hidden message was encrypted")

	return cmd
}

func runUnveil(flags *unveilFlags) error {
	mustAbs("--input", flags.secret)
	mustAbs("--output", flags.outputDir)

	start := time.Now()
	log.Info().Str("cover", flags.secret).Msg("loading cover file")

	req := orchestrate.PrepareUnveil().FromSecretFile(flags.secret).IntoOutputFolder(flags.outputDir)
	if flags.password != "" {
		req = req.UsingPassword(flags.password)
	}

	log.Info().Msg("recovering hidden data")
	if err := req.Execute(); err != nil {
		fatal(err, "unveil failed")
	}

	log.Info().Str("output", flags.outputDir).Dur("elapsed", time.Since(start)).Msg("done")
	return nil
}
