package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Nerggg/multi-stegano/orchestrate"
)

type hideFlags struct {
	cover      string
	output     string
	files      []string
	message    string
	password   string
	colorStep  int
	hasStep    bool
	useFEC     bool
}

func newHideCmd() *cobra.Command {
	flags := &hideFlags{}

	cmd := &cobra.Command{
		Use:   "hide",
		Short: "Hide a message or files inside a cover image or audio file",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.hasStep = cmd.Flags().Changed("x-color-step-increment")
			return runHide(flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.cover, "input", "i", "", "cover media file (png, wav, jpg/jpeg)")
	f.StringVarP(&flags.output, "output", "o", "", "path the resulting cover file is written to")
	f.StringArrayVarP(&flags.files, "data", "d", nil, "file to hide (repeatable)")
	f.StringVarP(&flags.message, "message", "m", "", "text message to hide")
	f.StringVarP(&flags.password, "password", "p", "", "password enabling encryption")
	f.IntVar(&flags.colorStep, "x-color-step-increment", 0, "LSB color channel step increment (PNG cover only)")
	f.BoolVar(&flags.useFEC, "fec", false, "wrap hidden data in a reed-solomon forward-error-correcting code")
	cmd.MarkFlagsOneRequired("data", "message")
	cmd.MarkFlagsMutuallyExclusive("data", "message")

	return cmd
}

func runHide(flags *hideFlags) error {
	mustAbs("--input", flags.cover)
	mustAbs("--output", flags.output)

	start := time.Now()
	log.Info().Str("cover", flags.cover).Msg("loading cover file")

	req := orchestrate.PrepareHide().WithImage(flags.cover).WithOutput(flags.output)

	if flags.message != "" {
		req = req.WithMessage(flags.message)
	}

	var fecCleanups []string
	defer func() {
		for _, p := range fecCleanups {
			os.Remove(p)
		}
	}()

	for _, path := range flags.files {
		if !flags.useFEC {
			req = req.WithFile(path)
			continue
		}

		encodedPath, err := stageFECFile(path)
		if err != nil {
			return fmt.Errorf("fec encode %s: %w", path, err)
		}
		fecCleanups = append(fecCleanups, encodedPath)
		req = req.WithFile(encodedPath)
	}

	if flags.password != "" {
		req = req.UsingPassword(flags.password)
	}
	if flags.hasStep {
		req = req.WithColorStepIncrement(flags.colorStep)
	}

	log.Info().Msg("embedding data into cover")
	if err := req.Execute(); err != nil {
		fatal(err, "hide failed")
	}

	log.Info().Str("output", flags.output).Dur("elapsed", time.Since(start)).Msg("done")
	return nil
}

// stageFECFile reed-solomon-encodes a file's content and writes it to a
// temp path carrying the original extension, so the hidden payload decodes
// to a recognizable file name after unveiling.
func stageFECFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	bar := progressbar.NewOptions64(
		int64(len(data)),
		progressbar.OptionSetDescription(" encoding FEC shards for "+filepath.Base(path)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { fmt.Fprint(os.Stderr, "\n") }),
		progressbar.OptionFullWidth(),
	)
	_ = bar.Add64(int64(len(data)))

	encoded, err := fecEncode(data)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "stegano-fec-*-"+filepath.Base(path))
	if err != nil {
		return "", err
	}
	defer tmp.Close()
	if _, err := tmp.Write(encoded); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
