package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-track-replay/internal/core/track"
	"github.com/penwyp/go-track-replay/internal/presentation/formatter"
)

type parseOptions struct {
	output string
	strict bool
	step   int
}

func newParseCmd(root *rootOptions) *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a track file and print it",
		Long: `Parses a "time,lat,lng" text file (or a .gpx file) and prints the resulting track.
Lines that cannot be fully parsed are kept with missing coordinates and reported on stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "table",
		"Output format ("+strings.Join(formatter.Names, ", ")+")")
	cmd.Flags().BoolVar(&opts.strict, "strict", false,
		"Fail on any line that does not parse cleanly")
	cmd.Flags().IntVar(&opts.step, "step", 0,
		"Point to mark as the drone position in geojson output (0-based)")
	return cmd
}

func runParse(cmd *cobra.Command, root *rootOptions, opts *parseOptions, path string) error {
	cfg, err := root.setup()
	if err != nil {
		return err
	}

	f, err := formatter.New(opts.output, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	res, err := track.LoadFile(expandPath(path), track.ParseOptions{Strict: opts.strict})
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", w)
	}

	return f.Format(formatter.Document{
		Source:      path,
		Track:       res.Track,
		View:        cfg.MapView(),
		CurrentStep: opts.step,
	})
}
