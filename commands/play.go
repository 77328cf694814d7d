package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-track-replay/internal/application/player"
)

type playOptions struct {
	interval time.Duration
	watch    bool
	strict   bool
}

func newPlayCmd(root *rootOptions) *cobra.Command {
	opts := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play <file>",
		Short: "Replay a track interactively",
		Long: `Opens a full-screen player on the track. The drone marker advances one point per
interval while playing and stops on the last point.

Keys:
  space / p   play / stop        r       reset to first point
  l / →       move forward       h / ←   move backward
  o           reload file        ?       help
  q / ESC     quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().DurationVar(&opts.interval, "interval", 0,
		"Time between steps (default from playback.interval, 1s)")
	cmd.Flags().BoolVar(&opts.watch, "watch", true,
		"Reload the track when the file changes")
	cmd.Flags().BoolVar(&opts.strict, "strict", false,
		"Refuse to load files with lines that do not parse cleanly")
	return cmd
}

func runPlay(cmd *cobra.Command, root *rootOptions, opts *playOptions, path string) error {
	cfg, err := root.setup()
	if err != nil {
		return err
	}

	interval := cfg.Playback.Interval
	if cmd.Flags().Changed("interval") {
		interval = opts.interval
	}

	orchestrator, err := player.NewOrchestrator(&player.PlayerConfig{
		SourcePath:    expandPath(path),
		Strict:        opts.strict,
		Interval:      interval,
		Watch:         opts.watch,
		UIRefreshRate: cfg.UI.RefreshRate,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return orchestrator.Run(ctx)
}
