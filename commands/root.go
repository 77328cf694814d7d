package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-track-replay/internal/config"
	"github.com/penwyp/go-track-replay/internal/util"
)

// homeEnv relocates the config and log directory
const homeEnv = "TRACKREPLAY_HOME"

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	debug      bool
	configPath string
	homeDir    string
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &rootOptions{homeDir: config.HomeDir}
	if dir := os.Getenv(homeEnv); dir != "" {
		opts.homeDir = dir
	}

	cmd := &cobra.Command{
		Use:   "go-track-replay",
		Short: "Replay time-stamped GPS tracks in the terminal",
		Long: `go-track-replay loads a time series of "time,lat,lng" points and moves a drone
marker through them one step per tick, with play, stop, reset, forward and backward controls.

Examples:
  go-track-replay play flight.csv                 # Interactive player
  go-track-replay play flight.csv --interval 250ms
  go-track-replay parse flight.csv -o geojson     # Export markers and path for a web map
  go-track-replay route "48.8584,2.2945" "48.8606,2.3376"
  go-track-replay serve flight.csv --addr :8080   # Stream playback over a websocket`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false,
		"Enable debug mode")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"Config file (default: ~/.go-track-replay/config.yaml or ./config.yaml)")

	cmd.AddCommand(
		newPlayCmd(opts),
		newParseCmd(opts),
		newRouteCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

// setup loads configuration and initializes logging for a subcommand.
// console sends logs to stderr as well, which only --debug enables.
func (o *rootOptions) setup() (*config.Config, error) {
	home := expandPath(o.homeDir)

	cfgPath := o.configPath
	if cfgPath != "" {
		cfgPath = expandPath(cfgPath)
	}
	cfg, err := config.Load(cfgPath, home, ".")
	if err != nil {
		return nil, err
	}

	logLevel := cfg.Log.Level
	if o.debug {
		logLevel = "debug"
	}

	logFile := filepath.Join(home, "logs", "app.log")
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := util.InitLogger(util.LoggerOptions{
		Level:   logLevel,
		File:    logFile,
		Console: o.debug,
		Format:  util.LogFormat(cfg.Log.Format),
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	if cfg.File != "" {
		util.LogDebugf("Loaded config from %s", cfg.File)
	}
	return cfg, nil
}

func Execute() error {
	defer util.CloseLogger()
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
