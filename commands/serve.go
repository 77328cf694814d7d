package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-track-replay/internal/application/player"
	"github.com/penwyp/go-track-replay/internal/core/monitoring"
	"github.com/penwyp/go-track-replay/internal/core/playback"
	"github.com/penwyp/go-track-replay/internal/core/route"
	"github.com/penwyp/go-track-replay/internal/server"
	"github.com/penwyp/go-track-replay/internal/util"
)

type serveOptions struct {
	addr     string
	interval time.Duration
	watch    bool
	noRoute  bool
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve <file>",
		Short: "Run playback headless and stream it over a websocket",
		Long: `Loads the track and serves it on /ws. Each client receives the track, the map view and
the current state on connect, then every state change. Clients control playback with
JSON messages: play, stop, toggle, reset, forward, backward, load and route.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "",
		"Listen address (default from server.listen_addr, :8080)")
	cmd.Flags().DurationVar(&opts.interval, "interval", 0,
		"Time between steps (default from playback.interval, 1s)")
	cmd.Flags().BoolVar(&opts.watch, "watch", true,
		"Reload the track when the file changes")
	cmd.Flags().BoolVar(&opts.noRoute, "no-route", false,
		"Disable route requests from clients")
	return cmd
}

func runServe(cmd *cobra.Command, root *rootOptions, opts *serveOptions, path string) error {
	cfg, err := root.setup()
	if err != nil {
		return err
	}

	interval := cfg.Playback.Interval
	if cmd.Flags().Changed("interval") {
		interval = opts.interval
	}
	addr := cfg.Server.ListenAddr
	if opts.addr != "" {
		addr = opts.addr
	}

	controller := playback.New(playback.WithInterval(interval))
	defer controller.Close()

	source := expandPath(path)
	loader := player.NewTrackLoader(source, false)
	if _, err := loader.LoadInto(controller); err != nil {
		return err
	}

	var router route.RouteProvider
	if !opts.noRoute {
		router, err = route.CreateRouteProvider(routeSourceConfig(cfg, "", ""))
		if err != nil {
			return err
		}
	}

	srv := server.New(controller, server.Options{
		View:   cfg.MapView(),
		Router: router,
		Source: path,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.watch {
		watcher, err := monitoring.NewFileWatcher([]string{source})
		if err != nil {
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
		defer watcher.Close()
		go reloadOnChange(ctx, watcher, loader, controller)
	}

	go srv.Run(ctx)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		util.LogInfo("Serving playback", util.F("addr", addr), util.F("file", source))
		errCh <- httpServer.ListenAndServe()
	}()
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on ws://%s/ws\n", path, addr)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// reloadOnChange reloads the track into the controller whenever the watcher reports a change
func reloadOnChange(ctx context.Context, watcher *monitoring.FileWatcher, loader *player.TrackLoader, p player.Playback) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events():
			if !ok {
				return
			}
			util.LogDebugf("File changed: %s (%s)", event.Path, event.Operation)
			if _, err := loader.LoadInto(p); err != nil {
				util.LogError("Reload failed", util.F("error", err.Error()))
			}
		}
	}
}
