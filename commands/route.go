package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/penwyp/go-track-replay/internal/config"
	"github.com/penwyp/go-track-replay/internal/core/model"
	"github.com/penwyp/go-track-replay/internal/core/route"
)

type routeOptions struct {
	source  string
	osrmURL string
	json    bool
}

func newRouteCmd(root *rootOptions) *cobra.Command {
	opts := &routeOptions{}

	cmd := &cobra.Command{
		Use:   "route <origin> <destination>",
		Short: "Compute distance and travel time between two points",
		Long: `Asks the routing service for a driving route between two "lat,lng" points and prints
its distance and duration. An empty origin or destination prints nothing.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoute(cmd, root, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&opts.source, "source", "",
		"Route source (osrm, offline); defaults to route.source from config")
	cmd.Flags().StringVar(&opts.osrmURL, "osrm-url", "",
		"OSRM base URL; defaults to route.osrm_base_url from config")
	cmd.Flags().BoolVar(&opts.json, "json", false,
		"Print the full result as JSON")
	return cmd
}

func runRoute(cmd *cobra.Command, root *rootOptions, opts *routeOptions, origin, destination string) error {
	cfg, err := root.setup()
	if err != nil {
		return err
	}

	provider, err := route.CreateRouteProvider(routeSourceConfig(cfg, opts.source, opts.osrmURL))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := provider.Route(ctx, model.RouteRequest{Origin: origin, Destination: destination})
	if errors.Is(err, route.ErrEmptyEndpoint) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("route request failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if opts.json {
		data, err := sonic.ConfigStd.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	fmt.Fprintf(out, "Distance: %s\n", result.DistanceText)
	fmt.Fprintf(out, "Duration: %s\n", result.DurationText)
	return nil
}

// routeSourceConfig merges command flags over the configured route settings
func routeSourceConfig(cfg *config.Config, source, osrmURL string) *route.SourceConfig {
	sc := &route.SourceConfig{
		RouteSource:  cfg.Route.Source,
		OSRMBaseURL:  cfg.Route.OSRMBaseURL,
		OfflineSpeed: cfg.Route.OfflineSpeed,
	}
	if source != "" {
		sc.RouteSource = source
	}
	if osrmURL != "" {
		sc.OSRMBaseURL = osrmURL
	}
	return sc
}
