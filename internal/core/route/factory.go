package route

import (
	"fmt"

	"github.com/penwyp/go-track-replay/internal/util"
)

// SourceConfig selects and configures a route provider
type SourceConfig struct {
	RouteSource  string // osrm, offline
	OSRMBaseURL  string
	OfflineSpeed float64 // km/h, offline source only
}

// CreateRouteProvider creates a route provider based on configuration
func CreateRouteProvider(cfg *SourceConfig) (RouteProvider, error) {
	var base RouteProvider

	switch cfg.RouteSource {
	case "osrm", "":
		base = NewOSRMProvider(cfg.OSRMBaseURL)
	case "offline":
		base = NewStraightLineProvider(cfg.OfflineSpeed)
	default:
		return nil, fmt.Errorf("unknown route source: %s", cfg.RouteSource)
	}

	util.LogDebugf("Created route provider: %s", base.GetProviderName())
	return NewCachedProvider(base), nil
}
