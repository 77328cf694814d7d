package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/penwyp/go-track-replay/internal/core/model"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. TRACKREPLAY_PLAYBACK_INTERVAL=500ms
	EnvPrefix = "TRACKREPLAY"
	// HomeDir is where config.yaml and logs live, relative to the user's home
	HomeDir = "~/.go-track-replay"
)

type PlaybackConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type MapConfig struct {
	CenterLat float64 `mapstructure:"center_lat"`
	CenterLng float64 `mapstructure:"center_lng"`
	Zoom      int     `mapstructure:"zoom"`
}

type RouteConfig struct {
	Source       string  `mapstructure:"source"` // osrm, offline
	OSRMBaseURL  string  `mapstructure:"osrm_base_url"`
	OfflineSpeed float64 `mapstructure:"offline_speed_kmh"`
}

type ServerConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

type UIConfig struct {
	RefreshRate float64 `mapstructure:"refresh_rate"` // seconds between redraws
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text, json
}

// Config holds the whole application configuration
type Config struct {
	Playback PlaybackConfig `mapstructure:"playback"`
	Map      MapConfig      `mapstructure:"map"`
	Route    RouteConfig    `mapstructure:"route"`
	Server   ServerConfig   `mapstructure:"server"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`

	// File the configuration was read from, empty when only defaults and env applied
	File string `mapstructure:"-"`
}

// MapView returns the configured starting viewport
func (c *Config) MapView() model.MapView {
	return model.MapView{
		Center: model.LatLng{Lat: c.Map.CenterLat, Lng: c.Map.CenterLng},
		Zoom:   c.Map.Zoom,
	}
}

func setDefaults(v *viper.Viper) {
	view := model.DefaultMapView()

	v.SetDefault("playback.interval", time.Second)
	v.SetDefault("map.center_lat", view.Center.Lat)
	v.SetDefault("map.center_lng", view.Center.Lng)
	v.SetDefault("map.zoom", view.Zoom)
	v.SetDefault("route.source", "osrm")
	v.SetDefault("route.osrm_base_url", "https://router.project-osrm.org")
	v.SetDefault("route.offline_speed_kmh", 50.0)
	v.SetDefault("server.listen_addr", ":8080")
	v.SetDefault("ui.refresh_rate", 0.25)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration. An explicit path must exist; otherwise config.yaml is looked up
// in searchDirs and a missing file leaves defaults and environment overrides in place.
func Load(path string, searchDirs ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, dir := range searchDirs {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no component can work with
func (c *Config) Validate() error {
	if c.Playback.Interval <= 0 {
		return fmt.Errorf("playback.interval must be positive, got %s", c.Playback.Interval)
	}
	if c.Map.CenterLat < -90 || c.Map.CenterLat > 90 {
		return fmt.Errorf("map.center_lat out of range: %v", c.Map.CenterLat)
	}
	if c.Map.CenterLng < -180 || c.Map.CenterLng > 180 {
		return fmt.Errorf("map.center_lng out of range: %v", c.Map.CenterLng)
	}
	if c.Map.Zoom < 0 || c.Map.Zoom > 22 {
		return fmt.Errorf("map.zoom out of range: %d", c.Map.Zoom)
	}
	switch c.Route.Source {
	case "osrm", "offline":
	default:
		return fmt.Errorf("unknown route.source %q", c.Route.Source)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log.format %q", c.Log.Format)
	}
	return nil
}
