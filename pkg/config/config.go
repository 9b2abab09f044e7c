// Package config loads application settings from a TOML file, with
// defaults that match the built-in reference layout.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/reeflow/reeflow/pkg/diagram/layout"
	apperr "github.com/reeflow/reeflow/pkg/errors"
)

// Config is the full application configuration.
type Config struct {
	Data   Data   `toml:"data"`
	Layout Layout `toml:"layout"`
	Render Render `toml:"render"`
	Server Server `toml:"server"`
	Store  Store  `toml:"store"`
	Cache  Cache  `toml:"cache"`
}

// Data locates the input dataset.
type Data struct {
	// Path is the CSV or JSON dataset file.
	Path string `toml:"path"`
}

// Layout configures the automatic layout pass.
type Layout struct {
	CanvasWidth  float64 `toml:"canvas_width"`
	CanvasHeight float64 `toml:"canvas_height"`
	NodeWidth    float64 `toml:"node_width"`
	NodePadding  float64 `toml:"node_padding"`
	FlowScale    float64 `toml:"flow_scale"`
	Align        string  `toml:"align"`
}

// Render configures artifact output.
type Render struct {
	Style string `toml:"style"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Store configures override persistence. Backend is "file" or "mongo".
type Store struct {
	Backend    string `toml:"backend"`
	Dir        string `toml:"dir"`        // file backend
	URI        string `toml:"uri"`        // mongo backend
	Database   string `toml:"database"`   // mongo backend
	Collection string `toml:"collection"` // mongo backend
}

// Cache configures artifact caching. Backend is "file", "redis", or
// "none".
type Cache struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`      // file backend
	Addr     string `toml:"addr"`     // redis backend
	Password string `toml:"password"` // redis backend
	DB       int    `toml:"db"`       // redis backend
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: Layout{
			CanvasWidth:  1000,
			CanvasHeight: 600,
			NodeWidth:    layout.DefaultNodeWidth,
			NodePadding:  layout.DefaultNodePadding,
			FlowScale:    layout.DefaultFlowScale,
			Align:        string(layout.AlignJustify),
		},
		Render: Render{Style: "simple"},
		Server: Server{Addr: ":8080"},
		Store:  Store{Backend: "file"},
		Cache:  Cache{Backend: "none"},
	}
}

// Load reads a TOML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for contradictions.
func (c Config) Validate() error {
	if c.Layout.CanvasWidth <= 0 || c.Layout.CanvasHeight <= 0 {
		return apperr.New(apperr.ErrCodeInvalidConfig, "canvas must have positive extent")
	}
	if c.Layout.FlowScale <= 0 || c.Layout.FlowScale > 1 {
		return apperr.New(apperr.ErrCodeInvalidConfig, "flow_scale must be in (0, 1]")
	}
	if !layout.Align(c.Layout.Align).Valid() {
		return apperr.New(apperr.ErrCodeInvalidAlign, "unknown align policy %q", c.Layout.Align)
	}
	switch c.Store.Backend {
	case "file", "mongo":
	default:
		return apperr.New(apperr.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	switch c.Cache.Backend {
	case "file", "redis", "none":
	default:
		return apperr.New(apperr.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

// Canvas returns the configured canvas size.
func (c Config) Canvas() layout.Size {
	return layout.Size{W: c.Layout.CanvasWidth, H: c.Layout.CanvasHeight}
}

// LayoutOptions returns the configured layout options.
func (c Config) LayoutOptions() layout.Options {
	return layout.Options{
		NodeWidth:   c.Layout.NodeWidth,
		NodePadding: c.Layout.NodePadding,
		FlowScale:   c.Layout.FlowScale,
		Align:       layout.Align(c.Layout.Align),
	}
}
