// Package config loads runtime settings from defaults, an optional config
// file, GRIDCASTER_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "GRIDCASTER"

var ErrInvalid = errors.New("config: invalid value")

type Screen struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type Render struct {
	// Fov is the half field of view in degrees.
	Fov         float64 `mapstructure:"fov"`
	Depth       int     `mapstructure:"depth"`
	Perspective bool    `mapstructure:"perspective"`
	Workers     int     `mapstructure:"workers"`
}

type Player struct {
	Speed float64 `mapstructure:"speed"`
	Turn  float64 `mapstructure:"turn"`
	Size  float64 `mapstructure:"size"`
}

type Agent struct {
	Speed   float64 `mapstructure:"speed"`
	Turn    float64 `mapstructure:"turn"`
	Size    float64 `mapstructure:"size"`
	Sight   int     `mapstructure:"sight"`
	Pursuit bool    `mapstructure:"pursuit"`
}

type Map struct {
	// Path is a .bmp, .png or .txt level; empty means the built-in level.
	Path string `mapstructure:"path"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Screen Screen `mapstructure:"screen"`
	Render Render `mapstructure:"render"`
	Player Player `mapstructure:"player"`
	Agent  Agent  `mapstructure:"agent"`
	Map    Map    `mapstructure:"map"`
	Log    Log    `mapstructure:"log"`
}

var defaults = map[string]any{
	"screen.width":       1024,
	"screen.height":      768,
	"render.fov":         45.0,
	"render.depth":       20,
	"render.perspective": false,
	"render.workers":     1,
	"player.speed":       240.0,
	"player.turn":        1.5,
	"player.size":        10.0,
	"agent.speed":        100.0,
	"agent.turn":         1.5,
	"agent.size":         10.0,
	"agent.sight":        10,
	"agent.pursuit":      true,
	"map.path":           "",
	"log.level":          "info",
	"log.format":         "text",
}

// flag name -> config key
var flagKeys = map[string]string{
	"width":       "screen.width",
	"height":      "screen.height",
	"fov":         "render.fov",
	"depth":       "render.depth",
	"perspective": "render.perspective",
	"workers":     "render.workers",
	"map":         "map.path",
	"log-level":   "log.level",
	"log-format":  "log.format",
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "config file (yaml, toml or json)")
	fs.Int("width", 1024, "window width in pixels")
	fs.Int("height", 768, "window height in pixels")
	fs.Float64("fov", 45, "half field of view in degrees")
	fs.Int("depth", 20, "ray depth in tiles")
	fs.Bool("perspective", false, "perspective-correct column spacing")
	fs.Int("workers", 1, "goroutines used for the wall pass")
	fs.String("map", "", "level file (.bmp, .png or .txt)")
	fs.String("log-level", "info", "log level")
	fs.String("log-format", "text", "log format, text or json")
	return fs
}

// Load parses args (without the program name) and returns the merged config.
func Load(args []string) (*Config, error) {
	fs := newFlagSet("gridcaster")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("config: parse flags: %w", err)
	}

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("config: bind flag %s: %w", name, err)
		}
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("%w: screen %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	case c.Render.Fov <= 0 || c.Render.Fov >= 90:
		return fmt.Errorf("%w: fov %v outside (0, 90)", ErrInvalid, c.Render.Fov)
	case c.Render.Depth < 1:
		return fmt.Errorf("%w: depth %d", ErrInvalid, c.Render.Depth)
	case c.Render.Workers < 1:
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Render.Workers)
	case c.Player.Size <= 0 || c.Agent.Size <= 0:
		return fmt.Errorf("%w: entity size", ErrInvalid)
	case c.Player.Speed < 0 || c.Agent.Speed < 0:
		return fmt.Errorf("%w: negative speed", ErrInvalid)
	case c.Agent.Sight < 0:
		return fmt.Errorf("%w: sight %d", ErrInvalid, c.Agent.Sight)
	}
	return nil
}
